// Package grid builds the coarse simulation graph: a jittered square lattice
// wrapped in a ring of boundary points and triangulated into Voronoi cells.
package grid

import (
	"errors"
	"fmt"
	"math"

	"landmass/internal/core"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

// ErrInvalidSize is returned for non-positive dimensions or point counts.
var ErrInvalidSize = errors.New("grid: width, height and point count must be positive")

// Build places jittered points for a width×height canvas, adds the boundary
// ring and computes the Voronoi graph. rng is consumed two draws per point.
func Build(rng pcore.Source, width, height, desired int) (*core.Grid, error) {
	if width <= 0 || height <= 0 || desired <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with %d points", ErrInvalidSize, width, height, desired)
	}

	g := &core.Grid{
		Width:        width,
		Height:       height,
		CellsDesired: desired,
	}
	g.Spacing = Spacing(width, height, desired)
	g.CellsX, g.CellsY = Lattice(width, height, g.Spacing)
	g.Points = PlacePoints(rng, width, height, g.Spacing)
	g.Boundary = BoundaryPoints(width, height, g.Spacing)

	m, err := mesh.Build(g.Points, g.Boundary)
	if err != nil {
		return nil, fmt.Errorf("grid mesh: %w", err)
	}
	g.Cells = m.Cells
	g.Vertices = m.Vertices

	n := len(g.Points)
	g.H = make([]uint8, n)
	g.F = make([]int, n)
	g.T = make([]int8, n)
	g.Temp = make([]int8, n)
	g.Prec = make([]uint8, n)
	return g, nil
}

// Spacing is the lattice pitch that yields roughly desired points.
func Spacing(width, height, desired int) float64 {
	return pcore.Round(math.Sqrt(float64(width)*float64(height)/float64(desired)), 2)
}

// Lattice returns the column and row count for a spacing.
func Lattice(width, height int, spacing float64) (int, int) {
	x := int(math.Floor((float64(width) + 0.5*spacing - 1e-10) / spacing))
	y := int(math.Floor((float64(height) + 0.5*spacing - 1e-10) / spacing))
	return x, y
}

// PlacePoints lays the jittered lattice row by row. Each point draws its X
// offset before its Y offset.
func PlacePoints(rng pcore.Source, width, height int, spacing float64) []mesh.Point {
	radius := spacing / 2
	jitter := radius * 0.9
	double := jitter * 2
	cellsX, cellsY := Lattice(width, height, spacing)

	w, h := float64(width), float64(height)
	points := make([]mesh.Point, 0, cellsX*cellsY)
	for j := 0; j < cellsY; j++ {
		y := pcore.Round(radius+float64(j)*spacing, 2)
		for i := 0; i < cellsX; i++ {
			x := pcore.Round(radius+float64(i)*spacing, 2)
			xj := math.Min(pcore.Round(x+(rng.Float64()*double-jitter), 2), w)
			yj := math.Min(pcore.Round(y+(rng.Float64()*double-jitter), 2), h)
			points = append(points, mesh.Point{X: xj, Y: yj})
		}
	}
	return points
}

// BoundaryPoints returns the evenly spaced ring placed one spacing outside
// the canvas. It consumes no randomness.
func BoundaryPoints(width, height int, spacing float64) []mesh.Point {
	offset := pcore.Round(-spacing, 0)
	bSpacing := spacing * 2
	w := float64(width) - offset*2
	h := float64(height) - offset*2
	numberX := math.Ceil(w/bSpacing) - 1
	numberY := math.Ceil(h/bSpacing) - 1

	var points []mesh.Point
	for i := 0.5; i < numberX; i++ {
		x := math.Ceil(w*i/numberX + offset)
		points = append(points, mesh.Point{X: x, Y: offset}, mesh.Point{X: x, Y: h + offset})
	}
	for i := 0.5; i < numberY; i++ {
		y := math.Ceil(h*i/numberY + offset)
		points = append(points, mesh.Point{X: offset, Y: y}, mesh.Point{X: w + offset, Y: y})
	}
	return points
}

// FindCell returns the lattice cell containing (x, y). Points past the last
// row or column snap to it.
func FindCell(g *core.Grid, x, y float64) int {
	row := math.Floor(math.Min(y/g.Spacing, float64(g.CellsY-1)))
	col := math.Floor(math.Min(x/g.Spacing, float64(g.CellsX-1)))
	return int(row)*g.CellsX + int(col)
}
