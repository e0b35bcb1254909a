// Package render turns generated maps into pictures: per-pixel rasters of
// cell layers, PNG previews and, with the ebiten tag, an on-screen painter.
package render

import (
	"fmt"

	"landmass/internal/core"
	"landmass/internal/world"
)

// Raster maps every pixel of a w×h image to its nearest pack cell. The image
// may be smaller than the map; pixels sample the map at their centre.
type Raster struct {
	W, H  int
	Scale float64
	cells []int
}

// NewRaster samples m onto a w×h pixel raster.
func NewRaster(m *world.Map, w, h int) *Raster {
	r := &Raster{W: max(w, 1), H: max(h, 1)}
	r.Scale = float64(m.Options.Width) / float64(r.W)
	sy := float64(m.Options.Height) / float64(r.H)
	r.cells = make([]int, r.W*r.H)
	for y := 0; y < r.H; y++ {
		py := (float64(y) + 0.5) * sy
		for x := 0; x < r.W; x++ {
			r.cells[y*r.W+x] = m.FindCell((float64(x)+0.5)*r.Scale, py)
		}
	}
	return r
}

// Cell returns the pack cell under pixel (x, y), or -1 outside the raster.
func (r *Raster) Cell(x, y int) int {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return -1
	}
	return r.cells[y*r.W+x]
}

// Paint evaluates a registered layer for every pixel. Pixels far from any
// pack cell still take the nearest cell's value; the pack only leaves out
// deep ocean, so the error stays offshore.
func (r *Raster) Paint(m *world.Map, layer string) (*core.ByteGrid, Layer, error) {
	l, ok := LookupLayer(layer)
	if !ok {
		return nil, Layer{}, fmt.Errorf("render: unknown layer %q (have %v)", layer, core.Layers())
	}
	out := core.NewByteGrid(r.W, r.H)
	data := out.Cells()
	cache := make(map[int]uint8)
	for i, c := range r.cells {
		if c < 0 {
			continue
		}
		v, ok := cache[c]
		if !ok {
			v = l.Index(m.Pack, m.Grid, c)
			cache[c] = v
		}
		data[i] = v
	}
	return out, l, nil
}

// RiverMask flags pixels over river cells.
func (r *Raster) RiverMask(m *world.Map) *core.ByteGrid {
	out := core.NewByteGrid(r.W, r.H)
	data := out.Cells()
	if m.Pack.R == nil {
		return out
	}
	for i, c := range r.cells {
		if c >= 0 && m.Pack.R[c] != 0 && m.Pack.IsLand(c) {
			data[i] = 1
		}
	}
	return out
}
