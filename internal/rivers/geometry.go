package rivers

import (
	"math"

	"landmass/internal/core"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

const (
	fluxFactor    = 500
	maxFluxWidth  = 1
	lengthFactor  = 200
	lengthStep    = 1.0 / lengthFactor
	meanderFactor = 0.5

	// Segments before this many steps from the source get two control
	// points instead of one.
	sharpMeanderSteps = 20
)

var lengthProgression = []float64{1, 1, 2, 3, 5, 8, 13, 21, 34}

// Meander expands a river cell path into a wiggling polyline. Cell centres
// carry their flux; inserted control points carry zero. A trailing -1 in
// cells marks water leaving the map and ends the line on the nearest edge.
func Meander(p *core.Pack, cells []int, width, height float64) []core.RiverPoint {
	if len(cells) == 0 {
		return nil
	}
	points := riverPoints(p, cells, width, height)
	last := len(cells) - 1
	step := 10
	if cells[0] >= 0 && p.H[cells[0]] < core.LandHeight {
		step = 1
	}

	var out []core.RiverPoint
	for i := 0; i <= last; i, step = i+1, step+1 {
		cell := cells[i]
		a := points[i]
		out = append(out, core.RiverPoint{X: a.X, Y: a.Y, Flux: flux(p, cell)})
		if i == last {
			break
		}

		b := points[i+1]
		if cells[i+1] == -1 {
			out = append(out, core.RiverPoint{X: b.X, Y: b.Y, Flux: flux(p, cell)})
			break
		}

		dist2 := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
		if dist2 <= 25 && len(cells) >= 6 {
			continue
		}

		s := float64(step)
		meander := meanderFactor + 1/s + math.Max(meanderFactor-s/100, 0)
		angle := math.Atan2(b.Y-a.Y, b.X-a.X)
		sin := math.Sin(angle) * meander
		cos := math.Cos(angle) * meander

		switch {
		case step < sharpMeanderSteps && (dist2 > 64 || (dist2 > 36 && len(cells) < 5)):
			out = append(out,
				core.RiverPoint{X: (a.X*2+b.X)/3 - sin, Y: (a.Y*2+b.Y)/3 + cos},
				core.RiverPoint{X: (a.X+b.X*2)/3 + sin/2, Y: (a.Y+b.Y*2)/3 - cos/2},
			)
		case dist2 > 25 || len(cells) < 6:
			out = append(out, core.RiverPoint{X: (a.X+b.X)/2 - sin, Y: (a.Y+b.Y)/2 + cos})
		}
	}
	return out
}

func flux(p *core.Pack, cell int) float64 {
	if cell < 0 || cell >= len(p.Fl) {
		return 0
	}
	return float64(p.Fl[cell])
}

func riverPoints(p *core.Pack, cells []int, width, height float64) []mesh.Point {
	out := make([]mesh.Point, len(cells))
	for i, c := range cells {
		if c == -1 && i > 0 {
			out[i] = BorderPoint(p.Points[cells[i-1]], width, height)
			continue
		}
		out[i] = p.Points[c]
	}
	return out
}

// BorderPoint projects pt onto the closest edge of the map.
func BorderPoint(pt mesh.Point, width, height float64) mesh.Point {
	m := min(pt.Y, height-pt.Y, pt.X, width-pt.X)
	switch m {
	case pt.Y:
		return mesh.Point{X: pt.X, Y: 0}
	case height - pt.Y:
		return mesh.Point{X: pt.X, Y: height}
	case pt.X:
		return mesh.Point{X: 0, Y: pt.Y}
	}
	return mesh.Point{X: width, Y: pt.Y}
}

// Offset is the half width of a river at the given point index.
func Offset(flux float64, pointIndex int, widthFactor, startingWidth float64) float64 {
	if pointIndex == 0 {
		return startingWidth
	}
	fluxWidth := math.Min(math.Pow(flux, 0.7)/fluxFactor, maxFluxWidth)
	progression := lengthProgression[len(lengthProgression)-1]
	if pointIndex < len(lengthProgression) {
		progression = lengthProgression[pointIndex]
	}
	lengthWidth := float64(pointIndex)*lengthStep + progression/lengthFactor
	return widthFactor*(lengthWidth+fluxWidth) + startingWidth
}

// SourceWidth is the width of a river where it rises.
func SourceWidth(flux float64) float64 {
	return pcore.Round(math.Min(math.Pow(flux, 0.9)/fluxFactor, 1), 2)
}

// Width converts a mouth offset into a river width.
func Width(offset float64) float64 {
	return pcore.Round(math.Pow(offset/1.5, 1.8), 2)
}

// Length measures a polyline.
func Length(points []core.RiverPoint) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return pcore.Round(l, 2)
}
