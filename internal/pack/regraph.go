// Package pack rebuilds the grid into the coastally refined graph used for
// hydrology and locates cells in it.
package pack

import (
	"fmt"
	"math"

	"landmass/internal/core"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

// ReGraph keeps land and near-shore water cells of a marked-up grid, adds
// midpoints along long coastline edges, and builds a new Voronoi graph over
// the result. Deep ocean is dropped and every fourth second-ring water cell
// is thinned out, along with all second-ring lake cells.
func ReGraph(g *core.Grid) (*core.Pack, error) {
	var (
		points  []mesh.Point
		gridIDs []int
		heights []uint8
	)
	add := func(i int, p mesh.Point, h uint8) {
		points = append(points, p)
		gridIDs = append(gridIDs, i)
		heights = append(heights, h)
	}

	spacing2 := g.Spacing * g.Spacing
	for i, p := range g.Points {
		h := g.H[i]
		t := g.T[i]
		if h < core.LandHeight && t != core.WaterCoast && t != core.DeepWater {
			continue
		}
		if t == core.DeepWater && (i%4 == 0 || g.Features[g.F[i]].IsLake()) {
			continue
		}
		add(i, p, h)

		if t != core.LandCoast && t != core.WaterCoast {
			continue
		}
		if g.Cells.B[i] == 1 {
			continue
		}
		for _, e := range g.Cells.C[i] {
			if i > e || g.T[e] != t {
				continue
			}
			q := g.Points[e]
			if (p.Y-q.Y)*(p.Y-q.Y)+(p.X-q.X)*(p.X-q.X) < spacing2 {
				continue
			}
			mid := mesh.Point{
				X: pcore.Round((p.X+q.X)/2, 1),
				Y: pcore.Round((p.Y+q.Y)/2, 1),
			}
			add(i, mid, h)
		}
	}

	m, err := mesh.Build(points, g.Boundary)
	if err != nil {
		return nil, fmt.Errorf("regraph: %w", err)
	}

	p := &core.Pack{
		Points:   points,
		Cells:    m.Cells,
		Vertices: m.Vertices,
		G:        gridIDs,
		H:        heights,
		Area:     make([]uint16, len(points)),
	}
	for i := range points {
		area := math.Abs(mesh.PolygonArea(m.Polygon(i)))
		p.Area[i] = uint16(math.Min(area, math.MaxUint16))
	}
	return p, nil
}
