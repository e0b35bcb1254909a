// Package features labels connected land and water regions, stamps the
// signed coastal distance field and traces feature outlines.
package features

import (
	"slices"

	"landmass/internal/core"
)

// MarkupGrid flood-fills the grid into features and computes its coastal
// distance field. Water distances are propagated down to -9.
func MarkupGrid(g *core.Grid) {
	n := g.CellCount()
	t := make([]int8, n)
	f := make([]int, n)
	features := []*core.Feature{nil}

	for start := 0; start != -1; start = slices.Index(f, 0) {
		id := len(features)
		f[start] = id
		land := g.IsLand(start)
		border := false
		count := 1

		stack := []int{start}
		for len(stack) > 0 {
			cell := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if g.Cells.B[cell] == 1 {
				border = true
			}
			for _, nb := range g.Cells.C[cell] {
				nbLand := g.IsLand(nb)
				if land == nbLand && f[nb] == 0 {
					f[nb] = id
					stack = append(stack, nb)
					count++
				} else if land && !nbLand {
					t[cell] = core.LandCoast
					t[nb] = core.WaterCoast
				}
			}
		}

		features = append(features, &core.Feature{
			ID:        id,
			Type:      classify(land, border),
			Land:      land,
			Border:    border,
			Cells:     count,
			FirstCell: start,
		})
	}

	Markup(t, g.Cells.C, core.DeepWater, -1, -10)
	g.T = t
	g.F = f
	g.Features = features
}

func classify(land, border bool) core.FeatureType {
	switch {
	case land:
		return core.FeatureIsland
	case border:
		return core.FeatureOcean
	default:
		return core.FeatureLake
	}
}

// Markup grows the distance field outwards one ring per pass. Each pass
// stamps unmarked neighbours of cells at the previous distance. It stops
// when a pass marks nothing or the distance reaches limit.
func Markup(t []int8, neighbors [][]int, start, inc, limit int8) {
	marked := 1
	for dist := int(start); marked > 0 && dist != int(limit); dist += int(inc) {
		marked = 0
		prev := int8(dist - int(inc))
		for cell, nbs := range neighbors {
			if t[cell] != prev {
				continue
			}
			for _, nb := range nbs {
				if t[nb] != core.Unmarked {
					continue
				}
				t[nb] = int8(dist)
				marked++
			}
		}
	}
}
