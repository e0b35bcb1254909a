// Package lakes resolves lakes on the grid and computes lake hydrology on the
// pack.
package lakes

import (
	"slices"

	"landmass/internal/core"
)

// DisabledLimit is the elevation limit at which no depression lakes are
// added.
const DisabledLimit = 80

// BreachLimit is the highest coastal cell a lake can break through to join
// the ocean.
const BreachLimit = 22

// AddInDeepDepressions turns land pits into lakes. A land cell no higher
// than any neighbour becomes a lake, together with its equal-height
// neighbours, when no water can be reached from it without climbing to
// limit above its height. It returns the number of lakes added.
func AddInDeepDepressions(g *core.Grid, limit int) int {
	if limit >= DisabledLimit {
		return 0
	}
	added := 0
	for i := range g.Points {
		if g.Cells.B[i] == 1 || !g.IsLand(i) {
			continue
		}
		h := g.H[i]
		lowest := h
		for _, n := range g.Cells.C[i] {
			lowest = min(lowest, g.H[n])
		}
		if h > lowest {
			continue
		}
		if !isDeep(g, i, int(h)+limit) {
			continue
		}

		cells := []int{i}
		for _, n := range g.Cells.C[i] {
			if g.H[n] == h {
				cells = append(cells, n)
			}
		}
		addLake(g, cells)
		added++
	}
	return added
}

func isDeep(g *core.Grid, start, threshold int) bool {
	checked := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, n := range g.Cells.C[q] {
			if checked[n] || int(g.H[n]) >= threshold {
				continue
			}
			if !g.IsLand(n) {
				return false
			}
			checked[n] = true
			queue = append(queue, n)
		}
	}
	return true
}

func addLake(g *core.Grid, cells []int) {
	id := len(g.Features)
	for _, i := range cells {
		if old := g.Features[g.F[i]]; old != nil {
			old.Cells--
		}
		g.H[i] = core.LakeHeight
		g.T[i] = core.WaterCoast
		g.F[i] = id
		for _, n := range g.Cells.C[i] {
			if !slices.Contains(cells, n) && g.IsLand(n) {
				g.T[n] = core.LandCoast
			}
		}
	}
	g.Features = append(g.Features, &core.Feature{
		ID:        id,
		Type:      core.FeatureLake,
		Cells:     len(cells),
		FirstCell: cells[0],
	})
}

// OpenNearSea breaches lakes separated from the ocean by a single low coastal
// cell. The breach cell is lowered into the ocean and the lake feature is
// merged into it. It returns the number of lakes opened.
func OpenNearSea(g *core.Grid) int {
	hasLakes := false
	for _, f := range g.Features {
		if f.IsLake() {
			hasLakes = true
			break
		}
	}
	if !hasLakes {
		return 0
	}

	opened := 0
	for i := range g.Points {
		lake := g.F[i]
		if !g.Features[lake].IsLake() {
			continue
		}
	neighbours:
		for _, c := range g.Cells.C[i] {
			if g.T[c] != core.LandCoast || g.H[c] > BreachLimit {
				continue
			}
			for _, n := range g.Cells.C[c] {
				ocean := g.F[n]
				if g.Features[ocean] == nil || g.Features[ocean].Type != core.FeatureOcean {
					continue
				}
				removeLake(g, c, lake, ocean)
				opened++
				break neighbours
			}
		}
	}
	return opened
}

func removeLake(g *core.Grid, threshold, lake, ocean int) {
	if old := g.Features[g.F[threshold]]; old != nil {
		old.Cells--
	}
	g.H[threshold] = core.LakeHeight
	g.T[threshold] = core.WaterCoast
	g.F[threshold] = ocean
	g.Features[ocean].Cells++
	for _, c := range g.Cells.C[threshold] {
		if g.IsLand(c) {
			g.T[c] = core.LandCoast
		}
	}
	for i, f := range g.F {
		if f == lake {
			g.F[i] = ocean
		}
	}
	g.Features[ocean].Cells += g.Features[lake].Cells
	g.Features[lake].Cells = 0
	g.Features[lake].Type = core.FeatureOcean
}
