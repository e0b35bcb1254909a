package lakes

import (
	"math"
	"slices"

	"landmass/internal/core"
	pcore "landmass/pkg/core"
)

// sortShoreline orders a lake shoreline from the lowest cell up. Equal
// heights keep their ring order.
func sortShoreline(lake *core.Feature, h []float64) {
	slices.SortStableFunc(lake.Shoreline, func(a, b int) int {
		switch {
		case h[a] < h[b]:
			return -1
		case h[a] > h[b]:
			return 1
		}
		return 0
	})
}

// DetectClosed marks lakes that cannot drain. A lake is closed when no ocean
// or lower lake is reachable from its lowest shore cell without climbing to
// limit above the lake surface.
func DetectClosed(p *core.Pack, h []float64, limit float64) {
	for _, lake := range p.Features {
		if !lake.IsLake() {
			continue
		}
		lake.Closed = false
		maxElevation := lake.Height + limit
		if maxElevation > 99 || len(lake.Shoreline) == 0 {
			continue
		}

		sortShoreline(lake, h)
		start := lake.Shoreline[0]
		checked := map[int]bool{start: true}
		queue := []int{start}
		deep := true
		for deep && len(queue) > 0 {
			cell := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, n := range p.Cells.C[cell] {
				if checked[n] || h[n] >= maxElevation {
					continue
				}
				if h[n] < core.LandHeight {
					other := p.Features[p.F[n]]
					if other.Type == core.FeatureOcean || lake.Height > other.Height {
						deep = false
						break
					}
				}
				checked[n] = true
				queue = append(queue, n)
			}
		}
		lake.Closed = deep
	}
}

// DefineClimate computes the inflow, temperature and evaporation of every
// lake and picks the outlet cell of each open lake. It returns a map from
// outlet cell to lake id.
func DefineClimate(p *core.Pack, g *core.Grid, h []float64, heightExponent float64) map[int]int {
	out := map[int]int{}
	for _, lake := range p.Features {
		if !lake.IsLake() {
			continue
		}
		lake.Flux = 0
		for _, c := range lake.Shoreline {
			lake.Flux += float64(g.Prec[p.G[c]])
		}
		lake.Temp = lakeTemp(p, g, lake)
		lake.Evaporation = evaporation(lake, heightExponent)

		if lake.Closed || len(lake.Shoreline) == 0 {
			continue
		}
		sortShoreline(lake, h)
		lake.OutCell = lake.Shoreline[0]
		out[lake.OutCell] = lake.ID
	}
	return out
}

func lakeTemp(p *core.Pack, g *core.Grid, lake *core.Feature) float64 {
	if lake.Cells < 6 || len(lake.Shoreline) == 0 {
		return float64(g.Temp[p.G[lake.FirstCell]])
	}
	temps := make([]float64, len(lake.Shoreline))
	for i, c := range lake.Shoreline {
		temps[i] = float64(g.Temp[p.G[c]])
	}
	return pcore.Round(pcore.Mean(temps), 1)
}

func evaporation(lake *core.Feature, heightExponent float64) float64 {
	height := math.Pow(math.Max(0, lake.Height-18), heightExponent)
	e := (700*(lake.Temp+0.006*height)/50 + 75) / (80 - lake.Temp)
	return pcore.Round(e*float64(lake.Cells), 0)
}

// Cleanup rounds lake heights and drops inlet and outlet references to
// rivers that no longer exist.
func Cleanup(p *core.Pack) {
	ids := map[int]bool{}
	for _, r := range p.Rivers {
		ids[r.ID] = true
	}
	for _, lake := range p.Features {
		if !lake.IsLake() {
			continue
		}
		lake.Height = pcore.Round(lake.Height, 3)
		lake.Inlets = slices.DeleteFunc(lake.Inlets, func(r int) bool { return !ids[r] })
		if len(lake.Inlets) == 0 {
			lake.Inlets = nil
		}
		if !ids[lake.Outlet] {
			lake.Outlet = 0
		}
		lake.River = 0
		lake.EnteringFlux = 0
	}
}
