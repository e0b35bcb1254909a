package rivers

import (
	"cmp"
	"slices"

	"landmass/internal/core"
)

// AlterHeights returns pack heights nudged by coastal distance so that flat
// land drains away from the coast. Water and coast-less cells keep their
// height.
func AlterHeights(p *core.Pack) []float64 {
	h := make([]float64, p.CellCount())
	for i := range h {
		h[i] = float64(p.H[i])
		if p.H[i] < core.LandHeight || p.T[i] < 1 {
			continue
		}
		var sum float64
		for _, n := range p.Cells.C[i] {
			sum += float64(p.T[n])
		}
		mean := 0.0
		if len(p.Cells.C[i]) > 0 {
			mean = sum / float64(len(p.Cells.C[i]))
		}
		h[i] += float64(p.T[i])/100 + mean/10000
	}
	return h
}

// ResolveDepressions raises land cells and open lakes until every inland cell
// has a lower neighbour. It gives up after maxIterations passes, and when
// the depression count keeps growing it restores the altered heights. Lakes
// still flooding late in the run are closed instead. It returns the number
// of depressions left.
func ResolveDepressions(p *core.Pack, h []float64, maxIterations int) int {
	checkLakeMax := float64(maxIterations) * 0.85
	elevateLakeMax := float64(maxIterations) * 0.75

	height := func(i int) float64 {
		if f := p.Features[p.F[i]]; f.IsLake() && f.Height != 0 {
			return f.Height
		}
		return h[i]
	}

	var lakes []*core.Feature
	for _, f := range p.Features {
		if f.IsLake() {
			lakes = append(lakes, f)
		}
	}
	var land []int
	for i := range h {
		if h[i] >= core.LandHeight && p.Cells.B[i] == 0 {
			land = append(land, i)
		}
	}
	sortByHeight(land, h, false)

	var progress []int
	depressions := -1
	prev, hasPrev := 0, false
	for iteration := 0; depressions != 0 && iteration < maxIterations; iteration++ {
		if len(progress) > 5 && sum(progress) > 0 {
			copy(h, AlterHeights(p))
			depressions = progress[0]
			break
		}

		depressions = 0
		if float64(iteration) < checkLakeMax {
			for _, l := range lakes {
				if l.Closed || len(l.Shoreline) == 0 {
					continue
				}
				minHeight := shoreMin(l, h)
				if minHeight >= 100 || l.Height > minHeight {
					continue
				}
				if float64(iteration) > elevateLakeMax {
					for _, s := range l.Shoreline {
						h[s] = float64(p.H[s])
					}
					l.Height = shoreMin(l, h) - 1
					l.Closed = true
					continue
				}
				depressions++
				l.Height = minHeight + 0.2
			}
		}

		for _, i := range land {
			minHeight := 100.0
			for k, n := range p.Cells.C[i] {
				if nh := height(n); k == 0 || nh < minHeight {
					minHeight = nh
				}
			}
			if minHeight >= 100 || h[i] > minHeight {
				continue
			}
			depressions++
			h[i] = minHeight + 0.1
		}

		if hasPrev {
			progress = append(progress, depressions-prev)
		}
		prev, hasPrev = depressions, true
	}
	return max(depressions, 0)
}

func shoreMin(l *core.Feature, h []float64) float64 {
	m := h[l.Shoreline[0]]
	for _, s := range l.Shoreline[1:] {
		m = min(m, h[s])
	}
	return m
}

func sum(values []int) int {
	var s int
	for _, v := range values {
		s += v
	}
	return s
}

// sortByHeight orders cells by h, stable for equal heights.
func sortByHeight(cells []int, h []float64, descending bool) {
	slices.SortStableFunc(cells, func(a, b int) int {
		if descending {
			return cmp.Compare(h[b], h[a])
		}
		return cmp.Compare(h[a], h[b])
	})
}
