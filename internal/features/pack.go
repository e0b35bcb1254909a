package features

import (
	"math"
	"slices"

	"landmass/internal/core"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

// MarkupPack flood-fills the pack into features, traces the outline of
// every island and lake, computes havens and harbors, and grows the coastal
// distance field inland up to 127 and seaward down to -109.
func MarkupPack(p *core.Pack, width, height float64) {
	n := p.CellCount()
	if n == 0 {
		return
	}

	t := make([]int8, n)
	f := make([]int, n)
	haven := make([]int, n)
	harbor := make([]uint8, n)
	for i := range haven {
		haven[i] = -1
	}
	features := []*core.Feature{nil}

	for start := 0; start != -1; start = slices.Index(f, 0) {
		id := len(features)
		f[start] = id
		land := p.IsLand(start)
		border := p.Cells.B[start] == 1
		total := 1

		stack := []int{start}
		for len(stack) > 0 {
			cell := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if p.Cells.B[cell] == 1 {
				border = true
			}
			for _, nb := range p.Cells.C[cell] {
				nbLand := p.IsLand(nb)
				if land && !nbLand {
					t[cell] = core.LandCoast
					t[nb] = core.WaterCoast
					if haven[cell] == -1 {
						haven[cell], harbor[cell] = defineHaven(p, cell)
					}
				}
				if f[nb] == 0 && land == nbLand {
					stack = append(stack, nb)
					f[nb] = id
					total++
				}
			}
		}

		features = append(features, newPackFeature(p, f, id, start, land, border, total, width, height))
	}

	stampLandlocked(t, p.Cells.C)
	Markup(t, p.Cells.C, core.DeeperLand, 1, 127)
	Markup(t, p.Cells.C, core.DeepWater, -1, -110)

	p.T = t
	p.F = f
	p.Haven = haven
	p.Harbor = harbor
	p.Features = features
}

// stampLandlocked marks unmarked cells next to a land coast cell. It runs
// after every coast pair is known so no inland neighbour is missed.
func stampLandlocked(t []int8, neighbors [][]int) {
	for cell, nbs := range neighbors {
		if t[cell] != core.LandCoast {
			continue
		}
		for _, nb := range nbs {
			if t[nb] == core.Unmarked {
				t[nb] = core.Landlocked
			}
		}
	}
}

// defineHaven returns the closest water neighbour of cell and the number of
// water neighbours.
func defineHaven(p *core.Pack, cell int) (int, uint8) {
	best, count := -1, 0
	bestDist := math.Inf(1)
	for _, nb := range p.Cells.C[cell] {
		if p.IsLand(nb) {
			continue
		}
		count++
		d := dist2(p.Points[cell], p.Points[nb])
		if d < bestDist {
			best, bestDist = nb, d
		}
	}
	return best, uint8(count)
}

func newPackFeature(p *core.Pack, f []int, id, first int, land, border bool, total int, width, height float64) *core.Feature {
	feat := &core.Feature{
		ID:        id,
		Type:      classify(land, border),
		Land:      land,
		Border:    border,
		Cells:     total,
		FirstCell: first,
		OutCell:   -1,
	}
	if feat.Type == core.FeatureOcean {
		return feat
	}

	same := func(c int) bool { return c < len(f) && f[c] == id }
	start := onBorderCell(p, first, same)
	feat.FirstCell = start

	startVertex := -1
	for _, v := range p.Cells.V[start] {
		for _, c := range p.Vertices.C[v] {
			if !same(c) {
				startVertex = v
				break
			}
		}
		if startVertex != -1 {
			break
		}
	}
	if startVertex == -1 {
		return feat
	}

	feat.Vertices = ConnectVertices(p.Vertices, startVertex, same, nil, false)
	ring := make([]mesh.Point, len(feat.Vertices))
	for i, v := range feat.Vertices {
		ring[i] = p.Vertices.P[v]
	}
	area := mesh.PolygonArea(ClipPolygon(ring, width, height))
	feat.Area = math.Abs(pcore.Round(area, 0))

	if feat.Type == core.FeatureLake {
		if area > 0 {
			slices.Reverse(feat.Vertices)
		}
		feat.Shoreline = Shoreline(p, feat.Vertices)
		feat.Height = LakeHeight(p, feat)
	}
	return feat
}

// onBorderCell returns first when it touches the map edge or another
// feature, otherwise the lowest-index such cell of the same feature.
func onBorderCell(p *core.Pack, first int, same func(int) bool) int {
	onBorder := func(c int) bool {
		if p.Cells.B[c] == 1 {
			return true
		}
		for _, nb := range p.Cells.C[c] {
			if !same(nb) {
				return true
			}
		}
		return false
	}
	if onBorder(first) {
		return first
	}
	for c := range p.Points {
		if same(c) && onBorder(c) {
			return c
		}
	}
	return first
}

// Shoreline lists the distinct land cells touching a ring of vertices, in
// ring order.
func Shoreline(p *core.Pack, ring []int) []int {
	var out []int
	seen := map[int]bool{}
	for _, v := range ring {
		for _, c := range p.Vertices.C[v] {
			if c >= p.CellCount() || !p.IsLand(c) || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// LakeHeight places a lake surface just below its lowest shore cell. A lake
// without shore cells sits at the land threshold.
func LakeHeight(p *core.Pack, lake *core.Feature) float64 {
	lowest := math.Inf(1)
	for _, c := range lake.Shoreline {
		lowest = math.Min(lowest, float64(p.H[c]))
	}
	if math.IsInf(lowest, 1) || lowest == 0 {
		lowest = core.LandHeight
	}
	return pcore.Round(lowest-0.01, 2)
}

func dist2(a, b mesh.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
