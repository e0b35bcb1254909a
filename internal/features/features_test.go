package features

import (
	"math"
	"testing"

	"landmass/internal/core"
	"landmass/internal/grid"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

const (
	testWidth  = 400
	testHeight = 300
)

// islandGrid raises a disc in the middle of the map and sinks a smaller
// disc inside it, leaving an ocean, an island and an enclosed lake.
func islandGrid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := grid.Build(pcore.NewAlea("features"), testWidth, testHeight, 600)
	if err != nil {
		t.Fatalf("grid.Build: %v", err)
	}
	for i, p := range g.Points {
		d := math.Hypot(p.X-testWidth/2, p.Y-testHeight/2)
		switch {
		case d < 25:
			g.H[i] = 5
		case d < 90:
			g.H[i] = 50
		default:
			g.H[i] = 0
		}
	}
	return g
}

func countTypes(features []*core.Feature) map[core.FeatureType]int {
	out := map[core.FeatureType]int{}
	for _, f := range features[1:] {
		out[f.Type]++
	}
	return out
}

func TestMarkupGridPartition(t *testing.T) {
	g := islandGrid(t)
	MarkupGrid(g)

	if g.Features[0] != nil {
		t.Fatal("feature 0 must be unused")
	}
	sizes := make([]int, len(g.Features))
	for i, f := range g.F {
		if f < 1 || f >= len(g.Features) {
			t.Fatalf("cell %d has feature %d", i, f)
		}
		if g.Features[f].Land != g.IsLand(i) {
			t.Fatalf("cell %d land=%v in feature %d land=%v", i, g.IsLand(i), f, g.Features[f].Land)
		}
		sizes[f]++
	}
	for id, f := range g.Features[1:] {
		if f.Cells != sizes[id+1] {
			t.Fatalf("feature %d records %d cells, holds %d", f.ID, f.Cells, sizes[id+1])
		}
	}

	types := countTypes(g.Features)
	if types[core.FeatureOcean] != 1 || types[core.FeatureIsland] != 1 || types[core.FeatureLake] != 1 {
		t.Fatalf("feature types = %v, expected one ocean, island and lake", types)
	}
}

func TestMarkupGridCoastAndDistance(t *testing.T) {
	g := islandGrid(t)
	MarkupGrid(g)

	for i, nbs := range g.Cells.C {
		for _, nb := range nbs {
			if g.IsLand(i) && !g.IsLand(nb) {
				if g.T[i] != core.LandCoast || g.T[nb] != core.WaterCoast {
					t.Fatalf("coast pair %d/%d stamped %d/%d", i, nb, g.T[i], g.T[nb])
				}
			}
			if g.T[i] < 0 && g.T[nb] < 0 {
				if d := int(g.T[i]) - int(g.T[nb]); d > 1 || d < -1 {
					t.Fatalf("water distance jumps from %d to %d between %d and %d", g.T[i], g.T[nb], i, nb)
				}
			}
		}
		if g.T[i] < -9 {
			t.Fatalf("cell %d distance %d beyond the grid limit", i, g.T[i])
		}
	}
}

func TestMarkupDistanceStopsWhenNothingMarked(t *testing.T) {
	// path 0-1-2-3
	nbs := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	field := []int8{1, 0, 0, 0}
	Markup(field, nbs, 2, 1, 127)
	want := []int8{1, 2, 3, 4}
	for i := range want {
		if field[i] != want[i] {
			t.Fatalf("field = %v, expected %v", field, want)
		}
	}

	field = []int8{-1, 0, 0, 0}
	Markup(field, nbs, -2, -1, -3)
	if field[1] != -2 || field[2] != 0 {
		t.Fatalf("limited field = %v, expected [-1 -2 0 0]", field)
	}
}

func packFromGrid(g *core.Grid) *core.Pack {
	return &core.Pack{
		Points:   g.Points,
		Cells:    g.Cells,
		Vertices: g.Vertices,
		H:        g.H,
	}
}

func TestMarkupPackHavensAndDistance(t *testing.T) {
	p := packFromGrid(islandGrid(t))
	MarkupPack(p, testWidth, testHeight)

	for i := range p.Points {
		land := p.IsLand(i)
		if land && p.T[i] < 1 {
			t.Fatalf("land cell %d has distance %d", i, p.T[i])
		}
		if !land && p.T[i] > -1 {
			t.Fatalf("water cell %d has distance %d", i, p.T[i])
		}
		if p.T[i] != core.LandCoast {
			if p.Haven[i] != -1 || p.Harbor[i] != 0 {
				t.Fatalf("non-coastal cell %d has haven %d harbor %d", i, p.Haven[i], p.Harbor[i])
			}
			continue
		}
		h := p.Haven[i]
		if h < 0 || p.IsLand(h) {
			t.Fatalf("coastal cell %d has haven %d", i, h)
		}
		water := 0
		for _, nb := range p.Cells.C[i] {
			if !p.IsLand(nb) {
				water++
			}
		}
		if int(p.Harbor[i]) != water {
			t.Fatalf("cell %d harbor = %d, expected %d", i, p.Harbor[i], water)
		}
	}

	for i, nbs := range p.Cells.C {
		for _, nb := range nbs {
			if p.IsLand(i) == p.IsLand(nb) {
				if d := int(p.T[i]) - int(p.T[nb]); d > 1 || d < -1 {
					t.Fatalf("distance jumps from %d to %d between %d and %d", p.T[i], p.T[nb], i, nb)
				}
			}
		}
	}
}

func TestMarkupPackLakeGeometry(t *testing.T) {
	p := packFromGrid(islandGrid(t))
	MarkupPack(p, testWidth, testHeight)

	var lake, island *core.Feature
	for _, f := range p.Features[1:] {
		switch f.Type {
		case core.FeatureLake:
			lake = f
		case core.FeatureIsland:
			island = f
		}
	}
	if lake == nil || island == nil {
		t.Fatalf("features = %v, expected a lake and an island", countTypes(p.Features))
	}

	if len(lake.Shoreline) == 0 {
		t.Fatal("lake has no shoreline")
	}
	for _, c := range lake.Shoreline {
		if float64(p.H[c]) < lake.Height {
			t.Fatalf("lake height %v above shore cell %d at %d", lake.Height, c, p.H[c])
		}
	}
	if lake.Height != 49.99 {
		t.Fatalf("lake height = %v, expected 49.99", lake.Height)
	}
	if island.Area <= lake.Area || lake.Area <= 0 {
		t.Fatalf("island area %v, lake area %v", island.Area, lake.Area)
	}

	ring := lake.Vertices
	for i, v := range ring {
		next := ring[(i+1)%len(ring)]
		nbs := p.Vertices.V[v]
		if nbs[0] != next && nbs[1] != next && nbs[2] != next {
			t.Fatalf("ring vertices %d and %d are not adjacent", v, next)
		}
	}
}

func TestLakeHeightWithoutShore(t *testing.T) {
	p := &core.Pack{}
	if h := LakeHeight(p, &core.Feature{}); h != 19.99 {
		t.Fatalf("height = %v, expected 19.99", h)
	}
}

func TestClipPolygon(t *testing.T) {
	square := []mesh.Point{{X: -10, Y: -10}, {X: 20, Y: -10}, {X: 20, Y: 20}, {X: -10, Y: 20}}
	clipped := ClipPolygon(square, 10, 10)
	if a := math.Abs(mesh.PolygonArea(clipped)); a != 100 {
		t.Fatalf("clipped area = %v, expected 100", a)
	}

	inside := []mesh.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 3, Y: 4}}
	if got := ClipPolygon(inside, 10, 10); len(got) != 3 {
		t.Fatalf("inner triangle clipped to %v", got)
	}

	outside := []mesh.Point{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 25, Y: 30}}
	if got := ClipPolygon(outside, 10, 10); len(got) != 0 {
		t.Fatalf("outer triangle clipped to %v", got)
	}
}
