package lakes

import (
	"slices"
	"testing"

	"landmass/internal/core"
	"landmass/internal/features"
	"landmass/internal/mesh"
)

// graphGrid builds a grid from an explicit neighbour list. Only cells listed
// in border touch the map edge.
func graphGrid(t *testing.T, heights []uint8, neighbors [][]int, border ...int) *core.Grid {
	t.Helper()
	g := &core.Grid{
		Points: make([]mesh.Point, len(heights)),
		Cells:  mesh.Cells{C: neighbors, B: make([]uint8, len(heights))},
		H:      heights,
	}
	for _, b := range border {
		g.Cells.B[b] = 1
	}
	features.MarkupGrid(g)
	return g
}

// pitGrid is a cell at 30 ringed by four cells at 50 that slope to a
// bordering ocean cell.
func pitGrid(t *testing.T) *core.Grid {
	return graphGrid(t,
		[]uint8{30, 50, 50, 50, 50, 0},
		[][]int{{1, 2, 3, 4}, {0, 5}, {0, 5}, {0, 5}, {0, 5}, {1, 2, 3, 4}},
		5,
	)
}

func TestAddInDeepDepressions(t *testing.T) {
	g := pitGrid(t)
	before := len(g.Features)
	if n := AddInDeepDepressions(g, 20); n != 1 {
		t.Fatalf("added %d lakes, expected 1", n)
	}
	lake := g.Features[len(g.Features)-1]
	if len(g.Features) != before+1 || !lake.IsLake() {
		t.Fatalf("features = %d, last %v", len(g.Features), lake)
	}
	if g.H[0] != core.LakeHeight || g.F[0] != lake.ID || g.T[0] != core.WaterCoast {
		t.Fatalf("pit cell h=%d f=%d t=%d", g.H[0], g.F[0], g.T[0])
	}
	for _, n := range g.Cells.C[0] {
		if g.T[n] != core.LandCoast {
			t.Fatalf("rim cell %d distance %d, expected coast", n, g.T[n])
		}
	}
}

func TestAddInDeepDepressionsReachesWater(t *testing.T) {
	g := pitGrid(t)
	if n := AddInDeepDepressions(g, 25); n != 0 {
		t.Fatalf("added %d lakes where the ocean is reachable", n)
	}
	if g.H[0] != 30 {
		t.Fatalf("pit height changed to %d", g.H[0])
	}
}

func TestAddInDeepDepressionsDisabled(t *testing.T) {
	g := pitGrid(t)
	if n := AddInDeepDepressions(g, DisabledLimit); n != 0 {
		t.Fatalf("added %d lakes with the limit disabled", n)
	}
}

// breachGrid is a path ocean-shore-lake-land-land.
func breachGrid(t *testing.T, shore uint8) *core.Grid {
	return graphGrid(t,
		[]uint8{0, shore, 5, 50, 50},
		[][]int{{1}, {0, 2}, {1, 3}, {2, 4}, {3}},
		0,
	)
}

func TestOpenNearSea(t *testing.T) {
	g := breachGrid(t, 21)
	lake := g.F[2]
	ocean := g.F[0]
	if !g.Features[lake].IsLake() || g.Features[ocean].Type != core.FeatureOcean {
		t.Fatalf("unexpected markup %v / %v", g.Features[lake].Type, g.Features[ocean].Type)
	}

	if n := OpenNearSea(g); n != 1 {
		t.Fatalf("opened %d lakes, expected 1", n)
	}
	if g.H[1] != core.LakeHeight || g.T[1] != core.WaterCoast {
		t.Fatalf("breach cell h=%d t=%d", g.H[1], g.T[1])
	}
	if g.F[1] != ocean || g.F[2] != ocean {
		t.Fatalf("features after breach = %v, expected ocean %d", g.F, ocean)
	}
	if g.Features[lake].Type != core.FeatureOcean {
		t.Fatalf("lake feature type = %v", g.Features[lake].Type)
	}
}

func TestOpenNearSeaHighShore(t *testing.T) {
	g := breachGrid(t, BreachLimit+1)
	if n := OpenNearSea(g); n != 0 {
		t.Fatalf("opened %d lakes over a high shore", n)
	}
}

// lakePack is a lake cell with two shore cells, the lower of which touches
// cell 3.
func lakePack(last float64) (*core.Pack, []float64) {
	lastType := core.FeatureOcean
	if last >= core.LandHeight {
		lastType = core.FeatureIsland
	}
	p := &core.Pack{
		Points: make([]mesh.Point, 4),
		Cells:  mesh.Cells{C: [][]int{{1, 2}, {0, 2}, {0, 1, 3}, {2}}},
		G:      []int{0, 1, 2, 3},
		F:      []int{1, 2, 2, 3},
		Features: []*core.Feature{
			nil,
			{ID: 1, Type: core.FeatureLake, Height: 24.99, Shoreline: []int{1, 2}, Cells: 1, FirstCell: 0, OutCell: -1},
			{ID: 2, Type: core.FeatureIsland, Land: true},
			{ID: 3, Type: lastType},
		},
	}
	return p, []float64{10, 30, 25, last}
}

func TestDetectClosed(t *testing.T) {
	p, h := lakePack(0)
	DetectClosed(p, h, 20)
	if p.Features[1].Closed {
		t.Fatal("lake next to the ocean marked closed")
	}
	if !slices.Equal(p.Features[1].Shoreline, []int{2, 1}) {
		t.Fatalf("shoreline = %v, expected lowest first", p.Features[1].Shoreline)
	}

	p, h = lakePack(60)
	DetectClosed(p, h, 20)
	if !p.Features[1].Closed {
		t.Fatal("walled lake not marked closed")
	}
}

func TestDefineClimate(t *testing.T) {
	p, h := lakePack(0)
	g := &core.Grid{
		Prec: []uint8{0, 10, 20, 0},
		Temp: []int8{5, 10, 12, 0},
	}
	outlets := DefineClimate(p, g, h, 2)

	lake := p.Features[1]
	if lake.Flux != 30 {
		t.Fatalf("flux = %v, expected 30", lake.Flux)
	}
	if lake.Temp != 5 {
		t.Fatalf("temp = %v, expected the first cell temperature 5", lake.Temp)
	}
	if lake.Evaporation != 2 {
		t.Fatalf("evaporation = %v, expected 2", lake.Evaporation)
	}
	if lake.OutCell != 2 || outlets[2] != 1 {
		t.Fatalf("out cell = %d, outlets = %v", lake.OutCell, outlets)
	}

	lake.Closed = true
	lake.OutCell = -1
	if outlets := DefineClimate(p, g, h, 2); len(outlets) != 0 || lake.OutCell != -1 {
		t.Fatalf("closed lake got outlets %v", outlets)
	}
}

func TestCleanup(t *testing.T) {
	p := &core.Pack{
		Features: []*core.Feature{
			nil,
			{ID: 1, Type: core.FeatureLake, Height: 24.98765, Inlets: []int{1, 2}, Outlet: 3, River: 3},
		},
		Rivers: []*core.River{{ID: 1}},
	}
	Cleanup(p)
	lake := p.Features[1]
	if lake.Height != 24.988 {
		t.Fatalf("height = %v, expected 24.988", lake.Height)
	}
	if !slices.Equal(lake.Inlets, []int{1}) || lake.Outlet != 0 {
		t.Fatalf("inlets %v outlet %d", lake.Inlets, lake.Outlet)
	}
}
