package rivers

import (
	"math"
	"slices"
	"testing"

	"landmass/internal/core"
	"landmass/internal/mesh"
)

// graphPack builds a pack over an explicit graph. Cell 0 is a bordering
// ocean cell and every other cell is land on a single island. Cell 1 is the
// coast and pours into cell 0.
func graphPack(heights []uint8, neighbors [][]int, prec uint8) (*core.Pack, *core.Grid) {
	n := len(heights)
	p := &core.Pack{
		Points:   make([]mesh.Point, n),
		Cells:    mesh.Cells{C: neighbors, B: make([]uint8, n)},
		G:        make([]int, n),
		H:        heights,
		F:        make([]int, n),
		T:        make([]int8, n),
		Haven:    make([]int, n),
		Features: []*core.Feature{nil, {ID: 1, Type: core.FeatureOcean, Border: true}, {ID: 2, Type: core.FeatureIsland, Land: true}},
	}
	g := &core.Grid{Prec: make([]uint8, n), Temp: make([]int8, n)}
	for i := range heights {
		p.Points[i] = mesh.Point{X: float64(50 + 40*i), Y: float64(50 + 7*i)}
		p.G[i] = i
		p.F[i] = 2
		p.T[i] = 2
		p.Haven[i] = -1
		g.Prec[i] = prec
	}
	p.Cells.B[0] = 1
	p.F[0] = 1
	p.T[0] = core.WaterCoast
	p.T[1] = core.LandCoast
	p.Haven[1] = 0
	return p, g
}

func testOptions() Options {
	return Options{
		Width:           600,
		Height:          200,
		CellsDesired:    10000,
		DepressionSteps: 250,
		LakeLimit:       20,
		HeightExponent:  2,
	}
}

func linePack(prec uint8) (*core.Pack, *core.Grid) {
	return graphPack(
		[]uint8{0, 25, 30, 35, 40, 45},
		[][]int{{1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4}},
		prec,
	)
}

func TestGenerateSingleRiver(t *testing.T) {
	p, g := linePack(50)
	res := Generate(p, g, testOptions())
	if res.Rivers != 1 || len(p.Rivers) != 1 {
		t.Fatalf("rivers = %d, expected 1", res.Rivers)
	}
	r := p.Rivers[0]
	if !slices.Equal(r.Cells, []int{5, 4, 3, 2, 1, 0}) {
		t.Fatalf("river cells = %v", r.Cells)
	}
	if r.Source != 5 || r.Mouth != 1 || r.Discharge != 250 {
		t.Fatalf("source %d mouth %d discharge %v", r.Source, r.Mouth, r.Discharge)
	}
	if !slices.Equal(p.Fl, []uint16{0, 250, 200, 150, 100, 50}) {
		t.Fatalf("flux = %v", p.Fl)
	}
	for i := 1; i < 6; i++ {
		if p.R[i] != r.ID {
			t.Fatalf("cell %d river %d, expected %d", i, p.R[i], r.ID)
		}
	}
	if r.WidthFactor != 1.2 || r.Length <= 0 || r.Width <= 0 {
		t.Fatalf("width factor %v length %v width %v", r.WidthFactor, r.Length, r.Width)
	}
}

func TestGenerateWeakFluxMerges(t *testing.T) {
	p, g := linePack(10)
	Generate(p, g, testOptions())
	if len(p.Rivers) != 1 {
		t.Fatalf("rivers = %d, expected 1", len(p.Rivers))
	}
	if r := p.Rivers[0]; !slices.Equal(r.Cells, []int{3, 2, 1, 0}) {
		t.Fatalf("river cells = %v, expected to rise where flux reaches %d", r.Cells, MinFlux)
	}
	if p.R[4] != 0 || p.R[5] != 0 {
		t.Fatalf("headwater cells carry rivers %d and %d", p.R[4], p.R[5])
	}
}

func TestGenerateConfluence(t *testing.T) {
	// 4 -> 2 -> 1 and 5 -> 3 -> 1 -> 0
	p, g := graphPack(
		[]uint8{0, 25, 30, 32, 35, 33},
		[][]int{{1}, {0, 2, 3}, {1, 4}, {1, 5}, {2}, {3}},
		40,
	)
	Generate(p, g, testOptions())
	if len(p.Rivers) != 2 {
		t.Fatalf("rivers = %d, expected 2", len(p.Rivers))
	}

	var main, tributary *core.River
	for _, r := range p.Rivers {
		if r.Source == 5 {
			main = r
		} else {
			tributary = r
		}
	}
	if main == nil || tributary == nil {
		t.Fatalf("unexpected rivers %+v", p.Rivers)
	}
	if !slices.Equal(main.Cells, []int{5, 3, 1, 0}) || !slices.Equal(tributary.Cells, []int{4, 2, 1}) {
		t.Fatalf("main %v tributary %v", main.Cells, tributary.Cells)
	}
	if tributary.Parent != main.ID || main.Parent != 0 {
		t.Fatalf("parents: tributary %d main %d", tributary.Parent, main.Parent)
	}
	if main.Discharge != 200 || tributary.Discharge != 80 {
		t.Fatalf("discharge main %v tributary %v", main.Discharge, tributary.Discharge)
	}
	if p.Conf[1] != 80 {
		t.Fatalf("confluence flux = %d, expected 80", p.Conf[1])
	}
	if main.WidthFactor <= tributary.WidthFactor {
		t.Fatalf("main stem factor %v not above tributary %v", main.WidthFactor, tributary.WidthFactor)
	}
}

func TestResolveDepressions(t *testing.T) {
	p, _ := graphPack(
		[]uint8{0, 30, 25, 40},
		[][]int{{1}, {0, 2}, {1, 3}, {2}},
		0,
	)
	h := []float64{0, 30, 25, 40}
	if left := ResolveDepressions(p, h, 250); left != 0 {
		t.Fatalf("unresolved depressions = %d", left)
	}
	if math.Abs(h[2]-30.1) > 1e-9 {
		t.Fatalf("pit raised to %v, expected 30.1", h[2])
	}
	if h[1] != 30 || h[3] != 40 {
		t.Fatalf("other heights changed: %v", h)
	}
}

func TestAlterHeights(t *testing.T) {
	p, _ := linePack(0)
	h := AlterHeights(p)
	if h[0] != 0 {
		t.Fatalf("water height altered to %v", h[0])
	}
	// cell 2: t=2, neighbour mean (1+2)/2
	if want := 30 + 0.02 + 1.5/10000; math.Abs(h[2]-want) > 1e-12 {
		t.Fatalf("altered height = %v, expected %v", h[2], want)
	}
}

func TestDowncut(t *testing.T) {
	p := &core.Pack{
		Cells: mesh.Cells{C: [][]int{{1}, {0}}},
		H:     []uint8{50, 60},
		Fl:    []uint16{100, 10},
	}
	if n := Downcut(p); n != 1 {
		t.Fatalf("downcut %d cells", n)
	}
	if p.H[0] != 45 {
		t.Fatalf("height = %d, expected 45", p.H[0])
	}
}

func TestGeometry(t *testing.T) {
	if w := SourceWidth(0); w != 0 {
		t.Fatalf("source width = %v", w)
	}
	if o := Offset(100, 0, 1, 0.3); o != 0.3 {
		t.Fatalf("offset at the source = %v", o)
	}
	if Offset(100, 20, 1, 0) <= Offset(100, 5, 1, 0) {
		t.Fatal("offset does not grow downstream")
	}
	if l := Length([]core.RiverPoint{{X: 0, Y: 0}, {X: 3, Y: 4}}); l != 5 {
		t.Fatalf("length = %v", l)
	}

	cases := []struct{ in, want mesh.Point }{
		{mesh.Point{X: 50, Y: 3}, mesh.Point{X: 50, Y: 0}},
		{mesh.Point{X: 50, Y: 98}, mesh.Point{X: 50, Y: 100}},
		{mesh.Point{X: 2, Y: 50}, mesh.Point{X: 0, Y: 50}},
		{mesh.Point{X: 199, Y: 50}, mesh.Point{X: 200, Y: 50}},
	}
	for _, c := range cases {
		if got := BorderPoint(c.in, 200, 100); got != c.want {
			t.Fatalf("BorderPoint(%v) = %v, expected %v", c.in, got, c.want)
		}
	}
}

func TestMeander(t *testing.T) {
	p, _ := linePack(0)
	p.Fl = []uint16{0, 5, 4, 3, 2, 1}
	points := Meander(p, []int{5, 4, 3}, 600, 200)
	if len(points) <= 3 {
		t.Fatalf("meander added no control points: %v", points)
	}
	if points[0].X != p.Points[5].X || points[0].Flux != 1 {
		t.Fatalf("first point = %+v", points[0])
	}
	if last := points[len(points)-1]; last.X != p.Points[3].X || last.Flux != 3 {
		t.Fatalf("last point = %+v", last)
	}

	off := Meander(p, []int{1, -1}, 600, 200)
	if end := off[len(off)-1]; end.X != p.Points[1].X || end.Y != 0 {
		t.Fatalf("off-map end = %+v, expected the top edge", end)
	}
}

func TestMeanderControlPointsThinOut(t *testing.T) {
	const n = 30
	p := &core.Pack{Points: make([]mesh.Point, n), H: make([]uint8, n)}
	cells := make([]int, n)
	for i := range cells {
		p.Points[i] = mesh.Point{X: float64(20 + 40*i), Y: 100}
		p.H[i] = 30
		cells[i] = i
	}
	// a land source starts at step 10: ten segments get two control points,
	// the remaining nineteen get one
	points := Meander(p, cells, 1300, 200)
	if want := n + 10*2 + 19; len(points) != want {
		t.Fatalf("meander produced %d points, expected %d", len(points), want)
	}
}
