package heightmap

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"landmass/internal/core"
	"landmass/internal/grid"
	"landmass/internal/mesh"
	pcore "landmass/pkg/core"
)

func newGrid(t *testing.T, seed string, points int) *core.Grid {
	t.Helper()
	g, err := grid.Build(pcore.NewAlea(seed), 1920, 1080, points)
	if err != nil {
		t.Fatalf("grid.Build: %v", err)
	}
	return g
}

func TestParseSkipsUnknownTools(t *testing.T) {
	prog := Parse("Hill 1 90-100 44-56 40-60;Bogus 1 2\n\n  smooth 3 0 0 0\r\nMultiply")
	if len(prog) != 3 {
		t.Fatalf("parsed %d instructions, expected 3: %+v", len(prog), prog)
	}
	if prog[0].Tool != ToolHill || prog[0].Height != "90-100" || prog[0].RangeY != "40-60" {
		t.Fatalf("hill parsed as %+v", prog[0])
	}
	if prog[1].Tool != ToolSmooth || prog[1].Value != 3 {
		t.Fatalf("smooth parsed as %+v", prog[1])
	}
	if prog[2].Tool != ToolMultiply || prog[2].Value != 1 || prog[2].Target != "all" {
		t.Fatalf("bare multiply should default to a no-op, got %+v", prog[2])
	}
}

func TestParseDefaults(t *testing.T) {
	prog := Parse("Strait 2\nInvert 0.5\nSmooth\nMask")
	if prog[0].Target != "vertical" {
		t.Fatalf("strait direction = %q", prog[0].Target)
	}
	if prog[1].Target != "both" {
		t.Fatalf("invert axes = %q", prog[1].Target)
	}
	if prog[2].Value != 2 || prog[3].Value != 1 {
		t.Fatalf("smooth/mask defaults = %v/%v", prog[2].Value, prog[3].Value)
	}
}

func TestInstructionStringRoundTrip(t *testing.T) {
	for _, tpl := range Templates() {
		prog := Parse(tpl.Recipe)
		var lines []string
		for _, ins := range prog {
			lines = append(lines, ins.String())
		}
		again := Parse(strings.Join(lines, "\n"))
		if !slices.Equal(prog, again) {
			t.Fatalf("%s: recipe did not survive formatting", tpl.ID)
		}
	}
}

func TestUnknownTierFails(t *testing.T) {
	g := newGrid(t, "tier", 1234)
	err := Generate(g, pcore.NewAlea("tier"), "Hill 1 50 50 50")
	if !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("err = %v, expected ErrUnknownTier", err)
	}
}

func TestSingleHillPeaksNearCentre(t *testing.T) {
	g := newGrid(t, "42", 2000)
	if err := Generate(g, pcore.NewAlea("42"), "Hill 1 90-100 44-56 40-60"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	peak := 0
	for i, h := range g.H {
		if h > g.H[peak] {
			peak = i
		}
	}
	if g.H[peak] < 90 || g.H[peak] > 100 {
		t.Fatalf("peak height = %d, expected 90-100", g.H[peak])
	}
	p := g.Points[peak]
	if p.X < 0.44*1920-g.Spacing || p.X > 0.56*1920+g.Spacing {
		t.Fatalf("peak x = %v outside 44-56%%", p.X)
	}
	if p.Y < 0.40*1080-g.Spacing || p.Y > 0.60*1080+g.Spacing {
		t.Fatalf("peak y = %v outside 40-60%%", p.Y)
	}
	land := 0
	for _, h := range g.H {
		if h >= core.LandHeight {
			land++
		}
	}
	if land < 10 {
		t.Fatalf("hill raised only %d land cells", land)
	}
}

// latticeGrid builds a grid of square cells with four neighbours each,
// listed up, left, right, down.
func latticeGrid(cols, rows int, spacing float64, desired int) *core.Grid {
	n := cols * rows
	g := &core.Grid{
		Width:        int(float64(cols) * spacing),
		Height:       int(float64(rows) * spacing),
		Spacing:      spacing,
		CellsDesired: desired,
		CellsX:       cols,
		CellsY:       rows,
		Points:       make([]mesh.Point, n),
		Cells:        mesh.Cells{C: make([][]int, n)},
		H:            make([]uint8, n),
	}
	for i := 0; i < n; i++ {
		x, y := i%cols, i/cols
		g.Points[i] = mesh.Point{X: (float64(x) + 0.5) * spacing, Y: (float64(y) + 0.5) * spacing}
		var nb []int
		if y > 0 {
			nb = append(nb, i-cols)
		}
		if x > 0 {
			nb = append(nb, i-1)
		}
		if x < cols-1 {
			nb = append(nb, i+1)
		}
		if y < rows-1 {
			nb = append(nb, i+cols)
		}
		g.Cells.C[i] = nb
	}
	return g
}

func TestHillSpreadOnLattice(t *testing.T) {
	g := latticeGrid(7, 5, 10, 2000)
	if err := Generate(g, pcore.NewAlea("42"), "Hill 1 90-100 44-56 40-60"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// a 97 high hill never fits under 90, so the last of 50 placements wins
	want := []uint8{
		27, 34, 46, 62, 54, 46, 37,
		35, 46, 63, 76, 58, 46, 36,
		45, 58, 78, 97, 71, 53, 40,
		35, 46, 60, 72, 59, 45, 34,
		26, 34, 49, 59, 51, 39, 30,
	}
	if !slices.Equal(g.H, want) {
		for y := 0; y < g.CellsY; y++ {
			t.Logf("%v", g.H[y*g.CellsX:(y+1)*g.CellsX])
		}
		t.Fatal("hill heights changed")
	}
}

// ringDistances returns each cell's graph distance from the nearest cell of
// from, or -1 when unreachable.
func ringDistances(g *core.Grid, from []int) []int {
	dist := make([]int, len(g.H))
	for i := range dist {
		dist[i] = -1
	}
	queue := append([]int(nil), from...)
	for _, c := range from {
		dist[c] = 0
	}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, c := range g.Cells.C[q] {
			if dist[c] == -1 {
				dist[c] = dist[q] + 1
				queue = append(queue, c)
			}
		}
	}
	return dist
}

func ringMeans(g *core.Grid, dist []int, rings int) []float64 {
	sums := make([]float64, rings)
	counts := make([]int, rings)
	for i, d := range dist {
		if d >= 0 && d < rings {
			sums[d] += float64(g.H[i])
			counts[d]++
		}
	}
	for d := range sums {
		if counts[d] > 0 {
			sums[d] /= float64(counts[d])
		}
	}
	return sums
}

func TestRangeRaisesPathAndDecays(t *testing.T) {
	g := newGrid(t, "range", 2000)
	in, err := NewInterpreter(g, pcore.NewAlea("range"))
	if err != nil {
		t.Fatal(err)
	}
	path := in.ridge("40", "15-25", "40-60", rangeShape)
	if len(path) < 2 {
		t.Fatalf("range path has %d cells", len(path))
	}
	for _, c := range path {
		if g.H[c] == 0 {
			t.Fatalf("path cell %d not raised", c)
		}
	}

	dist := ringDistances(g, path)
	means := ringMeans(g, dist, 3)
	if !(means[0] > means[1] && means[1] > means[2] && means[2] > 0) {
		t.Fatalf("ring means %v do not decay away from the path", means)
	}
	// 40 decays below 2 after four rings at this tier
	for i, d := range dist {
		if d > 4 && g.H[i] != 0 {
			t.Fatalf("cell %d at ring %d raised to %d", i, d, g.H[i])
		}
	}
}

func TestTroughLowersPath(t *testing.T) {
	g := newGrid(t, "trough", 2000)
	for i := range g.H {
		g.H[i] = 60
	}
	in, err := NewInterpreter(g, pcore.NewAlea("trough"))
	if err != nil {
		t.Fatal(err)
	}
	path := in.ridge("40", "15-25", "40-60", troughShape)
	if len(path) < 2 {
		t.Fatalf("trough path has %d cells", len(path))
	}
	for _, c := range path {
		if g.H[c] >= 60 {
			t.Fatalf("path cell %d not lowered: %d", c, g.H[c])
		}
	}

	dist := ringDistances(g, path)
	means := ringMeans(g, dist, 3)
	if !(means[0] < means[1] && means[1] < means[2] && means[2] < 60) {
		t.Fatalf("ring means %v do not recover away from the path", means)
	}
	for i, d := range dist {
		if d > 4 && g.H[i] != 60 {
			t.Fatalf("cell %d at ring %d changed to %d", i, d, g.H[i])
		}
	}
}

func TestStraitCrossesMap(t *testing.T) {
	for _, direction := range []string{"vertical", "horizontal"} {
		g := newGrid(t, "strait", 2000)
		for i := range g.H {
			g.H[i] = 50
		}
		in, err := NewInterpreter(g, pcore.NewAlea("strait"))
		if err != nil {
			t.Fatal(err)
		}
		in.Run(Parse("Strait 2 " + direction))

		lanes, across := g.CellsY, g.CellsX
		if direction == "horizontal" {
			lanes, across = g.CellsX, g.CellsY
		}
		for lane := 0; lane < lanes; lane++ {
			lowered := 0
			for k := 0; k < across; k++ {
				i := lane*g.CellsX + k
				if direction == "horizontal" {
					i = k*g.CellsX + lane
				}
				switch h := g.H[i]; {
				case h < 50:
					lowered++
				case h > 50:
					t.Fatalf("%s: cell %d raised to %d", direction, i, h)
				}
			}
			if lowered == 0 {
				t.Fatalf("%s strait leaves lane %d untouched", direction, lane)
			}
			if lowered > across/2 {
				t.Fatalf("%s strait lowered %d of %d cells in lane %d", direction, lowered, across, lane)
			}
		}
	}
}

func TestInvertXMirrorsColumns(t *testing.T) {
	g := newGrid(t, "invert", 1000)
	rng := pcore.NewAlea("invert")
	if err := Generate(g, rng, "Hill 3 40-60 10-30 10-90\nPit 2 20 60-80 20-80"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	before := append([]uint8(nil), g.H...)

	in, err := NewInterpreter(g, rng)
	if err != nil {
		t.Fatal(err)
	}
	in.Run(Parse("Invert 1 x"))
	for i, h := range g.H {
		x, y := i%g.CellsX, i/g.CellsX
		if want := before[y*g.CellsX+(g.CellsX-1-x)]; h != want {
			t.Fatalf("cell (%d,%d) = %d, expected %d", x, y, h, want)
		}
	}
}

func TestAddMultiplyArithmetic(t *testing.T) {
	g := newGrid(t, "modify", 1000)
	in, err := NewInterpreter(g, pcore.NewAlea("modify"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.H {
		g.H[i] = uint8(i % 101)
	}
	orig := append([]uint8(nil), g.H...)

	in.Run(Parse("Add 50 all\nMultiply 0.5 0-20"))
	for i, h := range g.H {
		want := min(int(orig[i])+50, 100)
		if int(h) != want {
			t.Fatalf("cell %d: %d -> %d, expected %d", i, orig[i], h, want)
		}
	}

	// land-relative scaling pivots on the land threshold
	for i := range g.H {
		g.H[i] = 60
	}
	g.H[0] = 10
	in.Run(Parse("Multiply 0.5 land"))
	if g.H[1] != 40 {
		t.Fatalf("land multiply: 60 -> %d, expected 40", g.H[1])
	}
	if g.H[0] != 10 {
		t.Fatalf("water cell changed by land multiply: %d", g.H[0])
	}

	in.Run(Parse("Add -30 land"))
	if g.H[1] != core.LandHeight {
		t.Fatalf("land add should not sink below land: got %d", g.H[1])
	}

	in.Run(Parse("Add 5 water"))
	if g.H[0] != 15 {
		t.Fatalf("water add: 10 -> %d, expected 15", g.H[0])
	}
}

func TestSmoothBlendsTowardsMean(t *testing.T) {
	g := newGrid(t, "smooth", 1000)
	in, err := NewInterpreter(g, pcore.NewAlea("smooth"))
	if err != nil {
		t.Fatal(err)
	}
	centre := g.CellsY/2*g.CellsX + g.CellsX/2
	g.H[centre] = 100
	in.Run(Parse("Smooth 1"))
	if g.H[centre] >= 100 || g.H[centre] == 0 {
		t.Fatalf("centre after smoothing = %d", g.H[centre])
	}
	for _, c := range g.Cells.C[centre] {
		if g.H[c] == 0 {
			t.Fatalf("neighbour %d untouched by smoothing", c)
		}
	}
}

func TestMaskFadesEdges(t *testing.T) {
	g := newGrid(t, "mask", 1000)
	in, err := NewInterpreter(g, pcore.NewAlea("mask"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.H {
		g.H[i] = 80
	}
	in.Run(Parse("Mask 1"))
	centre := g.CellsY/2*g.CellsX + g.CellsX/2
	if g.H[0] >= g.H[centre] {
		t.Fatalf("corner %d not lower than centre %d", g.H[0], g.H[centre])
	}
}

func TestTemplatesStayInBounds(t *testing.T) {
	for _, tpl := range Templates() {
		g := newGrid(t, "bounds", 1000)
		if err := Generate(g, pcore.NewAlea("bounds"), tpl.Recipe); err != nil {
			t.Fatalf("%s: %v", tpl.ID, err)
		}
		for i, h := range g.H {
			if h > 100 {
				t.Fatalf("%s: cell %d height %d", tpl.ID, i, h)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tpl, err := Lookup("continents")
	if err != nil {
		t.Fatal(err)
	}
	a := newGrid(t, "same", 2000)
	b := newGrid(t, "same", 2000)
	if err := Generate(a, pcore.NewAlea("same"), tpl.Recipe); err != nil {
		t.Fatal(err)
	}
	if err := Generate(b, pcore.NewAlea("same"), tpl.Recipe); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.H, b.H) {
		t.Fatal("heights differ for the same seed")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"continents", "High Island", "high_island", "ARCHIPELAGO"} {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
	}
	_, err := Lookup("continets")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v, expected ErrUnknownTemplate", err)
	}
	if !strings.Contains(err.Error(), `"continents"`) {
		t.Fatalf("error %q lacks a suggestion", err)
	}
	if _, err := Lookup("zzzzzzzzzzzz"); err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("unexpected suggestion for garbage: %v", err)
	}
}

func TestRandomSkipsZeroWeight(t *testing.T) {
	rng := pcore.NewAlea("pick")
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[Random(rng).ID] = true
	}
	if seen["test"] {
		t.Fatal("zero-weight template was picked")
	}
	if !seen["highIsland"] || !seen["continents"] {
		t.Fatalf("common templates never picked: %v", seen)
	}
}

func TestPowers(t *testing.T) {
	for _, tier := range Tiers() {
		blob, line, err := Powers(tier)
		if err != nil || blob <= 0 || line <= 0 || blob >= 1 || line >= 1 {
			t.Fatalf("Powers(%d) = %v, %v, %v", tier, blob, line, err)
		}
	}
}
