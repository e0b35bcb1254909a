package render

import (
	"bytes"
	"image/color"
	"image/png"
	"slices"
	"testing"

	"landmass/internal/core"
	"landmass/internal/world"
)

func testMap(t *testing.T) *world.Map {
	t.Helper()
	o := world.DefaultOptions()
	o.Seed = "render"
	o.Width = 480
	o.Height = 270
	o.Points = 1000
	o.Template = "highIsland"
	m, err := world.Generate(o)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return m
}

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 9}, palette)
	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, expected %v", buf, want)
	}

	fillPaletteRGBA(buf, []uint8{0, 1, 1}, nil)
	if !slices.Equal(buf, make([]byte, 12)) {
		t.Fatalf("empty palette must clear the buffer, got %v", buf)
	}
}

func TestFillBinaryRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillBinaryRGBA(buf, []uint8{1, 0}, color.White, color.Transparent)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 0}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, expected %v", buf, want)
	}
}

func TestRampEndpoints(t *testing.T) {
	p := ramp(11, stop{2, color.RGBA{A: 255}}, stop{8, color.RGBA{R: 60, A: 255}})
	if p[0].R != 0 || p[2].R != 0 || p[10].R != 60 || p[8].R != 60 {
		t.Fatalf("ramp ends: %v", p)
	}
	if p[5].R != 30 {
		t.Fatalf("ramp midpoint R = %d, expected 30", p[5].R)
	}
}

func TestLayersRegistered(t *testing.T) {
	names := core.Layers()
	for _, want := range []string{"height", "features", "distance", "temperature", "precipitation", "flux"} {
		if !slices.Contains(names, want) {
			t.Fatalf("layer %q missing from %v", want, names)
		}
		if _, ok := LookupLayer(want); !ok {
			t.Fatalf("LookupLayer(%q) failed", want)
		}
	}
	if _, ok := LookupLayer("biomes"); ok {
		t.Fatal("unexpected biomes layer")
	}
}

func TestRasterPaint(t *testing.T) {
	m := testMap(t)
	r := NewRaster(m, 120, 68)
	if r.Cell(-1, 0) != -1 || r.Cell(120, 0) != -1 {
		t.Fatal("cells outside the raster must be -1")
	}
	for y := 0; y < r.H; y += 7 {
		for x := 0; x < r.W; x += 7 {
			if c := r.Cell(x, y); c < 0 || c >= m.Pack.CellCount() {
				t.Fatalf("pixel %d,%d maps to cell %d", x, y, c)
			}
		}
	}

	heights, layer, err := r.Paint(m, "height")
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			if got, want := heights.At(x, y), m.Pack.H[r.Cell(x, y)]; got != min(want, 100) {
				t.Fatalf("pixel %d,%d height %d, expected %d", x, y, got, want)
			}
		}
	}
	img := PaletteImage(heights, layer.Palette)
	if got := img.RGBAAt(0, 0); got != layer.Palette[heights.At(0, 0)] {
		t.Fatalf("pixel colour %v", got)
	}

	if _, _, err := r.Paint(m, "biomes"); err == nil {
		t.Fatal("expected unknown layer error")
	}
}

func TestRiverMaskMatchesRivers(t *testing.T) {
	m := testMap(t)
	r := NewRaster(m, 240, 135)
	mask := r.RiverMask(m)
	for i, v := range mask.Cells() {
		c := r.cells[i]
		if (v == 1) != (m.Pack.R[c] != 0 && m.Pack.IsLand(c)) {
			t.Fatalf("pixel %d mask %d for cell %d river %d", i, v, c, m.Pack.R[c])
		}
	}
	img := MaskImage(mask, riverWater, color.Transparent)
	if img.Bounds().Dx() != 240 {
		t.Fatalf("mask image width %d", img.Bounds().Dx())
	}
}

func TestPreviewPNG(t *testing.T) {
	m := testMap(t)
	opts := DefaultPreviewOptions()
	opts.Scale = 0.5
	img, err := Preview(m, opts)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 135 {
		t.Fatalf("preview bounds %v", b)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("decoded bounds %v", decoded.Bounds())
	}

	opts.Layer = "nope"
	if _, err := Preview(m, opts); err == nil {
		t.Fatal("expected unknown layer error")
	}
}
