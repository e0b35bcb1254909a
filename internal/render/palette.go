package render

import (
	"image/color"
	"math"

	"landmass/internal/core"
)

type stop struct {
	at  int
	col color.RGBA
}

// ramp interpolates colour stops into an n-entry palette. Entries before the
// first stop and after the last take the end colours.
func ramp(n int, stops ...stop) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		switch {
		case i <= stops[0].at:
			out[i] = stops[0].col
			continue
		case i >= stops[len(stops)-1].at:
			out[i] = stops[len(stops)-1].col
			continue
		}
		for k := 1; k < len(stops); k++ {
			a, b := stops[k-1], stops[k]
			if i > b.at {
				continue
			}
			t := float64(i-a.at) / float64(b.at-a.at)
			out[i] = color.RGBA{
				R: lerp(a.col.R, b.col.R, t),
				G: lerp(a.col.G, b.col.G, t),
				B: lerp(a.col.B, b.col.B, t),
				A: 255,
			}
			break
		}
	}
	return out
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

var (
	deepWater    = color.RGBA{R: 28, G: 58, B: 112, A: 255}
	shallowWater = color.RGBA{R: 94, G: 152, B: 204, A: 255}
	lakeWater    = color.RGBA{R: 120, G: 178, B: 222, A: 255}
	riverWater   = color.RGBA{R: 60, G: 110, B: 190, A: 255}
	coastline    = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

var heightPalette = ramp(101,
	stop{0, deepWater},
	stop{19, shallowWater},
	stop{20, color.RGBA{R: 62, G: 140, B: 72, A: 255}},
	stop{40, color.RGBA{R: 168, G: 190, B: 92, A: 255}},
	stop{60, color.RGBA{R: 186, G: 144, B: 82, A: 255}},
	stop{80, color.RGBA{R: 130, G: 100, B: 82, A: 255}},
	stop{100, color.RGBA{R: 250, G: 250, B: 250, A: 255}},
)

const (
	featureNone uint8 = iota
	featureOcean
	featureLake
	featureIsland
	featureCoast
)

var featurePalette = []color.RGBA{
	featureNone:   {A: 255},
	featureOcean:  deepWater,
	featureLake:   lakeWater,
	featureIsland: {R: 118, G: 164, B: 88, A: 255},
	featureCoast:  {R: 214, G: 196, B: 140, A: 255},
}

// distance codes are shifted by distanceShift so that deep water maps to 0
const distanceShift = 10

var distancePalette = ramp(41,
	stop{0, deepWater},
	stop{distanceShift - 1, shallowWater},
	stop{distanceShift, color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	stop{distanceShift + 1, color.RGBA{R: 240, G: 220, B: 150, A: 255}},
	stop{40, color.RGBA{R: 120, G: 50, B: 30, A: 255}},
)

// temperature indices are °C + 128
var temperaturePalette = ramp(256,
	stop{128 - 30, color.RGBA{R: 40, G: 40, B: 180, A: 255}},
	stop{128, color.RGBA{R: 220, G: 240, B: 255, A: 255}},
	stop{128 + 15, color.RGBA{R: 250, G: 230, B: 120, A: 255}},
	stop{128 + 30, color.RGBA{R: 200, G: 30, B: 30, A: 255}},
)

var precipitationPalette = ramp(256,
	stop{0, color.RGBA{R: 232, G: 214, B: 170, A: 255}},
	stop{64, color.RGBA{R: 120, G: 190, B: 120, A: 255}},
	stop{160, color.RGBA{R: 40, G: 120, B: 160, A: 255}},
	stop{255, color.RGBA{R: 20, G: 40, B: 120, A: 255}},
)

var fluxPalette = func() []color.RGBA {
	p := ramp(256,
		stop{1, color.RGBA{R: 236, G: 230, B: 210, A: 255}},
		stop{96, color.RGBA{R: 130, G: 180, B: 220, A: 255}},
		stop{255, color.RGBA{R: 10, G: 40, B: 140, A: 255}},
	)
	p[0] = deepWater
	return p
}()

// Layer couples a registered cell layer with its palette. Background is the
// colour of the deep ocean the pack leaves out.
type Layer struct {
	Name       string
	Index      core.LayerFunc
	Palette    []color.RGBA
	Background color.RGBA
}

var palettes = map[string]Layer{}

func register(name string, f core.LayerFunc, palette []color.RGBA, background color.RGBA) {
	core.RegisterLayer(name, f)
	palettes[name] = Layer{Name: name, Index: f, Palette: palette, Background: background}
}

// LookupLayer returns a registered layer with its palette.
func LookupLayer(name string) (Layer, bool) {
	f, ok := core.LookupLayer(name)
	if !ok {
		return Layer{}, false
	}
	l, ok := palettes[name]
	if !ok {
		return Layer{}, false
	}
	l.Index = f
	return l, true
}

func init() {
	register("height", heightIndex, heightPalette, heightPalette[0])
	register("features", featureIndex, featurePalette, featurePalette[featureOcean])
	register("distance", distanceIndex, distancePalette, distancePalette[0])
	register("temperature", temperatureIndex, temperaturePalette, deepWater)
	register("precipitation", precipitationIndex, precipitationPalette, deepWater)
	register("flux", fluxIndex, fluxPalette, fluxPalette[0])
}

func heightIndex(p *core.Pack, _ *core.Grid, i int) uint8 {
	return min(p.H[i], 100)
}

func featureIndex(p *core.Pack, _ *core.Grid, i int) uint8 {
	f := p.Features[p.F[i]]
	if f == nil {
		return featureNone
	}
	switch f.Type {
	case core.FeatureOcean:
		return featureOcean
	case core.FeatureLake:
		return featureLake
	case core.FeatureIsland:
		if p.T[i] == core.LandCoast {
			return featureCoast
		}
		return featureIsland
	}
	return featureNone
}

func distanceIndex(p *core.Pack, _ *core.Grid, i int) uint8 {
	t := min(max(int(p.T[i]), -distanceShift), 40-distanceShift)
	return uint8(t + distanceShift)
}

func temperatureIndex(p *core.Pack, g *core.Grid, i int) uint8 {
	return uint8(int(g.Temp[p.G[i]]) + 128)
}

func precipitationIndex(p *core.Pack, g *core.Grid, i int) uint8 {
	return uint8(min(int(g.Prec[p.G[i]])*4, 255))
}

// fluxIndex maps land flux onto 1-255 on a log scale; water is 0.
func fluxIndex(p *core.Pack, _ *core.Grid, i int) uint8 {
	if p.H[i] < core.LandHeight || p.Fl == nil {
		return 0
	}
	v := 1 + 24*math.Log2(1+float64(p.Fl[i]))
	return uint8(min(v, 255))
}
