package climate

import (
	"math"

	"landmass/internal/core"
	pcore "landmass/pkg/core"
)

// latitudeModifier scales precipitation per 5° latitude band.
var latitudeModifier = []float64{4, 2, 2, 2, 1, 1, 2, 2, 2, 2, 3, 3, 2, 2, 1, 1, 1, 0.5}

const maxPassableElevation = 85

type windSource struct {
	cell   int
	latMod float64
}

// Precipitation blows humid air across the grid along the prevailing winds
// and rains it out on land. Coastal rain draws from rng.
func Precipitation(g *core.Grid, rng pcore.Source, c core.Coordinates, s Settings) {
	n := g.CellCount()
	g.Prec = make([]uint8, n)
	if n == 0 || g.CellsX == 0 {
		return
	}

	modifier := math.Pow(float64(g.CellsDesired)/10000, 0.25) * s.Precipitation / 100
	w := &wind{g: g, rng: rng, modifier: modifier}

	var westerly, easterly []windSource
	northerly, southerly := 0, 0
	for row := 0; row < g.CellsY; row++ {
		lat := c.LatN - float64(row)/float64(g.CellsY)*c.LatT
		band := latitudeBand(lat)
		tier := min(int(math.Abs(lat-89)/30), len(s.Winds)-1)
		west, east, north, south := directions(s.Winds[tier])
		first := row * g.CellsX
		if west {
			westerly = append(westerly, windSource{first, latitudeModifier[band]})
		}
		if east {
			easterly = append(easterly, windSource{first + g.CellsX - 1, latitudeModifier[band]})
		}
		if north {
			northerly++
		}
		if south {
			southerly++
		}
	}

	if len(westerly) > 0 {
		w.pass(westerly, 120*modifier, 1, g.CellsX)
	}
	if len(easterly) > 0 {
		w.pass(easterly, 120*modifier, -1, g.CellsX)
	}

	vertical := float64(northerly + southerly)
	if northerly > 0 {
		maxPrec := float64(northerly) / vertical * 60 * modifier * verticalModifier(c, c.LatN)
		w.pass(rowSources(0, g.CellsX), maxPrec, g.CellsX, g.CellsY)
	}
	if southerly > 0 {
		maxPrec := float64(southerly) / vertical * 60 * modifier * verticalModifier(c, c.LatS)
		w.pass(rowSources(n-g.CellsX, g.CellsX), maxPrec, -g.CellsX, g.CellsY)
	}
}

func latitudeBand(lat float64) int {
	band := int((math.Abs(lat) - 1) / 5)
	return max(0, min(band, len(latitudeModifier)-1))
}

func verticalModifier(c core.Coordinates, edge float64) float64 {
	if c.LatT > 60 {
		return pcore.Mean(latitudeModifier)
	}
	return latitudeModifier[latitudeBand(edge)]
}

func directions(angle int) (west, east, north, south bool) {
	west = angle > 40 && angle < 140
	east = angle > 220 && angle < 320
	north = angle > 100 && angle < 260
	south = angle > 280 || angle < 80
	return
}

func rowSources(first, count int) []windSource {
	out := make([]windSource, count)
	for i := range out {
		out[i] = windSource{first + i, 1}
	}
	return out
}

type wind struct {
	g        *core.Grid
	rng      pcore.Source
	modifier float64
}

func (w *wind) height(i int) (float64, bool) {
	if i < 0 || i >= len(w.g.H) {
		return 0, false
	}
	return float64(w.g.H[i]), true
}

func (w *wind) pass(sources []windSource, base float64, next, steps int) {
	g := w.g
	for _, src := range sources {
		maxPrec := math.Min(base*src.latMod, 255)
		humidity := maxPrec - float64(g.H[src.cell])
		if humidity <= 0 {
			continue
		}
		for s, cur := 0, src.cell; s < steps; s, cur = s+1, cur+next {
			if cur < 0 || cur >= len(g.H) {
				break
			}
			if g.Temp[cur] < -5 {
				continue
			}
			nh, ok := w.height(cur + next)
			if !g.IsLand(cur) {
				if ok && nh >= core.LandHeight {
					coastal := math.Max(humidity/float64(pcore.Rand(w.rng, 10, 20)), 1)
					g.Prec[cur+next] = addPrec(g.Prec[cur+next], coastal)
				} else {
					humidity = math.Min(humidity+5*w.modifier, maxPrec)
					g.Prec[cur] = addPrec(g.Prec[cur], 5*w.modifier)
				}
				continue
			}

			passable := ok && nh <= maxPassableElevation
			rain := humidity
			if passable {
				rain = w.rainfall(humidity, float64(g.H[cur]), nh)
			}
			g.Prec[cur] = addPrec(g.Prec[cur], rain)
			evaporation := 0.0
			if rain > 1.5 {
				evaporation = 1
			}
			if passable {
				humidity = pcore.MinMax(humidity-rain+evaporation, 0, maxPrec)
			} else {
				humidity = 0
			}
		}
	}
}

// rainfall is the precipitation of a land cell of height h upwind of a cell
// of height nh. Climbing air loses more water.
func (w *wind) rainfall(humidity, h, nh float64) float64 {
	normal := math.Max(humidity/(10*w.modifier), 1)
	diff := math.Max(nh-h, 0)
	mod := math.Pow(nh/70, 2)
	return pcore.MinMax(normal+diff*mod, 1, humidity)
}

// addPrec adds v to a precipitation value, truncating the sum and
// saturating at 255.
func addPrec(p uint8, v float64) uint8 {
	return uint8(math.Min(math.Trunc(float64(p)+v), 255))
}
