package climate

import (
	"math"

	"landmass/internal/core"
	pcore "landmass/pkg/core"
)

const (
	tropicNorth      = 16
	tropicSouth      = -20
	tropicalGradient = 0.15
	lapseRate        = 6.5 // degrees per km
)

// Temperatures sets the temperature of every grid cell from its row
// latitude, lowered on land by altitude.
func Temperatures(g *core.Grid, c core.Coordinates, s Settings) {
	northTropic := s.TempEquator - tropicNorth*tropicalGradient
	northGradient := (northTropic - s.TempNorthPole) / (90 - tropicNorth)
	southTropic := s.TempEquator + tropicSouth*tropicalGradient
	southGradient := (southTropic - s.TempSouthPole) / (90 + tropicSouth)

	seaLevel := func(lat float64) float64 {
		if lat <= tropicNorth && lat >= tropicSouth {
			return s.TempEquator - math.Abs(lat)*tropicalGradient
		}
		if lat > 0 {
			return northTropic - (lat-tropicNorth)*northGradient
		}
		return southTropic + (lat-tropicSouth)*southGradient
	}

	if len(g.Temp) != g.CellCount() {
		g.Temp = make([]int8, g.CellCount())
	}
	for row := 0; row < g.CellCount(); row += g.CellsX {
		lat := c.LatN - g.Points[row].Y/float64(g.Height)*c.LatT
		base := seaLevel(lat)
		for i := row; i < row+g.CellsX && i < g.CellCount(); i++ {
			t := pcore.MinMax(base-altitudeDrop(g.H[i], s.HeightExponent), -128, 127)
			g.Temp[i] = int8(math.Trunc(t))
		}
	}
}

func altitudeDrop(h uint8, exponent float64) float64 {
	if h < core.LandHeight {
		return 0
	}
	height := math.Pow(float64(h)-18, exponent)
	return pcore.Round(height/1000*lapseRate, 0)
}
