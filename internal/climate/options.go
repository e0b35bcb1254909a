// Package climate places the map on the globe and derives grid temperature
// and precipitation from it.
package climate

import (
	pcore "landmass/pkg/core"
)

// DefaultWinds holds the prevailing wind bearing of each 30° latitude tier,
// north to south.
var DefaultWinds = [6]int{225, 45, 225, 315, 135, 315}

// Settings are the world knobs read by the climate stages.
type Settings struct {
	TempEquator    float64
	TempNorthPole  float64
	TempSouthPole  float64
	Precipitation  float64 // percent of the base amount
	HeightExponent float64
	Winds          [6]int
}

// DefaultSettings returns the climate used when nothing is randomised.
func DefaultSettings() Settings {
	return Settings{
		TempEquator:    27,
		TempNorthPole:  -15,
		TempSouthPole:  -25,
		Precipitation:  100,
		HeightExponent: 2,
		Winds:          DefaultWinds,
	}
}

// Extras are the randomised world options that no stage of the generator
// consumes. They are drawn so that the random stream matches a full
// generation run.
type Extras struct {
	States        int
	Provinces     int
	Religions     int
	SizeVariety   float64
	Growth        float64
	Cultures      int
	DistanceScale float64
}

// Randomize draws the world options in their fixed order and stores the
// climate knobs in s.
func Randomize(rng pcore.Source, s *Settings) Extras {
	var e Extras
	e.States = int(pcore.Gauss(rng, 18, 5, 2, 30, 0))
	e.Provinces = int(pcore.Gauss(rng, 20, 10, 20, 100, 0))
	e.Religions = int(pcore.Gauss(rng, 6, 3, 2, 10, 0))
	e.SizeVariety = pcore.Gauss(rng, 4, 2, 0, 10, 1)
	e.Growth = pcore.Round(1+rng.Float64(), 1)
	e.Cultures = int(pcore.Gauss(rng, 12, 3, 5, 30, 0))

	s.TempEquator = pcore.Gauss(rng, 25, 7, 20, 35, 0)
	s.TempNorthPole = pcore.Gauss(rng, -25, 7, -40, 10, 0)
	s.TempSouthPole = pcore.Gauss(rng, -15, 7, -40, 10, 0)
	s.Precipitation = pcore.Gauss(rng, 100, 40, 5, 500, 0)

	e.DistanceScale = pcore.Gauss(rng, 3, 1, 1, 5, 0)
	return e
}
