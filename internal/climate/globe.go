package climate

import (
	"math"

	"landmass/internal/core"
	pcore "landmass/pkg/core"
)

// MapSize places the map on the globe: Size is the share of the meridian
// the map spans and Latitude/Longitude shift it, all in percent.
type MapSize struct {
	Size      float64
	Latitude  float64
	Longitude float64
}

// DefineMapSize draws the map size and latitude for a template. Maps whose
// land stays off the border may cover the whole globe.
func DefineMapSize(rng pcore.Source, g *core.Grid, template string) MapSize {
	part := false
	for _, f := range g.Features {
		if f != nil && f.Land && f.Border {
			part = true
			break
		}
	}
	limit := 100.0
	if part {
		limit = 80
	}
	lat := func() float64 {
		base := 60.0
		if pcore.P(rng, 0.5) {
			base = 40
		}
		return pcore.Gauss(rng, base, 20, 25, 75, 0)
	}
	whole := MapSize{Size: 100, Latitude: 50, Longitude: 50}

	if !part {
		switch {
		case template == "pangea":
			return whole
		case template == "shattered" && pcore.P(rng, 0.7),
			template == "continents" && pcore.P(rng, 0.5),
			template == "archipelago" && pcore.P(rng, 0.35),
			template == "highIsland" && pcore.P(rng, 0.25),
			template == "lowIsland" && pcore.P(rng, 0.1):
			return whole
		}
	}

	var size float64
	switch template {
	case "pangea":
		size = pcore.Gauss(rng, 70, 20, 30, limit, 0)
	case "volcano":
		size = pcore.Gauss(rng, 20, 20, 10, limit, 0)
	case "mediterranean":
		size = pcore.Gauss(rng, 25, 30, 15, 80, 0)
	case "peninsula":
		size = pcore.Gauss(rng, 15, 15, 5, 80, 0)
	case "isthmus":
		size = pcore.Gauss(rng, 15, 20, 3, 80, 0)
	case "atoll":
		size = pcore.Gauss(rng, 3, 2, 1, 5, 1)
	default:
		size = pcore.Gauss(rng, 30, 20, 15, limit, 0)
	}
	return MapSize{Size: size, Latitude: lat(), Longitude: 50}
}

// MapCoordinates converts a map size into latitude and longitude spans.
func MapCoordinates(s MapSize, width, height float64) core.Coordinates {
	size, latShift, lonShift := s.Size/100, s.Latitude/100, s.Longitude/100
	latT := pcore.Round(size*180, 1)
	latN := pcore.Round(90-(180-latT)*latShift, 1)
	latS := pcore.Round(latN-latT, 1)
	lonT := pcore.Round(math.Min(width/height*latT, 360), 1)
	lonE := pcore.Round(180-(360-lonT)*lonShift, 1)
	lonW := pcore.Round(lonE-lonT, 1)
	return core.Coordinates{LatT: latT, LatN: latN, LatS: latS, LonT: lonT, LonW: lonW, LonE: lonE}
}
