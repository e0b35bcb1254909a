package world

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"landmass/internal/core"
)

// Stats summarises a generated map.
type Stats struct {
	Cells     int
	LandCells int
	LandShare float64

	MeanHeight   float64
	HeightStdDev float64
	MedianLand   float64
	MaxHeight    float64

	Oceans  int
	Islands int
	Lakes   int

	Rivers         int
	MaxFlux        float64
	TotalDischarge float64
	LongestRiver   float64

	MeanPrecipitation float64
}

// Stats computes summary figures over the pack.
func (m *Map) Stats() Stats {
	p := m.Pack
	var s Stats
	s.Cells = p.CellCount()
	if s.Cells == 0 {
		return s
	}

	heights := make([]float64, s.Cells)
	var land []float64
	for i, h := range p.H {
		heights[i] = float64(h)
		if h >= core.LandHeight {
			land = append(land, float64(h))
		}
	}
	s.LandCells = len(land)
	s.LandShare = float64(s.LandCells) / float64(s.Cells)
	s.MeanHeight, s.HeightStdDev = stat.MeanStdDev(heights, nil)
	s.MaxHeight = floats.Max(heights)
	if len(land) > 0 {
		slices.Sort(land)
		s.MedianLand = stat.Quantile(0.5, stat.Empirical, land, nil)
	}

	for _, f := range p.Features {
		if f == nil {
			continue
		}
		switch f.Type {
		case core.FeatureOcean:
			s.Oceans++
		case core.FeatureIsland:
			s.Islands++
		case core.FeatureLake:
			s.Lakes++
		}
	}

	if len(p.Fl) > 0 {
		flux := make([]float64, len(p.Fl))
		for i, v := range p.Fl {
			flux[i] = float64(v)
		}
		s.MaxFlux = floats.Max(flux)
	}

	s.Rivers = len(p.Rivers)
	if s.Rivers > 0 {
		discharge := make([]float64, s.Rivers)
		length := make([]float64, s.Rivers)
		for i, r := range p.Rivers {
			discharge[i] = r.Discharge
			length[i] = r.Length
		}
		s.TotalDischarge = floats.Sum(discharge)
		s.LongestRiver = floats.Max(length)
	}

	if g := m.Grid; g != nil && len(g.Prec) > 0 {
		prec := make([]float64, len(g.Prec))
		for i, v := range g.Prec {
			prec[i] = float64(v)
		}
		s.MeanPrecipitation = stat.Mean(prec, nil)
	}
	return s
}
