package export

import (
	"encoding/json"
	"fmt"
	"io"

	"landmass/internal/climate"
	"landmass/internal/core"
	"landmass/internal/world"
)

// Summary is the JSON description of a generated map.
type Summary struct {
	Seed     string `json:"seed"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Points   int    `json:"points"`
	Template string `json:"template"`
	Recipe   string `json:"recipe,omitempty"`

	GridCells int `json:"gridCells"`
	PackCells int `json:"packCells"`

	MapSize     climate.MapSize  `json:"mapSize"`
	Coordinates core.Coordinates `json:"coordinates"`
	Climate     climate.Settings `json:"climate"`
	Extras      *climate.Extras  `json:"extras,omitempty"`

	Depressions int         `json:"depressions"`
	Downcut     int         `json:"downcut"`
	Stats       world.Stats `json:"stats"`

	Lakes  []LakeSummary  `json:"lakes"`
	Rivers []RiverSummary `json:"rivers"`
}

// LakeSummary describes one lake.
type LakeSummary struct {
	ID          int     `json:"id"`
	Cells       int     `json:"cells"`
	Height      float64 `json:"height"`
	Closed      bool    `json:"closed"`
	Flux        float64 `json:"flux"`
	Evaporation float64 `json:"evaporation"`
	Outlet      int     `json:"outlet"`
	Inlets      []int   `json:"inlets,omitempty"`
}

// RiverSummary describes one river.
type RiverSummary struct {
	ID        int     `json:"id"`
	Parent    int     `json:"parent"`
	Source    int     `json:"source"`
	Mouth     int     `json:"mouth"`
	Cells     int     `json:"cells"`
	Discharge float64 `json:"discharge"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
}

// Summarize collects the headline figures of m.
func Summarize(m *world.Map) Summary {
	s := Summary{
		Seed:        m.Options.Seed,
		Width:       m.Options.Width,
		Height:      m.Options.Height,
		Points:      m.Options.Points,
		Template:    m.Template.ID,
		Recipe:      m.Options.Recipe,
		GridCells:   m.Grid.CellCount(),
		PackCells:   m.Pack.CellCount(),
		MapSize:     m.Size,
		Coordinates: m.Coordinates,
		Climate:     m.Settings,
		Depressions: m.Depressions,
		Downcut:     m.Downcut,
		Stats:       m.Stats(),
		Lakes:       []LakeSummary{},
		Rivers:      []RiverSummary{},
	}
	if m.Options.Randomize {
		extras := m.Extras
		s.Extras = &extras
	}
	for _, f := range m.Pack.Features {
		if !f.IsLake() {
			continue
		}
		s.Lakes = append(s.Lakes, LakeSummary{
			ID:          f.ID,
			Cells:       f.Cells,
			Height:      f.Height,
			Closed:      f.Closed,
			Flux:        f.Flux,
			Evaporation: f.Evaporation,
			Outlet:      f.Outlet,
			Inlets:      f.Inlets,
		})
	}
	for _, r := range m.Pack.Rivers {
		s.Rivers = append(s.Rivers, RiverSummary{
			ID:        r.ID,
			Parent:    r.Parent,
			Source:    r.Source,
			Mouth:     r.Mouth,
			Cells:     len(r.Cells),
			Discharge: r.Discharge,
			Length:    r.Length,
			Width:     r.Width,
		})
	}
	return s
}

// WriteSummary encodes the summary of m as indented JSON.
func WriteSummary(w io.Writer, m *world.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Summarize(m)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
