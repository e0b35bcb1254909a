package app

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"landmass/internal/core"
	"landmass/internal/heightmap"
	_ "landmass/internal/render" // registers the map layers
	"landmass/internal/world"
)

// Session owns the generation options and the map currently on screen.
type Session struct {
	Options world.Options
	Map     *world.Map

	layers []string
	layer  int
}

// NewSession generates the first map. An unknown layer name falls back to
// the first registered layer.
func NewSession(opts world.Options, layer string) (*Session, error) {
	s := &Session{Options: opts, layers: core.Layers()}
	if len(s.layers) == 0 {
		return nil, fmt.Errorf("app: no map layers registered")
	}
	s.layer = max(slices.Index(s.layers, layer), 0)
	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Regenerate rebuilds the map from the current options. The previous map is
// kept when generation fails.
func (s *Session) Regenerate() error {
	m, err := world.Generate(s.Options)
	if err != nil {
		return err
	}
	s.Map = m
	return nil
}

// Reseed regenerates with a new seed.
func (s *Session) Reseed(seed string) error {
	s.Options.Seed = seed
	return s.Regenerate()
}

// NextTemplate switches to the template after the current one and
// regenerates. A raw recipe is dropped.
func (s *Session) NextTemplate() error {
	templates := heightmap.Templates()
	next := 0
	if s.Map != nil {
		for i, t := range templates {
			if t.ID == s.Map.Template.ID {
				next = (i + 1) % len(templates)
				break
			}
		}
	}
	s.Options.Recipe = ""
	s.Options.Template = templates[next].ID
	return s.Regenerate()
}

// Layer returns the active layer name.
func (s *Session) Layer() string { return s.layers[s.layer] }

// NextLayer activates the following layer and returns its name.
func (s *Session) NextLayer() string {
	s.layer = (s.layer + 1) % len(s.layers)
	return s.Layer()
}

// Snapshot exposes the options to the HUD.
func (s *Session) Snapshot() core.ParameterSnapshot { return s.Options.Snapshot() }

// ParameterControls lists the adjustable options.
func (s *Session) ParameterControls() []core.ParameterControl {
	return s.Options.ParameterControls()
}

// SetIntParameter forwards to the options.
func (s *Session) SetIntParameter(key string, value int) bool {
	return s.Options.SetIntParameter(key, value)
}

// SetFloatParameter forwards to the options.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	return s.Options.SetFloatParameter(key, value)
}

// NextSeed derives a nine digit seed from a clock reading.
func NextSeed(t time.Time) string {
	return strconv.FormatInt(1e8+t.UnixNano()%9e8, 10)
}
