// Package world runs the generation pipeline: grid, heightmap, features,
// lakes, climate, re-graph and rivers, reseeding the random stream at fixed
// points so a seed always reproduces the same map.
package world

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"landmass/internal/climate"
	"landmass/internal/core"
	"landmass/internal/features"
	"landmass/internal/grid"
	"landmass/internal/heightmap"
	"landmass/internal/lakes"
	"landmass/internal/pack"
	"landmass/internal/rivers"
	pcore "landmass/pkg/core"
)

// Map is the generated world. Its arrays are read-only for callers.
type Map struct {
	Options  Options
	Template heightmap.Template
	Settings climate.Settings
	Extras   climate.Extras

	Size        climate.MapSize
	Coordinates core.Coordinates

	Grid  *core.Grid
	Pack  *core.Pack
	Index *pack.Index

	Depressions int
	Downcut     int
}

// FindCell returns the pack cell nearest to (x, y), or -1 for an empty pack.
func (m *Map) FindCell(x, y float64) int {
	return m.Index.Find(x, y, 0)
}

// FindGridCell returns the grid cell whose lattice square holds (x, y).
func (m *Map) FindGridCell(x, y float64) int {
	return grid.FindCell(m.Grid, x, y)
}

// Feature returns the feature of pack cell i.
func (m *Map) Feature(i int) *core.Feature {
	return m.Pack.Features[m.Pack.F[i]]
}

// Generate builds a map from opts.
func Generate(opts Options) (*Map, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("seed", opts.Seed)

	m := &Map{Options: opts, Settings: opts.Climate}
	rng := pcore.NewAlea(opts.Seed)

	start := time.Now()
	tmpl, err := pickTemplate(rng, opts)
	if err != nil {
		return nil, err
	}
	m.Template = tmpl
	if opts.Randomize {
		m.Extras = climate.Randomize(rng, &m.Settings)
	}
	log.Info("options", "template", tmpl.ID, "randomized", opts.Randomize, "duration", time.Since(start))

	start = time.Now()
	rng.Reset(opts.Seed)
	g, err := grid.Build(rng, opts.Width, opts.Height, opts.Points)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	m.Grid = g
	log.Info("grid", "cells", g.CellCount(), "spacing", g.Spacing, "duration", time.Since(start))

	start = time.Now()
	rng.Reset(opts.Seed)
	if err := heightmap.Generate(g, rng, tmpl.Recipe); err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", tmpl.ID, err)
	}
	log.Info("heightmap", "land", countLand(g.H), "duration", time.Since(start))

	start = time.Now()
	rng.Reset(opts.Seed)
	features.MarkupGrid(g)
	added := lakes.AddInDeepDepressions(g, opts.LakeLimit)
	opened := 0
	if tmpl.ID != "atoll" {
		opened = lakes.OpenNearSea(g)
	}
	log.Info("features", "features", len(g.Features)-1, "deep_lakes", added, "opened", opened, "duration", time.Since(start))

	start = time.Now()
	m.Size = climate.DefineMapSize(rng, g, tmpl.ID)
	m.Coordinates = climate.MapCoordinates(m.Size, float64(opts.Width), float64(opts.Height))
	climate.Temperatures(g, m.Coordinates, m.Settings)
	climate.Precipitation(g, rng, m.Coordinates, m.Settings)
	log.Info("climate", "size", m.Size.Size, "latitude", m.Size.Latitude, "duration", time.Since(start))

	start = time.Now()
	p, err := pack.ReGraph(g)
	if err != nil {
		return nil, err
	}
	features.MarkupPack(p, float64(opts.Width), float64(opts.Height))
	m.Pack = p
	m.Index = pack.NewIndex(p.Points)
	log.Info("pack", "cells", p.CellCount(), "features", len(p.Features)-1, "duration", time.Since(start))

	start = time.Now()
	res := rivers.Generate(p, g, rivers.Options{
		Width:           float64(opts.Width),
		Height:          float64(opts.Height),
		CellsDesired:    opts.Points,
		DepressionSteps: opts.DepressionSteps,
		LakeLimit:       float64(opts.LakeLimit),
		HeightExponent:  m.Settings.HeightExponent,
		Erosion:         opts.Erosion,
	})
	m.Depressions = res.Depressions
	m.Downcut = res.Downcut
	log.Info("rivers", "rivers", res.Rivers, "depressions", res.Depressions, "downcut", res.Downcut, "duration", time.Since(start))
	return m, nil
}

// pickTemplate resolves the heightmap to run. A raw recipe wins over the
// template name; an empty name or "random" draws a template by weight.
func pickTemplate(rng pcore.Source, opts Options) (heightmap.Template, error) {
	if opts.Recipe != "" {
		return heightmap.Template{ID: "custom", Name: "Custom", Recipe: opts.Recipe}, nil
	}
	switch strings.ToLower(strings.TrimSpace(opts.Template)) {
	case "", "random":
		return heightmap.Random(rng), nil
	}
	return heightmap.Lookup(opts.Template)
}

func countLand(h []uint8) int {
	n := 0
	for _, v := range h {
		if v >= core.LandHeight {
			n++
		}
	}
	return n
}
