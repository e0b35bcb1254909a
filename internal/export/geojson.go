// Package export writes generated maps as GeoJSON and JSON summaries.
package export

import (
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"landmass/internal/mesh"
	"landmass/internal/world"
	pcore "landmass/pkg/core"
)

// Projection converts map pixels to output coordinates.
type Projection func(p mesh.Point) []float64

// Pixels keeps pixel coordinates, y pointing down.
func Pixels(p mesh.Point) []float64 {
	return []float64{pcore.Round(p.X, 2), pcore.Round(p.Y, 2)}
}

// Geographic maps pixels to longitude/latitude using the map's placement on
// the globe.
func Geographic(m *world.Map) Projection {
	w, h := float64(m.Options.Width), float64(m.Options.Height)
	c := m.Coordinates
	return func(p mesh.Point) []float64 {
		lon := c.LonW + p.X/w*c.LonT
		lat := c.LatN - p.Y/h*c.LatT
		return []float64{pcore.Round(lon, 4), pcore.Round(lat, 4)}
	}
}

// Features returns a polygon per island and lake. Oceans carry no outline
// and are skipped.
func Features(m *world.Map, proj Projection) *geojson.FeatureCollection {
	p := m.Pack
	fc := geojson.NewFeatureCollection()
	for _, f := range p.Features {
		if f == nil || len(f.Vertices) < 3 {
			continue
		}
		ring := make([][]float64, 0, len(f.Vertices)+1)
		for _, v := range f.Vertices {
			ring = append(ring, proj(p.Vertices.P[v]))
		}
		ring = append(ring, ring[0])

		feat := geojson.NewPolygonFeature([][][]float64{ring})
		feat.ID = f.ID
		feat.SetProperty("type", f.Type.String())
		feat.SetProperty("cells", f.Cells)
		feat.SetProperty("area", f.Area)
		feat.SetProperty("border", f.Border)
		if f.IsLake() {
			feat.SetProperty("height", f.Height)
			feat.SetProperty("closed", f.Closed)
			feat.SetProperty("flux", f.Flux)
			feat.SetProperty("evaporation", f.Evaporation)
			feat.SetProperty("temperature", f.Temp)
			feat.SetProperty("outlet", f.Outlet)
			if len(f.Inlets) > 0 {
				feat.SetProperty("inlets", f.Inlets)
			}
		}
		fc.AddFeature(feat)
	}
	return fc
}

// Rivers returns a line per river following its meandered points.
func Rivers(m *world.Map, proj Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range m.Pack.Rivers {
		if len(r.Points) < 2 {
			continue
		}
		line := make([][]float64, len(r.Points))
		for i, pt := range r.Points {
			line[i] = proj(mesh.Point{X: pt.X, Y: pt.Y})
		}
		feat := geojson.NewLineStringFeature(line)
		feat.ID = r.ID
		feat.SetProperty("parent", r.Parent)
		feat.SetProperty("source", r.Source)
		feat.SetProperty("mouth", r.Mouth)
		feat.SetProperty("discharge", r.Discharge)
		feat.SetProperty("length", pcore.Round(r.Length, 2))
		feat.SetProperty("width", r.Width)
		feat.SetProperty("cells", len(r.Cells))
		fc.AddFeature(feat)
	}
	return fc
}

// Cells returns a polygon per pack cell with its layers as properties.
func Cells(m *world.Map, proj Projection) *geojson.FeatureCollection {
	p := m.Pack
	g := m.Grid
	fc := geojson.NewFeatureCollection()
	for i := range p.Points {
		vs := p.Cells.V[i]
		if len(vs) < 3 {
			continue
		}
		ring := make([][]float64, 0, len(vs)+1)
		for _, v := range vs {
			ring = append(ring, proj(p.Vertices.P[v]))
		}
		ring = append(ring, ring[0])

		feat := geojson.NewPolygonFeature([][][]float64{ring})
		feat.ID = i
		feat.SetProperty("height", p.H[i])
		feat.SetProperty("feature", p.F[i])
		feat.SetProperty("distance", p.T[i])
		feat.SetProperty("area", p.Area[i])
		if p.Fl != nil {
			feat.SetProperty("flux", p.Fl[i])
			feat.SetProperty("river", p.R[i])
			feat.SetProperty("confluence", p.Conf[i])
		}
		if p.Haven[i] >= 0 {
			feat.SetProperty("haven", p.Haven[i])
			feat.SetProperty("harbor", p.Harbor[i])
		}
		if gi := p.G[i]; g != nil && gi < g.CellCount() {
			feat.SetProperty("temperature", g.Temp[gi])
			feat.SetProperty("precipitation", g.Prec[gi])
		}
		fc.AddFeature(feat)
	}
	return fc
}

// Layer names a collection WriteGeoJSON can produce.
type Layer string

const (
	LayerFeatures Layer = "features"
	LayerRivers   Layer = "rivers"
	LayerCells    Layer = "cells"
)

// Collection builds the named layer.
func Collection(m *world.Map, layer Layer, proj Projection) (*geojson.FeatureCollection, error) {
	switch layer {
	case LayerFeatures:
		return Features(m, proj), nil
	case LayerRivers:
		return Rivers(m, proj), nil
	case LayerCells:
		return Cells(m, proj), nil
	}
	return nil, fmt.Errorf("export: unknown layer %q", layer)
}

// WriteGeoJSON encodes fc to w.
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
