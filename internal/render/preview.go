package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"landmass/internal/core"
	"landmass/internal/world"
)

// PreviewOptions select what Preview draws.
type PreviewOptions struct {
	Layer     string
	Scale     float64
	Rivers    bool
	Coastline bool
}

// DefaultPreviewOptions draws heights with rivers and coastlines at full size.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Layer: "height", Scale: 1, Rivers: true, Coastline: true}
}

// Preview draws the pack cells of m as filled polygons coloured by a layer.
func Preview(m *world.Map, opts PreviewOptions) (image.Image, error) {
	l, ok := LookupLayer(opts.Layer)
	if !ok {
		return nil, fmt.Errorf("render: unknown layer %q (have %v)", opts.Layer, core.Layers())
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(m.Options.Width) * scale))
	h := int(math.Ceil(float64(m.Options.Height) * scale))

	dc := gg.NewContext(w, h)
	dc.SetColor(l.Background)
	dc.Clear()
	dc.Scale(scale, scale)

	p := m.Pack
	for i := range p.Points {
		vs := p.Cells.V[i]
		if len(vs) < 3 {
			continue
		}
		for k, v := range vs {
			pt := p.Vertices.P[v]
			if k == 0 {
				dc.MoveTo(pt.X, pt.Y)
			} else {
				dc.LineTo(pt.X, pt.Y)
			}
		}
		dc.ClosePath()
		col := l.Palette[min(int(l.Index(p, m.Grid, i)), len(l.Palette)-1)]
		dc.SetColor(col)
		// a hairline stroke in the fill colour hides seams between cells
		dc.FillPreserve()
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}

	if opts.Coastline {
		dc.SetColor(coastline)
		dc.SetLineWidth(0.8)
		dc.SetLineJoinRound()
		for _, f := range p.Features {
			if f == nil || len(f.Vertices) < 3 {
				continue
			}
			drawRing(dc, p, f.Vertices)
			dc.Stroke()
		}
	}

	if opts.Rivers {
		dc.SetColor(riverWater)
		dc.SetLineCapRound()
		dc.SetLineJoinRound()
		for _, r := range p.Rivers {
			if len(r.Points) < 2 {
				continue
			}
			dc.SetLineWidth(math.Max(r.Width, 0.4))
			for k, pt := range r.Points {
				if k == 0 {
					dc.MoveTo(pt.X, pt.Y)
				} else {
					dc.LineTo(pt.X, pt.Y)
				}
			}
			dc.Stroke()
		}
	}
	return dc.Image(), nil
}

func drawRing(dc *gg.Context, p *core.Pack, ring []int) {
	for k, v := range ring {
		pt := p.Vertices.P[v]
		if k == 0 {
			dc.MoveTo(pt.X, pt.Y)
		} else {
			dc.LineTo(pt.X, pt.Y)
		}
	}
	dc.ClosePath()
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
