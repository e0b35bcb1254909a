//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"landmass/internal/core"
)

// Painter uploads rasters into a single ebiten image.
type Painter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewPainter allocates a painter for a raster of size w*h.
func NewPainter(w, h int) *Painter {
	p := &Painter{w: w, h: h, buf: make([]byte, 4*w*h)}
	p.img = ebiten.NewImage(w, h)
	return p
}

// Blit colours the palette indices in r and draws them scaled onto dst.
func (p *Painter) Blit(dst *ebiten.Image, r *core.ByteGrid, palette []color.RGBA, scale float64) {
	if r == nil || r.W != p.w || r.H != p.h {
		return
	}
	fillPaletteRGBA(p.buf, r.Cells(), palette)
	p.draw(dst, scale)
}

// BlitMask draws a 0/1 raster with on and off colours.
func (p *Painter) BlitMask(dst *ebiten.Image, r *core.ByteGrid, on, off color.Color, scale float64) {
	if r == nil || r.W != p.w || r.H != p.h {
		return
	}
	fillBinaryRGBA(p.buf, r.Cells(), on, off)
	p.draw(dst, scale)
}

func (p *Painter) draw(dst *ebiten.Image, scale float64) {
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
