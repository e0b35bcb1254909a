//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"landmass/internal/core"
	"landmass/internal/render"
	"landmass/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws rivers, coastlines and the hovered cell over the map view.
type Overlay struct {
	m      *world.Map
	raster *render.Raster
	scale  float64

	showRivers bool
	showCoast  bool
	showCell   bool

	rivers    *render.Painter
	riverMask *core.ByteGrid
	pixel     *ebiten.Image
	hover     int
}

// NewOverlay prepares overlays for m drawn through raster. Scale converts
// map coordinates to screen pixels.
func NewOverlay(m *world.Map, raster *render.Raster, scale float64) *Overlay {
	o := &Overlay{m: m, raster: raster, scale: scale, showRivers: true, showCell: true, hover: -1}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.rivers = render.NewPainter(raster.W, raster.H)
	o.riverMask = raster.RiverMask(m)
	return o
}

// Update toggles overlays (1 rivers, 2 coastlines, 3 cell outline) and tracks
// the cell under the cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showRivers = !o.showRivers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCoast = !o.showCoast
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showCell = !o.showCell
	}
	mx, my := ebiten.CursorPosition()
	o.hover = o.raster.Cell(mx, my)
}

// Hover returns the pack cell under the cursor, or -1.
func (o *Overlay) Hover() int { return o.hover }

// Draw renders the enabled overlays onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showRivers {
		o.rivers.BlitMask(screen, o.riverMask, color.RGBA{R: 40, G: 90, B: 200, A: 220}, color.Transparent, 1)
		o.drawRivers(screen)
	}
	p := o.m.Pack
	if o.showCoast {
		for _, f := range p.Features {
			if f == nil || len(f.Vertices) < 3 {
				continue
			}
			o.drawRing(screen, f.Vertices, 1, color.RGBA{R: 20, G: 20, B: 20, A: 200})
		}
	}
	if o.showCell && o.hover >= 0 {
		o.drawRing(screen, p.Cells.V[o.hover], 1.5, color.RGBA{R: 255, G: 230, B: 60, A: 255})
	}
}

func (o *Overlay) drawRivers(screen *ebiten.Image) {
	col := color.RGBA{R: 60, G: 110, B: 190, A: 255}
	for _, r := range o.m.Pack.Rivers {
		width := math.Max(r.Width*o.scale, 0.75)
		for k := 1; k < len(r.Points); k++ {
			a, b := r.Points[k-1], r.Points[k]
			o.drawLine(screen, a.X*o.scale, a.Y*o.scale, b.X*o.scale, b.Y*o.scale, width, col)
		}
	}
}

func (o *Overlay) drawRing(screen *ebiten.Image, ring []int, thickness float64, col color.RGBA) {
	pts := o.m.Pack.Vertices.P
	for k := range ring {
		a, b := pts[ring[k]], pts[ring[(k+1)%len(ring)]]
		o.drawLine(screen, a.X*o.scale, a.Y*o.scale, b.X*o.scale, b.Y*o.scale, thickness, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
