//go:build ebiten

package app

import (
	"image/color"
	"log"
	"time"

	"landmass/internal/core"
	"landmass/internal/render"
	"landmass/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a map session to the ebiten.Game interface.
type Game struct {
	session *Session
	cfg     *Config

	raster  *render.Raster
	painter *render.Painter
	cells   *core.ByteGrid
	palette []color.RGBA

	overlay *ui.Overlay
	hud     *ui.HUD

	autoplay bool
	pacer    *core.Pacer
	viewW    int
	viewH    int
}

// New constructs a Game showing the session's map.
func New(session *Session, cfg *Config) *Game {
	g := &Game{
		session: session,
		cfg:     cfg,
		pacer:   core.NewPacer(cfg.Autoplay),
	}
	g.hud = ui.NewHUD(session, "Landmass", cfg.Panel)
	g.rebuild()
	return g
}

// rebuild resamples the current map and repaints the active layer.
func (g *Game) rebuild() {
	m := g.session.Map
	g.viewW, g.viewH = g.cfg.ViewSize(m.Options.Width, m.Options.Height)
	if g.raster == nil || g.raster.W != g.viewW || g.raster.H != g.viewH || g.painter == nil {
		g.painter = render.NewPainter(g.viewW, g.viewH)
	}
	g.raster = render.NewRaster(m, g.viewW, g.viewH)
	g.overlay = ui.NewOverlay(m, g.raster, float64(g.viewW)/float64(m.Options.Width))
	g.repaint()
}

func (g *Game) repaint() {
	cells, layer, err := g.raster.Paint(g.session.Map, g.session.Layer())
	if err != nil {
		log.Printf("paint: %v", err)
		return
	}
	g.cells = cells
	g.palette = layer.Palette
}

func (g *Game) apply(err error) {
	if err != nil {
		log.Printf("generate: %v", err)
		return
	}
	g.rebuild()
}

// Update handles per-frame input and autoplay.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.autoplay = !g.autoplay
		g.pacer.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.session.NextLayer()
		g.repaint()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.apply(g.session.Regenerate())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.apply(g.session.Reseed(NextSeed(time.Now())))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.apply(g.session.NextTemplate())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.session.Options.Erosion = !g.session.Options.Erosion
		g.apply(g.session.Regenerate())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.pacer.SetInterval(max(g.pacer.Interval()/2, 250*time.Millisecond))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.pacer.SetInterval(g.pacer.Interval() * 2)
	}
	if g.autoplay && g.pacer.Due() {
		g.apply(g.session.Reseed(NextSeed(time.Now())))
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud.Update(g.viewW) {
		g.apply(g.session.Regenerate())
	}
	info := append(ui.Summary(g.session.Map), "", "Layer "+g.session.Layer())
	if g.autoplay {
		info = append(info, "Autoplay every "+g.pacer.Interval().String())
	}
	if g.overlay != nil {
		if cell := g.overlay.Hover(); cell >= 0 {
			info = append(info, "")
			info = append(info, ui.DescribeCell(g.session.Map, cell)...)
		}
	}
	g.hud.SetInfo(info)
	return nil
}

// Draw renders the map, overlays and option panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.cells, g.palette, 1)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen, g.viewW, g.viewH)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewW + max(g.cfg.Panel, 0), g.viewH
}
