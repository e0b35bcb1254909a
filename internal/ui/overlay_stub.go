//go:build !ebiten

package ui

import (
	"landmass/internal/render"
	"landmass/internal/world"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*world.Map, *render.Raster, float64) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Hover always reports no cell.
func (o *Overlay) Hover() int { return -1 }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
