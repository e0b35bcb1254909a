//go:build !ebiten

package ui

import "landmass/internal/core"

// Target is the option set the HUD displays and edits.
type Target interface {
	Snapshot() core.ParameterSnapshot
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Target, string, int) *HUD { return nil }

// SetInfo is a no-op in the headless build.
func (h *HUD) SetInfo([]string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
