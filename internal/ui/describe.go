package ui

import (
	"fmt"

	"landmass/internal/world"
)

// DescribeCell returns the info lines shown for the pack cell under the
// cursor. A negative cell yields nothing.
func DescribeCell(m *world.Map, cell int) []string {
	if m == nil || cell < 0 || cell >= m.Pack.CellCount() {
		return nil
	}
	p := m.Pack
	pt := p.Points[cell]
	lines := []string{
		fmt.Sprintf("Cell %d (%.0f, %.0f)", cell, pt.X, pt.Y),
		fmt.Sprintf("Height %d", p.H[cell]),
	}
	if f := m.Feature(cell); f != nil {
		lines = append(lines, fmt.Sprintf("%s #%d, %d cells", f.Type, f.ID, f.Cells))
		if f.IsLake() {
			state := "open"
			if f.Closed {
				state = "closed"
			}
			lines = append(lines, fmt.Sprintf("Lake %.2f, %s", f.Height, state))
		}
	}
	lines = append(lines, fmt.Sprintf("Distance %d", p.T[cell]))
	if g := m.Grid; g != nil {
		gi := p.G[cell]
		lines = append(lines, fmt.Sprintf("Temp %dC, rain %d", g.Temp[gi], g.Prec[gi]))
	}
	if p.Fl != nil {
		lines = append(lines, fmt.Sprintf("Flux %d", p.Fl[cell]))
		if r := p.R[cell]; r != 0 {
			lines = append(lines, fmt.Sprintf("River %d", r))
		}
	}
	return lines
}

// Summary returns headline map figures for the HUD.
func Summary(m *world.Map) []string {
	if m == nil {
		return nil
	}
	s := m.Stats()
	return []string{
		fmt.Sprintf("%s, seed %s", m.Template.Name, m.Options.Seed),
		fmt.Sprintf("Land %.0f%%, %d cells", s.LandShare*100, s.Cells),
		fmt.Sprintf("%d islands, %d lakes", s.Islands, s.Lakes),
		fmt.Sprintf("%d rivers", s.Rivers),
	}
}
