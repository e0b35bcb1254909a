// Package rivers simulates drainage on the pack: it resolves depressions,
// accumulates water flux downhill, traces rivers with their confluences and
// optionally cuts river beds into the terrain.
package rivers

import (
	"math"
	"slices"

	"landmass/internal/core"
	"landmass/internal/lakes"
	pcore "landmass/pkg/core"
)

// MinFlux is the flux a cell needs to start or carry a river.
const MinFlux = 30

const maxDowncut = 5

// Options tune a drainage run.
type Options struct {
	Width, Height   float64
	CellsDesired    int
	DepressionSteps int
	LakeLimit       float64
	HeightExponent  float64
	Erosion         bool
}

// Result summarises a drainage run.
type Result struct {
	Depressions int
	Rivers      int
	Downcut     int
}

type drainage struct {
	p    *core.Pack
	g    *core.Grid
	opts Options
	h    []float64

	data    [][]int
	parents map[int]int
	next    int
}

// Generate runs the full drainage pipeline on p. Grid precipitation and
// temperature feed lake and river flux.
func Generate(p *core.Pack, g *core.Grid, opts Options) Result {
	n := p.CellCount()
	d := &drainage{
		p:       p,
		g:       g,
		opts:    opts,
		data:    [][]int{nil},
		parents: map[int]int{},
		next:    1,
	}
	p.Fl = make([]uint16, n)
	p.R = make([]int, n)
	p.Conf = make([]uint16, n)

	d.h = AlterHeights(p)
	lakes.DetectClosed(p, d.h, opts.LakeLimit)
	res := Result{Depressions: ResolveDepressions(p, d.h, opts.DepressionSteps)}

	d.drain()
	d.defineRivers()
	d.confluenceFlux()
	lakes.Cleanup(p)
	res.Rivers = len(p.Rivers)

	if opts.Erosion {
		for i, v := range d.h {
			p.H[i] = uint8(pcore.MinMax(v, 0, 255))
		}
		res.Downcut = Downcut(p)
	}
	return res
}

func (d *drainage) addCell(cell, river int) {
	for len(d.data) <= river {
		d.data = append(d.data, nil)
	}
	d.data[river] = append(d.data[river], cell)
}

func (d *drainage) newRiver(cell int) int {
	id := d.next
	d.next++
	d.p.R[cell] = id
	d.addCell(cell, id)
	return id
}

// addFlux adds v to a flux value, truncating and saturating at the uint16
// range.
func addFlux(f uint16, v float64) uint16 {
	return uint16(pcore.MinMax(math.Trunc(float64(f)+v), 0, math.MaxUint16))
}

func (d *drainage) drain() {
	p, h := d.p, d.h
	modifier := math.Pow(float64(d.opts.CellsDesired)/10000, 0.25)

	var land []int
	for i := range h {
		if h[i] >= core.LandHeight {
			land = append(land, i)
		}
	}
	sortByHeight(land, h, true)
	outCells := lakes.DefineClimate(p, d.g, h, d.opts.HeightExponent)

	for _, i := range land {
		p.Fl[i] = addFlux(p.Fl[i], float64(d.g.Prec[p.G[i]])/modifier)

		var drained []*core.Feature
		if _, ok := outCells[i]; ok {
			for _, f := range p.Features {
				if f.IsLake() && f.OutCell == i && f.Flux > f.Evaporation {
					drained = append(drained, f)
				}
			}
		}
		for _, lake := range drained {
			d.drainLake(i, lake)
		}
		if len(drained) > 0 {
			outlet := drained[0].Outlet
			for _, lake := range drained {
				for _, inlet := range lake.Inlets {
					d.parents[inlet] = outlet
				}
			}
		}

		if p.Cells.B[i] == 1 && p.R[i] != 0 {
			d.addCell(-1, p.R[i])
			continue
		}

		low := d.downhill(i, drained, outCells)
		if low < 0 || h[i] <= h[low] {
			continue
		}

		if p.Fl[i] < MinFlux {
			if h[low] >= core.LandHeight {
				p.Fl[low] = addFlux(p.Fl[low], float64(p.Fl[i]))
			}
			continue
		}

		if p.R[i] == 0 {
			d.newRiver(i)
		}
		d.flowDown(low, float64(p.Fl[i]), p.R[i])
	}
}

// drainLake pours the water a lake does not evaporate out through its
// outlet cell i.
func (d *drainage) drainLake(i int, lake *core.Feature) {
	p, h := d.p, d.h
	lakeCell := -1
	for _, c := range p.Cells.C[i] {
		if h[c] < core.LandHeight && p.F[c] == lake.ID {
			lakeCell = c
			break
		}
	}
	if lakeCell < 0 {
		return
	}
	p.Fl[lakeCell] = addFlux(p.Fl[lakeCell], math.Max(lake.Flux-lake.Evaporation, 0))

	if lake.River == 0 || p.R[lakeCell] != lake.River {
		same := false
		if lake.River != 0 {
			for _, c := range p.Cells.C[lakeCell] {
				if p.R[c] == lake.River {
					same = true
					break
				}
			}
		}
		if same {
			p.R[lakeCell] = lake.River
			d.addCell(lakeCell, lake.River)
		} else {
			d.newRiver(lakeCell)
		}
	}

	lake.Outlet = p.R[lakeCell]
	d.flowDown(i, float64(p.Fl[lakeCell]), lake.Outlet)
}

// downhill picks the cell water leaves i through. Lake outlets skip the lake
// they drain, coastal cells pour into their haven, and other cells take the
// lowest neighbour, ties going to the lowest index.
func (d *drainage) downhill(i int, drained []*core.Feature, outCells map[int]int) int {
	p := d.p
	if _, ok := outCells[i]; ok {
		var candidates []int
		for _, c := range p.Cells.C[i] {
			if !slices.ContainsFunc(drained, func(f *core.Feature) bool { return f.ID == p.F[c] }) {
				candidates = append(candidates, c)
			}
		}
		return lowest(candidates, d.h)
	}
	if p.Haven != nil && p.Haven[i] >= 0 {
		return p.Haven[i]
	}
	return lowest(p.Cells.C[i], d.h)
}

func lowest(cells []int, h []float64) int {
	best := -1
	for _, c := range cells {
		if best == -1 || h[c] < h[best] || (h[c] == h[best] && c < best) {
			best = c
		}
	}
	return best
}

func (d *drainage) flowDown(to int, fromFlux float64, river int) {
	p, h := d.p, d.h
	toFlux := float64(p.Fl[to]) - float64(p.Conf[to])
	toRiver := p.R[to]

	if toRiver != 0 {
		if fromFlux > toFlux {
			p.Conf[to] = addFlux(p.Conf[to], float64(p.Fl[to]))
			if h[to] >= core.LandHeight {
				d.parents[toRiver] = river
			}
			p.R[to] = river
		} else {
			p.Conf[to] = addFlux(p.Conf[to], fromFlux)
			if h[to] >= core.LandHeight {
				d.parents[river] = toRiver
			}
		}
	} else {
		p.R[to] = river
	}

	if h[to] < core.LandHeight {
		if body := p.Features[p.F[to]]; body.IsLake() {
			if body.River == 0 || fromFlux > body.EnteringFlux {
				body.River = river
				body.EnteringFlux = fromFlux
			}
			body.Flux += fromFlux
			body.Inlets = append(body.Inlets, river)
		}
	} else {
		p.Fl[to] = addFlux(p.Fl[to], fromFlux)
	}

	d.addCell(to, river)
}

func (d *drainage) defineRivers() {
	p := d.p
	clear(p.R)
	clear(p.Conf)
	p.Rivers = nil

	defaultWidth := pcore.Round(1/math.Pow(float64(d.opts.CellsDesired)/10000, 0.25), 2)
	mainStemWidth := defaultWidth * 1.2

	for id, cells := range d.data {
		if len(cells) < 3 {
			continue
		}
		for _, c := range cells {
			if c < 0 || p.H[c] < core.LandHeight {
				continue
			}
			if p.R[c] != 0 {
				p.Conf[c] = 1
			} else {
				p.R[c] = id
			}
		}

		source := cells[0]
		mouth := cells[len(cells)-2]
		parent := d.parents[id]
		widthFactor := defaultWidth
		if parent == 0 || parent == id {
			widthFactor = mainStemWidth
		}

		points := Meander(p, cells, d.opts.Width, d.opts.Height)
		discharge := float64(p.Fl[mouth])
		sourceWidth := SourceWidth(float64(p.Fl[source]))
		p.Rivers = append(p.Rivers, &core.River{
			ID:          id,
			Parent:      parent,
			Source:      source,
			Mouth:       mouth,
			Cells:       cells,
			Discharge:   discharge,
			Length:      Length(points),
			Width:       Width(Offset(discharge, len(points), widthFactor, sourceWidth)),
			WidthFactor: widthFactor,
			SourceWidth: sourceWidth,
			Points:      points,
		})
	}
}

// confluenceFlux replaces confluence markers with the flux of every inflow
// but the largest.
func (d *drainage) confluenceFlux() {
	p, h := d.p, d.h
	for i := range p.Conf {
		if p.Conf[i] == 0 {
			continue
		}
		var influx []float64
		for _, c := range p.Cells.C[i] {
			if p.R[c] != 0 && h[c] > h[i] {
				influx = append(influx, float64(p.Fl[c]))
			}
		}
		slices.SortFunc(influx, func(a, b float64) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			}
			return 0
		})
		var total float64
		for _, f := range influx[min(1, len(influx)):] {
			total += f
		}
		p.Conf[i] = addFlux(0, total)
	}
}

// Downcut lowers highland river cells carrying more water than their higher
// neighbours, by at most five and never below land level. It returns the
// number of cells lowered.
func Downcut(p *core.Pack) int {
	cut := 0
	for i := range p.H {
		if p.H[i] < 35 || p.Fl[i] == 0 {
			continue
		}
		var total float64
		higher := 0
		for _, c := range p.Cells.C[i] {
			if p.H[c] > p.H[i] {
				total += float64(p.Fl[c])
				higher++
			}
		}
		if higher == 0 || total == 0 {
			continue
		}
		down := int(math.Floor(float64(p.Fl[i]) / (total / float64(higher))))
		if down == 0 {
			continue
		}
		p.H[i] = uint8(max(int(p.H[i])-min(down, maxDowncut), core.LandHeight))
		cut++
	}
	return cut
}
