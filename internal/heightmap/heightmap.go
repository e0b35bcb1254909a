// Package heightmap interprets elevation recipes against a grid. Every tool
// consumes the random stream in a fixed order, so a seed and recipe always
// produce the same heights.
package heightmap

import (
	"math"
	"strings"

	"landmass/internal/core"
	"landmass/internal/grid"
	pcore "landmass/pkg/core"
)

// Interpreter applies instructions to the heights of one grid.
type Interpreter struct {
	g         *core.Grid
	rng       pcore.Source
	blobPower float64
	linePower float64
}

// NewInterpreter prepares an interpreter for g. It fails with
// ErrUnknownTier when the grid's desired point count is not a known tier.
func NewInterpreter(g *core.Grid, rng pcore.Source) (*Interpreter, error) {
	blob, line, err := Powers(g.CellsDesired)
	if err != nil {
		return nil, err
	}
	return &Interpreter{g: g, rng: rng, blobPower: blob, linePower: line}, nil
}

// Generate resets the grid heights and runs recipe.
func Generate(g *core.Grid, rng pcore.Source, recipe string) error {
	in, err := NewInterpreter(g, rng)
	if err != nil {
		return err
	}
	for i := range g.H {
		g.H[i] = 0
	}
	in.Run(Parse(recipe))
	return nil
}

// Run applies the instructions in order.
func (in *Interpreter) Run(program []Instruction) {
	for _, ins := range program {
		in.Apply(ins)
	}
}

// Apply executes a single instruction.
func (in *Interpreter) Apply(ins Instruction) {
	switch ins.Tool {
	case ToolHill:
		for n := pcore.NumberInRange(in.rng, ins.Count); n > 0; n-- {
			in.hill(ins.Height, ins.RangeX, ins.RangeY)
		}
	case ToolPit:
		for n := pcore.NumberInRange(in.rng, ins.Count); n > 0; n-- {
			in.pit(ins.Height, ins.RangeX, ins.RangeY)
		}
	case ToolRange:
		for n := pcore.NumberInRange(in.rng, ins.Count); n > 0; n-- {
			in.ridge(ins.Height, ins.RangeX, ins.RangeY, rangeShape)
		}
	case ToolTrough:
		for n := pcore.NumberInRange(in.rng, ins.Count); n > 0; n-- {
			in.ridge(ins.Height, ins.RangeX, ins.RangeY, troughShape)
		}
	case ToolStrait:
		in.strait(ins.Count, ins.Target)
	case ToolMask:
		in.mask(ins.Value)
	case ToolInvert:
		in.invert(ins.Value, ins.Target)
	case ToolAdd:
		in.modify(ins.Target, ins.Value, 1)
	case ToolMultiply:
		in.modify(ins.Target, 0, ins.Value)
	case ToolSmooth:
		in.smooth(ins.Value)
	}
}

func (in *Interpreter) point(rangeX, rangeY string) int {
	x := pcore.PointInRange(in.rng, rangeX, float64(in.g.Width))
	y := pcore.PointInRange(in.rng, rangeY, float64(in.g.Height))
	return grid.FindCell(in.g, x, y)
}

// jitter returns a multiplier in [lo, lo+span).
func (in *Interpreter) jitter(span, lo float64) float64 {
	return in.rng.Float64()*span + lo
}

func (in *Interpreter) hill(height, rangeX, rangeY string) {
	h := in.g.H
	change := make([]uint8, len(h))
	v := pcore.Lim(float64(pcore.NumberInRange(in.rng, height)))

	var start int
	for limit := 0; ; {
		start = in.point(rangeX, rangeY)
		limit++
		if float64(h[start])+v <= 90 || limit >= 50 {
			break
		}
	}

	change[start] = uint8(v)
	queue := []int{start}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, c := range in.g.Cells.C[q] {
			if change[c] != 0 {
				continue
			}
			change[c] = uint8(math.Pow(float64(change[q]), in.blobPower) * in.jitter(0.2, 0.9))
			if change[c] > 1 {
				queue = append(queue, c)
			}
		}
	}

	for i := range h {
		h[i] = pcore.LimUint8(float64(h[i]) + float64(change[i]))
	}
}

func (in *Interpreter) pit(height, rangeX, rangeY string) {
	h := in.g.H
	used := make([]bool, len(h))
	v := pcore.Lim(float64(pcore.NumberInRange(in.rng, height)))

	var start int
	for limit := 0; ; {
		start = in.point(rangeX, rangeY)
		limit++
		if h[start] >= core.LandHeight || limit >= 50 {
			break
		}
	}

	queue := []int{start}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		v = math.Pow(v, in.blobPower) * in.jitter(0.2, 0.9)
		if v < 1 {
			return
		}
		for _, c := range in.g.Cells.C[q] {
			if used[c] {
				continue
			}
			h[c] = pcore.LimUint8(float64(h[c]) - v*in.jitter(0.2, 0.9))
			used[c] = true
			queue = append(queue, c)
		}
	}
}

// ridgeShape captures the differences between Range and Trough.
type ridgeShape struct {
	sign         float64
	startOnLand  bool
	maxDistRatio float64
	wiggle       float64
	prominence   int
}

var (
	rangeShape  = ridgeShape{sign: 1, maxDistRatio: 3, wiggle: 0.85, prominence: 6}
	troughShape = ridgeShape{sign: -1, startOnLand: true, maxDistRatio: 2, wiggle: 0.8, prominence: 4}
)

// ridge raises (Range) or lowers (Trough) a wandering path and the rings
// around it. It returns the path.
func (in *Interpreter) ridge(height, rangeX, rangeY string, shape ridgeShape) []int {
	g := in.g
	h := g.H
	used := make([]bool, len(h))
	v := pcore.Lim(float64(pcore.NumberInRange(in.rng, height)))
	w, ht := float64(g.Width), float64(g.Height)

	var startX, startY float64
	var start int
	if shape.startOnLand {
		for limit := 0; ; {
			startX = pcore.PointInRange(in.rng, rangeX, w)
			startY = pcore.PointInRange(in.rng, rangeY, ht)
			start = grid.FindCell(g, startX, startY)
			limit++
			if h[start] >= core.LandHeight || limit >= 50 {
				break
			}
		}
	} else {
		startX = pcore.PointInRange(in.rng, rangeX, w)
		startY = pcore.PointInRange(in.rng, rangeY, ht)
	}

	var endX, endY float64
	for limit := 0; ; {
		endX = in.rng.Float64()*w*0.8 + w*0.1
		endY = in.rng.Float64()*ht*0.7 + ht*0.15
		dist := math.Abs(endY-startY) + math.Abs(endX-startX)
		limit++
		if (dist >= w/8 && dist <= w/shape.maxDistRatio) || limit >= 50 {
			break
		}
	}

	if !shape.startOnLand {
		start = grid.FindCell(g, startX, startY)
	}
	end := grid.FindCell(g, endX, endY)
	path := in.ridgePath(start, end, used, shape.wiggle)

	// raise or lower rings around the path until the value decays
	queue := append([]int(nil), path...)
	rings := 0
	for len(queue) > 0 {
		frontier := queue
		queue = nil
		rings++
		for _, c := range frontier {
			h[c] = pcore.LimUint8(float64(h[c]) + shape.sign*v*in.jitter(0.3, 0.85))
		}
		v = math.Pow(v, in.linePower) - 1
		if v < 2 {
			break
		}
		for _, f := range frontier {
			for _, c := range g.Cells.C[f] {
				if !used[c] {
					queue = append(queue, c)
					used[c] = true
				}
			}
		}
	}

	for d, cur := range path {
		if d%shape.prominence != 0 {
			continue
		}
		for l := 0; l < rings; l++ {
			next := lowestNeighbour(g, cur)
			h[next] = uint8((float64(h[cur])*2 + float64(h[next])) / 3)
			cur = next
		}
	}
	return path
}

// ridgePath walks greedily towards end, preferring the unused neighbour
// closest to it. A random draw halves a candidate's distance so the path
// wanders. The walk stops early when every neighbour is used.
func (in *Interpreter) ridgePath(cur, end int, used []bool, wiggle float64) []int {
	p := in.g.Points
	path := []int{cur}
	used[cur] = true
	for cur != end {
		min := math.Inf(1)
		for _, e := range in.g.Cells.C[cur] {
			if used[e] {
				continue
			}
			diff := sq(p[end].X-p[e].X) + sq(p[end].Y-p[e].Y)
			if in.rng.Float64() > wiggle {
				diff /= 2
			}
			if diff < min {
				min = diff
				cur = e
			}
		}
		if math.IsInf(min, 1) {
			return path
		}
		path = append(path, cur)
		used[cur] = true
	}
	return path
}

func lowestNeighbour(g *core.Grid, cell int) int {
	best := -1
	for _, c := range g.Cells.C[cell] {
		if best == -1 || g.H[c] < g.H[best] {
			best = c
		}
	}
	if best == -1 {
		return cell
	}
	return best
}

func (in *Interpreter) strait(widthArg, direction string) {
	g := in.g
	h := g.H
	width := math.Min(float64(pcore.NumberInRange(in.rng, widthArg)), float64(g.CellsX)/3)
	if width < 1 && pcore.P(in.rng, width) {
		return
	}

	used := make([]bool, len(h))
	w, ht := float64(g.Width), float64(g.Height)
	vertical := direction == "vertical"

	var startX, startY, endX, endY float64
	if vertical {
		startX = math.Floor(in.rng.Float64()*w*0.4 + w*0.3)
		startY = 5
		endX = math.Floor(w - startX - w*0.1 + in.rng.Float64()*w*0.2)
		endY = ht - 5
	} else {
		startX = 5
		startY = math.Floor(in.rng.Float64()*ht*0.4 + ht*0.3)
		endX = w - 5
		endY = math.Floor(ht - startY - ht*0.1 + in.rng.Float64()*ht*0.2)
	}

	start := grid.FindCell(g, startX, startY)
	end := grid.FindCell(g, endX, endY)
	path := in.straitPath(start, end)

	var query []int
	step := 0.1 / width
	for width > 0 {
		exp := 0.9 - step*width
		for _, r := range path {
			for _, e := range g.Cells.C[r] {
				if used[e] {
					continue
				}
				used[e] = true
				query = append(query, e)
				v := math.Pow(float64(h[e]), exp)
				if v > 100 {
					v = 5
				}
				h[e] = uint8(v)
			}
		}
		path = append(path[:0:0], query...)
		width--
	}
}

// straitPath is ridgePath without the used set. The walk is capped at one
// step per cell because it may otherwise cycle.
func (in *Interpreter) straitPath(cur, end int) []int {
	p := in.g.Points
	var path []int
	for steps := 0; cur != end && steps < len(p); steps++ {
		min := math.Inf(1)
		for _, e := range in.g.Cells.C[cur] {
			diff := sq(p[end].X-p[e].X) + sq(p[end].Y-p[e].Y)
			if in.rng.Float64() > 0.8 {
				diff /= 2
			}
			if diff < min {
				min = diff
				cur = e
			}
		}
		path = append(path, cur)
	}
	return path
}

// heightBounds resolves a selection word or "min-max" range. A bound that
// is missing or not a number does not constrain.
func heightBounds(target string) (min, max float64) {
	switch strings.ToLower(target) {
	case "all":
		return 0, 100
	case "land":
		return core.LandHeight, 100
	case "water":
		return 0, core.LandHeight - 1
	}
	parts := strings.SplitN(target, "-", 2)
	min = math.Inf(-1)
	max = math.Inf(1)
	if v, ok := pcore.ParseNumber(parts[0]); ok {
		min = v
	}
	if len(parts) > 1 {
		if v, ok := pcore.ParseNumber(parts[1]); ok {
			max = v
		}
	}
	return min, max
}

func (in *Interpreter) modify(target string, add, mult float64) {
	min, max := heightBounds(target)
	land := min == core.LandHeight
	for i, v := range in.g.H {
		h := float64(v)
		if h < min || h > max {
			continue
		}
		if add != 0 {
			if land {
				h = math.Max(h+add, core.LandHeight)
			} else {
				h += add
			}
		}
		if mult != 1 {
			if land {
				h = (h-core.LandHeight)*mult + core.LandHeight
			} else {
				h *= mult
			}
		}
		in.g.H[i] = pcore.LimUint8(h)
	}
}

func (in *Interpreter) smooth(fr float64) {
	h := in.g.H
	out := make([]uint8, len(h))
	for i, v := range h {
		sum := float64(v)
		for _, c := range in.g.Cells.C[i] {
			sum += float64(h[c])
		}
		mean := sum / float64(len(in.g.Cells.C[i])+1)
		if fr == 1 {
			out[i] = pcore.LimUint8(mean)
			continue
		}
		out[i] = pcore.LimUint8((float64(v)*(fr-1) + mean) / fr)
	}
	copy(h, out)
}

func (in *Interpreter) mask(power float64) {
	fr := 1.0
	if power != 0 {
		fr = math.Abs(power)
	}
	w, ht := float64(in.g.Width), float64(in.g.Height)
	for i, v := range in.g.H {
		p := in.g.Points[i]
		nx := 2*p.X/w - 1
		ny := 2*p.Y/ht - 1
		dist := (1 - nx*nx) * (1 - ny*ny)
		if power < 0 {
			dist = 1 - dist
		}
		h := float64(v)
		in.g.H[i] = pcore.LimUint8((h*(fr-1) + h*dist) / fr)
	}
}

func (in *Interpreter) invert(probability float64, axes string) {
	if !pcore.P(in.rng, probability) {
		return
	}
	invertX := axes != "y"
	invertY := axes != "x"
	cellsX, cellsY := in.g.CellsX, in.g.CellsY

	old := append([]uint8(nil), in.g.H...)
	for i := range in.g.H {
		x := i % cellsX
		y := i / cellsX
		nx, ny := x, y
		if invertX {
			nx = cellsX - x - 1
		}
		if invertY {
			ny = cellsY - y - 1
		}
		in.g.H[i] = old[nx+ny*cellsX]
	}
}

func sq(v float64) float64 { return v * v }
