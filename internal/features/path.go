package features

import "landmass/internal/mesh"

// ConnectVertices walks the outline separating cells that satisfy
// ofSameType from the rest, starting at vertex start. addToChecked, when
// set, receives every same-type cell touched by the walk. The walk stops
// when it returns to start, stalls, or has visited as many vertices as the
// mesh holds.
func ConnectVertices(v mesh.Vertices, start int, ofSameType func(int) bool, addToChecked func(int), closeRing bool) []int {
	maxIter := len(v.C)
	var chain []int
	next := start
	for i := 0; i == 0 || next != start; i++ {
		previous := -1
		if len(chain) > 0 {
			previous = chain[len(chain)-1]
		}
		current := next
		chain = append(chain, current)

		cells := v.C[current]
		if addToChecked != nil {
			for _, c := range cells {
				if ofSameType(c) {
					addToChecked(c)
				}
			}
		}

		c1, c2, c3 := ofSameType(cells[0]), ofSameType(cells[1]), ofSameType(cells[2])
		v1, v2, v3 := v.V[current][0], v.V[current][1], v.V[current][2]
		switch {
		case v1 != previous && c1 != c2:
			next = v1
		case v2 != previous && c2 != c3:
			next = v2
		case v3 != previous && c1 != c3:
			next = v3
		}

		if next < 0 || next >= len(v.C) || next == current || i == maxIter {
			break
		}
	}
	if closeRing {
		chain = append(chain, start)
	}
	return chain
}

const (
	clipLeft   = 1
	clipRight  = 2
	clipTop    = 4
	clipBottom = 8
)

// ClipPolygon clips a ring to the [0,w]×[0,h] rectangle one edge at a time.
func ClipPolygon(points []mesh.Point, w, h float64) []mesh.Point {
	if len(points) < 2 {
		return points
	}
	box := [4]float64{0, 0, w, h}
	out := points
	for edge := 1; edge <= 8; edge *= 2 {
		if len(out) == 0 {
			break
		}
		var result []mesh.Point
		prev := out[len(out)-1]
		prevInside := bitCode(prev, box)&edge == 0
		for _, p := range out {
			inside := bitCode(p, box)&edge == 0
			if inside != prevInside {
				result = append(result, intersect(prev, p, edge, box))
			}
			if inside {
				result = append(result, p)
			}
			prev = p
			prevInside = inside
		}
		out = result
	}
	return out
}

func bitCode(p mesh.Point, box [4]float64) int {
	code := 0
	if p.X < box[0] {
		code |= clipLeft
	} else if p.X > box[2] {
		code |= clipRight
	}
	if p.Y < box[1] {
		code |= clipTop
	} else if p.Y > box[3] {
		code |= clipBottom
	}
	return code
}

func intersect(a, b mesh.Point, edge int, box [4]float64) mesh.Point {
	switch {
	case edge&clipBottom != 0:
		return mesh.Point{X: a.X + (b.X-a.X)*(box[3]-a.Y)/(b.Y-a.Y), Y: box[3]}
	case edge&clipTop != 0:
		return mesh.Point{X: a.X + (b.X-a.X)*(box[1]-a.Y)/(b.Y-a.Y), Y: box[1]}
	case edge&clipRight != 0:
		return mesh.Point{X: box[2], Y: a.Y + (b.Y-a.Y)*(box[2]-a.X)/(b.X-a.X)}
	default:
		return mesh.Point{X: box[0], Y: a.Y + (b.Y-a.Y)*(box[0]-a.X)/(b.X-a.X)}
	}
}
