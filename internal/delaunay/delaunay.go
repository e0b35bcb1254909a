// Package delaunay triangulates a planar point set. Triangles and half-edges
// come from github.com/fogleman/delaunay, a port of the sweep-hull
// Delaunator; their order is stable for a given input so the Voronoi dual
// built on top of it is reproducible.
package delaunay

import (
	"errors"
	"fmt"

	fd "github.com/fogleman/delaunay"
)

// ErrDegenerate is returned when the input has no three non-collinear points.
var ErrDegenerate = errors.New("delaunay: points are collinear or coincident")

// Triangulation holds the output of Triangulate. Triangles stores three
// point indices per triangle; Halfedges[e] is the opposite half-edge of e or
// -1 on the hull. Hull lists the hull points in walk order.
type Triangulation struct {
	Coords    []float64
	Triangles []int
	Halfedges []int
	Hull      []int
}

// NextHalfedge returns the next half-edge within the same triangle.
func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// PrevHalfedge returns the previous half-edge within the same triangle.
func PrevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}

// TriangleOfEdge returns the triangle that owns half-edge e. It returns -1
// for the -1 sentinel.
func TriangleOfEdge(e int) int {
	if e < 0 {
		return -1
	}
	return e / 3
}

// Triangulate computes the Delaunay triangulation of coords, a flat slice of
// x, y pairs.
func Triangulate(coords []float64) (*Triangulation, error) {
	n := len(coords) / 2
	if n < 3 || !spansPlane(coords) {
		return nil, ErrDegenerate
	}

	points := make([]fd.Point, n)
	for i := range points {
		points[i] = fd.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	tr, err := fd.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	if tr == nil || len(tr.Triangles) == 0 {
		return nil, ErrDegenerate
	}
	return &Triangulation{
		Coords:    coords,
		Triangles: tr.Triangles,
		Halfedges: tr.Halfedges,
		Hull:      hullOf(tr.Triangles, tr.Halfedges),
	}, nil
}

// spansPlane reports whether coords hold three points that are not on one
// line.
func spansPlane(coords []float64) bool {
	n := len(coords) / 2
	x0, y0 := coords[0], coords[1]
	second := -1
	for i := 1; i < n; i++ {
		if coords[2*i] != x0 || coords[2*i+1] != y0 {
			second = i
			break
		}
	}
	if second == -1 {
		return false
	}
	dx, dy := coords[2*second]-x0, coords[2*second+1]-y0
	for i := second + 1; i < n; i++ {
		if dx*(coords[2*i+1]-y0)-dy*(coords[2*i]-x0) != 0 {
			return true
		}
	}
	return false
}

// hullOf walks the half-edges without an opposite and returns their start
// points in order.
func hullOf(triangles, halfedges []int) []int {
	from := make(map[int]int)
	first := -1
	for e, o := range halfedges {
		if o != -1 {
			continue
		}
		from[triangles[e]] = e
		if first == -1 {
			first = e
		}
	}
	if first == -1 {
		return nil
	}
	hull := make([]int, 0, len(from))
	for e := first; len(hull) < len(from); {
		hull = append(hull, triangles[e])
		next, ok := from[triangles[NextHalfedge(e)]]
		if !ok || next == first {
			break
		}
		e = next
	}
	return hull
}
