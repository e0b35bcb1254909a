// Package mesh derives the Voronoi cell and vertex graph from a Delaunay
// triangulation. Cells are indexed like the input points; vertices are
// indexed like triangles.
package mesh

import (
	"fmt"
	"math"

	"landmass/internal/delaunay"
)

// Point is a planar coordinate.
type Point struct {
	X, Y float64
}

// maxFan bounds the half-edge walk around a single point.
const maxFan = 20

// Cells holds per-cell topology. V lists bounding vertices, C lists
// neighbouring cells and B flags cells whose fan is open (map border).
type Cells struct {
	V [][]int
	C [][]int
	B []uint8
}

// Vertices holds per-vertex geometry and topology. V keeps -1 in the slot of
// a missing neighbour so that V[i][k] stays aligned with the edge opposite
// C[i][k].
type Vertices struct {
	P []Point
	V [][3]int
	C [][3]int
}

// Mesh is the Voronoi dual of a point set.
type Mesh struct {
	Cells    Cells
	Vertices Vertices
}

// Build triangulates points followed by boundary and returns the Voronoi
// graph of the first len(points) sites. Boundary points only shape the
// border and never become cells.
func Build(points, boundary []Point) (*Mesh, error) {
	all := make([]float64, 0, 2*(len(points)+len(boundary)))
	for _, p := range points {
		all = append(all, p.X, p.Y)
	}
	for _, p := range boundary {
		all = append(all, p.X, p.Y)
	}

	tr, err := delaunay.Triangulate(all)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points)+len(boundary), err)
	}
	return fromTriangulation(tr, len(points)), nil
}

func fromTriangulation(tr *delaunay.Triangulation, pointsN int) *Mesh {
	triangles := tr.Triangles
	halfedges := tr.Halfedges
	nt := len(triangles) / 3

	m := &Mesh{
		Cells: Cells{
			V: make([][]int, pointsN),
			C: make([][]int, pointsN),
			B: make([]uint8, pointsN),
		},
		Vertices: Vertices{
			P: make([]Point, nt),
			V: make([][3]int, nt),
			C: make([][3]int, nt),
		},
	}
	cellDone := make([]bool, pointsN)
	vertexDone := make([]bool, nt)

	for e := range triangles {
		p := triangles[delaunay.NextHalfedge(e)]
		if p < pointsN && !cellDone[p] {
			cellDone[p] = true
			edges := edgesAroundPoint(halfedges, e)
			v := make([]int, len(edges))
			c := make([]int, 0, len(edges))
			for i, edge := range edges {
				v[i] = delaunay.TriangleOfEdge(edge)
				if n := triangles[edge]; n < pointsN {
					c = append(c, n)
				}
			}
			m.Cells.V[p] = v
			m.Cells.C[p] = c
			if len(edges) > len(c) {
				m.Cells.B[p] = 1
			}
		}

		t := delaunay.TriangleOfEdge(e)
		if !vertexDone[t] {
			vertexDone[t] = true
			a, b, c := triangles[3*t], triangles[3*t+1], triangles[3*t+2]
			m.Vertices.P[t] = circumcenter(tr.Coords, a, b, c)
			m.Vertices.V[t] = [3]int{
				delaunay.TriangleOfEdge(halfedges[3*t]),
				delaunay.TriangleOfEdge(halfedges[3*t+1]),
				delaunay.TriangleOfEdge(halfedges[3*t+2]),
			}
			m.Vertices.C[t] = [3]int{a, b, c}
		}
	}
	return m
}

func edgesAroundPoint(halfedges []int, start int) []int {
	var out []int
	incoming := start
	for {
		out = append(out, incoming)
		incoming = halfedges[delaunay.NextHalfedge(incoming)]
		if incoming == -1 || incoming == start || len(out) >= maxFan {
			break
		}
	}
	return out
}

// circumcenter is floored on both axes; downstream geometry depends on the
// snapped coordinates.
func circumcenter(coords []float64, a, b, c int) Point {
	ax, ay := coords[2*a], coords[2*a+1]
	bx, by := coords[2*b], coords[2*b+1]
	cx, cy := coords[2*c], coords[2*c+1]
	ad := ax*ax + ay*ay
	bd := bx*bx + by*by
	cd := cx*cx + cy*cy
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	return Point{
		X: math.Floor(1 / d * (ad*(by-cy) + bd*(cy-ay) + cd*(ay-by))),
		Y: math.Floor(1 / d * (ad*(cx-bx) + bd*(ax-cx) + cd*(bx-ax))),
	}
}

// CellCount returns the number of Voronoi cells.
func (m *Mesh) CellCount() int { return len(m.Cells.C) }

// Polygon returns the vertex coordinates bounding cell i in fan order.
func (m *Mesh) Polygon(i int) []Point {
	out := make([]Point, len(m.Cells.V[i]))
	for k, v := range m.Cells.V[i] {
		out[k] = m.Vertices.P[v]
	}
	return out
}

// PolygonArea returns the signed area of a ring. The sign follows the ring
// orientation.
func PolygonArea(ring []Point) float64 {
	if len(ring) == 0 {
		return 0
	}
	var area float64
	b := ring[len(ring)-1]
	for _, p := range ring {
		a := b
		b = p
		area += a.Y*b.X - a.X*b.Y
	}
	return area / 2
}
