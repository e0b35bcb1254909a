package pack

import (
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/rtree"

	"landmass/internal/mesh"
)

// Index answers nearest-cell queries over pack points.
type Index struct {
	tree   *rtree.RTree
	points []mesh.Point
}

// NewIndex bulk loads points into an R-tree keyed by point index.
func NewIndex(points []mesh.Point) *Index {
	items := make([]rtree.BulkItem, len(points))
	for i, p := range points {
		items[i] = rtree.BulkItem{
			Box:      rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y},
			RecordID: i,
		}
	}
	return &Index{tree: rtree.BulkLoad(items), points: points}
}

// Find returns the index of the point closest to (x, y). A positive radius
// limits the search to points strictly closer than radius. Equidistant
// points resolve to the lowest index. Find returns -1 when nothing
// qualifies.
func (ix *Index) Find(x, y, radius float64) int {
	if ix == nil || len(ix.points) == 0 {
		return -1
	}
	limit := math.Inf(1)
	if radius > 0 {
		limit = radius * radius
	}

	best := -1
	bestDist := limit
	origin := rtree.Box{MinX: x, MinY: y, MaxX: x, MaxY: y}
	err := ix.tree.PrioritySearch(origin, func(id int) error {
		p := ix.points[id]
		d := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
		switch {
		case d > bestDist || (best == -1 && d >= limit):
			return rtree.Stop
		case d < bestDist:
			best, bestDist = id, d
		case id < best:
			best = id
		}
		return nil
	})
	if err != nil {
		// the callback only ever returns nil or rtree.Stop
		panic(fmt.Sprintf("pack: nearest-cell search: %v", err))
	}
	return best
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return len(ix.points) }
