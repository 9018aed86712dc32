package pathedit

import (
	"math"

	"github.com/asim/quadtree"

	"pathworks/pkg/cfg"
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

var zeroPoint = quadtree.NewPoint(0, 0, nil)

// endpointIndex is a quadtree over the endpoints of open paths, used to find
// join candidates without comparing every pair.
type endpointIndex struct {
	quadTree *quadtree.QuadTree
}

func newEndpointIndex(bounds geometry.Rect) *endpointIndex {
	midX := (bounds.Max.X + bounds.Min.X) / 2
	midY := (bounds.Max.Y + bounds.Min.Y) / 2
	halfWidth := bounds.Max.X - midX
	halfHeight := bounds.Max.Y - midY

	// Add a small margin to avoid dropping endpoints at the edges
	halfWidth += 10
	halfHeight += 10

	aabb := quadtree.NewAABB(
		quadtree.NewPoint(midX, midY, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	return &endpointIndex{quadTree: quadtree.New(aabb, 0, nil)}
}

func elementEndpoints(el *document.PathElement) (geometry.Point, geometry.Point) {
	return path.StartPoint(el.Commands), path.EndPoint(el.Commands)
}

func endpointDistance(p geometry.Point, el *document.PathElement) float64 {
	start, end := elementEndpoints(el)
	return math.Min(p.Distance(start), p.Distance(end))
}

func (t *endpointIndex) add(el *document.PathElement) {
	if len(el.Commands) == 0 {
		return
	}

	addOne := func(p geometry.Point) {
		point := quadtree.NewPoint(p.X, p.Y, nil)
		points := t.quadTree.KNearest(quadtree.NewAABB(point, zeroPoint), 1, nil)
		if len(points) > 0 {
			x, y := points[0].Coordinates()
			if x == p.X && y == p.Y {
				// Add the element to the existing set
				set := points[0].Data().(map[*document.PathElement]struct{})
				set[el] = struct{}{}
				return
			}
		}
		set := map[*document.PathElement]struct{}{el: {}}
		t.quadTree.Insert(quadtree.NewPoint(p.X, p.Y, set))
	}

	start, end := elementEndpoints(el)
	addOne(start)
	addOne(end)
}

func (t *endpointIndex) remove(el *document.PathElement) {
	removeOne := func(p geometry.Point) {
		point := quadtree.NewPoint(p.X, p.Y, nil)
		points := t.quadTree.KNearest(quadtree.NewAABB(point, zeroPoint), 1, nil)
		if len(points) > 0 {
			x, y := points[0].Coordinates()
			if x == p.X && y == p.Y {
				set := points[0].Data().(map[*document.PathElement]struct{})
				delete(set, el)
				if len(set) == 0 {
					t.quadTree.Remove(points[0])
				}
			}
		}
	}
	start, end := elementEndpoints(el)
	removeOne(start)
	removeOne(end)
}

// neighbors returns the elements, other than el, with an endpoint within
// maxDist of p.
func (t *endpointIndex) neighbors(el *document.PathElement, p geometry.Point, maxDist float64) []*document.PathElement {
	var found []*document.PathElement
	nearAABB := quadtree.NewAABB(
		quadtree.NewPoint(p.X, p.Y, nil),
		quadtree.NewPoint(maxDist, maxDist, nil),
	)
	for _, point := range t.quadTree.Search(nearAABB) {
		set := point.Data().(map[*document.PathElement]struct{})
		for other := range set {
			if other != el && endpointDistance(p, other) <= maxDist {
				found = append(found, other)
			}
		}
	}
	return found
}

// MergeNearby repeatedly joins open paths whose endpoints lie within maxDist
// of each other, returning the merged element set. Closed paths pass through
// untouched. A maxDist of zero or less uses cfg.MergeMaxDistance. Inputs
// consumed by a join are dropped; each join produces a fresh derived element.
func MergeNearby(elements []*document.PathElement, maxDist float64) []*document.PathElement {
	if maxDist <= 0 {
		maxDist = cfg.MergeMaxDistance
	}

	bounds := geometry.Rect{}
	first := true
	alive := map[*document.PathElement]bool{}
	var open []*document.PathElement
	var result []*document.PathElement
	for _, el := range elements {
		if el.Closed || len(el.Commands) == 0 {
			result = append(result, el)
			continue
		}
		open = append(open, el)
		alive[el] = true
		b := path.Bounds(el.Commands)
		if first {
			bounds = b
			first = false
		} else {
			bounds.Min.X = math.Min(bounds.Min.X, b.Min.X)
			bounds.Min.Y = math.Min(bounds.Min.Y, b.Min.Y)
			bounds.Max.X = math.Max(bounds.Max.X, b.Max.X)
			bounds.Max.Y = math.Max(bounds.Max.Y, b.Max.Y)
		}
	}

	tree := newEndpointIndex(bounds)
	for _, el := range open {
		tree.add(el)
	}

	tryMerge := func(el *document.PathElement) (*document.PathElement, bool) {
		start, end := elementEndpoints(el)
		for _, p := range []geometry.Point{start, end} {
			candidates := tree.neighbors(el, p, maxDist)
			// Only merge unambiguous pairs. N-way meeting points are left
			// alone rather than joined arbitrarily.
			if len(candidates) != 1 {
				continue
			}
			other := candidates[0]
			joined := Join(el, other)
			if joined == nil {
				continue
			}
			tree.remove(el)
			tree.remove(other)
			tree.add(joined)
			alive[el] = false
			alive[other] = false
			alive[joined] = true
			return joined, true
		}
		return el, false
	}

	for _, el := range open {
		if !alive[el] {
			continue
		}
		current := el
		for {
			next, merged := tryMerge(current)
			if !merged {
				break
			}
			current = next
		}
	}

	for _, el := range open {
		if alive[el] {
			result = append(result, el)
		}
	}
	// Joined results are not in the original order; append them last.
	seen := map[*document.PathElement]bool{}
	for _, el := range open {
		seen[el] = true
	}
	for el, ok := range alive {
		if ok && !seen[el] {
			result = append(result, el)
		}
	}
	return result
}
