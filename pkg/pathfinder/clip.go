package pathfinder

import (
	"pathworks/pkg/cfg"
	"pathworks/pkg/geometry"
)

// crossing is one intersection between an edge of ring A and an edge of ring
// B, with its parametric position on each ring for ordered insertion.
type crossing struct {
	p            geometry.Point
	aEdge, bEdge int
	aT, bT       float64
}

// findCrossings runs the all-pairs segment test between the two rings' edges,
// including the implicit closing edges. Near-parallel edge pairs produce no
// crossing.
func findCrossings(a, b geometry.Polygon) []crossing {
	var xs []crossing
	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			b1, b2 := b[j], b[(j+1)%len(b)]
			p, ok := geometry.SegmentIntersection(a1, a2, b1, b2)
			if !ok {
				continue
			}
			xs = append(xs, crossing{
				p:     p,
				aEdge: i, aT: edgeParameter(a1, a2, p),
				bEdge: j, bT: edgeParameter(b1, b2, p),
			})
		}
	}
	return xs
}

func edgeParameter(from, to, p geometry.Point) float64 {
	d := to.Minus(from)
	length := d.Magnitude()
	if length == 0 {
		return 0
	}
	return p.Minus(from).Magnitude() / length
}

// augNode is a vertex of an augmented ring: an original polygon vertex
// (x == -1) or an inserted crossing identified by its index into the
// crossing list.
type augNode struct {
	p geometry.Point
	x int
}

// augment builds the ring's vertex list with crossings spliced into their
// edges in parametric order, and returns the augmented position of each
// crossing.
func augment(ring geometry.Polygon, xs []crossing, onA bool) ([]augNode, []int) {
	pos := make([]int, len(xs))
	var nodes []augNode
	for i, v := range ring {
		nodes = append(nodes, augNode{p: v, x: -1})

		var onEdge []int
		for k, x := range xs {
			edge := x.bEdge
			if onA {
				edge = x.aEdge
			}
			if edge == i {
				onEdge = append(onEdge, k)
			}
		}
		// Insertion sort by parameter; edges rarely carry more than a couple
		// of crossings.
		for n := 1; n < len(onEdge); n++ {
			for m := n; m > 0 && param(xs[onEdge[m]], onA) < param(xs[onEdge[m-1]], onA); m-- {
				onEdge[m], onEdge[m-1] = onEdge[m-1], onEdge[m]
			}
		}
		for _, k := range onEdge {
			pos[k] = len(nodes)
			nodes = append(nodes, augNode{p: xs[k].p, x: k})
		}
	}
	return nodes, pos
}

func param(x crossing, onA bool) float64 {
	if onA {
		return x.aT
	}
	return x.bT
}

// classifyArcs reports, for each augmented node, whether the arc leaving it
// toward the next node runs inside the other ring, judged by the arc
// midpoint.
func classifyArcs(nodes []augNode, other geometry.Polygon) []bool {
	inside := make([]bool, len(nodes))
	for i := range nodes {
		next := nodes[(i+1)%len(nodes)]
		mid := nodes[i].p.Lerp(next.p, 0.5)
		inside[i] = other.Contains(mid)
	}
	return inside
}

// traceRings walks the two augmented rings, switching rings at every
// crossing. Arcs of A are kept when their insideness of B equals wantAInside;
// the walk starts only on such arcs. dirB is +1 to traverse B forward and -1
// to traverse it reversed, which turns an intersection-style walk into a
// difference. Each walk is capped; hitting the cap emits the partial ring
// built so far.
func traceRings(a, b geometry.Polygon, xs []crossing, wantAInside bool, dirB int) []geometry.Polygon {
	augA, posA := augment(a, xs, true)
	augB, posB := augment(b, xs, false)
	insideArcA := classifyArcs(augA, b)

	maxIterations := (len(a) + len(b) + len(xs)) * cfg.TraversalCapFactor
	visited := make([]bool, len(xs))
	var out []geometry.Polygon

	for start := range xs {
		if visited[start] || insideArcA[posA[start]] != wantAInside {
			continue
		}
		visited[start] = true

		ring := geometry.Polygon{xs[start].p}
		onA := true
		pos := posA[start]
		for step := 0; step < maxIterations; step++ {
			var node augNode
			if onA {
				pos = (pos + 1) % len(augA)
				node = augA[pos]
			} else {
				pos = (pos + dirB + len(augB)) % len(augB)
				node = augB[pos]
			}

			if node.x < 0 {
				ring = append(ring, node.p)
				continue
			}
			if node.x == start {
				break
			}
			visited[node.x] = true
			ring = append(ring, node.p)
			if onA {
				pos = posB[node.x]
			} else {
				pos = posA[node.x]
			}
			onA = !onA
		}
		// A capped walk falls through here and still emits its partial ring.

		if len(ring) >= 3 {
			out = append(out, ring)
		}
	}
	return out
}

// containment classifies two crossing-free rings.
type containment int

const (
	disjoint containment = iota
	aInsideB
	bInsideA
)

func classifyContainment(a, b geometry.Polygon) containment {
	if b.Contains(a[0]) {
		return aInsideB
	}
	if a.Contains(b[0]) {
		return bInsideA
	}
	return disjoint
}

func unite(a, b geometry.Polygon) []geometry.Polygon {
	xs := findCrossings(a, b)
	if len(xs) == 0 {
		switch classifyContainment(a, b) {
		case aInsideB:
			return []geometry.Polygon{b}
		case bInsideA:
			return []geometry.Polygon{a}
		default:
			return []geometry.Polygon{a, b}
		}
	}
	if rings := traceRings(a, b, xs, false, 1); len(rings) > 0 {
		return rings
	}
	return []geometry.Polygon{a, b}
}

// subtract computes A minus B. A ring of B fully inside A would punch a hole,
// which a single vertex ring cannot represent; A is returned unchanged in
// that case.
func subtract(a, b geometry.Polygon) []geometry.Polygon {
	xs := findCrossings(a, b)
	if len(xs) == 0 {
		switch classifyContainment(a, b) {
		case aInsideB:
			return nil
		default:
			return []geometry.Polygon{a}
		}
	}
	if rings := traceRings(a, b, xs, false, -1); len(rings) > 0 {
		return rings
	}
	return []geometry.Polygon{a}
}

func intersect(a, b geometry.Polygon) []geometry.Polygon {
	xs := findCrossings(a, b)
	if len(xs) == 0 {
		switch classifyContainment(a, b) {
		case aInsideB:
			return []geometry.Polygon{a}
		case bInsideA:
			return []geometry.Polygon{b}
		default:
			return nil
		}
	}

	// The alternating walk is only trusted for the plain two-crossing
	// overlap. Anything more tangled falls back to a convex hull over the
	// crossing points and the vertices each ring has inside the other,
	// trading concavity fidelity for a bounded, robust answer.
	if len(xs) == 2 {
		if rings := traceRings(a, b, xs, true, 1); len(rings) > 0 {
			return rings
		}
	}
	return intersectHull(a, b, xs)
}

func intersectHull(a, b geometry.Polygon, xs []crossing) []geometry.Polygon {
	var points []geometry.Point
	for _, x := range xs {
		points = append(points, x.p)
	}
	for _, v := range a {
		if b.Contains(v) {
			points = append(points, v)
		}
	}
	for _, v := range b {
		if a.Contains(v) {
			points = append(points, v)
		}
	}
	if len(points) < 3 {
		return nil
	}
	hull := geometry.ConvexHull(points)
	if len(hull) < 3 {
		return nil
	}
	return []geometry.Polygon{hull}
}
