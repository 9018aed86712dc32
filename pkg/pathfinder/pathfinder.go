// Package pathfinder combines closed path elements with boolean operations.
// Inputs are flattened to clockwise polygons at a fixed curve resolution, so
// results are straight-line rings; curve fidelity of the inputs is not
// restored. The traversal is iteration-capped: pathological inputs yield a
// best-effort ring rather than a hang.
package pathfinder

import (
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

type Op int

const (
	Unite Op = iota
	Subtract
	Intersect
	Exclude
	Divide
)

func (op Op) String() string {
	switch op {
	case Unite:
		return "unite"
	case Subtract:
		return "subtract"
	case Intersect:
		return "intersect"
	case Exclude:
		return "exclude"
	case Divide:
		return "divide"
	}
	return "unknown"
}

// combineRings applies the binary operation to two clockwise rings. Exclude
// and divide are compositions: exclude is (A-B) with (B-A), divide adds the
// intersection as its own ring.
func combineRings(op Op, a, b geometry.Polygon) []geometry.Polygon {
	switch op {
	case Unite:
		return unite(a, b)
	case Subtract:
		return subtract(a, b)
	case Intersect:
		return intersect(a, b)
	case Exclude:
		return append(subtract(a, b), subtract(b, a)...)
	case Divide:
		out := intersect(a, b)
		out = append(out, subtract(a, b)...)
		return append(out, subtract(b, a)...)
	}
	return nil
}

// flattenClockwise turns an element into the canonical clipping input: a
// flattened ring normalized to clockwise winding. A degenerate element yields
// nil.
func flattenClockwise(el *document.PathElement) geometry.Polygon {
	ring := path.Flatten(el.Commands, 0)
	if len(ring) < 3 {
		return nil
	}
	if !ring.IsClockwise() {
		ring = ring.Reverse()
	}
	return ring
}

// Apply combines the elements with op, reducing left to right: the running
// ring set is combined with each further element in turn, and every step
// replaces the set with the full output of the previous one, so exclude and
// divide can grow a fragment list. Each ring becomes a new closed element
// derived from the first input, inheriting its fill and stroke. Fewer than
// two usable elements is a no-op returning the inputs unchanged.
func Apply(op Op, elements []*document.PathElement) []*document.PathElement {
	if len(elements) < 2 {
		return elements
	}

	first := elements[0]
	ring := flattenClockwise(first)
	if ring == nil {
		return elements
	}

	running := []geometry.Polygon{ring}
	for _, el := range elements[1:] {
		next := flattenClockwise(el)
		if next == nil {
			continue
		}
		var folded []geometry.Polygon
		for _, r := range running {
			folded = append(folded, combineRings(op, r, next)...)
		}
		running = folded
	}

	var out []*document.PathElement
	for _, r := range running {
		if len(r) < 3 {
			continue
		}
		cmds := make([]path.Command, 0, len(r)+1)
		cmds = append(cmds, path.MoveTo{P: r[0]})
		for _, p := range r[1:] {
			cmds = append(cmds, path.LineTo{P: p})
		}
		cmds = append(cmds, path.Close{})
		out = append(out, first.Derive(cmds, true))
	}
	return out
}
