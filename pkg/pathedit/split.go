package pathedit

import (
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// SplitAtAnchor splits an element at an anchor. An open path yields two open
// paths: the first ends at the split anchor, the second starts from it, and
// the pieces share no anchor objects (the split anchor's outgoing handle goes
// to the second piece). A closed path is opened into a single path starting
// and ending at the anchor.
//
// Splitting an open path at either endpoint is invalid and returns nil.
func SplitAtAnchor(el *document.PathElement, anchorIndex int) []*document.PathElement {
	anchors := el.Anchors()
	n := len(anchors)
	if anchorIndex < 0 || anchorIndex >= n {
		return nil
	}

	if el.Closed {
		// Rotate the ring so it starts and ends on the split anchor.
		rotated := make([]path.Anchor, 0, n+1)
		for i := 0; i < n; i++ {
			rotated = append(rotated, anchors[(anchorIndex+i)%n].Clone())
		}
		closing := anchors[anchorIndex].Clone()
		closing.HandleOut = nil
		rotated[0].HandleIn = nil
		rotated = append(rotated, closing)
		return []*document.PathElement{
			el.Derive(path.AnchorsToCommands(rotated, false), false),
		}
	}

	if anchorIndex == 0 || anchorIndex == n-1 {
		return nil
	}

	first := path.CloneAnchors(anchors[:anchorIndex+1])
	first[len(first)-1].HandleOut = nil
	second := path.CloneAnchors(anchors[anchorIndex:])
	second[0].HandleIn = nil

	return []*document.PathElement{
		el.Derive(path.AnchorsToCommands(first, false), false),
		el.Derive(path.AnchorsToCommands(second, false), false),
	}
}

// splitSegment subdivides the segment leaving anchors[seg] at parameter t,
// returning the adjusted from/to anchors plus the new anchor between them.
// Curved segments are split with de Casteljau's construction (a lone
// quadratic handle is elevated to its exact cubic first); straight segments
// interpolate linearly.
func splitSegment(from, to path.Anchor, t float64) (path.Anchor, path.Anchor, path.Anchor) {
	from = from.Clone()
	to = to.Clone()

	hOut, hIn := from.HandleOut, to.HandleIn
	if hOut == nil && hIn == nil {
		mid := path.Anchor{Pos: from.Pos.Lerp(to.Pos, t), Kind: path.Corner}
		return from, mid, to
	}

	var c geometry.Cubic
	switch {
	case hOut != nil && hIn != nil:
		c = geometry.Cubic{P0: from.Pos, P1: *hOut, P2: *hIn, P3: to.Pos}
	case hOut != nil:
		c = geometry.QuadraticToCubic(from.Pos, *hOut, to.Pos)
	default:
		c = geometry.QuadraticToCubic(from.Pos, *hIn, to.Pos)
	}

	left, right := geometry.SplitCubic(c.P0, c.P1, c.P2, c.P3, t)

	from.HandleOut = &left.P1
	mid := path.Anchor{
		Pos:       left.P3,
		HandleIn:  &left.P2,
		HandleOut: &right.P1,
		Kind:      path.Smooth,
	}
	to.HandleIn = &right.P2
	return from, mid, to
}

// segmentEndpoints resolves segment index seg to its anchor indices, where
// segment i runs from anchor i to anchor i+1 and a closed path has a final
// segment from the last anchor back to anchor 0. ok is false for an invalid
// index.
func segmentEndpoints(seg, n int, closed bool) (from, to int, ok bool) {
	segments := n - 1
	if closed {
		segments = n
	}
	if n < 2 || seg < 0 || seg >= segments {
		return 0, 0, false
	}
	return seg, (seg + 1) % n, true
}

// SplitAtParameter splits the element in the middle of a segment: at t along
// segment seg. An open path yields two open paths sharing the new anchor's
// position; a closed path is opened at the split point into a single path.
// Out-of-range indices or parameters return nil.
func SplitAtParameter(el *document.PathElement, seg int, t float64) []*document.PathElement {
	anchors := el.Anchors()
	fromIdx, toIdx, ok := segmentEndpoints(seg, len(anchors), el.Closed)
	if !ok || t < 0 || t > 1 {
		return nil
	}

	from, mid, to := splitSegment(anchors[fromIdx], anchors[toIdx], t)

	if el.Closed {
		// Unroll the ring starting after the split point and ending at it.
		opened := []path.Anchor{func() path.Anchor {
			a := mid.Clone()
			a.HandleIn = nil
			return a
		}()}
		opened = append(opened, to)
		n := len(anchors)
		for i := (toIdx + 1) % n; i != fromIdx; i = (i + 1) % n {
			opened = append(opened, anchors[i].Clone())
		}
		opened = append(opened, from)
		ending := mid.Clone()
		ending.HandleOut = nil
		opened = append(opened, ending)
		return []*document.PathElement{
			el.Derive(path.AnchorsToCommands(opened, false), false),
		}
	}

	first := path.CloneAnchors(anchors[:fromIdx])
	first = append(first, from)
	endMid := mid.Clone()
	endMid.HandleOut = nil
	first = append(first, endMid)

	startMid := mid.Clone()
	startMid.HandleIn = nil
	second := []path.Anchor{startMid, to}
	second = append(second, path.CloneAnchors(anchors[toIdx+1:])...)

	return []*document.PathElement{
		el.Derive(path.AnchorsToCommands(first, false), false),
		el.Derive(path.AnchorsToCommands(second, false), false),
	}
}

// Join concatenates two open paths, picking whichever of the four
// endpoint pairings is closest and reversing one or both paths as needed so
// they run start to end. The result is always open and is a new derived
// element styled like a. Closed inputs are a no-op returning nil.
func Join(a, b *document.PathElement) *document.PathElement {
	if a.Closed || b.Closed {
		return nil
	}
	as := a.Anchors()
	bs := b.Anchors()
	if len(as) == 0 {
		return b.Derive(path.AnchorsToCommands(bs, false), false)
	}
	if len(bs) == 0 {
		return a.Derive(path.AnchorsToCommands(as, false), false)
	}

	aStart, aEnd := as[0].Pos, as[len(as)-1].Pos
	bStart, bEnd := bs[0].Pos, bs[len(bs)-1].Pos

	type pairing struct {
		dist   float64
		revA   bool
		revB   bool
		bFirst bool
	}
	pairings := []pairing{
		{dist: aEnd.Distance(bStart)},               // A then B
		{dist: aEnd.Distance(bEnd), revB: true},     // A then reversed B
		{dist: aStart.Distance(bStart), revA: true}, // reversed A then B
		{dist: aStart.Distance(bEnd), bFirst: true}, // B then A
	}
	best := pairings[0]
	for _, p := range pairings[1:] {
		if p.dist < best.dist {
			best = p
		}
	}

	first, second := path.CloneAnchors(as), path.CloneAnchors(bs)
	if best.revA {
		first = reverseAnchors(first)
	}
	if best.revB {
		second = reverseAnchors(second)
	}
	if best.bFirst {
		first, second = second, first
	}

	joined := append(first, second...)
	return a.Derive(path.AnchorsToCommands(joined, false), false)
}
