// Package pathedit implements the path manipulation operations. Every
// operation takes its input element read-only and returns new elements;
// unmet preconditions (bad index, too few anchors, missing stroke) make the
// operation a no-op that returns the input unchanged or nil, never a panic.
// Invalid gestures are routine during interactive editing and must not take
// the session down.
package pathedit

import (
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// reverseAnchors reverses anchor order and swaps each anchor's handles.
func reverseAnchors(anchors []path.Anchor) []path.Anchor {
	out := make([]path.Anchor, len(anchors))
	for i, a := range anchors {
		c := a.Clone()
		c.HandleIn, c.HandleOut = c.HandleOut, c.HandleIn
		out[len(anchors)-1-i] = c
	}
	return out
}

// Reverse returns a copy of the element with its direction flipped. The
// element keeps its identity: reversal is an edit, not a derived shape.
func Reverse(el *document.PathElement) *document.PathElement {
	out := el.Clone()
	out.SetAnchors(reverseAnchors(el.Anchors()))
	return out
}

// neighborIndices returns the previous and next anchor indices for anchor i,
// wrapping when the path is closed. A missing neighbor is -1.
func neighborIndices(i, n int, closed bool) (prev, next int) {
	prev, next = i-1, i+1
	if closed {
		prev = (i - 1 + n) % n
		next = (i + 1) % n
	} else {
		if prev < 0 {
			prev = -1
		}
		if next >= n {
			next = -1
		}
	}
	return prev, next
}

// smoothTangent computes the shared tangent direction at an anchor from the
// directions to its neighbors: normalize(dirNext - dirPrev). A missing
// neighbor contributes nothing.
func smoothTangent(anchors []path.Anchor, i int, closed bool) geometry.Vector2 {
	prev, next := neighborIndices(i, len(anchors), closed)
	var dirPrev, dirNext geometry.Vector2
	if prev >= 0 {
		dirPrev = anchors[prev].Pos.Minus(anchors[i].Pos).Normalize()
	}
	if next >= 0 {
		dirNext = anchors[next].Pos.Minus(anchors[i].Pos).Normalize()
	}
	return dirNext.Minus(dirPrev).Normalize()
}
