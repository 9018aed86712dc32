package pathedit

import (
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// smoothHandleFactor scales the distance to a neighbor into a handle length.
const smoothHandleFactor = 0.4

// Smooth replaces every anchor's handles with tangent-aligned ones. The
// tangent is normalize(direction-to-next minus direction-to-previous); each
// side's handle length is smoothHandleFactor * smoothness * distance to that
// neighbor, so the two handles are independent in length but share a
// direction. All anchors come out Smooth; prior corner or symmetric kinds are
// not preserved. The element keeps its identity.
func Smooth(el *document.PathElement, smoothness float64) *document.PathElement {
	anchors := el.Anchors()
	if len(anchors) < 2 {
		return el
	}
	if smoothness < 0 {
		smoothness = 0
	} else if smoothness > 1 {
		smoothness = 1
	}

	out := make([]path.Anchor, len(anchors))
	for i, a := range anchors {
		tangent := smoothTangent(anchors, i, el.Closed)
		prev, next := neighborIndices(i, len(anchors), el.Closed)

		smoothed := path.Anchor{Pos: a.Pos, Kind: path.Smooth}
		if tangent.Magnitude() > 0 {
			if next >= 0 {
				length := smoothHandleFactor * smoothness * a.Pos.Distance(anchors[next].Pos)
				h := a.Pos.Add(tangent.Scale(length))
				smoothed.HandleOut = &h
			}
			if prev >= 0 {
				length := smoothHandleFactor * smoothness * a.Pos.Distance(anchors[prev].Pos)
				h := a.Pos.Add(tangent.Scale(-length))
				smoothed.HandleIn = &h
			}
		}
		out[i] = smoothed
	}

	result := el.Clone()
	result.SetAnchors(out)
	return result
}

// Simplify reduces the anchor count with Douglas-Peucker over the anchor
// positions, measuring perpendicular distance to the chord. Handles are
// ignored and the surviving anchors come out as corners: the bezier shape is
// discarded by design. A tolerance of zero keeps every anchor. The element
// keeps its identity.
func Simplify(el *document.PathElement, tolerance float64) *document.PathElement {
	anchors := el.Anchors()
	if len(anchors) < 3 {
		return el
	}

	line := make(geometry.Polyline, len(anchors))
	for i, a := range anchors {
		line[i] = a.Pos
	}

	kept := line.Simplify(tolerance)

	out := make([]path.Anchor, len(kept))
	for i, p := range kept {
		out[i] = path.Anchor{Pos: p, Kind: path.Corner}
	}

	result := el.Clone()
	result.SetAnchors(out)
	return result
}
