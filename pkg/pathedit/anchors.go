package pathedit

import (
	"pathworks/pkg/cfg"
	"pathworks/pkg/document"
	"pathworks/pkg/path"
)

// ConvertToCorner clears both handles of the anchor, making its joins sharp.
// An out-of-range index is a no-op returning the input. Identity preserved.
func ConvertToCorner(el *document.PathElement, anchorIndex int) *document.PathElement {
	anchors := el.Anchors()
	if anchorIndex < 0 || anchorIndex >= len(anchors) {
		return el
	}

	anchors[anchorIndex].HandleIn = nil
	anchors[anchorIndex].HandleOut = nil
	anchors[anchorIndex].Kind = path.Corner

	out := el.Clone()
	out.SetAnchors(anchors)
	return out
}

// ConvertToSmooth gives the anchor symmetric handles of handleLength on each
// side, aligned with the tangent computed from its neighbor directions. A
// handleLength of zero or less uses cfg.DefaultHandleLength. Identity
// preserved.
func ConvertToSmooth(el *document.PathElement, anchorIndex int, handleLength float64) *document.PathElement {
	anchors := el.Anchors()
	if anchorIndex < 0 || anchorIndex >= len(anchors) || len(anchors) < 2 {
		return el
	}
	if handleLength <= 0 {
		handleLength = cfg.DefaultHandleLength
	}

	tangent := smoothTangent(anchors, anchorIndex, el.Closed)
	if tangent.Magnitude() == 0 {
		return el
	}

	a := &anchors[anchorIndex]
	hOut := a.Pos.Add(tangent.Scale(handleLength))
	hIn := a.Pos.Add(tangent.Scale(-handleLength))
	a.HandleOut = &hOut
	a.HandleIn = &hIn
	a.Kind = path.Symmetric

	out := el.Clone()
	out.SetAnchors(anchors)
	return out
}

// InsertAnchor adds an anchor at parameter t along segment seg, subdividing
// the segment without breaking the path apart. The curve shape is preserved
// exactly for straight and cubic segments. Invalid indices are a no-op.
// Identity preserved.
func InsertAnchor(el *document.PathElement, seg int, t float64) *document.PathElement {
	anchors := el.Anchors()
	fromIdx, toIdx, ok := segmentEndpoints(seg, len(anchors), el.Closed)
	if !ok || t < 0 || t > 1 {
		return el
	}

	from, mid, to := splitSegment(anchors[fromIdx], anchors[toIdx], t)
	anchors[fromIdx] = from
	anchors[toIdx] = to

	out := make([]path.Anchor, 0, len(anchors)+1)
	out = append(out, anchors[:fromIdx+1]...)
	out = append(out, mid)
	if toIdx > fromIdx {
		out = append(out, anchors[toIdx:]...)
	}
	// When the split segment is a closed path's wrap-around segment
	// (toIdx == 0), the new anchor simply goes last.

	result := el.Clone()
	result.SetAnchors(out)
	return result
}

// DeleteAnchor removes the anchor at the given index, merging its two
// segments. Deletion refuses to shrink the path below 2 anchors; an invalid
// index or too-small path returns the input. Identity preserved.
func DeleteAnchor(el *document.PathElement, anchorIndex int) *document.PathElement {
	anchors := el.Anchors()
	if anchorIndex < 0 || anchorIndex >= len(anchors) || len(anchors) <= 2 {
		return el
	}

	out := append(path.CloneAnchors(anchors[:anchorIndex]), path.CloneAnchors(anchors[anchorIndex+1:])...)

	result := el.Clone()
	result.SetAnchors(out)
	return result
}
