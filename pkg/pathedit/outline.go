package pathedit

import (
	"pathworks/pkg/document"
	"pathworks/pkg/path"
)

// OutlineStroke converts a stroked path into a filled outline: the outer
// offset at +width/2 concatenated with the reversed inner offset at -width/2,
// closed into one fill path painted with the stroke color.
//
// This is an approximation: true stroke outlining generates cap and join
// contours, which this does not. An element without a stroke, or with too few
// anchors, is a no-op returning nil.
func OutlineStroke(el *document.PathElement) *document.PathElement {
	if el.Stroke == nil || el.Stroke.Width <= 0 {
		return nil
	}
	if len(el.Anchors()) < 2 {
		return nil
	}

	half := el.Stroke.Width / 2
	outer := Offset(el, half).Anchors()
	inner := reverseAnchors(Offset(el, -half).Anchors())

	outline := append(outer, inner...)

	result := el.Derive(path.AnchorsToCommands(outline, true), true)
	strokeColor := el.Stroke.Color
	result.Fill = &document.Fill{Color: &strokeColor}
	result.Stroke = nil
	return result
}
