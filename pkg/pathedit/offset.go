package pathedit

import (
	"math"

	"pathworks/pkg/cfg"
	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// outwardNormal maps a segment direction to the normal pointing away from the
// interior of a clockwise ring in the y-down convention, so a positive offset
// distance grows a clockwise shape.
func outwardNormal(d geometry.Vector2) geometry.Vector2 {
	return geometry.Vector2{X: d.Y, Y: -d.X}
}

// Offset returns a new element displaced by distance along the per-anchor
// averaged normal, with miter correction. Handles translate with their
// anchor, keeping length and direction. Where adjacent segment directions are
// anti-parallel the averaged normal vanishes; the raw offset distance along
// one segment normal is used instead of the miter-corrected one.
//
// The result is a derived shape with a fresh identity. Fewer than 2 anchors
// is a no-op returning the input.
func Offset(el *document.PathElement, distance float64) *document.PathElement {
	anchors := el.Anchors()
	if len(anchors) < 2 {
		return el
	}

	out := make([]path.Anchor, len(anchors))
	for i, a := range anchors {
		prev, next := neighborIndices(i, len(anchors), el.Closed)

		var n1, n2 geometry.Vector2
		haveN1, haveN2 := false, false
		if prev >= 0 {
			d := a.Pos.Minus(anchors[prev].Pos).Normalize()
			if d.Magnitude() > 0 {
				n1 = outwardNormal(d)
				haveN1 = true
			}
		}
		if next >= 0 {
			d := anchors[next].Pos.Minus(a.Pos).Normalize()
			if d.Magnitude() > 0 {
				n2 = outwardNormal(d)
				haveN2 = true
			}
		}

		var displacement geometry.Vector2
		switch {
		case haveN1 && haveN2:
			avg := n1.Add(n2)
			if avg.Magnitude() < cfg.GeomEpsilon {
				// Anti-parallel segments: no miter direction exists, fall
				// back to the raw distance along one normal.
				displacement = n1.Scale(distance)
			} else {
				unit := avg.Normalize()
				// Miter correction: cos of the half-angle between the
				// segment normals.
				cos := unit.Dot(n1)
				if math.Abs(cos) < cfg.GeomEpsilon {
					displacement = unit.Scale(distance)
				} else {
					displacement = unit.Scale(distance / cos)
				}
			}
		case haveN1:
			displacement = n1.Scale(distance)
		case haveN2:
			displacement = n2.Scale(distance)
		default:
			// Coincident neighbors; leave the anchor in place.
		}

		moved := a.Clone()
		moved.Pos = a.Pos.Add(displacement)
		if a.HandleIn != nil {
			h := moved.Pos.Add(a.HandleIn.Minus(a.Pos))
			moved.HandleIn = &h
		}
		if a.HandleOut != nil {
			h := moved.Pos.Add(a.HandleOut.Minus(a.Pos))
			moved.HandleOut = &h
		}
		out[i] = moved
	}

	return el.Derive(path.AnchorsToCommands(out, el.Closed), el.Closed)
}
