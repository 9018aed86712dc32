package path

import (
	"pathworks/pkg/geometry"
)

// AnchorKind classifies how an anchor joins its two curve segments.
type AnchorKind int

const (
	// Corner anchors have independent (or no) handles; the join may be sharp.
	Corner AnchorKind = iota
	// Smooth anchors share a tangent direction with independent handle lengths.
	Smooth
	// Symmetric anchors have equal-length mirrored handles.
	Symmetric
)

// Anchor is one on-curve point with optional bezier handles. It is a derived,
// transient representation: editing tools build anchors from a command
// sequence, mutate them, and convert back. Anchors are never stored.
type Anchor struct {
	Pos       geometry.Point
	HandleIn  *geometry.Point
	HandleOut *geometry.Point
	Kind      AnchorKind
}

// Clone returns a deep copy; handle pointers are not shared.
func (a Anchor) Clone() Anchor {
	c := Anchor{Pos: a.Pos, Kind: a.Kind}
	if a.HandleIn != nil {
		h := *a.HandleIn
		c.HandleIn = &h
	}
	if a.HandleOut != nil {
		h := *a.HandleOut
		c.HandleOut = &h
	}
	return c
}

// CloneAnchors deep-copies an anchor slice.
func CloneAnchors(points []Anchor) []Anchor {
	out := make([]Anchor, len(points))
	for i, a := range points {
		out[i] = a.Clone()
	}
	return out
}

// CommandsToAnchors converts a command sequence to anchor points.
//
// A cubic segment stores its first control point as the previous anchor's
// HandleOut and its second as the new anchor's HandleIn. A quadratic control
// point is recorded as the new anchor's HandleIn only; the previous anchor's
// HandleOut stays empty. This one-sided convention is what AnchorsToCommands
// inverts, so quadratic segments survive a round trip, but a path cannot
// distinguish "incoming-only" from "outgoing-only" quadratic control after
// conversion. Close emits no anchor, and a preceding segment that returns
// exactly to the start position folds into the first anchor rather than
// duplicating it. Arc segments contribute a bare corner anchor at their
// endpoint.
//
// Malformed or empty input produces fewer (possibly zero) anchors rather than
// an error; callers must tolerate short results.
func CommandsToAnchors(cmds []Command) []Anchor {
	var anchors []Anchor
	var cur geometry.Point
	var lastCubicCtrl, lastQuadCtrl *geometry.Point

	push := func(a Anchor) {
		anchors = append(anchors, a)
		cur = a.Pos
	}
	last := func() *Anchor {
		if len(anchors) == 0 {
			return nil
		}
		return &anchors[len(anchors)-1]
	}

	for _, c := range cmds {
		cubicCtrl, quadCtrl := lastCubicCtrl, lastQuadCtrl
		lastCubicCtrl, lastQuadCtrl = nil, nil

		switch cmd := c.(type) {
		case MoveTo:
			push(Anchor{Pos: cmd.P, Kind: Corner})
		case LineTo:
			push(Anchor{Pos: cmd.P, Kind: Corner})
		case HLineTo:
			push(Anchor{Pos: geometry.Point{X: cmd.X, Y: cur.Y}, Kind: Corner})
		case VLineTo:
			push(Anchor{Pos: geometry.Point{X: cur.X, Y: cmd.Y}, Kind: Corner})
		case CubicTo:
			if prev := last(); prev != nil {
				h := cmd.C1
				prev.HandleOut = &h
				prev.Kind = Smooth
			}
			hIn := cmd.C2
			push(Anchor{Pos: cmd.P, HandleIn: &hIn, Kind: Smooth})
			c2 := cmd.C2
			lastCubicCtrl = &c2
		case SmoothCubicTo:
			c1 := reflect(cubicCtrl, cur)
			if prev := last(); prev != nil {
				h := c1
				prev.HandleOut = &h
				prev.Kind = Smooth
			}
			hIn := cmd.C2
			push(Anchor{Pos: cmd.P, HandleIn: &hIn, Kind: Smooth})
			c2 := cmd.C2
			lastCubicCtrl = &c2
		case QuadTo:
			hIn := cmd.C
			push(Anchor{Pos: cmd.P, HandleIn: &hIn, Kind: Smooth})
			ctrl := cmd.C
			lastQuadCtrl = &ctrl
		case SmoothQuadTo:
			ctrl := reflect(quadCtrl, cur)
			hIn := ctrl
			push(Anchor{Pos: cmd.P, HandleIn: &hIn, Kind: Smooth})
			lastQuadCtrl = &ctrl
		case ArcTo:
			push(Anchor{Pos: cmd.P, Kind: Corner})
		case Close:
			// No new anchor; the closing segment is implied. A reconstruction
			// writes the closing segment out explicitly, targeting the start
			// position; fold that duplicate anchor back into the first so the
			// anchor count of a closed path is stable across edit cycles.
			if len(anchors) >= 2 {
				first := &anchors[0]
				last := anchors[len(anchors)-1]
				if last.Pos == first.Pos {
					first.HandleIn = last.HandleIn
					if first.HandleIn != nil && first.Kind == Corner {
						first.Kind = Smooth
					}
					anchors = anchors[:len(anchors)-1]
				}
			}
		}
	}
	return anchors
}

// AnchorsToCommands converts anchor points back to a command sequence. Each
// segment becomes a cubic when both facing handles are present, a quadratic
// when exactly one is, and a line when neither is. For a closed path the
// closing segment is synthesized from the last anchor's HandleOut and the
// first anchor's HandleIn, followed by Close.
func AnchorsToCommands(points []Anchor, closed bool) []Command {
	if len(points) == 0 {
		return nil
	}

	cmds := []Command{MoveTo{P: points[0].Pos}}

	segment := func(from, to Anchor) Command {
		hOut, hIn := from.HandleOut, to.HandleIn
		switch {
		case hOut != nil && hIn != nil:
			return CubicTo{C1: *hOut, C2: *hIn, P: to.Pos}
		case hIn != nil:
			return QuadTo{C: *hIn, P: to.Pos}
		case hOut != nil:
			return QuadTo{C: *hOut, P: to.Pos}
		default:
			return LineTo{P: to.Pos}
		}
	}

	for i := 1; i < len(points); i++ {
		cmds = append(cmds, segment(points[i-1], points[i]))
	}

	if closed && len(points) > 1 {
		cmds = append(cmds, segment(points[len(points)-1], points[0]), Close{})
	}

	return cmds
}
