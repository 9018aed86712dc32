// Package path holds the path command model: an SVG-compatible command
// sequence, its textual codec, and the anchor-point representation used by
// the editing operations.
package path

import (
	"math"

	"pathworks/pkg/cfg"
	"pathworks/pkg/geometry"
)

// Command is one SVG path command with absolute coordinates. The parser
// resolves relative (lowercase) input commands against the current point, so
// a parsed sequence is always absolute.
//
// The set of implementations is closed: MoveTo, LineTo, HLineTo, VLineTo,
// CubicTo, SmoothCubicTo, QuadTo, SmoothQuadTo, ArcTo and Close. Consumers
// switch exhaustively over these types.
type Command interface {
	isCommand()
}

type MoveTo struct {
	P geometry.Point
}

type LineTo struct {
	P geometry.Point
}

type HLineTo struct {
	X float64
}

type VLineTo struct {
	Y float64
}

type CubicTo struct {
	C1 geometry.Point
	C2 geometry.Point
	P  geometry.Point
}

// SmoothCubicTo is the S command: the first control point is the reflection
// of the previous command's second control point about the current point.
type SmoothCubicTo struct {
	C2 geometry.Point
	P  geometry.Point
}

type QuadTo struct {
	C geometry.Point
	P geometry.Point
}

// SmoothQuadTo is the T command: the control point is the reflection of the
// previous quadratic control point about the current point.
type SmoothQuadTo struct {
	P geometry.Point
}

type ArcTo struct {
	RX       float64
	RY       float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	P        geometry.Point
}

type Close struct{}

func (MoveTo) isCommand()        {}
func (LineTo) isCommand()        {}
func (HLineTo) isCommand()       {}
func (VLineTo) isCommand()       {}
func (CubicTo) isCommand()       {}
func (SmoothCubicTo) isCommand() {}
func (QuadTo) isCommand()        {}
func (SmoothQuadTo) isCommand()  {}
func (ArcTo) isCommand()         {}
func (Close) isCommand()         {}

// StartPoint returns the position of the first MoveTo, or the zero point for
// an empty or malformed sequence.
func StartPoint(cmds []Command) geometry.Point {
	for _, c := range cmds {
		if m, ok := c.(MoveTo); ok {
			return m.P
		}
	}
	return geometry.Point{}
}

// EndPoint returns the current point after the last command.
func EndPoint(cmds []Command) geometry.Point {
	var cur, start geometry.Point
	for _, c := range cmds {
		switch cmd := c.(type) {
		case MoveTo:
			cur = cmd.P
			start = cmd.P
		case LineTo:
			cur = cmd.P
		case HLineTo:
			cur.X = cmd.X
		case VLineTo:
			cur.Y = cmd.Y
		case CubicTo:
			cur = cmd.P
		case SmoothCubicTo:
			cur = cmd.P
		case QuadTo:
			cur = cmd.P
		case SmoothQuadTo:
			cur = cmd.P
		case ArcTo:
			cur = cmd.P
		case Close:
			cur = start
		}
	}
	return cur
}

// Flatten approximates the command sequence with a vertex ring, sampling each
// curved segment stepsPerCurve times. A stepsPerCurve of zero or less uses
// cfg.FlattenSteps. Close commands do not emit the start point a second time;
// the ring's closing edge is implicit.
func Flatten(cmds []Command, stepsPerCurve int) geometry.Polygon {
	if stepsPerCurve <= 0 {
		stepsPerCurve = cfg.FlattenSteps
	}

	var ring geometry.Polygon
	var cur, start geometry.Point
	var lastCubicCtrl, lastQuadCtrl *geometry.Point

	sampleCubic := func(c1, c2, p geometry.Point) {
		for i := 1; i <= stepsPerCurve; i++ {
			t := float64(i) / float64(stepsPerCurve)
			ring = append(ring, geometry.SampleCubic(cur, c1, c2, p, t))
		}
		cur = p
	}
	sampleQuad := func(c, p geometry.Point) {
		for i := 1; i <= stepsPerCurve; i++ {
			t := float64(i) / float64(stepsPerCurve)
			ring = append(ring, geometry.SampleQuadratic(cur, c, p, t))
		}
		cur = p
	}

	for _, c := range cmds {
		cubicCtrl, quadCtrl := lastCubicCtrl, lastQuadCtrl
		lastCubicCtrl, lastQuadCtrl = nil, nil

		switch cmd := c.(type) {
		case MoveTo:
			cur = cmd.P
			start = cmd.P
			ring = append(ring, cur)
		case LineTo:
			cur = cmd.P
			ring = append(ring, cur)
		case HLineTo:
			cur.X = cmd.X
			ring = append(ring, cur)
		case VLineTo:
			cur.Y = cmd.Y
			ring = append(ring, cur)
		case CubicTo:
			c2 := cmd.C2
			sampleCubic(cmd.C1, cmd.C2, cmd.P)
			lastCubicCtrl = &c2
		case SmoothCubicTo:
			c1 := reflect(cubicCtrl, cur)
			c2 := cmd.C2
			sampleCubic(c1, cmd.C2, cmd.P)
			lastCubicCtrl = &c2
		case QuadTo:
			ctrl := cmd.C
			sampleQuad(cmd.C, cmd.P)
			lastQuadCtrl = &ctrl
		case SmoothQuadTo:
			ctrl := reflect(quadCtrl, cur)
			sampleQuad(ctrl, cmd.P)
			lastQuadCtrl = &ctrl
		case ArcTo:
			ring = append(ring, flattenArc(cur, cmd, stepsPerCurve)...)
			cur = cmd.P
		case Close:
			cur = start
		}
	}
	return ring
}

// reflect mirrors a control point about the current point. A nil control
// (no preceding curve of the matching kind) degrades to the current point,
// per the SVG smooth-command rules.
func reflect(ctrl *geometry.Point, cur geometry.Point) geometry.Point {
	if ctrl == nil {
		return cur
	}
	return geometry.Point{X: 2*cur.X - ctrl.X, Y: 2*cur.Y - ctrl.Y}
}

// flattenArc converts an endpoint-parameterized elliptical arc to line
// segments via the center parameterization of the SVG spec, appendix B.2.4.
func flattenArc(from geometry.Point, arc ArcTo, steps int) []geometry.Point {
	rx, ry := math.Abs(arc.RX), math.Abs(arc.RY)
	if rx < cfg.GeomEpsilon || ry < cfg.GeomEpsilon {
		return []geometry.Point{arc.P}
	}

	phi := arc.Rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Step 1: half the vector between the endpoints, in the ellipse frame.
	dx := (from.X - arc.P.X) / 2
	dy := (from.Y - arc.P.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Correct out-of-range radii.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: center in the ellipse frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den > 0 && num > 0 {
		co = math.Sqrt(num / den)
	}
	if arc.LargeArc == arc.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	// Step 3: center in the document frame.
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+arc.P.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+arc.P.Y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		n := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
		if n == 0 {
			return 0
		}
		c := math.Max(-1, math.Min(1, (ux*vx+uy*vy)/n))
		a := math.Acos(c)
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !arc.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if arc.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	points := make([]geometry.Point, 0, steps)
	for i := 1; i <= steps; i++ {
		theta := theta1 + delta*float64(i)/float64(steps)
		ex := rx * math.Cos(theta)
		ey := ry * math.Sin(theta)
		points = append(points, geometry.Point{
			X: cosPhi*ex - sinPhi*ey + cx,
			Y: sinPhi*ex + cosPhi*ey + cy,
		})
	}
	// Land exactly on the arc's endpoint regardless of accumulated error.
	points[len(points)-1] = arc.P
	return points
}

// Bounds returns the axis-aligned bounding box of the flattened path.
func Bounds(cmds []Command) geometry.Rect {
	ring := Flatten(cmds, 0)
	if len(ring) == 0 {
		return geometry.Rect{}
	}
	r := geometry.Rect{Min: ring[0], Max: ring[0]}
	for _, p := range ring[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}
