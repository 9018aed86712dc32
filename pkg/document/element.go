// Package document holds the element, layer and document model the path
// engine operates on. Elements are value-owned: commands and paint attributes
// belong exclusively to their element, and operations that derive new shapes
// return new elements with fresh identities.
package document

import (
	"math"

	"github.com/google/uuid"

	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// Transform positions an element in document space. Serialization order is
// fixed: translate, then rotate about the origin, then scale. The order is
// not commutative and must be preserved for round-trip fidelity.
type Transform struct {
	TranslateX float64
	TranslateY float64
	// Rotation is in degrees, about the origin.
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

func (t Transform) IsIdentity() bool {
	return t.TranslateX == 0 && t.TranslateY == 0 && t.Rotation == 0 &&
		t.ScaleX == 1 && t.ScaleY == 1
}

// Matrix composes the transform in the serialization order.
func (t Transform) Matrix() path.Matrix {
	return path.Translation(t.TranslateX, t.TranslateY).
		Multiply(path.Rotation(t.Rotation)).
		Multiply(path.Scaling(t.ScaleX, t.ScaleY))
}

// ElementBase carries the identity and paint attributes shared by every
// element type.
type ElementBase struct {
	ID        string
	Name      string
	Fill      *Fill
	Stroke    *Stroke
	Transform Transform
	Visible   bool
	Locked    bool
}

func newBase(name string) ElementBase {
	return ElementBase{
		ID:        uuid.NewString(),
		Name:      name,
		Transform: IdentityTransform(),
		Visible:   true,
	}
}

// Element is any drawable document node.
type Element interface {
	Base() *ElementBase
	// AsPath returns the element's geometry as a path element, or nil for
	// elements with no path form (text, groups). The returned element is a
	// derived shape with a fresh identity.
	AsPath() *PathElement
}

// PathElement owns an ordered command sequence. Closed marks the path as a
// ring for fill and boolean purposes even when the commands carry no
// explicit Close.
type PathElement struct {
	ElementBase
	Commands []path.Command
	Closed   bool
}

func NewPathElement(name string, cmds []path.Command, closed bool) *PathElement {
	return &PathElement{ElementBase: newBase(name), Commands: cmds, Closed: closed}
}

func (e *PathElement) Base() *ElementBase { return &e.ElementBase }

func (e *PathElement) AsPath() *PathElement { return e }

// Clone deep-copies the element, identity included. Used for scratch copies
// during a drag gesture; the scratch never aliases the committed commands.
func (e *PathElement) Clone() *PathElement {
	c := *e
	c.Commands = append([]path.Command{}, e.Commands...)
	if e.Fill != nil {
		f := *e.Fill
		c.Fill = &f
	}
	if e.Stroke != nil {
		s := *e.Stroke
		c.Stroke = &s
		c.Stroke.Dashes = append([]float64{}, e.Stroke.Dashes...)
	}
	return &c
}

// Derive builds a new path element from this one's paint attributes with a
// fresh identity, for operations that produce derived shapes.
func (e *PathElement) Derive(cmds []path.Command, closed bool) *PathElement {
	d := e.Clone()
	d.ID = uuid.NewString()
	d.Commands = cmds
	d.Closed = closed
	return d
}

// Anchors builds the editable anchor representation from the commands. The
// result is a scratch copy; commit changes with SetAnchors.
func (e *PathElement) Anchors() []path.Anchor {
	return path.CommandsToAnchors(e.Commands)
}

// SetAnchors regenerates the command sequence from edited anchors, written
// back as a whole.
func (e *PathElement) SetAnchors(anchors []path.Anchor) {
	e.Commands = path.AnchorsToCommands(anchors, e.Closed)
}

type RectElement struct {
	ElementBase
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRectElement(name string, x, y, w, h float64) *RectElement {
	return &RectElement{ElementBase: newBase(name), X: x, Y: y, Width: w, Height: h}
}

func (e *RectElement) Base() *ElementBase { return &e.ElementBase }

func (e *RectElement) AsPath() *PathElement {
	cmds := []path.Command{
		path.MoveTo{P: geometry.Point{X: e.X, Y: e.Y}},
		path.LineTo{P: geometry.Point{X: e.X + e.Width, Y: e.Y}},
		path.LineTo{P: geometry.Point{X: e.X + e.Width, Y: e.Y + e.Height}},
		path.LineTo{P: geometry.Point{X: e.X, Y: e.Y + e.Height}},
		path.Close{},
	}
	return derivePath(&e.ElementBase, cmds, true)
}

type EllipseElement struct {
	ElementBase
	CX float64
	CY float64
	RX float64
	RY float64
}

func NewEllipseElement(name string, cx, cy, rx, ry float64) *EllipseElement {
	return &EllipseElement{ElementBase: newBase(name), CX: cx, CY: cy, RX: rx, RY: ry}
}

func (e *EllipseElement) Base() *ElementBase { return &e.ElementBase }

// kappa is the control-point distance factor approximating a quarter circle
// with one cubic bezier.
const kappa = 0.5522847498307936

func (e *EllipseElement) AsPath() *PathElement {
	ox := e.RX * kappa
	oy := e.RY * kappa
	p := func(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }
	cmds := []path.Command{
		path.MoveTo{P: p(e.CX+e.RX, e.CY)},
		path.CubicTo{C1: p(e.CX+e.RX, e.CY+oy), C2: p(e.CX+ox, e.CY+e.RY), P: p(e.CX, e.CY+e.RY)},
		path.CubicTo{C1: p(e.CX-ox, e.CY+e.RY), C2: p(e.CX-e.RX, e.CY+oy), P: p(e.CX-e.RX, e.CY)},
		path.CubicTo{C1: p(e.CX-e.RX, e.CY-oy), C2: p(e.CX-ox, e.CY-e.RY), P: p(e.CX, e.CY-e.RY)},
		path.CubicTo{C1: p(e.CX+ox, e.CY-e.RY), C2: p(e.CX+e.RX, e.CY-oy), P: p(e.CX+e.RX, e.CY)},
		path.Close{},
	}
	return derivePath(&e.ElementBase, cmds, true)
}

type PolygonElement struct {
	ElementBase
	Points []geometry.Point
}

func NewPolygonElement(name string, points []geometry.Point) *PolygonElement {
	return &PolygonElement{ElementBase: newBase(name), Points: points}
}

func (e *PolygonElement) Base() *ElementBase { return &e.ElementBase }

func (e *PolygonElement) AsPath() *PathElement {
	if len(e.Points) == 0 {
		return nil
	}
	cmds := []path.Command{path.MoveTo{P: e.Points[0]}}
	for _, p := range e.Points[1:] {
		cmds = append(cmds, path.LineTo{P: p})
	}
	cmds = append(cmds, path.Close{})
	return derivePath(&e.ElementBase, cmds, true)
}

// StarElement is a star polygon of PointCount tips alternating between
// OuterRadius and InnerRadius around (CX, CY).
type StarElement struct {
	ElementBase
	CX          float64
	CY          float64
	OuterRadius float64
	InnerRadius float64
	PointCount  int
}

func NewStarElement(name string, cx, cy, outer, inner float64, points int) *StarElement {
	return &StarElement{
		ElementBase: newBase(name),
		CX:          cx, CY: cy,
		OuterRadius: outer, InnerRadius: inner,
		PointCount: points,
	}
}

func (e *StarElement) Base() *ElementBase { return &e.ElementBase }

// Vertices returns the alternating outer/inner vertex ring, starting at the
// top tip and winding clockwise in the y-down convention.
func (e *StarElement) Vertices() []geometry.Point {
	n := e.PointCount
	if n < 2 {
		return nil
	}
	points := make([]geometry.Point, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		r := e.OuterRadius
		if i%2 == 1 {
			r = e.InnerRadius
		}
		angle := -math.Pi/2 + math.Pi*float64(i)/float64(n)
		points = append(points, geometry.Point{
			X: e.CX + r*math.Cos(angle),
			Y: e.CY + r*math.Sin(angle),
		})
	}
	return points
}

func (e *StarElement) AsPath() *PathElement {
	verts := e.Vertices()
	if len(verts) == 0 {
		return nil
	}
	cmds := []path.Command{path.MoveTo{P: verts[0]}}
	for _, p := range verts[1:] {
		cmds = append(cmds, path.LineTo{P: p})
	}
	cmds = append(cmds, path.Close{})
	return derivePath(&e.ElementBase, cmds, true)
}

type TextElement struct {
	ElementBase
	X          float64
	Y          float64
	Content    string
	FontSize   float64
	FontFamily string
}

func NewTextElement(name string, x, y float64, content string) *TextElement {
	return &TextElement{ElementBase: newBase(name), X: x, Y: y, Content: content, FontSize: 16}
}

func (e *TextElement) Base() *ElementBase { return &e.ElementBase }

// AsPath returns nil: text outlining requires font shaping, which this
// engine does not do.
func (e *TextElement) AsPath() *PathElement { return nil }

type GroupElement struct {
	ElementBase
	Children []Element
}

func NewGroupElement(name string) *GroupElement {
	return &GroupElement{ElementBase: newBase(name)}
}

func (e *GroupElement) Base() *ElementBase { return &e.ElementBase }

func (e *GroupElement) AsPath() *PathElement { return nil }

func derivePath(base *ElementBase, cmds []path.Command, closed bool) *PathElement {
	el := &PathElement{ElementBase: *base, Commands: cmds, Closed: closed}
	el.ID = uuid.NewString()
	return el
}
