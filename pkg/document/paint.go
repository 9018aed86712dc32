package document

import "pathworks/pkg/geometry"

// Color is an RGBA color with components in [0,1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

func Black() Color {
	return Color{A: 1}
}

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

type GradientKind int

const (
	LinearGradient GradientKind = iota
	RadialGradient
)

type GradientStop struct {
	// Offset is the stop position along the gradient, in [0,1].
	Offset float64
	Color  Color
}

// Gradient is a linear or radial gradient in element coordinates. Start and
// End are the axis endpoints for a linear gradient; for a radial gradient
// Start is the center and Radius the extent.
type Gradient struct {
	Kind   GradientKind
	Start  geometry.Point
	End    geometry.Point
	Radius float64
	Stops  []GradientStop
}

// Fill paints an element's interior with either a flat color or a gradient.
// A nil Fill serializes as "none".
type Fill struct {
	Color    *Color
	Gradient *Gradient
}

// LineCap and LineJoin carry the SVG attribute values verbatim.
type Stroke struct {
	Color      Color
	Width      float64
	LineCap    string
	LineJoin   string
	MiterLimit float64
	Dashes     []float64
}

// DefaultStroke returns a stroke with the SVG attribute defaults the importer
// applies when attributes are missing.
func DefaultStroke() *Stroke {
	return &Stroke{Color: Black(), Width: 1, MiterLimit: 10}
}
