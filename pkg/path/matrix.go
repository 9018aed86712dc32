package path

import (
	"fmt"
	"math"

	"pathworks/pkg/geometry"
)

// Matrix is a 2x3 affine transform:
//
//	⎡ A C E ⎤
//	⎣ B D F ⎦
type Matrix struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

func Translation(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, E: x, F: y}
}

func Scaling(x, y float64) Matrix {
	return Matrix{A: x, D: y}
}

// Rotation returns a rotation about the origin by degrees.
func Rotation(degrees float64) Matrix {
	cos := math.Cos(degrees * math.Pi / 180)
	sin := math.Sin(degrees * math.Pi / 180)
	return Matrix{A: cos, C: -sin, B: sin, D: cos}
}

func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

func (m Matrix) TransformPoint(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// TransformCommands returns a new command sequence with every coordinate
// mapped through the matrix. HLineTo and VLineTo cannot express a sheared or
// rotated axis-aligned move, so they are rewritten as LineTo. ArcTo radii and
// rotation are carried through unchanged; only the endpoint is mapped, which
// is exact for translation and uniform under rotation for circular arcs.
func (m Matrix) TransformCommands(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds))
	var cur geometry.Point
	for _, c := range cmds {
		switch cmd := c.(type) {
		case MoveTo:
			cur = cmd.P
			out = append(out, MoveTo{P: m.TransformPoint(cmd.P)})
		case LineTo:
			cur = cmd.P
			out = append(out, LineTo{P: m.TransformPoint(cmd.P)})
		case HLineTo:
			cur.X = cmd.X
			out = append(out, LineTo{P: m.TransformPoint(cur)})
		case VLineTo:
			cur.Y = cmd.Y
			out = append(out, LineTo{P: m.TransformPoint(cur)})
		case CubicTo:
			cur = cmd.P
			out = append(out, CubicTo{
				C1: m.TransformPoint(cmd.C1),
				C2: m.TransformPoint(cmd.C2),
				P:  m.TransformPoint(cmd.P),
			})
		case SmoothCubicTo:
			cur = cmd.P
			out = append(out, SmoothCubicTo{
				C2: m.TransformPoint(cmd.C2),
				P:  m.TransformPoint(cmd.P),
			})
		case QuadTo:
			cur = cmd.P
			out = append(out, QuadTo{
				C: m.TransformPoint(cmd.C),
				P: m.TransformPoint(cmd.P),
			})
		case SmoothQuadTo:
			cur = cmd.P
			out = append(out, SmoothQuadTo{P: m.TransformPoint(cmd.P)})
		case ArcTo:
			cur = cmd.P
			arc := cmd
			arc.P = m.TransformPoint(cmd.P)
			out = append(out, arc)
		case Close:
			out = append(out, Close{})
		}
	}
	return out
}

// Function is one parsed transform-attribute function call.
type Function struct {
	Name string
	Args []float64
}

// ParseFunctions parses a transform-attribute style function list:
// (wsp* identifier wsp* "(" wsp* number (comma-wsp number)* wsp* ")" wsp*)*
func ParseFunctions(functions string) ([]*Function, error) {
	s := &state{data: functions}
	return s.parseFunctions()
}

func (s *state) parseFunctions() ([]*Function, error) {
	var functions []*Function
	for {
		function := &Function{}
		functions = append(functions, function)

		// identifier
		s.whitespace()
		c := s.next()
		if !(('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')) {
			return functions, fmt.Errorf("identifier must start with a letter, got %q", string(c))
		}
		function.Name += string(c)
		for {
			c := s.peek()
			if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
				('0' <= c && c <= '9') || (c == '_') || (c == '-') {
				function.Name += string(s.next())
			} else {
				break
			}
		}

		// Open parenthesis
		s.whitespace()
		c = s.next()
		if c != '(' {
			return functions, fmt.Errorf("expected \"(\", got %q", string(c))
		}

		// First argument (optional)
		s.whitespace()
		oldIndex := s.index
		n, err := s.parseNumber()
		if err != nil {
			s.index = oldIndex
		} else {
			function.Args = append(function.Args, n)
			// Remaining arguments
			for {
				oldIndex = s.index
				s.commaWhitespace()
				n, err = s.parseNumber()
				if err != nil {
					s.index = oldIndex
					break
				}
				function.Args = append(function.Args, n)
			}
		}

		// Close parenthesis
		s.whitespace()
		c = s.next()
		if c != ')' {
			return functions, fmt.Errorf("expected \")\", got %q", string(c))
		}
		s.whitespace()

		if s.peek() == 0 {
			return functions, nil
		}
	}
}

// ParseTransform parses an SVG transform attribute into a single matrix.
// Unknown functions and wrong argument counts are reported as errors; an
// empty string is the identity.
func ParseTransform(transform string) (Matrix, error) {
	m := Identity()

	if transform == "" {
		return m, nil
	}

	functions, err := ParseFunctions(transform)
	if err != nil {
		return m, fmt.Errorf("failed to parse transform: %w", err)
	}

	for _, function := range functions {
		switch function.Name {
		case "matrix":
			if len(function.Args) != 6 {
				return m, fmt.Errorf("6 args required for matrix transform, got %v", function.Args)
			}
			m = m.Multiply(Matrix{
				A: function.Args[0], C: function.Args[2], E: function.Args[4],
				B: function.Args[1], D: function.Args[3], F: function.Args[5],
			})
		case "translate":
			if len(function.Args) != 2 && len(function.Args) != 1 {
				return m, fmt.Errorf("1 or 2 args required for translate transform, got %v", function.Args)
			}
			y := 0.0
			if len(function.Args) == 2 {
				y = function.Args[1]
			}
			m = m.Multiply(Translation(function.Args[0], y))
		case "scale":
			if len(function.Args) != 2 && len(function.Args) != 1 {
				return m, fmt.Errorf("1 or 2 args required for scale transform, got %v", function.Args)
			}
			y := function.Args[0]
			if len(function.Args) == 2 {
				y = function.Args[1]
			}
			m = m.Multiply(Scaling(function.Args[0], y))
		case "rotate":
			switch len(function.Args) {
			case 1:
				m = m.Multiply(Rotation(function.Args[0]))
			case 3:
				// rotate(a, x, y) = translate(x, y) rotate(a) translate(-x, -y)
				x, y := function.Args[1], function.Args[2]
				m = m.Multiply(Translation(x, y)).
					Multiply(Rotation(function.Args[0])).
					Multiply(Translation(-x, -y))
			default:
				return m, fmt.Errorf("1 or 3 args required for rotate transform, got %v", function.Args)
			}
		default:
			return m, fmt.Errorf("unknown transform function %q %v", function.Name, function.Args)
		}
	}

	return m, nil
}
