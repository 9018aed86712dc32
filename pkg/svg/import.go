package svg

import (
	"encoding/xml"
	"fmt"
	"strings"

	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

// Parse reads an SVG document into the editing model. A nil document with an
// error means the input is unusable: malformed XML or a root element other
// than <svg>. Everything below that is resolved by defaulting: unknown
// elements are dropped, missing numeric attributes read as 0 (stroke-width 1,
// miter limit 10), unrecognized colors come out opaque black.
//
// Top-level <g> elements become layers; shapes directly under the root are
// collected into a synthetic layer. Nested groups import as group elements.
func Parse(data []byte) (*document.Document, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("root element is <%s>, not <svg>", root.XMLName.Local)
	}

	width := parseNumber(root.Width)
	height := parseNumber(root.Height)
	if width == 0 || height == 0 {
		if fields := strings.Fields(root.ViewBox); len(fields) == 4 {
			width = parseNumber(fields[2])
			height = parseNumber(fields[3])
		}
	}
	doc := document.New(width, height)

	imp := &importer{gradients: map[string]*document.Gradient{}}
	for _, child := range root.Children {
		if child.XMLName.Local == "defs" {
			imp.defs(child)
		}
	}

	var loose *document.Layer
	for _, child := range root.Children {
		switch child.XMLName.Local {
		case "defs":
			// handled above
		case "g":
			layer := doc.AddLayer(child.ID)
			if child.ID != "" {
				layer.ID = child.ID
			}
			for _, n := range child.Children {
				if el := imp.element(n); el != nil {
					layer.Add(el)
				}
			}
		default:
			if el := imp.element(child); el != nil {
				if loose == nil {
					loose = doc.AddLayer("Layer 1")
				}
				loose.Add(el)
			}
		}
	}

	return doc, nil
}

type importer struct {
	gradients map[string]*document.Gradient
}

func (imp *importer) defs(defs *node) {
	for _, n := range defs.Children {
		var g *document.Gradient
		switch n.XMLName.Local {
		case "linearGradient":
			g = &document.Gradient{
				Kind:  document.LinearGradient,
				Start: geometry.Point{X: parseNumber(n.X1), Y: parseNumber(n.Y1)},
				End:   geometry.Point{X: parseNumber(n.X2), Y: parseNumber(n.Y2)},
			}
		case "radialGradient":
			g = &document.Gradient{
				Kind:   document.RadialGradient,
				Start:  geometry.Point{X: parseNumber(n.CX), Y: parseNumber(n.CY)},
				Radius: parseNumber(n.R),
			}
		default:
			continue
		}
		for _, stop := range n.Children {
			if stop.XMLName.Local != "stop" {
				continue
			}
			color := parseColor(stop.StopColor)
			if stop.StopOpacity != "" {
				color.A = parseNumber(stop.StopOpacity)
			}
			g.Stops = append(g.Stops, document.GradientStop{
				Offset: parseNumber(stop.Offset),
				Color:  color,
			})
		}
		if n.ID != "" {
			imp.gradients[n.ID] = g
		}
	}
}

// element converts one shape node, or returns nil for anything unsupported.
func (imp *importer) element(n *node) document.Element {
	var el document.Element
	switch n.XMLName.Local {
	case "path":
		cmds, err := path.Parse(n.D)
		if err != nil || len(cmds) == 0 {
			return nil
		}
		closed := false
		if _, ok := cmds[len(cmds)-1].(path.Close); ok {
			closed = true
		}
		el = document.NewPathElement("path", cmds, closed)
	case "rect":
		el = document.NewRectElement("rect",
			parseNumber(n.X), parseNumber(n.Y),
			parseNumber(n.Width), parseNumber(n.Height))
	case "ellipse":
		el = document.NewEllipseElement("ellipse",
			parseNumber(n.CX), parseNumber(n.CY),
			parseNumber(n.RX), parseNumber(n.RY))
	case "circle":
		r := parseNumber(n.R)
		el = document.NewEllipseElement("circle",
			parseNumber(n.CX), parseNumber(n.CY), r, r)
	case "polygon":
		points := parsePoints(n.Points)
		if len(points) == 0 {
			return nil
		}
		el = document.NewPolygonElement("polygon", points)
	case "text":
		t := document.NewTextElement("text",
			parseNumber(n.X), parseNumber(n.Y), strings.TrimSpace(n.Text))
		if n.FontSize != "" {
			t.FontSize = parseNumber(n.FontSize)
		}
		t.FontFamily = n.FontFamily
		el = t
	case "g":
		group := document.NewGroupElement("group")
		for _, child := range n.Children {
			if c := imp.element(child); c != nil {
				group.Children = append(group.Children, c)
			}
		}
		el = group
	default:
		return nil
	}

	base := el.Base()
	if n.ID != "" {
		base.ID = n.ID
	}
	imp.paint(n, base)
	base.Transform = parseTransform(n.Transform)
	return el
}

func (imp *importer) paint(n *node, base *document.ElementBase) {
	switch {
	case n.Fill == "none":
		base.Fill = nil
	case strings.HasPrefix(n.Fill, "url(#") && strings.HasSuffix(n.Fill, ")"):
		id := strings.TrimSuffix(strings.TrimPrefix(n.Fill, "url(#"), ")")
		if g, ok := imp.gradients[id]; ok {
			base.Fill = &document.Fill{Gradient: g}
		} else {
			black := document.Black()
			base.Fill = &document.Fill{Color: &black}
		}
	default:
		// Missing fill means the SVG default, black.
		color := parseColor(n.Fill)
		base.Fill = &document.Fill{Color: &color}
	}

	if n.Stroke == "" || n.Stroke == "none" {
		base.Stroke = nil
		return
	}
	stroke := document.DefaultStroke()
	stroke.Color = parseColor(n.Stroke)
	if n.StrokeWidth != "" {
		stroke.Width = parseNumber(n.StrokeWidth)
	}
	if n.StrokeMiterlimit != "" {
		stroke.MiterLimit = parseNumber(n.StrokeMiterlimit)
	}
	stroke.LineCap = n.StrokeLinecap
	stroke.LineJoin = n.StrokeLinejoin
	for _, d := range strings.FieldsFunc(n.StrokeDasharray, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		stroke.Dashes = append(stroke.Dashes, parseNumber(d))
	}
	base.Stroke = stroke
}

func parsePoints(s string) []geometry.Point {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 2 {
		return nil
	}
	var points []geometry.Point
	for i := 0; i+1 < len(fields); i += 2 {
		points = append(points, geometry.Point{
			X: parseNumber(fields[i]),
			Y: parseNumber(fields[i+1]),
		})
	}
	return points
}

// parseTransform reads the translate/rotate/scale form written by the
// exporter. Functions outside that form (matrix, skew) do not decompose into
// the element transform and are ignored.
func parseTransform(s string) document.Transform {
	t := document.IdentityTransform()
	if s == "" {
		return t
	}
	functions, err := path.ParseFunctions(s)
	if err != nil {
		return t
	}
	for _, f := range functions {
		switch f.Name {
		case "translate":
			if len(f.Args) >= 1 {
				t.TranslateX = f.Args[0]
			}
			if len(f.Args) >= 2 {
				t.TranslateY = f.Args[1]
			}
		case "rotate":
			if len(f.Args) >= 1 {
				t.Rotation = f.Args[0]
			}
		case "scale":
			if len(f.Args) == 1 {
				t.ScaleX = f.Args[0]
				t.ScaleY = f.Args[0]
			} else if len(f.Args) >= 2 {
				t.ScaleX = f.Args[0]
				t.ScaleY = f.Args[1]
			}
		}
	}
	return t
}
