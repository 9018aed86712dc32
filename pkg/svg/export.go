package svg

import (
	"encoding/xml"
	"strconv"
	"strings"

	"pathworks/pkg/document"
	"pathworks/pkg/path"
)

// exporter accumulates gradient defs while elements are converted; gradients
// are hoisted into one <defs> block with auto-incrementing ids.
type exporter struct {
	defs *node
}

// Export serializes the document as a complete, self-contained UTF-8 SVG
// text: XML declaration, svg root with a viewBox matching the document size,
// and one <g> per visible layer. Invisible layers and elements are omitted.
func Export(doc *document.Document) string {
	root := newNode("svg")
	root.Xmlns = "http://www.w3.org/2000/svg"
	root.Version = "1.1"
	root.Width = formatNumber(doc.Width)
	root.Height = formatNumber(doc.Height)
	root.ViewBox = "0 0 " + formatNumber(doc.Width) + " " + formatNumber(doc.Height)

	e := &exporter{defs: newNode("defs")}

	for _, layer := range doc.Layers {
		if !layer.Visible {
			continue
		}
		g := newNode("g")
		g.ID = layer.ID
		for _, el := range layer.Elements {
			if child := e.element(el); child != nil {
				g.Children = append(g.Children, child)
			}
		}
		root.Children = append(root.Children, g)
	}

	if len(e.defs.Children) > 0 {
		root.Children = append([]*node{e.defs}, root.Children...)
	}

	data, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		// The node tree contains no marshal-hostile types; this cannot
		// happen in practice.
		return ""
	}
	return xml.Header + string(data) + "\n"
}

func (e *exporter) element(el document.Element) *node {
	base := el.Base()
	if !base.Visible {
		return nil
	}

	var n *node
	switch el := el.(type) {
	case *document.PathElement:
		n = newNode("path")
		n.D = pathData(el)
	case *document.RectElement:
		n = newNode("rect")
		n.X = formatNumber(el.X)
		n.Y = formatNumber(el.Y)
		n.Width = formatNumber(el.Width)
		n.Height = formatNumber(el.Height)
	case *document.EllipseElement:
		n = newNode("ellipse")
		n.CX = formatNumber(el.CX)
		n.CY = formatNumber(el.CY)
		n.RX = formatNumber(el.RX)
		n.RY = formatNumber(el.RY)
	case *document.PolygonElement:
		n = newNode("polygon")
		var points []string
		for _, p := range el.Points {
			points = append(points, formatNumber(p.X)+","+formatNumber(p.Y))
		}
		n.Points = strings.Join(points, " ")
	case *document.StarElement:
		// Stars have no SVG primitive; they ship as a synthesized path.
		n = newNode("path")
		if p := el.AsPath(); p != nil {
			n.D = pathData(p)
		}
	case *document.TextElement:
		n = newNode("text")
		n.X = formatNumber(el.X)
		n.Y = formatNumber(el.Y)
		n.FontSize = formatNumber(el.FontSize)
		n.FontFamily = el.FontFamily
		n.Text = el.Content
	case *document.GroupElement:
		n = newNode("g")
		for _, child := range el.Children {
			if c := e.element(child); c != nil {
				n.Children = append(n.Children, c)
			}
		}
	default:
		return nil
	}

	n.ID = base.ID
	e.paint(n, base)
	if !base.Transform.IsIdentity() {
		n.Transform = formatTransform(base.Transform)
	}
	return n
}

// pathData serializes the commands, appending an explicit Z when the element
// is closed but its command list carries no trailing Close.
func pathData(el *document.PathElement) string {
	d := path.ToString(el.Commands)
	if el.Closed && len(el.Commands) > 0 {
		if _, ok := el.Commands[len(el.Commands)-1].(path.Close); !ok {
			d += " Z"
		}
	}
	return d
}

func (e *exporter) paint(n *node, base *document.ElementBase) {
	switch {
	case base.Fill == nil:
		n.Fill = "none"
	case base.Fill.Gradient != nil:
		n.Fill = "url(#" + e.addGradient(base.Fill.Gradient) + ")"
	case base.Fill.Color != nil:
		n.Fill = formatColor(*base.Fill.Color)
	default:
		n.Fill = "none"
	}

	if s := base.Stroke; s != nil && s.Width > 0 {
		n.Stroke = formatColor(s.Color)
		n.StrokeWidth = formatNumber(s.Width)
		n.StrokeLinecap = s.LineCap
		n.StrokeLinejoin = s.LineJoin
		if s.MiterLimit != 0 {
			n.StrokeMiterlimit = formatNumber(s.MiterLimit)
		}
		if len(s.Dashes) > 0 {
			var dashes []string
			for _, d := range s.Dashes {
				dashes = append(dashes, formatNumber(d))
			}
			n.StrokeDasharray = strings.Join(dashes, " ")
		}
	}
}

func (e *exporter) addGradient(g *document.Gradient) string {
	id := "gradient" + strconv.Itoa(len(e.defs.Children)+1)

	var n *node
	if g.Kind == document.LinearGradient {
		n = newNode("linearGradient")
		n.X1 = formatNumber(g.Start.X)
		n.Y1 = formatNumber(g.Start.Y)
		n.X2 = formatNumber(g.End.X)
		n.Y2 = formatNumber(g.End.Y)
	} else {
		n = newNode("radialGradient")
		n.CX = formatNumber(g.Start.X)
		n.CY = formatNumber(g.Start.Y)
		n.R = formatNumber(g.Radius)
	}
	n.ID = id
	n.GradientUnits = "userSpaceOnUse"

	for _, stop := range g.Stops {
		s := newNode("stop")
		s.Offset = formatNumber(stop.Offset)
		s.StopColor = formatColor(document.Color{R: stop.Color.R, G: stop.Color.G, B: stop.Color.B, A: 1})
		if stop.Color.A < 1 {
			s.StopOpacity = formatNumber(stop.Color.A)
		}
		n.Children = append(n.Children, s)
	}

	e.defs.Children = append(e.defs.Children, n)
	return id
}

// formatTransform writes the fixed translate, rotate, scale order. The order
// is part of the round-trip contract; components at their identity value are
// skipped.
func formatTransform(t document.Transform) string {
	var parts []string
	if t.TranslateX != 0 || t.TranslateY != 0 {
		parts = append(parts, "translate("+formatNumber(t.TranslateX)+" "+formatNumber(t.TranslateY)+")")
	}
	if t.Rotation != 0 {
		parts = append(parts, "rotate("+formatNumber(t.Rotation)+")")
	}
	if t.ScaleX != 1 || t.ScaleY != 1 {
		parts = append(parts, "scale("+formatNumber(t.ScaleX)+" "+formatNumber(t.ScaleY)+")")
	}
	return strings.Join(parts, " ")
}
