// Package svg serializes documents to SVG text and parses a practical subset
// of SVG back into documents.
package svg

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// node is the one XML shape used for every element on both the import and
// export sides. Per-element structs would be tidier, but the attribute set is
// small enough that a single node with omitempty attributes keeps the
// marshaling in one place.
type node struct {
	XMLName xml.Name
	ID      string `xml:"id,attr,omitempty"`

	// svg root
	Xmlns   string `xml:"xmlns,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	ViewBox string `xml:"viewBox,attr,omitempty"`

	// rect reuses width/height; the root carries them as plain numbers
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`

	D      string `xml:"d,attr,omitempty"`
	Points string `xml:"points,attr,omitempty"`

	X  string `xml:"x,attr,omitempty"`
	Y  string `xml:"y,attr,omitempty"`
	CX string `xml:"cx,attr,omitempty"`
	CY string `xml:"cy,attr,omitempty"`
	RX string `xml:"rx,attr,omitempty"`
	RY string `xml:"ry,attr,omitempty"`
	R  string `xml:"r,attr,omitempty"`

	Fill             string `xml:"fill,attr,omitempty"`
	Stroke           string `xml:"stroke,attr,omitempty"`
	StrokeWidth      string `xml:"stroke-width,attr,omitempty"`
	StrokeLinecap    string `xml:"stroke-linecap,attr,omitempty"`
	StrokeLinejoin   string `xml:"stroke-linejoin,attr,omitempty"`
	StrokeMiterlimit string `xml:"stroke-miterlimit,attr,omitempty"`
	StrokeDasharray  string `xml:"stroke-dasharray,attr,omitempty"`
	Transform        string `xml:"transform,attr,omitempty"`

	FontSize   string `xml:"font-size,attr,omitempty"`
	FontFamily string `xml:"font-family,attr,omitempty"`

	// gradient attributes
	X1            string `xml:"x1,attr,omitempty"`
	Y1            string `xml:"y1,attr,omitempty"`
	X2            string `xml:"x2,attr,omitempty"`
	Y2            string `xml:"y2,attr,omitempty"`
	GradientUnits string `xml:"gradientUnits,attr,omitempty"`
	Offset        string `xml:"offset,attr,omitempty"`
	StopColor     string `xml:"stop-color,attr,omitempty"`
	StopOpacity   string `xml:"stop-opacity,attr,omitempty"`

	Text     string  `xml:",chardata"`
	Children []*node `xml:",any"`
}

func newNode(name string) *node {
	return &node{XMLName: xml.Name{Local: name}}
}

// parseNumber reads a float, tolerating a trailing unit suffix like "mm" or
// "px". Unparseable input is 0, per the importer's defaulting policy.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if ('0' <= c && c <= '9') || c == '.' {
			break
		}
		end--
	}
	val, _ := strconv.ParseFloat(s[:end], 64)
	return val
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
