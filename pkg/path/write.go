package path

import (
	"strconv"
	"strings"
)

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ToString serializes a command sequence as absolute SVG path data.
//
// Note: this runs a simple serialization. It does not try to optimize the
// path string.
func ToString(cmds []Command) string {
	var buf strings.Builder

	writePoint := func(prefix string, xs ...float64) {
		buf.WriteString(prefix)
		for i, x := range xs {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(formatNumber(x))
		}
	}

	for i, c := range cmds {
		if i > 0 {
			buf.WriteString(" ")
		}
		switch cmd := c.(type) {
		case MoveTo:
			writePoint("M ", cmd.P.X, cmd.P.Y)
		case LineTo:
			writePoint("L ", cmd.P.X, cmd.P.Y)
		case HLineTo:
			writePoint("H ", cmd.X)
		case VLineTo:
			writePoint("V ", cmd.Y)
		case CubicTo:
			writePoint("C ", cmd.C1.X, cmd.C1.Y, cmd.C2.X, cmd.C2.Y, cmd.P.X, cmd.P.Y)
		case SmoothCubicTo:
			writePoint("S ", cmd.C2.X, cmd.C2.Y, cmd.P.X, cmd.P.Y)
		case QuadTo:
			writePoint("Q ", cmd.C.X, cmd.C.Y, cmd.P.X, cmd.P.Y)
		case SmoothQuadTo:
			writePoint("T ", cmd.P.X, cmd.P.Y)
		case ArcTo:
			writePoint("A ", cmd.RX, cmd.RY, cmd.Rotation)
			if cmd.LargeArc {
				buf.WriteString(" 1")
			} else {
				buf.WriteString(" 0")
			}
			if cmd.Sweep {
				buf.WriteString(" 1 ")
			} else {
				buf.WriteString(" 0 ")
			}
			buf.WriteString(formatNumber(cmd.P.X) + " " + formatNumber(cmd.P.Y))
		case Close:
			buf.WriteString("Z")
		}
	}

	return buf.String()
}
