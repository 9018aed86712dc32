package svg

import (
	"regexp"
	"strconv"
	"strings"

	"pathworks/pkg/document"
)

var (
	hex6RE = regexp.MustCompile(`^#([[:xdigit:]]{2})([[:xdigit:]]{2})([[:xdigit:]]{2})$`)
	hex3RE = regexp.MustCompile(`^#([[:xdigit:]])([[:xdigit:]])([[:xdigit:]])$`)
	rgbRE  = regexp.MustCompile(`^rgba?\(([^)]*)\)$`)
)

// parseColor accepts 3/6-digit hex and rgb()/rgba(). Anything unrecognized
// falls back to opaque black, the same silent-default policy the rest of the
// importer uses.
func parseColor(s string) document.Color {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := hex6RE.FindStringSubmatch(s); m != nil {
		channel := func(hex string) float64 {
			val, _ := strconv.ParseUint(hex, 16, 64)
			return float64(val) / 255
		}
		return document.Color{R: channel(m[1]), G: channel(m[2]), B: channel(m[3]), A: 1}
	}

	if m := hex3RE.FindStringSubmatch(s); m != nil {
		channel := func(hex string) float64 {
			val, _ := strconv.ParseUint(hex+hex, 16, 64)
			return float64(val) / 255
		}
		return document.Color{R: channel(m[1]), G: channel(m[2]), B: channel(m[3]), A: 1}
	}

	if m := rgbRE.FindStringSubmatch(s); m != nil {
		parts := strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(parts) == 3 || len(parts) == 4 {
			channel := func(part string) float64 {
				part = strings.TrimSpace(part)
				if strings.HasSuffix(part, "%") {
					return parseNumber(strings.TrimSuffix(part, "%")) / 100
				}
				return parseNumber(part) / 255
			}
			c := document.Color{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: 1}
			if len(parts) == 4 {
				// The alpha component is a plain 0-1 number, not a channel.
				c.A = parseNumber(parts[3])
			}
			return c
		}
	}

	return document.Black()
}

// formatColor writes hex for opaque colors and rgba() otherwise.
func formatColor(c document.Color) string {
	channel := func(v float64) int {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return int(v*255 + 0.5)
	}
	if c.A >= 1 {
		hex := func(v float64) string {
			s := strconv.FormatInt(int64(channel(v)), 16)
			if len(s) < 2 {
				s = "0" + s
			}
			return s
		}
		return "#" + hex(c.R) + hex(c.G) + hex(c.B)
	}
	return "rgba(" +
		strconv.Itoa(channel(c.R)) + "," +
		strconv.Itoa(channel(c.G)) + "," +
		strconv.Itoa(channel(c.B)) + "," +
		formatNumber(c.A) + ")"
}
