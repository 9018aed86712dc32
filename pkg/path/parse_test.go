package path_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
)

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func TestParseBasic(t *testing.T) {
	cmds, err := path.Parse(" \t\r\nM1.e2 2. 1 .2.3 0.4e2 z L 7 8 9 10 H 11 12 V 13 L 2 2 C 5 6 7 8 9 10")
	if err != nil {
		t.Errorf("parsing failed: %s", err)
	}
	expected := []path.Command{
		path.MoveTo{P: pt(100, 2)},
		path.LineTo{P: pt(1, .2)},
		path.LineTo{P: pt(.3, 40)},
		path.Close{},
		path.LineTo{P: pt(7, 8)},
		path.LineTo{P: pt(9, 10)},
		path.HLineTo{X: 11},
		path.HLineTo{X: 12},
		path.VLineTo{Y: 13},
		path.LineTo{P: pt(2, 2)},
		path.CubicTo{C1: pt(5, 6), C2: pt(7, 8), P: pt(9, 10)},
	}
	if diff := cmp.Diff(expected, cmds); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestParseRelativeCommands(t *testing.T) {
	// Relative commands are resolved against the current point at parse
	// time; the parsed sequence is absolute.
	cmds, err := path.Parse("m 10 10 l 5 0 v 5 h -5 c 1 1 2 2 3 3 z")
	if err != nil {
		t.Fatalf("parsing failed: %s", err)
	}
	expected := []path.Command{
		path.MoveTo{P: pt(10, 10)},
		path.LineTo{P: pt(15, 10)},
		path.VLineTo{Y: 15},
		path.HLineTo{X: 10},
		path.CubicTo{C1: pt(11, 16), C2: pt(12, 17), P: pt(13, 18)},
		path.Close{},
	}
	if diff := cmp.Diff(expected, cmds); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestParseQuadSmoothArc(t *testing.T) {
	cmds, err := path.Parse("M 0 0 Q 5 10 10 0 T 20 0 S 25 10 30 0 A 5 5 0 0 1 40 0")
	if err != nil {
		t.Fatalf("parsing failed: %s", err)
	}
	expected := []path.Command{
		path.MoveTo{P: pt(0, 0)},
		path.QuadTo{C: pt(5, 10), P: pt(10, 0)},
		path.SmoothQuadTo{P: pt(20, 0)},
		path.SmoothCubicTo{C2: pt(25, 10), P: pt(30, 0)},
		path.ArcTo{RX: 5, RY: 5, Sweep: true, P: pt(40, 0)},
	}
	if diff := cmp.Diff(expected, cmds); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		"L 1 2",     // must start with a move
		"M 1",       // missing y coordinate
		"M 1 2 C 3", // truncated cubic
		"M 1 2 X 3", // unknown command letter
	} {
		if _, err := path.Parse(data); err == nil {
			t.Errorf("expected a parse error for %q", data)
		}
	}
}

func TestToStringRoundTrip(t *testing.T) {
	data := "M 0 0 L 10 0 C 12 3 14 3 16 0 Q 18 -2 20 0 Z"
	cmds, err := path.Parse(data)
	if err != nil {
		t.Fatalf("parsing failed: %s", err)
	}
	if got := path.ToString(cmds); got != data {
		t.Errorf("serialized %q, want %q", got, data)
	}

	reparsed, err := path.Parse(path.ToString(cmds))
	if err != nil {
		t.Fatalf("reparsing failed: %s", err)
	}
	if diff := cmp.Diff(cmds, reparsed); diff != "" {
		t.Errorf("round trip changed commands: %s", diff)
	}
}

func TestParseTransform(t *testing.T) {
	m, err := path.ParseTransform("translate(10, 5) scale(2)")
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	got := m.TransformPoint(pt(1, 1))
	if diff := cmp.Diff(pt(12, 7), got); diff != "" {
		t.Errorf("transformed point: %s", diff)
	}

	if _, err := path.ParseTransform("skewX(10)"); err == nil {
		t.Error("expected an error for an unknown transform function")
	}
}

func TestFlattenLineOnly(t *testing.T) {
	cmds, err := path.Parse("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	if err != nil {
		t.Fatalf("parsing failed: %s", err)
	}
	ring := path.Flatten(cmds, 16)
	want := geometry.Polygon{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	if diff := cmp.Diff(want, ring); diff != "" {
		t.Errorf("flattened ring: %s", diff)
	}
}

func TestFlattenCurveSamplesOnCurve(t *testing.T) {
	cmds := []path.Command{
		path.MoveTo{P: pt(0, 0)},
		path.CubicTo{C1: pt(0, 10), C2: pt(10, 10), P: pt(10, 0)},
	}
	ring := path.Flatten(cmds, 16)
	if len(ring) != 17 { // move point + 16 samples
		t.Fatalf("got %d points, want 17", len(ring))
	}
	if ring[len(ring)-1] != pt(10, 0) {
		t.Errorf("flattening must end on the curve endpoint, got %v", ring[len(ring)-1])
	}
}
