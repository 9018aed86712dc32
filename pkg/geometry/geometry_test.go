package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func almostEqual(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestSampleCubic(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	p1 := Point{X: 0, Y: 10}
	p2 := Point{X: 10, Y: 10}
	p3 := Point{X: 10, Y: 0}

	if got := SampleCubic(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("t=0 should return p0, got %v", got)
	}
	if got := SampleCubic(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("t=1 should return p3, got %v", got)
	}
	mid := SampleCubic(p0, p1, p2, p3, 0.5)
	if !almostEqual(mid, Point{X: 5, Y: 7.5}, 1e-12) {
		t.Errorf("midpoint: got %v, want (5, 7.5)", mid)
	}
}

func TestSampleQuadratic(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	c := Point{X: 5, Y: 10}
	p2 := Point{X: 10, Y: 0}

	mid := SampleQuadratic(p0, c, p2, 0.5)
	if !almostEqual(mid, Point{X: 5, Y: 5}, 1e-12) {
		t.Errorf("midpoint: got %v, want (5, 5)", mid)
	}
}

func TestSplitCubicReproducesCurve(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	p1 := Point{X: 3, Y: 9}
	p2 := Point{X: 7, Y: 9}
	p3 := Point{X: 10, Y: 0}

	for _, splitT := range []float64{0.25, 0.5, 0.8} {
		left, right := SplitCubic(p0, p1, p2, p3, splitT)

		if !almostEqual(left.P3, right.P0, 1e-12) {
			t.Fatalf("split halves do not meet: %v vs %v", left.P3, right.P0)
		}
		want := SampleCubic(p0, p1, p2, p3, splitT)
		if !almostEqual(left.P3, want, 1e-9) {
			t.Errorf("split point %v, want curve point %v", left.P3, want)
		}

		// Points sampled on the halves must lie on the original curve.
		for _, u := range []float64{0.1, 0.5, 0.9} {
			onLeft := SampleCubic(left.P0, left.P1, left.P2, left.P3, u)
			wantLeft := SampleCubic(p0, p1, p2, p3, splitT*u)
			if !almostEqual(onLeft, wantLeft, 1e-9) {
				t.Errorf("left half diverges at u=%v: %v vs %v", u, onLeft, wantLeft)
			}
			onRight := SampleCubic(right.P0, right.P1, right.P2, right.P3, u)
			wantRight := SampleCubic(p0, p1, p2, p3, splitT+(1-splitT)*u)
			if !almostEqual(onRight, wantRight, 1e-9) {
				t.Errorf("right half diverges at u=%v: %v vs %v", u, onRight, wantRight)
			}
		}
	}
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Point
		want           Point
		wantOK         bool
	}{
		{
			name: "crossing",
			p1:   Point{X: 0, Y: 0}, p2: Point{X: 10, Y: 10},
			p3: Point{X: 0, Y: 10}, p4: Point{X: 10, Y: 0},
			want: Point{X: 5, Y: 5}, wantOK: true,
		},
		{
			name: "parallel",
			p1:   Point{X: 0, Y: 0}, p2: Point{X: 10, Y: 0},
			p3: Point{X: 0, Y: 1}, p4: Point{X: 10, Y: 1},
			wantOK: false,
		},
		{
			name: "out of range",
			p1:   Point{X: 0, Y: 0}, p2: Point{X: 1, Y: 1},
			p3: Point{X: 0, Y: 10}, p4: Point{X: 10, Y: 0},
			wantOK: false,
		},
		{
			name: "touching endpoint",
			p1:   Point{X: 0, Y: 0}, p2: Point{X: 5, Y: 5},
			p3: Point{X: 5, Y: 5}, p4: Point{X: 10, Y: 0},
			want: Point{X: 5, Y: 5}, wantOK: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := SegmentIntersection(test.p1, test.p2, test.p3, test.p4)
			if ok != test.wantOK {
				t.Fatalf("ok = %v, want %v", ok, test.wantOK)
			}
			if ok && !almostEqual(got, test.want, 1e-9) {
				t.Errorf("intersection = %v, want %v", got, test.want)
			}
		})
	}
}

func TestPolygonAreaAndWinding(t *testing.T) {
	// Clockwise in the y-down convention: x grows right, y grows down.
	cw := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := cw.SignedArea(); got != 100 {
		t.Errorf("signed area = %v, want 100", got)
	}
	if !cw.IsClockwise() {
		t.Error("expected clockwise")
	}

	ccw := cw.Reverse()
	if got := ccw.SignedArea(); got != -100 {
		t.Errorf("reversed signed area = %v, want -100", got)
	}
	if ccw.IsClockwise() {
		t.Error("expected counter-clockwise after reverse")
	}
}

func TestPolygonContains(t *testing.T) {
	// Only strictly-inside and strictly-outside points are probed; behavior
	// for points exactly on the boundary is undefined.
	square := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	tests := []struct {
		pt   Point
		want bool
	}{
		{Point{X: 5, Y: 5}, true},
		{Point{X: 1, Y: 9}, true},
		{Point{X: -1, Y: 5}, false},
		{Point{X: 11, Y: 5}, false},
		{Point{X: 5, Y: -0.5}, false},
		{Point{X: 5, Y: 10.5}, false},
	}
	for _, test := range tests {
		if got := square.Contains(test.pt); got != test.want {
			t.Errorf("Contains(%v) = %v, want %v", test.pt, got, test.want)
		}
	}

	concave := Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		{X: 5, Y: 5}, {X: 0, Y: 10},
	}
	if concave.Contains(Point{X: 5, Y: 8}) {
		t.Error("point in the notch should be outside")
	}
	if !concave.Contains(Point{X: 2, Y: 3}) {
		t.Error("point in the body should be inside")
	}
}

func TestConvexHull(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5}, {X: 2, Y: 3}, {X: 7, Y: 8},
	}
	hull := ConvexHull(points)
	if len(hull) != 4 {
		t.Fatalf("hull has %d vertices, want 4: %v", len(hull), hull)
	}
	if !hull.IsClockwise() {
		t.Error("hull should wind clockwise")
	}
	if got := math.Abs(hull.SignedArea()); got != 100 {
		t.Errorf("hull area = %v, want 100", got)
	}
}

func TestSimplify(t *testing.T) {
	// An L shape with slight noise on the middle of each leg.
	line := Polyline{
		{X: 0, Y: 0},
		{X: 2, Y: 0.01},
		{X: 4, Y: 0},
		{X: 3.99, Y: 2},
		{X: 4, Y: 4},
	}

	if diff := cmp.Diff(line, line.Simplify(0)); diff != "" {
		t.Errorf("zero tolerance must keep every point: %s", diff)
	}

	simplified := line.Simplify(0.1)
	want := Polyline{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}
	if diff := cmp.Diff(want, simplified); diff != "" {
		t.Errorf("incorrect simplification: %s", diff)
	}

	// Monotonicity: a larger tolerance never keeps more points.
	prev := len(line)
	for _, tol := range []float64{0.005, 0.1, 1, 5} {
		n := len(line.Simplify(tol))
		if n > prev {
			t.Errorf("tolerance %v kept %d points, more than %d", tol, n, prev)
		}
		prev = n
	}
}

func TestLineSegmentDistance(t *testing.T) {
	s := LineSegment{A: Point{X: 0, Y: 0}, B: Point{X: 10, Y: 0}}
	if got := s.Distance(Point{X: 5, Y: 3}); got != 3 {
		t.Errorf("perpendicular distance = %v, want 3", got)
	}
	if got := s.Distance(Point{X: 13, Y: 4}); got != 5 {
		t.Errorf("beyond endpoint distance = %v, want 5", got)
	}
}
