package pathedit_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pathworks/pkg/document"
	"pathworks/pkg/geometry"
	"pathworks/pkg/path"
	"pathworks/pkg/pathedit"
)

func mustParse(t *testing.T, d string) []path.Command {
	t.Helper()
	cmds, err := path.Parse(d)
	if err != nil {
		t.Fatalf("parsing %q failed: %s", d, err)
	}
	return cmds
}

func pathFrom(t *testing.T, d string, closed bool) *document.PathElement {
	t.Helper()
	return document.NewPathElement("path", mustParse(t, d), closed)
}

func ringArea(el *document.PathElement) float64 {
	return path.Flatten(el.Commands, 0).SignedArea()
}

func TestReverseIdempotence(t *testing.T) {
	el := pathFrom(t, "M 0 0 C 0 10 10 10 10 0 L 20 0 C 25 5 30 5 35 0", false)

	twice := pathedit.Reverse(pathedit.Reverse(el))
	if diff := cmp.Diff(el.Anchors(), twice.Anchors()); diff != "" {
		t.Errorf("double reverse changed the path: %s", diff)
	}
	if twice.ID != el.ID {
		t.Error("reverse must preserve identity")
	}
}

func TestReverseSwapsHandles(t *testing.T) {
	el := pathFrom(t, "M 0 0 C 0 10 10 10 10 0", false)
	rev := pathedit.Reverse(el)
	anchors := rev.Anchors()
	if len(anchors) != 2 {
		t.Fatalf("got %d anchors, want 2", len(anchors))
	}
	if anchors[0].Pos != (geometry.Point{X: 10, Y: 0}) {
		t.Errorf("first anchor is %v, want the old endpoint", anchors[0].Pos)
	}
	if anchors[0].HandleOut == nil || *anchors[0].HandleOut != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("old incoming handle must become the outgoing one, got %v", anchors[0].HandleOut)
	}
}

func TestOffsetAreaSign(t *testing.T) {
	// A convex clockwise square: positive distance grows it, negative
	// shrinks it.
	square := pathFrom(t, "M 0 0 L 10 0 L 10 10 L 0 10 Z", true)
	base := ringArea(square)

	grown := pathedit.Offset(square, 1)
	if got := ringArea(grown); got <= base {
		t.Errorf("outward offset area = %v, want > %v", got, base)
	}
	if grown.ID == square.ID {
		t.Error("offset result must be a new derived element")
	}

	shrunk := pathedit.Offset(square, -1)
	if got := ringArea(shrunk); got >= base {
		t.Errorf("inward offset area = %v, want < %v", got, base)
	}

	// Miter math: offsetting the unit-ish square by 1 on every side gives a
	// 12x12 square.
	if got := ringArea(grown); math.Abs(got-144) > 1e-9 {
		t.Errorf("grown area = %v, want 144", got)
	}
}

func TestOffsetTooFewAnchors(t *testing.T) {
	el := pathFrom(t, "M 5 5", false)
	if got := pathedit.Offset(el, 3); got != el {
		t.Error("offset of a single anchor must return the input unchanged")
	}
}

func TestSmoothProducesSharedTangents(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 10 0 L 20 10 L 30 10", false)
	smoothed := pathedit.Smooth(el, 1)
	anchors := smoothed.Anchors()
	if len(anchors) != 4 {
		t.Fatalf("got %d anchors, want 4", len(anchors))
	}

	// Interior anchors carry handles on both sides, collinear through the
	// anchor.
	for i := 1; i <= 2; i++ {
		a := anchors[i]
		if a.HandleIn == nil || a.HandleOut == nil {
			t.Fatalf("anchor %d missing a handle", i)
		}
		in := a.Pos.Minus(*a.HandleIn).Normalize()
		out := a.HandleOut.Minus(a.Pos).Normalize()
		if math.Abs(in.CrossProductZ(out)) > 1e-9 {
			t.Errorf("anchor %d handles are not collinear", i)
		}
	}

	// Zero smoothness keeps anchors in place with zero-length handles.
	flat := pathedit.Smooth(el, 0)
	for i, a := range flat.Anchors() {
		if a.Pos != el.Anchors()[i].Pos {
			t.Errorf("smoothing must not move anchor %d", i)
		}
	}
}

func TestSimplifyMonotonicity(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 2 0.01 L 4 0 L 3.99 2 L 4 4 L 6 4.01 L 8 4", false)

	all := pathedit.Simplify(el, 0)
	if got, want := len(all.Anchors()), len(el.Anchors()); got != want {
		t.Errorf("tolerance 0 kept %d anchors, want %d", got, want)
	}

	prev := len(el.Anchors())
	for _, tol := range []float64{0.005, 0.1, 1, 10} {
		n := len(pathedit.Simplify(el, tol).Anchors())
		if n > prev {
			t.Errorf("tolerance %v kept %d anchors, more than %d", tol, n, prev)
		}
		prev = n
	}

	// Survivors are corners: the bezier shape is discarded.
	for _, a := range pathedit.Simplify(el, 0.1).Anchors() {
		if a.Kind != path.Corner || a.HandleIn != nil || a.HandleOut != nil {
			t.Error("simplified anchors must be bare corners")
		}
	}
}

func TestSplitAtMidpoint(t *testing.T) {
	// M 0,0 L 10,0 split at segment 0, t=0.5 yields M 0,0 L 5,0 and
	// M 5,0 L 10,0.
	el := pathFrom(t, "M 0 0 L 10 0", false)
	parts := pathedit.SplitAtParameter(el, 0, 0.5)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if got := path.ToString(parts[0].Commands); got != "M 0 0 L 5 0" {
		t.Errorf("first part = %q, want \"M 0 0 L 5 0\"", got)
	}
	if got := path.ToString(parts[1].Commands); got != "M 5 0 L 10 0" {
		t.Errorf("second part = %q, want \"M 5 0 L 10 0\"", got)
	}
	if parts[0].Closed || parts[1].Closed {
		t.Error("split parts must be open")
	}
}

func TestSplitCubicPreservesShape(t *testing.T) {
	el := pathFrom(t, "M 0 0 C 0 10 10 10 10 0", false)
	parts := pathedit.SplitAtParameter(el, 0, 0.5)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}

	// Sampled points of the halves must lie on the original curve.
	orig := func(t64 float64) geometry.Point {
		return geometry.SampleCubic(
			geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 10},
			geometry.Point{X: 10, Y: 10}, geometry.Point{X: 10, Y: 0}, t64)
	}
	firstRing := path.Flatten(parts[0].Commands, 4)
	wantMid := orig(0.5)
	gotMid := firstRing[len(firstRing)-1]
	if math.Abs(gotMid.X-wantMid.X) > 1e-9 || math.Abs(gotMid.Y-wantMid.Y) > 1e-9 {
		t.Errorf("first part ends at %v, want %v", gotMid, wantMid)
	}
}

func TestSplitAtAnchorEndpointsInvalid(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 10 0 L 20 0", false)
	if parts := pathedit.SplitAtAnchor(el, 0); parts != nil {
		t.Error("splitting an open path at its start must fail")
	}
	if parts := pathedit.SplitAtAnchor(el, 2); parts != nil {
		t.Error("splitting an open path at its end must fail")
	}

	parts := pathedit.SplitAtAnchor(el, 1)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if got := path.ToString(parts[0].Commands); got != "M 0 0 L 10 0" {
		t.Errorf("first part = %q", got)
	}
	if got := path.ToString(parts[1].Commands); got != "M 10 0 L 20 0" {
		t.Errorf("second part = %q", got)
	}
}

func TestSplitClosedOpensRing(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 10 0 L 10 10 L 0 10 Z", true)
	parts := pathedit.SplitAtAnchor(el, 2)
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
	if parts[0].Closed {
		t.Error("opened ring must not be closed")
	}
	anchors := parts[0].Anchors()
	if len(anchors) != 5 {
		t.Fatalf("got %d anchors, want 5", len(anchors))
	}
	if anchors[0].Pos != anchors[4].Pos {
		t.Error("opened ring must start and end on the split anchor")
	}
	if anchors[0].Pos != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("ring opens at %v, want (10, 10)", anchors[0].Pos)
	}
}

func TestJoinPicksClosestEndpoints(t *testing.T) {
	a := pathFrom(t, "M 0 0 L 10 0", false)
	b := pathFrom(t, "M 30 0 L 10.5 0", false)

	// Closest pairing is a's end (10,0) with b's end (10.5,0), so b gets
	// reversed.
	joined := pathedit.Join(a, b)
	if joined == nil {
		t.Fatal("join failed")
	}
	anchors := joined.Anchors()
	want := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10.5, Y: 0}, {X: 30, Y: 0}}
	if len(anchors) != len(want) {
		t.Fatalf("got %d anchors, want %d", len(anchors), len(want))
	}
	for i, w := range want {
		if anchors[i].Pos != w {
			t.Errorf("anchor %d at %v, want %v", i, anchors[i].Pos, w)
		}
	}
	if joined.Closed {
		t.Error("joined result must be open")
	}
}

func TestJoinClosedInputFails(t *testing.T) {
	a := pathFrom(t, "M 0 0 L 10 0 L 10 10 Z", true)
	b := pathFrom(t, "M 30 0 L 20 0", false)
	if got := pathedit.Join(a, b); got != nil {
		t.Error("joining a closed path must fail soft")
	}
}

func TestConvertToSmooth(t *testing.T) {
	// The neighbors carry facing handles, so the middle anchor's new handles
	// survive the cubic command round trip.
	el := pathFrom(t, "M 0 0 C 2 0 8 0 10 0 C 12 0 18 10 20 10", false)

	smooth := pathedit.ConvertToSmooth(el, 1, 5)
	a := smooth.Anchors()[1]
	if a.HandleIn == nil || a.HandleOut == nil {
		t.Fatal("smooth conversion must add both handles")
	}
	hin := a.Pos.Distance(*a.HandleIn)
	hout := a.Pos.Distance(*a.HandleOut)
	if math.Abs(hin-5) > 1e-9 || math.Abs(hout-5) > 1e-9 {
		t.Errorf("handles must sit at the requested length: %v and %v, want 5", hin, hout)
	}
	if smooth.ID != el.ID {
		t.Error("smooth conversion must preserve identity")
	}

	// Out of range is a no-op.
	if got := pathedit.ConvertToSmooth(el, 99, 5); got != el {
		t.Error("invalid index must return the input")
	}
}

func TestConvertToCorner(t *testing.T) {
	el := pathFrom(t, "M 0 0 Q 5 5 10 0 L 20 0", false)

	corner := pathedit.ConvertToCorner(el, 1)
	a := corner.Anchors()[1]
	if a.HandleIn != nil || a.HandleOut != nil {
		t.Error("corner conversion must clear both handles")
	}
	if a.Kind != path.Corner {
		t.Error("converted anchor must be a corner")
	}

	if got := pathedit.ConvertToCorner(el, -1); got != el {
		t.Error("invalid index must return the input")
	}
}

func TestInsertAndDeleteAnchor(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 10 0 L 20 0", false)

	inserted := pathedit.InsertAnchor(el, 0, 0.5)
	anchors := inserted.Anchors()
	if len(anchors) != 4 {
		t.Fatalf("got %d anchors after insert, want 4", len(anchors))
	}
	if anchors[1].Pos != (geometry.Point{X: 5, Y: 0}) {
		t.Errorf("inserted anchor at %v, want (5, 0)", anchors[1].Pos)
	}
	if inserted.ID != el.ID {
		t.Error("insert must preserve identity")
	}

	deleted := pathedit.DeleteAnchor(inserted, 1)
	if got := len(deleted.Anchors()); got != 3 {
		t.Errorf("got %d anchors after delete, want 3", got)
	}

	// Deletion refuses to go below 2 anchors.
	two := pathFrom(t, "M 0 0 L 10 0", false)
	if got := pathedit.DeleteAnchor(two, 0); got != two {
		t.Error("deleting from a 2-anchor path must return the input")
	}
}

func TestOutlineStroke(t *testing.T) {
	el := pathFrom(t, "M 0 0 L 10 0 L 10 10 L 0 10 Z", true)
	el.Stroke = &document.Stroke{Color: document.Black(), Width: 2, MiterLimit: 10}

	outlined := pathedit.OutlineStroke(el)
	if outlined == nil {
		t.Fatal("outline failed")
	}
	if !outlined.Closed {
		t.Error("outline must be a closed fill path")
	}
	if outlined.Stroke != nil {
		t.Error("outline must drop the stroke")
	}
	if outlined.Fill == nil || outlined.Fill.Color == nil {
		t.Error("outline must be filled with the stroke color")
	}

	// The outline band covers the stroke but not the interior: points on the
	// original edges are inside, the shape's center is in the hole. The seam
	// joining the outer and inner rings nicks the band near the start corner,
	// so the probes sit on the far edges.
	ring := path.Flatten(outlined.Commands, 0)
	if !ring.Contains(geometry.Point{X: 5, Y: 0}) {
		t.Error("point on the stroked top edge must be inside the outline")
	}
	if !ring.Contains(geometry.Point{X: 10, Y: 5}) {
		t.Error("point on the stroked right edge must be inside the outline")
	}
	if ring.Contains(geometry.Point{X: 5, Y: 5}) {
		t.Error("shape center must fall in the outline's hole")
	}

	// No stroke: no-op.
	bare := pathFrom(t, "M 0 0 L 10 0", false)
	if pathedit.OutlineStroke(bare) != nil {
		t.Error("outlining an unstroked path must fail soft")
	}
}

func TestMergeNearby(t *testing.T) {
	a := pathFrom(t, "M 0 0 L 10 0", false)
	b := pathFrom(t, "M 10 0 L 20 0", false)
	c := pathFrom(t, "M 100 100 L 110 100", false)
	closed := pathFrom(t, "M 50 50 L 60 50 L 60 60 Z", true)

	merged := pathedit.MergeNearby([]*document.PathElement{a, b, c, closed}, 0.5)
	if len(merged) != 3 {
		t.Fatalf("got %d elements, want 3 (joined pair, far path, closed path)", len(merged))
	}

	var joined *document.PathElement
	for _, el := range merged {
		if el != c && el != closed {
			joined = el
		}
	}
	if joined == nil {
		t.Fatal("no joined element found")
	}
	if got := len(joined.Anchors()); got != 4 {
		t.Errorf("joined path has %d anchors, want 4", got)
	}
}
