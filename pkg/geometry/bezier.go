package geometry

// Cubic is one cubic bezier segment: endpoints P0/P3 with control points P1/P2.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// SampleCubic evaluates the cubic bezier defined by p0..p3 at t in [0,1]
// using the Bernstein form.
func SampleCubic(p0, p1, p2, p3 Point, t float64) Point {
	m := 1 - t
	a := m * m * m
	b := 3 * m * m * t
	c := 3 * m * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// SampleQuadratic evaluates the quadratic bezier defined by p0, control p1 and
// p2 at t in [0,1].
func SampleQuadratic(p0, p1, p2 Point, t float64) Point {
	m := 1 - t
	a := m * m
	b := 2 * m * t
	c := t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// SplitCubic subdivides a cubic bezier at t by de Casteljau's construction.
// The two returned cubics concatenate to reproduce the original curve exactly,
// meeting at the curve point for t.
func SplitCubic(p0, p1, p2, p3 Point, t float64) (Cubic, Cubic) {
	p01 := p0.Lerp(p1, t)
	p12 := p1.Lerp(p2, t)
	p23 := p2.Lerp(p3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)

	return Cubic{P0: p0, P1: p01, P2: p012, P3: mid},
		Cubic{P0: mid, P1: p123, P2: p23, P3: p3}
}

// QuadraticToCubic returns the exact cubic form of a quadratic bezier.
func QuadraticToCubic(p0, control, p2 Point) Cubic {
	return Cubic{
		P0: p0,
		P1: p0.Add(control.Minus(p0).Scale(2.0 / 3.0)),
		P2: p2.Add(control.Minus(p2).Scale(2.0 / 3.0)),
		P3: p2,
	}
}
