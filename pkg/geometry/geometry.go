package geometry

import (
	"math"

	"pathworks/pkg/cfg"
)

type Point struct {
	X float64
	Y float64
}

type Vector2 = Point

type LineSegment struct {
	A Point
	B Point
}

type Rect struct {
	Min Point
	Max Point
}

type Polyline []Point

func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Vector2) Minus(b Vector2) Vector2 {
	return Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns the vector scaled by the given factor f.
func (p Vector2) Scale(f float64) Vector2 {
	return Vector2{X: p.X * f, Y: p.Y * f}
}

func (a Vector2) Dot(b Vector2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func (a Vector2) CrossProductZ(b Vector2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v's magnitude is below cfg.GeomEpsilon.
func (v Vector2) Normalize() Vector2 {
	m := v.Magnitude()
	if m < cfg.GeomEpsilon {
		return Vector2{}
	}
	return Vector2{X: v.X / m, Y: v.Y / m}
}

// Perpendicular returns v rotated 90 degrees counter-clockwise in the y-down
// screen convention.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Distance returns the distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Lerp returns the point a fraction t of the way from p to other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

func (s LineSegment) Length() float64 {
	return s.A.Distance(s.B)
}

// Distance returns the distance between a point and a line segment.
func (s LineSegment) Distance(p Point) float64 {
	AP := p.Minus(s.A)
	AB := s.A.Minus(s.B)
	mAP := AP.Magnitude()
	mBP := p.Minus(s.B).Magnitude()
	mAB := AB.Magnitude()

	if mAP > mAB || mBP > mAB {
		// closest point on line is outside segment boundaries, so the closest point
		// is the nearest of the two endpoints.
		return math.Min(mAP, mBP)
	}

	return math.Abs(AP.CrossProductZ(AB)) / mAB
}

// SegmentIntersection solves the parametric intersection of segments p1-p2 and
// p3-p4. It reports false for parallel or near-parallel segments (cross product
// magnitude below cfg.ParallelEpsilon, a documented robustness knob) and for
// intersections falling outside either segment.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	d1 := p2.Minus(p1)
	d2 := p4.Minus(p3)

	denom := d1.CrossProductZ(d2)
	if math.Abs(denom) < cfg.ParallelEpsilon {
		return Point{}, false
	}

	diff := p3.Minus(p1)
	t1 := diff.CrossProductZ(d2) / denom
	t2 := diff.CrossProductZ(d1) / denom
	if t1 < 0 || t1 > 1 || t2 < 0 || t2 > 1 {
		return Point{}, false
	}

	return p1.Add(d1.Scale(t1)), true
}

func (line Polyline) EndpointDistance(p Point) float64 {
	if len(line) == 0 {
		return math.NaN()
	}
	d := line[0].Distance(p)
	if len(line) > 1 {
		d = math.Min(d, line[len(line)-1].Distance(p))
	}
	return d
}

// Simplify simplifies the polyline using the Douglas-Peucker algorithm.
// A zero or negative epsilon keeps every point.
func (points Polyline) Simplify(epsilon float64) Polyline {
	if len(points) < 2 {
		return nil
	}
	if epsilon <= 0 {
		result := make(Polyline, len(points))
		copy(result, points)
		return result
	}

	// find the point with the max distance from the line segment between the first and last points
	firstPoint, lastPoint := points[0], points[len(points)-1]
	chord := LineSegment{A: firstPoint, B: lastPoint}
	if len(points) == 2 {
		return Polyline{firstPoint, lastPoint}
	}

	dmax := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		d := chord.Distance(points[i])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax < epsilon {
		return Polyline{firstPoint, lastPoint}
	}

	// note: need to be careful on the recursive step to not call with < 2 points
	recResults1 := Polyline(points[:index+1]).Simplify(epsilon)
	recResults2 := Polyline(points[index:]).Simplify(epsilon)

	return append(recResults1[:len(recResults1)-1], recResults2...)
}
