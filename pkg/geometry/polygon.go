package geometry

import "sort"

// Polygon is an ordered vertex ring with an implicit closing edge from the
// last vertex back to the first.
type Polygon []Point

// SignedArea computes the shoelace area. Under the y-down screen convention a
// positive area means clockwise winding.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	area := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func (p Polygon) IsClockwise() bool {
	return p.SignedArea() > 0
}

// Reverse returns the ring with its winding flipped.
func (p Polygon) Reverse() Polygon {
	reversed := make(Polygon, len(p))
	for i, pt := range p {
		reversed[len(p)-1-i] = pt
	}
	return reversed
}

// Contains reports whether pt lies inside the polygon, by ray casting.
// Behavior for points exactly on the boundary is undefined.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Centroid returns the vertex average. Good enough for picking a
// representative interior point of a convex ring and for angular sorting.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range p {
		c.X += pt.X
		c.Y += pt.Y
	}
	return Point{X: c.X / float64(len(p)), Y: c.Y / float64(len(p))}
}

// ConvexHull computes the convex hull of the given points with the monotone
// chain algorithm. The result winds clockwise in the y-down convention.
// Fewer than 3 distinct points yield the points unchanged.
func ConvexHull(points []Point) Polygon {
	if len(points) < 3 {
		return append(Polygon{}, points...)
	}

	sorted := append([]Point{}, points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b Point) float64 {
		return a.Minus(o).CrossProductZ(b.Minus(o))
	}

	var lower []Point
	for _, pt := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}

	var upper []Point
	for i := len(sorted) - 1; i >= 0; i-- {
		pt := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)

	ring := Polygon(hull)
	if !ring.IsClockwise() {
		ring = ring.Reverse()
	}
	return ring
}
