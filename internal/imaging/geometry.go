package imaging

import "math"

// Point is a planar coordinate in source-image pixel space.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	return math.Hypot(dx, dy)
}

// Angle returns the angle of the vector p1->p2, in radians unless
// degrees is true.
func Angle(p1, p2 Point, degrees bool) float64 {
	a := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	if degrees {
		return a * 180 / math.Pi
	}
	return a
}

// Center returns the midpoint of p1 and p2.
func Center(p1, p2 Point) Point {
	return Point{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}
}
