package geom

import "math"

// Rectangle is an axis-aligned rectangle. Construct with Rect so that Min
// is always the lower-left corner.
type Rectangle struct {
	Min, Max Point
}

func Rect(a, b Point) Rectangle {
	return Rectangle{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rectangle) XLength() float64 { return r.Max.X - r.Min.X }
func (r Rectangle) YLength() float64 { return r.Max.Y - r.Min.Y }

func (r Rectangle) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Dist is the distance from p to the rectangle; zero inside.
func (r Rectangle) Dist(p Point) float64 {
	dx := math.Max(0, math.Max(r.Min.X-p.X, p.X-r.Max.X))
	dy := math.Max(0, math.Max(r.Min.Y-p.Y, p.Y-r.Max.Y))
	return math.Hypot(dx, dy)
}

// Clamp returns the point of r closest to p.
func (r Rectangle) Clamp(p Point) Point {
	return Point{
		math.Max(r.Min.X, math.Min(r.Max.X, p.X)),
		math.Max(r.Min.Y, math.Min(r.Max.Y, p.Y)),
	}
}
