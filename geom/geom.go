package geom

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

type Vector struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{x, y} }
func Vec(x, y float64) Vector { return Vector{x, y} }

func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y} }
func (p Point) Sub(v Vector) Point { return Point{p.X - v.X, p.Y - v.Y} }

// To returns the vector from p to q.
func (p Point) To(q Point) Vector { return Vector{q.X - p.X, q.Y - p.Y} }

func (p Point) ToVector() Vector { return Vector{p.X, p.Y} }

func (p Point) Dist(q Point) float64 { return p.To(q).Len() }

func (p Point) String() string { return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y) }

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(k float64) Vector { return Vector{v.X * k, v.Y * k} }
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vector) Orientation() Angle { return Angle(math.Atan2(v.Y, v.X)) }
func (v Vector) String() string { return fmt.Sprintf("<%.3f, %.3f>", v.X, v.Y) }
func (v Vector) Perp() Vector { return Vector{-v.Y, v.X} }
func (v Vector) Rotate(a Angle) Vector {
	s, c := math.Sincos(float64(a))
	return Vector{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Normalize returns v scaled to length l. The zero vector stays zero.
func (v Vector) Normalize(l float64) Vector {
	n := v.Len()
	if n == 0 {
		return Vector{}
	}
	return v.Scale(l / n)
}

// Angle is an orientation in radians.
type Angle float64

func Degrees(d float64) Angle { return Angle(d * math.Pi / 180) }

func (a Angle) Radians() float64 { return float64(a) }
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Clamp wraps a into (-π, π].
func (a Angle) Clamp() Angle {
	r := math.Remainder(float64(a), 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// Diff is the absolute smallest rotation between a and b.
func (a Angle) Diff(b Angle) Angle {
	return Angle(math.Abs(float64((a - b).Clamp())))
}

func (a Angle) Unit() Vector {
	s, c := math.Sincos(float64(a))
	return Vector{c, s}
}

// DistToSegment returns the distance from p to the segment ab.
func DistToSegment(p, a, b Point) float64 {
	return p.Dist(ClosestOnSegment(p, a, b))
}

func ClosestOnSegment(p, a, b Point) Point {
	ab := a.To(b)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := a.To(p).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
