// Package geom holds the small amount of 3D math the encounter needs.
// Y is up; the ground is the XZ plane.
package geom

import "math"

// Vec3 is a position or direction in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	Zero = Vec3{}
	Up   = Vec3{0, 1, 0}
)

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3         { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3         { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3    { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64      { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64            { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Dist(b Vec3) float64     { return a.Sub(b).Len() }
func (a Vec3) Flat() Vec3              { return Vec3{a.X, 0, a.Z} }
func (a Vec3) FlatDist(b Vec3) float64 { return a.Sub(b).Flat().Len() }
func (a Vec3) IsZero() bool            { return a.X == 0 && a.Y == 0 && a.Z == 0 }

func (a Vec3) Norm() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// ClampLen shortens a to at most max length.
func (a Vec3) ClampLen(max float64) Vec3 {
	l := a.Len()
	if l <= max || l == 0 {
		return a
	}
	return a.Scale(max / l)
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// MoveTowards moves cur toward target by at most maxDelta.
func MoveTowards(cur, target Vec3, maxDelta float64) Vec3 {
	d := target.Sub(cur)
	l := d.Len()
	if l <= maxDelta || l == 0 {
		return target
	}
	return cur.Add(d.Scale(maxDelta / l))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func LerpF(a, b, t float64) float64 { return a + (b-a)*t }
