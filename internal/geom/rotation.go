package geom

import "math"

// Yaw is a heading about the up axis in radians. Zero faces +Z and is the
// identity rotation.
type Yaw float64

// LookYaw returns the heading that faces along dir on the ground plane.
// ok is false when dir has no horizontal component.
func LookYaw(dir Vec3) (y Yaw, ok bool) {
	f := dir.Flat()
	if f.Len() < 1e-6 {
		return 0, false
	}
	return Yaw(math.Atan2(f.X, f.Z)), true
}

// Forward is the unit ground-plane vector the heading faces.
func (y Yaw) Forward() Vec3 {
	s, c := math.Sincos(float64(y))
	return Vec3{s, 0, c}
}

func (y Yaw) Degrees() float64 { return float64(y) * 180 / math.Pi }

// Towards interpolates along the shortest arc to target. t is clamped to [0,1].
func (y Yaw) Towards(target Yaw, t float64) Yaw {
	t = Clamp01(t)
	delta := WrapAngle(float64(target) - float64(y))
	return Yaw(WrapAngle(float64(y) + delta*t))
}

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
