package geom

import "math"

// SmoothDamp eases current toward target with a critically damped spring.
// velocity carries state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// no overshoot
	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}

// SmoothDampVec applies SmoothDamp per component.
func SmoothDampVec(current, target Vec3, velocity *Vec3, smoothTime, dt float64) Vec3 {
	return Vec3{
		X: SmoothDamp(current.X, target.X, &velocity.X, smoothTime, dt),
		Y: SmoothDamp(current.Y, target.Y, &velocity.Y, smoothTime, dt),
		Z: SmoothDamp(current.Z, target.Z, &velocity.Z, smoothTime, dt),
	}
}
