// Package combat resolves hits by distance. Everything here is a pure
// function of its inputs; randomness only enters through RollArea's rng.
package combat

import (
	"math/rand"

	"github.com/petstore/bossfight/internal/geom"
)

type Kind int

const (
	KindMelee Kind = iota
	KindArea
)

func (k Kind) String() string {
	switch k {
	case KindMelee:
		return "melee"
	case KindArea:
		return "area"
	}
	return "unknown"
}

// Result of one hit test. Damage is zero on a miss.
type Result struct {
	Kind     Kind
	Hit      bool
	Damage   float64
	Distance float64
	Range    float64
}

// ResolveMelee tests a sphere of radius reach around the attacker.
// A defender exactly on the boundary is hit.
func ResolveMelee(attacker, defender geom.Vec3, reach, damage float64) Result {
	return resolve(KindMelee, attacker.Dist(defender), reach, damage)
}

// ResolveArea tests the defender against a rolled area geometry.
func ResolveArea(g AreaGeometry, defender geom.Vec3, damage float64) Result {
	return resolve(KindArea, g.Center.Dist(defender), g.Radius, damage)
}

func resolve(kind Kind, dist, reach, damage float64) Result {
	r := Result{Kind: kind, Distance: dist, Range: reach}
	if dist <= reach {
		r.Hit = true
		r.Damage = damage
	}
	return r
}

// AreaGeometry is the circle an area attack will strike.
type AreaGeometry struct {
	Center geom.Vec3
	Radius float64
}

func (g AreaGeometry) Contains(p geom.Vec3) bool {
	return g.Center.Dist(p) <= g.Radius
}

// AreaSpec bounds the roll of an area attack.
type AreaSpec struct {
	MinRadius float64
	MaxRadius float64
	Blend     float64 // 0 = on the boss, 1 = on the player
	Jitter    float64 // max random offset on x and z
}

// RollArea picks a radius uniformly in [MinRadius,MaxRadius] and a center on
// the boss-player segment at Blend, offset by up to Jitter on x and z.
func RollArea(rng *rand.Rand, boss, player geom.Vec3, spec AreaSpec) AreaGeometry {
	lo, hi := spec.MinRadius, spec.MaxRadius
	if hi < lo {
		lo, hi = hi, lo
	}
	radius := lo + rng.Float64()*(hi-lo)

	center := geom.Lerp(boss, player, spec.Blend)
	center.X += (rng.Float64()*2 - 1) * spec.Jitter
	center.Z += (rng.Float64()*2 - 1) * spec.Jitter
	return AreaGeometry{Center: center, Radius: radius}
}
