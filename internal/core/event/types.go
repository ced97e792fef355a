package event

import "github.com/petstore/bossfight/internal/geom"

// Boss

type BossStateChanged struct {
	From string
	To   string
}

type BossDamaged struct {
	Amount  float64
	Current float64
	Max     float64
}

type BossDied struct{}

type AttackStarted struct {
	Attacker string // "boss" or "player"
	Kind     string
}

// AreaTelegraphed is emitted when an area attack rolls its geometry.
type AreaTelegraphed struct {
	Center geom.Vec3
	Radius float64
}

type AttackResolved struct {
	Attacker string
	Kind     string
	Hit      bool
	Damage   float64
	Distance float64
	Range    float64
}

// Player

type PlayerHealthChanged struct {
	Current float64
	Max     float64
}

type PlayerDied struct{}

type LowHealthChanged struct{ Low bool }

type RegenChanged struct{ Active bool }

type MentalChanged struct {
	Current float64
	Max     float64
}

type TiredChanged struct{ Tired bool }

type GroomingChanged struct{ Grooming bool }
