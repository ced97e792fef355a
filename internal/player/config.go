package player

import (
	"time"

	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/health"
	"github.com/petstore/bossfight/internal/mental"
)

// Ability is one offensive action's reach, damage and cooldown.
type Ability struct {
	Range    float64
	Damage   float64
	Cooldown time.Duration
}

type Config struct {
	Health health.Config
	Mental mental.Config

	Start geom.Vec3

	WalkSpeed           float64
	RunSpeed            float64
	JumpForce           float64
	RotationSpeed       float64
	TiredSpeedFactor    float64 // walk speed multiplier while tired
	TiredRotationFactor float64
	Gravity             float64
	GroundCheck         float64 // feet this close to the ground count as grounded

	Abilities [ActionCount]Ability

	RegenPrefab effect.Prefab
}

func DefaultConfig() Config {
	return Config{
		Health: health.DefaultConfig(),
		Mental: mental.DefaultConfig(),

		Start: geom.V(0, 0, -20),

		WalkSpeed:           3,
		RunSpeed:            6,
		JumpForce:           5,
		RotationSpeed:       15,
		TiredSpeedFactor:    0.5,
		TiredRotationFactor: 0.7,
		Gravity:             9.81,
		GroundCheck:         0.2,

		Abilities: [ActionCount]Ability{
			ActionAttack:   {Range: 2.5, Damage: 8, Cooldown: 800 * time.Millisecond},
			ActionSkill:    {Range: 3.5, Damage: 15, Cooldown: 4 * time.Second},
			ActionUltimate: {Range: 5, Damage: 35, Cooldown: 15 * time.Second},
		},

		RegenPrefab: "regen_sparkle",
	}
}
