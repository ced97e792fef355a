package boss

import (
	"time"

	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/health"
)

// Config is the boss's designer tuning. It is copied on construction and
// only replaced wholesale through Reconfigure.
type Config struct {
	MaxHealth          float64
	LowHealthThreshold float64 // health ratio that shortens the area cooldown

	BasicAttackInterval         time.Duration
	BasicAttackRange            float64
	BasicAttackDamage           float64
	BasicWindup                 time.Duration
	BasicRecovery               time.Duration
	AreaAttackInterval          time.Duration
	LowHealthAreaAttackInterval time.Duration
	AreaAttackDamage            float64
	Area                        combat.AreaSpec
	AreaReady                   time.Duration
	AreaCast                    time.Duration
	AreaRecovery                time.Duration

	MoveSpeed       float64
	ReturnSpeed     float64
	Acceleration    float64
	TurnRate        float64 // facing slerp factor per second
	TerritoryRadius float64
	ArriveRadius    float64 // distance from origin that counts as home
	DetectionRadius float64 // debug overlay only

	DamagedDuration time.Duration

	WarningPrefab     effect.Prefab
	ExplosionPrefab   effect.Prefab
	WarningLifetime   time.Duration
	ExplosionLifetime time.Duration
	EffectLift        float64 // effects spawn this far above the rolled center
	EffectScaleUnit   float64 // effect scale = radius / EffectScaleUnit
}

func DefaultConfig() Config {
	return Config{
		MaxHealth:          100,
		LowHealthThreshold: 0.3,

		BasicAttackInterval:         2 * time.Second,
		BasicAttackRange:            2,
		BasicAttackDamage:           20,
		BasicWindup:                 500 * time.Millisecond,
		BasicRecovery:               500 * time.Millisecond,
		AreaAttackInterval:          8 * time.Second,
		LowHealthAreaAttackInterval: 4 * time.Second,
		AreaAttackDamage:            30,
		Area: combat.AreaSpec{
			MinRadius: 3,
			MaxRadius: 8,
			Blend:     0.5,
			Jitter:    1,
		},
		AreaReady:    time.Second,
		AreaCast:     500 * time.Millisecond,
		AreaRecovery: time.Second,

		MoveSpeed:       3,
		ReturnSpeed:     2,
		Acceleration:    8,
		TurnRate:        8,
		TerritoryRadius: 15,
		ArriveRadius:    1.5,
		DetectionRadius: 10,

		DamagedDuration: 500 * time.Millisecond,

		WarningPrefab:     "area_warning",
		ExplosionPrefab:   "area_explosion",
		WarningLifetime:   1500 * time.Millisecond,
		ExplosionLifetime: 3 * time.Second,
		EffectLift:        0.1,
		EffectScaleUnit:   3,
	}
}

// StoppingDistance is where the agent brakes when chasing: half melee reach.
func (c Config) StoppingDistance() float64 { return c.BasicAttackRange * 0.5 }

func (c Config) areaInterval(lowHealth bool) time.Duration {
	if lowHealth {
		return c.LowHealthAreaAttackInterval
	}
	return c.AreaAttackInterval
}

func (c Config) healthConfig() health.Config {
	return health.Config{
		Max:          c.MaxHealth,
		LowThreshold: c.LowHealthThreshold,
	}
}
