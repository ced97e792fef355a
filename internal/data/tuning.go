package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/boss"
	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/player"
	"github.com/petstore/bossfight/internal/presentation"
)

// Seconds is a duration written as fractional seconds in YAML.
type Seconds float64

func (s Seconds) Duration() time.Duration { return time.Duration(float64(s) * float64(time.Second)) }

func secs(d time.Duration) Seconds { return Seconds(d.Seconds()) }

// Vec is a position written as [x, y, z].
type Vec [3]float64

func (v Vec) Vec3() geom.Vec3 { return geom.V(v[0], v[1], v[2]) }

func vec(v geom.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// BossTuning is the YAML form of boss.Config.
type BossTuning struct {
	MaxHealth          float64 `yaml:"max_health"`
	LowHealthThreshold float64 `yaml:"low_health_threshold"`

	BasicAttack struct {
		Interval Seconds `yaml:"interval"`
		Range    float64 `yaml:"range"`
		Damage   float64 `yaml:"damage"`
		Windup   Seconds `yaml:"windup"`
		Recovery Seconds `yaml:"recovery"`
	} `yaml:"basic_attack"`

	AreaAttack struct {
		Interval          Seconds `yaml:"interval"`
		LowHealthInterval Seconds `yaml:"low_health_interval"`
		Damage            float64 `yaml:"damage"`
		MinRadius         float64 `yaml:"min_radius"`
		MaxRadius         float64 `yaml:"max_radius"`
		Blend             float64 `yaml:"blend"`
		Jitter            float64 `yaml:"jitter"`
		Ready             Seconds `yaml:"ready"`
		Cast              Seconds `yaml:"cast"`
		Recovery          Seconds `yaml:"recovery"`
	} `yaml:"area_attack"`

	Movement struct {
		MoveSpeed       float64 `yaml:"move_speed"`
		ReturnSpeed     float64 `yaml:"return_speed"`
		Acceleration    float64 `yaml:"acceleration"`
		TurnRate        float64 `yaml:"turn_rate"`
		TerritoryRadius float64 `yaml:"territory_radius"`
		ArriveRadius    float64 `yaml:"arrive_radius"`
		DetectionRadius float64 `yaml:"detection_radius"`
	} `yaml:"movement"`

	DamagedDuration Seconds `yaml:"damaged_duration"`

	Effects struct {
		Warning           string  `yaml:"warning"`
		Explosion         string  `yaml:"explosion"`
		WarningLifetime   Seconds `yaml:"warning_lifetime"`
		ExplosionLifetime Seconds `yaml:"explosion_lifetime"`
		Lift              float64 `yaml:"lift"`
		ScaleUnit         float64 `yaml:"scale_unit"`
	} `yaml:"effects"`
}

func BossTuningFrom(c boss.Config) BossTuning {
	var t BossTuning
	t.MaxHealth = c.MaxHealth
	t.LowHealthThreshold = c.LowHealthThreshold

	t.BasicAttack.Interval = secs(c.BasicAttackInterval)
	t.BasicAttack.Range = c.BasicAttackRange
	t.BasicAttack.Damage = c.BasicAttackDamage
	t.BasicAttack.Windup = secs(c.BasicWindup)
	t.BasicAttack.Recovery = secs(c.BasicRecovery)

	t.AreaAttack.Interval = secs(c.AreaAttackInterval)
	t.AreaAttack.LowHealthInterval = secs(c.LowHealthAreaAttackInterval)
	t.AreaAttack.Damage = c.AreaAttackDamage
	t.AreaAttack.MinRadius = c.Area.MinRadius
	t.AreaAttack.MaxRadius = c.Area.MaxRadius
	t.AreaAttack.Blend = c.Area.Blend
	t.AreaAttack.Jitter = c.Area.Jitter
	t.AreaAttack.Ready = secs(c.AreaReady)
	t.AreaAttack.Cast = secs(c.AreaCast)
	t.AreaAttack.Recovery = secs(c.AreaRecovery)

	t.Movement.MoveSpeed = c.MoveSpeed
	t.Movement.ReturnSpeed = c.ReturnSpeed
	t.Movement.Acceleration = c.Acceleration
	t.Movement.TurnRate = c.TurnRate
	t.Movement.TerritoryRadius = c.TerritoryRadius
	t.Movement.ArriveRadius = c.ArriveRadius
	t.Movement.DetectionRadius = c.DetectionRadius

	t.DamagedDuration = secs(c.DamagedDuration)

	t.Effects.Warning = string(c.WarningPrefab)
	t.Effects.Explosion = string(c.ExplosionPrefab)
	t.Effects.WarningLifetime = secs(c.WarningLifetime)
	t.Effects.ExplosionLifetime = secs(c.ExplosionLifetime)
	t.Effects.Lift = c.EffectLift
	t.Effects.ScaleUnit = c.EffectScaleUnit
	return t
}

func (t BossTuning) Config() boss.Config {
	return boss.Config{
		MaxHealth:          t.MaxHealth,
		LowHealthThreshold: t.LowHealthThreshold,

		BasicAttackInterval:         t.BasicAttack.Interval.Duration(),
		BasicAttackRange:            t.BasicAttack.Range,
		BasicAttackDamage:           t.BasicAttack.Damage,
		BasicWindup:                 t.BasicAttack.Windup.Duration(),
		BasicRecovery:               t.BasicAttack.Recovery.Duration(),
		AreaAttackInterval:          t.AreaAttack.Interval.Duration(),
		LowHealthAreaAttackInterval: t.AreaAttack.LowHealthInterval.Duration(),
		AreaAttackDamage:            t.AreaAttack.Damage,
		Area: combat.AreaSpec{
			MinRadius: t.AreaAttack.MinRadius,
			MaxRadius: t.AreaAttack.MaxRadius,
			Blend:     t.AreaAttack.Blend,
			Jitter:    t.AreaAttack.Jitter,
		},
		AreaReady:    t.AreaAttack.Ready.Duration(),
		AreaCast:     t.AreaAttack.Cast.Duration(),
		AreaRecovery: t.AreaAttack.Recovery.Duration(),

		MoveSpeed:       t.Movement.MoveSpeed,
		ReturnSpeed:     t.Movement.ReturnSpeed,
		Acceleration:    t.Movement.Acceleration,
		TurnRate:        t.Movement.TurnRate,
		TerritoryRadius: t.Movement.TerritoryRadius,
		ArriveRadius:    t.Movement.ArriveRadius,
		DetectionRadius: t.Movement.DetectionRadius,

		DamagedDuration: t.DamagedDuration.Duration(),

		WarningPrefab:     effect.Prefab(t.Effects.Warning),
		ExplosionPrefab:   effect.Prefab(t.Effects.Explosion),
		WarningLifetime:   t.Effects.WarningLifetime.Duration(),
		ExplosionLifetime: t.Effects.ExplosionLifetime.Duration(),
		EffectLift:        t.Effects.Lift,
		EffectScaleUnit:   t.Effects.ScaleUnit,
	}
}

func (t BossTuning) Validate() error {
	var errs []error
	if t.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max_health must be positive, got %v", t.MaxHealth))
	}
	if t.LowHealthThreshold < 0 || t.LowHealthThreshold > 1 {
		errs = append(errs, fmt.Errorf("low_health_threshold must be in [0,1], got %v", t.LowHealthThreshold))
	}
	if t.BasicAttack.Range <= 0 {
		errs = append(errs, fmt.Errorf("basic_attack.range must be positive, got %v", t.BasicAttack.Range))
	}
	if t.BasicAttack.Interval <= 0 || t.AreaAttack.Interval <= 0 || t.AreaAttack.LowHealthInterval <= 0 {
		errs = append(errs, errors.New("attack intervals must be positive"))
	}
	if t.AreaAttack.MinRadius <= 0 || t.AreaAttack.MaxRadius < t.AreaAttack.MinRadius {
		errs = append(errs, fmt.Errorf("area_attack radius range [%v,%v] is invalid",
			t.AreaAttack.MinRadius, t.AreaAttack.MaxRadius))
	}
	if t.AreaAttack.Blend < 0 || t.AreaAttack.Blend > 1 {
		errs = append(errs, fmt.Errorf("area_attack.blend must be in [0,1], got %v", t.AreaAttack.Blend))
	}
	if t.Movement.TerritoryRadius <= 0 {
		errs = append(errs, fmt.Errorf("movement.territory_radius must be positive, got %v", t.Movement.TerritoryRadius))
	}
	if t.Movement.ArriveRadius <= 0 {
		errs = append(errs, fmt.Errorf("movement.arrive_radius must be positive, got %v", t.Movement.ArriveRadius))
	}
	// the agent brakes at half melee reach; stopping outside arrive_radius
	// leaves the boss returning forever
	if stop := t.BasicAttack.Range * 0.5; t.BasicAttack.Range > 0 && stop > t.Movement.ArriveRadius {
		errs = append(errs, fmt.Errorf("basic_attack.range %v stops the boss %v from home, beyond movement.arrive_radius %v",
			t.BasicAttack.Range, stop, t.Movement.ArriveRadius))
	}
	if t.Effects.ScaleUnit <= 0 {
		errs = append(errs, fmt.Errorf("effects.scale_unit must be positive, got %v", t.Effects.ScaleUnit))
	}
	return errors.Join(errs...)
}

type AbilityTuning struct {
	Range    float64 `yaml:"range"`
	Damage   float64 `yaml:"damage"`
	Cooldown Seconds `yaml:"cooldown"`
}

func (a AbilityTuning) ability() player.Ability {
	return player.Ability{Range: a.Range, Damage: a.Damage, Cooldown: a.Cooldown.Duration()}
}

func abilityTuning(a player.Ability) AbilityTuning {
	return AbilityTuning{Range: a.Range, Damage: a.Damage, Cooldown: secs(a.Cooldown)}
}

// PlayerTuning is the YAML form of player.Config.
type PlayerTuning struct {
	Start Vec `yaml:"start"`

	Health struct {
		Max          float64 `yaml:"max"`
		Regen        bool    `yaml:"regen"`
		RegenDelay   Seconds `yaml:"regen_delay"`
		RegenRate    float64 `yaml:"regen_rate"`
		LowThreshold float64 `yaml:"low_threshold"`
	} `yaml:"health"`

	Mental struct {
		Max          float64 `yaml:"max"`
		DecayRate    float64 `yaml:"decay_rate"`
		RecoveryRate float64 `yaml:"recovery_rate"`
		Period       Seconds `yaml:"period"`
	} `yaml:"mental"`

	Movement struct {
		WalkSpeed           float64 `yaml:"walk_speed"`
		RunSpeed            float64 `yaml:"run_speed"`
		JumpForce           float64 `yaml:"jump_force"`
		RotationSpeed       float64 `yaml:"rotation_speed"`
		TiredSpeedFactor    float64 `yaml:"tired_speed_factor"`
		TiredRotationFactor float64 `yaml:"tired_rotation_factor"`
		Gravity             float64 `yaml:"gravity"`
		GroundCheck         float64 `yaml:"ground_check"`
	} `yaml:"movement"`

	Abilities struct {
		Attack   AbilityTuning `yaml:"attack"`
		Skill    AbilityTuning `yaml:"skill"`
		Ultimate AbilityTuning `yaml:"ultimate"`
	} `yaml:"abilities"`

	RegenEffect string `yaml:"regen_effect"`
}

func PlayerTuningFrom(c player.Config) PlayerTuning {
	var t PlayerTuning
	t.Start = vec(c.Start)

	t.Health.Max = c.Health.Max
	t.Health.Regen = c.Health.RegenEnabled
	t.Health.RegenDelay = secs(c.Health.RegenDelay)
	t.Health.RegenRate = c.Health.RegenRate
	t.Health.LowThreshold = c.Health.LowThreshold

	t.Mental.Max = c.Mental.Max
	t.Mental.DecayRate = c.Mental.DecayRate
	t.Mental.RecoveryRate = c.Mental.RecoveryRate
	t.Mental.Period = secs(c.Mental.Period)

	t.Movement.WalkSpeed = c.WalkSpeed
	t.Movement.RunSpeed = c.RunSpeed
	t.Movement.JumpForce = c.JumpForce
	t.Movement.RotationSpeed = c.RotationSpeed
	t.Movement.TiredSpeedFactor = c.TiredSpeedFactor
	t.Movement.TiredRotationFactor = c.TiredRotationFactor
	t.Movement.Gravity = c.Gravity
	t.Movement.GroundCheck = c.GroundCheck

	t.Abilities.Attack = abilityTuning(c.Abilities[player.ActionAttack])
	t.Abilities.Skill = abilityTuning(c.Abilities[player.ActionSkill])
	t.Abilities.Ultimate = abilityTuning(c.Abilities[player.ActionUltimate])

	t.RegenEffect = string(c.RegenPrefab)
	return t
}

func (t PlayerTuning) Config() player.Config {
	c := player.Config{
		Start: t.Start.Vec3(),

		WalkSpeed:           t.Movement.WalkSpeed,
		RunSpeed:            t.Movement.RunSpeed,
		JumpForce:           t.Movement.JumpForce,
		RotationSpeed:       t.Movement.RotationSpeed,
		TiredSpeedFactor:    t.Movement.TiredSpeedFactor,
		TiredRotationFactor: t.Movement.TiredRotationFactor,
		Gravity:             t.Movement.Gravity,
		GroundCheck:         t.Movement.GroundCheck,

		RegenPrefab: effect.Prefab(t.RegenEffect),
	}
	c.Health.Max = t.Health.Max
	c.Health.RegenEnabled = t.Health.Regen
	c.Health.RegenDelay = t.Health.RegenDelay.Duration()
	c.Health.RegenRate = t.Health.RegenRate
	c.Health.LowThreshold = t.Health.LowThreshold

	c.Mental.Max = t.Mental.Max
	c.Mental.DecayRate = t.Mental.DecayRate
	c.Mental.RecoveryRate = t.Mental.RecoveryRate
	c.Mental.Period = t.Mental.Period.Duration()

	c.Abilities[player.ActionAttack] = t.Abilities.Attack.ability()
	c.Abilities[player.ActionSkill] = t.Abilities.Skill.ability()
	c.Abilities[player.ActionUltimate] = t.Abilities.Ultimate.ability()
	return c
}

func (t PlayerTuning) Validate() error {
	var errs []error
	if t.Health.Max <= 0 {
		errs = append(errs, fmt.Errorf("health.max must be positive, got %v", t.Health.Max))
	}
	if t.Health.RegenRate < 0 {
		errs = append(errs, fmt.Errorf("health.regen_rate must not be negative, got %v", t.Health.RegenRate))
	}
	if t.Health.LowThreshold < 0 || t.Health.LowThreshold > 1 {
		errs = append(errs, fmt.Errorf("health.low_threshold must be in [0,1], got %v", t.Health.LowThreshold))
	}
	if t.Mental.Max <= 0 {
		errs = append(errs, fmt.Errorf("mental.max must be positive, got %v", t.Mental.Max))
	}
	if t.Mental.Period <= 0 {
		errs = append(errs, fmt.Errorf("mental.period must be positive, got %v", t.Mental.Period))
	}
	if t.Movement.WalkSpeed <= 0 || t.Movement.RunSpeed < t.Movement.WalkSpeed {
		errs = append(errs, fmt.Errorf("movement speeds walk=%v run=%v are invalid",
			t.Movement.WalkSpeed, t.Movement.RunSpeed))
	}
	return errors.Join(errs...)
}

// SceneTuning places the actors and sets the cosmetic adapters.
type SceneTuning struct {
	BossOrigin Vec `yaml:"boss_origin"`

	// Clip lengths in seconds keyed by trigger name. Missing clips loop.
	BossClips   map[string]Seconds `yaml:"boss_clips"`
	PlayerClips map[string]Seconds `yaml:"player_clips"`

	Camera struct {
		Offset         Vec     `yaml:"offset"`
		ZoomSpeed      float64 `yaml:"zoom_speed"`
		MinZoom        float64 `yaml:"min_zoom"`
		MaxZoom        float64 `yaml:"max_zoom"`
		ZoomSmoothTime float64 `yaml:"zoom_smooth_time"`
		EdgePan        bool    `yaml:"edge_pan"`
		EdgePanSpeed   float64 `yaml:"edge_pan_speed"`
		EdgeThickness  float64 `yaml:"edge_thickness"`
		MaxPanDistance float64 `yaml:"max_pan_distance"`
		PanSmoothTime  float64 `yaml:"pan_smooth_time"`
	} `yaml:"camera"`

	HUD struct {
		HealthHideDelay Seconds `yaml:"health_hide_delay"`
		PulseThreshold  float64 `yaml:"pulse_threshold"`
		PulseSpeed      float64 `yaml:"pulse_speed"`
		VignetteMax     float64 `yaml:"vignette_max"`
		VignetteSpeed   float64 `yaml:"vignette_speed"`
		FlickerMin      float64 `yaml:"flicker_min"`
		FlickerMax      float64 `yaml:"flicker_max"`
		FlickerPeriod   Seconds `yaml:"flicker_period"`
	} `yaml:"hud"`
}

func DefaultScene() SceneTuning {
	var s SceneTuning
	s.BossOrigin = Vec{0, 0, 0}
	s.BossClips = map[string]Seconds{
		"Angry":           2,
		"Attack":          1,
		"AreaAttackReady": 1,
		"AreaAttack":      1.5,
		"Damage":          0.5,
		"Die":             2.5,
	}
	s.PlayerClips = map[string]Seconds{
		"Attack":   0.6,
		"Skill":    1,
		"Ultimate": 2,
		"Die":      2,
	}
	s.Camera.Offset = Vec{0, 10, -5}
	s.Camera.ZoomSpeed = 2
	s.Camera.MinZoom = 0.5
	s.Camera.MaxZoom = 2
	s.Camera.ZoomSmoothTime = 0.3
	s.Camera.EdgePan = true
	s.Camera.EdgePanSpeed = 5
	s.Camera.EdgeThickness = 30
	s.Camera.MaxPanDistance = 10
	s.Camera.PanSmoothTime = 0.3

	s.HUD.HealthHideDelay = 3
	s.HUD.PulseThreshold = 0.3
	s.HUD.PulseSpeed = 2
	s.HUD.VignetteMax = 0.6
	s.HUD.VignetteSpeed = 1.5
	s.HUD.FlickerMin = 0.8
	s.HUD.FlickerMax = 1.2
	s.HUD.FlickerPeriod = 0.1
	return s
}

func (s SceneTuning) Validate() error {
	var errs []error
	errs = append(errs, validateClips("boss_clips", s.BossClips)...)
	errs = append(errs, validateClips("player_clips", s.PlayerClips)...)
	if s.Camera.MinZoom <= 0 || s.Camera.MaxZoom < s.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("camera zoom range [%v,%v] is invalid", s.Camera.MinZoom, s.Camera.MaxZoom))
	}
	if s.HUD.FlickerPeriod <= 0 || s.HUD.FlickerMax < s.HUD.FlickerMin {
		errs = append(errs, errors.New("hud flicker settings are invalid"))
	}
	return errors.Join(errs...)
}

func validateClips(field string, clips map[string]Seconds) []error {
	var errs []error
	for name, l := range clips {
		if _, err := anim.ParseTrigger(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		if l < 0 {
			errs = append(errs, fmt.Errorf("%s.%s must not be negative", field, name))
		}
	}
	return errs
}

// Tuning is everything the designer edits, loaded together so a reload
// either applies completely or not at all.
type Tuning struct {
	Boss   boss.Config
	Player player.Config
	Scene  SceneTuning
}

func DefaultTuning() *Tuning {
	return &Tuning{
		Boss:   boss.DefaultConfig(),
		Player: player.DefaultConfig(),
		Scene:  DefaultScene(),
	}
}

// LoadTuning reads the three tuning files. An empty path keeps the
// defaults for that file; keys missing from a file keep their default.
func LoadTuning(bossPath, playerPath, scenePath string) (*Tuning, error) {
	bt := BossTuningFrom(boss.DefaultConfig())
	if err := loadYAML(bossPath, "boss", &bt); err != nil {
		return nil, err
	}
	pt := PlayerTuningFrom(player.DefaultConfig())
	if err := loadYAML(playerPath, "player", &pt); err != nil {
		return nil, err
	}
	st := DefaultScene()
	if err := loadYAML(scenePath, "scene", &st); err != nil {
		return nil, err
	}

	if err := errors.Join(
		prefix("boss", bt.Validate()),
		prefix("player", pt.Validate()),
		prefix("scene", st.Validate()),
	); err != nil {
		return nil, err
	}
	return &Tuning{Boss: bt.Config(), Player: pt.Config(), Scene: st}, nil
}

func loadYAML(path, name string, out any) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s tuning: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s tuning %s: %w", name, path, err)
	}
	return nil
}

func prefix(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s tuning: %w", name, err)
}

func (s SceneTuning) CameraConfig() presentation.CameraConfig {
	return presentation.CameraConfig{
		Offset:         s.Camera.Offset.Vec3(),
		ZoomSpeed:      s.Camera.ZoomSpeed,
		MinZoom:        s.Camera.MinZoom,
		MaxZoom:        s.Camera.MaxZoom,
		ZoomSmoothTime: s.Camera.ZoomSmoothTime,
		EdgePan:        s.Camera.EdgePan,
		EdgePanSpeed:   s.Camera.EdgePanSpeed,
		EdgeThickness:  s.Camera.EdgeThickness,
		MaxPanDistance: s.Camera.MaxPanDistance,
		PanSmoothTime:  s.Camera.PanSmoothTime,
	}
}

// Clips converts clip lengths keyed by trigger name. Unknown names were
// rejected by Validate and are skipped here.
func Clips(lengths map[string]Seconds) map[anim.Trigger]time.Duration {
	out := make(map[anim.Trigger]time.Duration, len(lengths))
	for name, l := range lengths {
		trig, err := anim.ParseTrigger(name)
		if err != nil {
			continue
		}
		out[trig] = l.Duration()
	}
	return out
}
