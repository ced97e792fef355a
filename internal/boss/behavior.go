// Package boss implements the boss encounter controller: a territory-bound
// state machine that chases, attacks and returns home.
package boss

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/core/event"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/health"
	"github.com/petstore/bossfight/internal/nav"
)

// Target is whoever the boss fights.
type Target interface {
	Position() geom.Vec3
	ApplyDamage(amount float64)
}

// Deps are the collaborators injected into a Behavior. Only Agent is
// expected; every other nil field degrades to a no-op.
type Deps struct {
	Target  Target
	Agent   nav.Agent
	Anim    anim.Sink
	Intro   anim.IntroSignal
	Effects effect.Spawner
	Rand    *rand.Rand
	Bus     *event.Bus
	Log     *zap.Logger
	// Origin is the territory center. Nil uses the agent's position.
	Origin *geom.Vec3
}

// Behavior is the sole mutator of the boss's state, timers and health.
// Accessed only from the game loop goroutine.
type Behavior struct {
	cfg    Config
	target Target
	agent  nav.Agent
	anim   anim.Sink
	intro  anim.IntroSignal
	fx     effect.Spawner
	rng    *rand.Rand
	bus    *event.Bus
	log    *zap.Logger

	origin         geom.Vec3
	facing         geom.Yaw
	state          State
	health         *health.Model
	hasEncountered bool
	lowHealth      bool

	basicTimer time.Duration
	areaTimer  time.Duration

	attack     *attack
	damaged    bool
	damagedFor time.Duration
}

func New(cfg Config, deps Deps) *Behavior {
	b := &Behavior{
		cfg:    cfg,
		target: deps.Target,
		agent:  deps.Agent,
		anim:   deps.Anim,
		intro:  deps.Intro,
		fx:     deps.Effects,
		rng:    deps.Rand,
		bus:    deps.Bus,
		log:    deps.Log,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.anim == nil {
		b.anim = anim.Discard{}
	}
	if b.fx == nil {
		b.fx = effect.Discard{}
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(1))
	}
	if deps.Origin != nil {
		b.origin = *deps.Origin
	} else if b.agent != nil {
		b.origin = b.agent.Position()
	}
	if b.agent == nil {
		b.agent = nav.NewMover(b.origin)
	}
	if b.target == nil {
		b.log.Warn("boss has no target, controller will idle")
	}

	b.agent.SetSpeed(cfg.MoveSpeed)
	b.agent.SetAcceleration(cfg.Acceleration)
	b.agent.SetStoppingDistance(cfg.StoppingDistance())
	b.health = health.New(cfg.healthConfig())
	b.state = StateIdle
	b.enter(StateIdle)
	return b
}

// SetTarget replaces the fought entity. A nil target pauses the controller.
func (b *Behavior) SetTarget(t Target) { b.target = t }

// Tick advances the controller by one frame: running attack and damaged
// timers first, then state transitions, cooldowns and the low-health flag.
func (b *Behavior) Tick(dt time.Duration) {
	if b.state == StateDead || b.target == nil {
		return
	}
	b.advanceDamaged(dt)
	b.advanceAttack(dt)
	b.updateState(dt)
	b.updateTimers(dt)
	b.lowHealth = b.health.Percentage() <= b.cfg.LowHealthThreshold
}

func (b *Behavior) updateState(dt time.Duration) {
	playerPos := b.target.Position()
	fromOrigin := playerPos.Dist(b.origin)

	switch b.state {
	case StateIdle:
		if fromOrigin <= b.cfg.TerritoryRadius {
			b.setState(StateFirstEncounter)
		}

	case StateFirstEncounter:
		b.face(playerPos, dt)
		if b.intro == nil || !b.intro.IntroActive() {
			b.setState(StateCombat)
			b.hasEncountered = true
		}

	case StateCombat:
		b.updateCombat(playerPos, fromOrigin, dt)

	case StateReturning:
		b.updateReturning(fromOrigin)
	}
}

func (b *Behavior) updateCombat(playerPos geom.Vec3, fromOrigin float64, dt time.Duration) {
	// A running attack always finishes before the boss gives up the chase.
	if fromOrigin > b.cfg.TerritoryRadius {
		if b.attack == nil {
			b.setState(StateReturning)
		}
		return
	}
	if b.attack != nil || b.damaged {
		return
	}

	if b.agent.Enabled() {
		b.agent.SetDestination(playerPos)
		b.agent.SetStopped(false)
	}
	b.face(playerPos, dt)
	if b.agent.Velocity().Len() > 0.1 {
		b.anim.Play(anim.TriggerWalk)
	} else {
		b.anim.Play(anim.TriggerIdle)
	}

	// melee wins when both are ready
	dist := b.Position().Dist(playerPos)
	if dist <= b.cfg.BasicAttackRange && b.basicTimer >= b.cfg.BasicAttackInterval {
		b.startBasic(playerPos, dt)
		return
	}
	if b.areaTimer >= b.cfg.areaInterval(b.lowHealth) {
		b.startArea(playerPos, dt)
	}
}

func (b *Behavior) updateReturning(fromOrigin float64) {
	if fromOrigin <= b.cfg.TerritoryRadius {
		b.setState(StateFirstEncounter)
		return
	}

	home := b.Position().Dist(b.origin)
	if home <= b.cfg.ArriveRadius {
		b.agent.ResetPath()
		b.agent.SetStopped(true)
		b.agent.Warp(b.origin)
		b.facing = 0
		b.setState(StateIdle)
		b.hasEncountered = false
		return
	}

	b.agent.SetSpeed(b.cfg.ReturnSpeed)
	b.agent.SetStopped(false)
	if !b.agent.PathPending() && b.agent.RemainingDistance() < 0.1 {
		b.agent.SetDestination(b.origin)
	}
	b.anim.Play(anim.TriggerWalk)
	b.log.Debug("boss returning", zap.Float64("distance", home))
}

func (b *Behavior) setState(next State) {
	prev := b.state
	b.state = next
	b.log.Info("boss state", zap.Stringer("from", prev), zap.Stringer("to", next))
	event.Emit(b.bus, event.BossStateChanged{From: prev.String(), To: next.String()})
	b.enter(next)
}

// enter runs a state's entry actions.
func (b *Behavior) enter(s State) {
	switch s {
	case StateIdle:
		b.agent.SetSpeed(b.cfg.MoveSpeed)
		b.agent.SetStopped(true)
		b.anim.Play(anim.TriggerIdle)
		b.resetTimers()

	case StateFirstEncounter:
		b.agent.ResetPath()
		b.anim.Play(anim.TriggerAngry)

	case StateCombat:
		b.agent.SetSpeed(b.cfg.MoveSpeed)
		b.resetTimers()

	case StateReturning:
		b.agent.SetSpeed(b.cfg.ReturnSpeed)
		b.agent.SetStopped(false)
		if dest, ok := b.agent.Destination(); !ok || dest != b.origin {
			b.agent.SetDestination(b.origin)
		}

	case StateDead:
		b.cancelAttack()
		b.damaged = false
		b.agent.SetEnabled(false)
		b.anim.Play(anim.TriggerDie)
		event.Emit(b.bus, event.BossDied{})
	}
}

func (b *Behavior) updateTimers(dt time.Duration) {
	if b.state == StateCombat && b.attack == nil {
		b.basicTimer += dt
		b.areaTimer += dt
	}
}

func (b *Behavior) resetTimers() {
	b.basicTimer = 0
	b.areaTimer = 0
}

func (b *Behavior) face(target geom.Vec3, dt time.Duration) {
	yaw, ok := geom.LookYaw(target.Sub(b.Position()))
	if !ok {
		return
	}
	b.facing = b.facing.Towards(yaw, dt.Seconds()*b.cfg.TurnRate)
}

// TakeDamage is the boss's damage intake. Ignored once dead. Every hit,
// zero included, restarts the regen window. A lethal hit kills immediately,
// even mid-attack. Otherwise, outside an attack, the boss flinches briefly;
// hits during a flinch do not extend it.
func (b *Behavior) TakeDamage(amount float64) {
	if b.state == StateDead {
		return
	}
	b.health.ApplyDamage(amount)
	event.Emit(b.bus, event.BossDamaged{Amount: amount, Current: b.health.Current(), Max: b.health.Max()})
	b.log.Debug("boss damaged",
		zap.Float64("amount", amount),
		zap.Float64("health", b.health.Current()))

	if b.health.IsDead() {
		b.setState(StateDead)
		return
	}
	if b.attack == nil && !b.damaged {
		b.damaged = true
		b.damagedFor = 0
		b.agent.ResetPath()
		b.anim.Play(anim.TriggerDamage)
	}
}

// Heal restores health unless the boss is dead.
func (b *Behavior) Heal(amount float64) {
	if b.state == StateDead {
		return
	}
	b.health.Heal(amount)
}

func (b *Behavior) advanceDamaged(dt time.Duration) {
	if !b.damaged {
		return
	}
	b.damagedFor += dt
	if b.damagedFor >= b.cfg.DamagedDuration {
		b.damaged = false
		b.damagedFor = 0
	}
}

// Reconfigure swaps the tuning between ticks.
func (b *Behavior) Reconfigure(cfg Config) {
	b.cfg = cfg
	b.health.Reconfigure(cfg.healthConfig())
	b.lowHealth = b.health.Percentage() <= cfg.LowHealthThreshold
	if b.state == StateDead {
		return
	}
	speed := cfg.MoveSpeed
	if b.state == StateReturning {
		speed = cfg.ReturnSpeed
	}
	b.agent.SetSpeed(speed)
	b.agent.SetAcceleration(cfg.Acceleration)
	b.agent.SetStoppingDistance(cfg.StoppingDistance())
	b.log.Info("boss tuning reloaded")
}

func (b *Behavior) Config() Config                      { return b.cfg }
func (b *Behavior) State() State                        { return b.state }
func (b *Behavior) Health() float64                     { return b.health.Current() }
func (b *Behavior) MaxHealth() float64                  { return b.health.Max() }
func (b *Behavior) HealthPercentage() float64           { return b.health.Percentage() }
func (b *Behavior) IsLowHealth() bool                   { return b.lowHealth }
func (b *Behavior) IsDead() bool                        { return b.state == StateDead }
func (b *Behavior) Attacking() bool                     { return b.attack != nil }
func (b *Behavior) Damaged() bool                       { return b.damaged }
func (b *Behavior) HasEncountered() bool                { return b.hasEncountered }
func (b *Behavior) Position() geom.Vec3                 { return b.agent.Position() }
func (b *Behavior) Facing() geom.Yaw                    { return b.facing }
func (b *Behavior) Origin() geom.Vec3                   { return b.origin }
func (b *Behavior) Timers() (basic, area time.Duration) { return b.basicTimer, b.areaTimer }

// AreaGeometry is the rolled strike zone of the running area attack. ok is
// false outside an area attack and after the strike has resolved.
func (b *Behavior) AreaGeometry() (g combat.AreaGeometry, ok bool) {
	if b.attack == nil || !b.attack.hasArea {
		return combat.AreaGeometry{}, false
	}
	return b.attack.area, true
}

// Overlay is the debug view of the boss's ranges.
type Overlay struct {
	Origin          geom.Vec3            `json:"origin"`
	Position        geom.Vec3            `json:"position"`
	TerritoryRadius float64              `json:"territory_radius"`
	DetectionRadius float64              `json:"detection_radius"`
	BasicRange      float64              `json:"basic_range"`
	AreaMinRadius   float64              `json:"area_min_radius"`
	AreaMaxRadius   float64              `json:"area_max_radius"`
	Area            *combat.AreaGeometry `json:"area,omitempty"`
}

func (b *Behavior) Debug() Overlay {
	o := Overlay{
		Origin:          b.origin,
		Position:        b.Position(),
		TerritoryRadius: b.cfg.TerritoryRadius,
		DetectionRadius: b.cfg.DetectionRadius,
		BasicRange:      b.cfg.BasicAttackRange,
		AreaMinRadius:   b.cfg.Area.MinRadius,
		AreaMaxRadius:   b.cfg.Area.MaxRadius,
	}
	if g, ok := b.AreaGeometry(); ok {
		o.Area = &g
	}
	return o
}
