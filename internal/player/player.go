// Package player holds the player avatar: health, mental resource and the
// movement/action controller gated by them.
package player

import (
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/core/event"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/health"
	"github.com/petstore/bossfight/internal/mental"
)

type Action int

const (
	ActionAttack Action = iota
	ActionSkill
	ActionUltimate
	ActionCount
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSkill:
		return "skill"
	case ActionUltimate:
		return "ultimate"
	}
	return "unknown"
}

func (a Action) trigger() anim.Trigger {
	switch a {
	case ActionSkill:
		return anim.TriggerSkill
	case ActionUltimate:
		return anim.TriggerUltimate
	}
	return anim.TriggerAttack
}

// Input is one frame of player intent. Move is read on x and z.
type Input struct {
	Move     geom.Vec3
	Run      bool
	Jump     bool
	Groom    bool
	Hide     bool
	Attack   bool
	Skill    bool
	Ultimate bool
}

func (in Input) pressed(a Action) bool {
	switch a {
	case ActionAttack:
		return in.Attack
	case ActionSkill:
		return in.Skill
	case ActionUltimate:
		return in.Ultimate
	}
	return false
}

// Foe is what the player's attacks land on.
type Foe interface {
	Position() geom.Vec3
	TakeDamage(amount float64)
}

type Deps struct {
	Anim    anim.Sink
	Effects effect.Spawner
	Bus     *event.Bus
	Log     *zap.Logger
}

// Player implements boss.Target.
type Player struct {
	cfg    Config
	health *health.Model
	mental *mental.Model
	anim   anim.Sink
	fx     effect.Spawner
	bus    *event.Bus
	log    *zap.Logger
	foe    Foe

	pos      geom.Vec3
	vel      geom.Vec3
	facing   geom.Yaw
	wish     geom.Vec3 // desired horizontal velocity
	moving   bool
	running  bool
	jump     bool
	grounded bool
	hiding   bool
	disabled bool

	cooldowns [ActionCount]time.Duration
	regenFX   effect.Handle
}

func New(cfg Config, deps Deps) *Player {
	p := &Player{
		cfg:      cfg,
		health:   health.New(cfg.Health),
		mental:   mental.New(cfg.Mental),
		anim:     deps.Anim,
		fx:       deps.Effects,
		bus:      deps.Bus,
		log:      deps.Log,
		pos:      cfg.Start,
		grounded: true,
	}
	if p.anim == nil {
		p.anim = anim.Discard{}
	}
	if p.fx == nil {
		p.fx = effect.Discard{}
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	p.wireHooks()
	return p
}

func (p *Player) wireHooks() {
	p.health.SetHooks(health.Hooks{
		OnChange: func(cur, max float64) {
			event.Emit(p.bus, event.PlayerHealthChanged{Current: cur, Max: max})
		},
		OnDeath: p.die,
		OnLowEnter: func() {
			event.Emit(p.bus, event.LowHealthChanged{Low: true})
		},
		OnLowExit: func() {
			event.Emit(p.bus, event.LowHealthChanged{Low: false})
		},
		OnRegenStart: func() {
			p.regenFX = p.fx.Spawn(p.cfg.RegenPrefab, p.pos, p.facing)
			event.Emit(p.bus, event.RegenChanged{Active: true})
		},
		OnRegenStop: func() {
			p.fx.Destroy(p.regenFX)
			p.regenFX = 0
			event.Emit(p.bus, event.RegenChanged{Active: false})
		},
	})
	p.mental.SetHooks(mental.Hooks{
		OnChange: func(cur, max float64) {
			event.Emit(p.bus, event.MentalChanged{Current: cur, Max: max})
		},
		OnTiredEnter: func() {
			p.anim.SetBool(anim.ParamIsTired, true)
			event.Emit(p.bus, event.TiredChanged{Tired: true})
			p.log.Info("player is tired")
		},
		OnTiredExit: func() {
			p.anim.SetBool(anim.ParamIsTired, false)
			event.Emit(p.bus, event.TiredChanged{Tired: false})
		},
		OnGroomStart: func() {
			p.anim.SetBool(anim.ParamIsGrooming, true)
			event.Emit(p.bus, event.GroomingChanged{Grooming: true})
		},
		OnGroomStop: func() {
			p.anim.SetBool(anim.ParamIsGrooming, false)
			event.Emit(p.bus, event.GroomingChanged{Grooming: false})
		},
	})
}

// SetFoe sets who the player's attacks are resolved against.
func (p *Player) SetFoe(f Foe) { p.foe = f }

// Update samples one frame of input. Tired players cannot run, jump, hide
// or use abilities; grooming is always allowed.
func (p *Player) Update(in Input, dt time.Duration) {
	for i := range p.cooldowns {
		if p.cooldowns[i] > 0 {
			p.cooldowns[i] -= dt
		}
	}
	if p.disabled {
		return
	}
	tired := p.mental.IsTired()

	dir := in.Move.Flat()
	p.moving = dir.Len() > 0.1
	p.running = in.Run && !tired
	p.wish = geom.Vec3{}
	if p.moving {
		p.wish = dir.Norm().Scale(p.moveSpeed(tired))
	}

	p.mental.SetGrooming(in.Groom)
	if !tired {
		p.setHiding(in.Hide)
		for a := ActionAttack; a < ActionCount; a++ {
			if in.pressed(a) {
				p.use(a)
			}
		}
		if in.Jump && p.grounded {
			p.jump = true
		}
	} else {
		p.setHiding(false)
	}

	speed := 0.0
	switch {
	case !p.moving:
	case tired:
		speed = 0.5
	case p.running:
		speed = 2
	default:
		speed = 1
	}
	p.anim.SetFloat(anim.ParamSpeed, speed)
	p.anim.SetBool(anim.ParamIsJumping, !p.grounded)
}

func (p *Player) moveSpeed(tired bool) float64 {
	switch {
	case tired:
		return p.cfg.WalkSpeed * p.cfg.TiredSpeedFactor
	case p.running:
		return p.cfg.RunSpeed
	}
	return p.cfg.WalkSpeed
}

func (p *Player) setHiding(on bool) {
	if on == p.hiding {
		return
	}
	p.hiding = on
	p.anim.SetBool(anim.ParamIsHiding, on)
}

// use fires an ability if it is off cooldown and resolves it against the foe.
func (p *Player) use(a Action) {
	if p.cooldowns[a] > 0 {
		return
	}
	ab := p.cfg.Abilities[a]
	p.cooldowns[a] = ab.Cooldown
	p.anim.Play(a.trigger())
	event.Emit(p.bus, event.AttackStarted{Attacker: "player", Kind: a.String()})
	if p.foe == nil {
		return
	}

	res := combat.ResolveMelee(p.pos, p.foe.Position(), ab.Range, ab.Damage)
	if res.Hit {
		p.foe.TakeDamage(res.Damage)
	}
	event.Emit(p.bus, event.AttackResolved{
		Attacker: "player",
		Kind:     a.String(),
		Hit:      res.Hit,
		Damage:   res.Damage,
		Distance: res.Distance,
		Range:    res.Range,
	})
}

// FixedUpdate integrates velocity, gravity and facing for one physics step.
func (p *Player) FixedUpdate(dt time.Duration) {
	if p.disabled {
		return
	}
	sec := dt.Seconds()

	if p.jump && p.grounded {
		p.vel.Y = p.cfg.JumpForce
		p.grounded = false
	}
	p.jump = false

	p.vel.X, p.vel.Z = p.wish.X, p.wish.Z
	p.vel.Y -= p.cfg.Gravity * sec
	p.pos = p.pos.Add(p.vel.Scale(sec))
	if p.pos.Y <= 0 {
		p.pos.Y = 0
		if p.vel.Y < 0 {
			p.vel.Y = 0
		}
	}
	p.grounded = p.pos.Y <= p.cfg.GroundCheck && p.vel.Y <= 0

	if p.moving {
		if yaw, ok := geom.LookYaw(p.wish); ok {
			rate := p.cfg.RotationSpeed
			if p.mental.IsTired() {
				rate *= p.cfg.TiredRotationFactor
			}
			p.facing = p.facing.Towards(yaw, rate*sec)
		}
	}
}

func (p *Player) die() {
	p.disabled = true
	p.vel = geom.Vec3{}
	p.wish = geom.Vec3{}
	p.mental.SetGrooming(false)
	p.anim.Play(anim.TriggerDie)
	event.Emit(p.bus, event.PlayerDied{})
	p.log.Info("player died")
}

// ApplyDamage routes incoming damage to the health model.
func (p *Player) ApplyDamage(amount float64) { p.health.ApplyDamage(amount) }

// Reconfigure swaps tuning between frames.
func (p *Player) Reconfigure(cfg Config) {
	p.cfg = cfg
	p.health.Reconfigure(cfg.Health)
	p.mental.Reconfigure(cfg.Mental)
}

// Teleport moves the player without physics, e.g. for scripted setups.
func (p *Player) Teleport(pos geom.Vec3) {
	p.pos = pos
	p.vel = geom.Vec3{}
	p.grounded = pos.Y <= p.cfg.GroundCheck
}

func (p *Player) Position() geom.Vec3   { return p.pos }
func (p *Player) Velocity() geom.Vec3   { return p.vel }
func (p *Player) Facing() geom.Yaw      { return p.facing }
func (p *Player) Health() *health.Model { return p.health }
func (p *Player) Mental() *mental.Model { return p.mental }
func (p *Player) IsTired() bool         { return p.mental.IsTired() }
func (p *Player) IsGrooming() bool      { return p.mental.IsGrooming() }
func (p *Player) IsHiding() bool        { return p.hiding }
func (p *Player) Grounded() bool        { return p.grounded }
func (p *Player) Enabled() bool         { return !p.disabled }
func (p *Player) Running() bool         { return p.running }

// Cooldown is the time left before a can be used again.
func (p *Player) Cooldown(a Action) time.Duration {
	if p.cooldowns[a] < 0 {
		return 0
	}
	return p.cooldowns[a]
}
