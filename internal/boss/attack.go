package boss

import (
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/core/event"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/geom"
)

type stage int

const (
	stageWindup  stage = iota // melee: arm raised
	stageReady                // area: warning ring on the ground
	stageCast                 // area: slam animation
	stageRecover              // both: pause before the next decision
)

// attack is one running attack sequence. The controller advances it once per
// tick; only one exists at a time.
type attack struct {
	kind    combat.Kind
	stage   stage
	elapsed time.Duration

	area    combat.AreaGeometry
	hasArea bool

	// effects spawned by this sequence, destroyed if it is cancelled
	effects []effect.Handle
}

// wait accumulates dt and reports whether d has elapsed, rearming for the
// next stage when it has.
func (a *attack) wait(dt, d time.Duration) bool {
	a.elapsed += dt
	if a.elapsed < d {
		return false
	}
	a.elapsed = 0
	return true
}

func (b *Behavior) startBasic(playerPos geom.Vec3, dt time.Duration) {
	b.attack = &attack{kind: combat.KindMelee, stage: stageWindup}
	b.agent.ResetPath()
	b.face(playerPos, dt)
	b.anim.Play(anim.TriggerAttack)
	event.Emit(b.bus, event.AttackStarted{Attacker: "boss", Kind: combat.KindMelee.String()})
}

func (b *Behavior) startArea(playerPos geom.Vec3, dt time.Duration) {
	g := combat.RollArea(b.rng, b.Position(), playerPos, b.cfg.Area)
	a := &attack{kind: combat.KindArea, stage: stageReady, area: g, hasArea: true}
	b.attack = a
	b.agent.ResetPath()

	if h := b.spawnEffect(b.cfg.WarningPrefab, g, b.cfg.WarningLifetime); !h.IsZero() {
		a.effects = append(a.effects, h)
	}
	b.face(playerPos, dt)
	b.anim.Play(anim.TriggerAreaAttackReady)

	event.Emit(b.bus, event.AttackStarted{Attacker: "boss", Kind: combat.KindArea.String()})
	event.Emit(b.bus, event.AreaTelegraphed{Center: g.Center, Radius: g.Radius})
	b.log.Debug("area attack rolled",
		zap.Float64("radius", g.Radius),
		zap.Float64("x", g.Center.X),
		zap.Float64("z", g.Center.Z))
}

func (b *Behavior) advanceAttack(dt time.Duration) {
	a := b.attack
	if a == nil {
		return
	}
	switch a.stage {
	case stageWindup:
		if a.wait(dt, b.cfg.BasicWindup) {
			// the player may have stepped away during the windup
			res := combat.ResolveMelee(b.Position(), b.target.Position(), b.cfg.BasicAttackRange, b.cfg.BasicAttackDamage)
			b.deliver(res)
			a.stage = stageRecover
		}

	case stageReady:
		if a.wait(dt, b.cfg.AreaReady) {
			b.anim.Play(anim.TriggerAreaAttack)
			a.stage = stageCast
		}

	case stageCast:
		if a.wait(dt, b.cfg.AreaCast) {
			g := a.area
			b.deliver(combat.ResolveArea(g, b.target.Position(), b.cfg.AreaAttackDamage))
			a.area, a.hasArea = combat.AreaGeometry{}, false
			if h := b.spawnEffect(b.cfg.ExplosionPrefab, g, b.cfg.ExplosionLifetime); !h.IsZero() {
				a.effects = append(a.effects, h)
			}
			a.stage = stageRecover
		}

	case stageRecover:
		recovery := b.cfg.BasicRecovery
		if a.kind == combat.KindArea {
			recovery = b.cfg.AreaRecovery
		}
		if a.wait(dt, recovery) {
			b.finishAttack()
		}
	}
}

func (b *Behavior) deliver(res combat.Result) {
	if res.Hit {
		b.target.ApplyDamage(res.Damage)
	}
	event.Emit(b.bus, event.AttackResolved{
		Attacker: "boss",
		Kind:     res.Kind.String(),
		Hit:      res.Hit,
		Damage:   res.Damage,
		Distance: res.Distance,
		Range:    res.Range,
	})
	b.log.Debug("boss attack resolved",
		zap.Stringer("kind", res.Kind),
		zap.Bool("hit", res.Hit),
		zap.Float64("distance", res.Distance),
		zap.Float64("range", res.Range))
}

// finishAttack ends a sequence that ran to completion. Its effects are left
// to expire on their own.
func (b *Behavior) finishAttack() {
	if b.attack.kind == combat.KindMelee {
		b.basicTimer = 0
	} else {
		b.areaTimer = 0
	}
	b.attack = nil
}

// cancelAttack drops the running sequence and destroys what it spawned.
func (b *Behavior) cancelAttack() {
	if b.attack == nil {
		return
	}
	for _, h := range b.attack.effects {
		b.fx.Destroy(h)
	}
	b.log.Debug("boss attack cancelled", zap.Stringer("kind", b.attack.kind))
	b.attack = nil
}

func (b *Behavior) spawnEffect(prefab effect.Prefab, g combat.AreaGeometry, life time.Duration) effect.Handle {
	pos := g.Center.Add(geom.Up.Scale(b.cfg.EffectLift))
	h := b.fx.Spawn(prefab, pos, 0)
	if h.IsZero() {
		return h
	}
	if b.cfg.EffectScaleUnit > 0 {
		b.fx.SetScale(h, g.Radius/b.cfg.EffectScaleUnit)
	}
	b.fx.DestroyAfter(h, life)
	return h
}
