// Package effect spawns short-lived visual effects (telegraph rings,
// explosions, regen sparkles) and retires them after their lifetime.
package effect

import (
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/core/ecs"
	"github.com/petstore/bossfight/internal/geom"
)

// Prefab names an effect asset. The empty prefab is "not configured".
type Prefab string

// Handle refers to a spawned effect. The zero Handle refers to nothing and
// every operation on it is a no-op.
type Handle ecs.EntityID

func (h Handle) IsZero() bool { return h == 0 }

// Spawner creates and destroys transient effects.
type Spawner interface {
	Spawn(p Prefab, pos geom.Vec3, facing geom.Yaw) Handle
	SetScale(h Handle, scale float64)
	Destroy(h Handle)
	DestroyAfter(h Handle, d time.Duration)
}

// Discard is a Spawner that spawns nothing.
type Discard struct{}

func (Discard) Spawn(Prefab, geom.Vec3, geom.Yaw) Handle { return 0 }
func (Discard) SetScale(Handle, float64)                 {}
func (Discard) Destroy(Handle)                           {}
func (Discard) DestroyAfter(Handle, time.Duration)       {}

// Instance is the component describing one live effect.
type Instance struct {
	Prefab  Prefab
	Pos     geom.Vec3
	Facing  geom.Yaw
	Scale   float64
	Age     time.Duration
	Expires bool
}

// lifetime is attached by DestroyAfter.
type lifetime struct {
	remaining time.Duration
}

// Pool is the ECS-backed Spawner. Destroy only marks the entity; the
// cleanup phase frees it, so a handle stays readable for the rest of the
// frame.
type Pool struct {
	world     *ecs.World
	instances *ecs.PtrComponentStore[Instance]
	lifetimes *ecs.PtrComponentStore[lifetime]
	spawned   map[Prefab]int
	log       *zap.Logger
}

func NewPool(log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	w := ecs.NewWorld()
	return &Pool{
		world:     w,
		instances: ecs.NewStore[Instance](w),
		lifetimes: ecs.NewStore[lifetime](w),
		spawned:   make(map[Prefab]int),
		log:       log,
	}
}

// World exposes the backing world to the cleanup system.
func (p *Pool) World() *ecs.World { return p.world }

func (p *Pool) Spawn(prefab Prefab, pos geom.Vec3, facing geom.Yaw) Handle {
	if prefab == "" {
		p.log.Debug("effect prefab not configured, skipping spawn")
		return 0
	}
	id := p.world.CreateEntity()
	p.instances.Set(id, &Instance{Prefab: prefab, Pos: pos, Facing: facing, Scale: 1})
	p.spawned[prefab]++
	return Handle(id)
}

func (p *Pool) SetScale(h Handle, scale float64) {
	if inst, ok := p.live(h); ok {
		inst.Scale = scale
	}
}

func (p *Pool) Destroy(h Handle) {
	if _, ok := p.live(h); ok {
		p.world.MarkForDestruction(ecs.EntityID(h))
	}
}

func (p *Pool) DestroyAfter(h Handle, d time.Duration) {
	inst, ok := p.live(h)
	if !ok {
		return
	}
	if d <= 0 {
		p.Destroy(h)
		return
	}
	inst.Expires = true
	p.lifetimes.Set(ecs.EntityID(h), &lifetime{remaining: d})
}

// Update ages every live effect and retires expired ones.
func (p *Pool) Update(dt time.Duration) {
	p.instances.Each(func(_ ecs.EntityID, inst *Instance) {
		inst.Age += dt
	})
	ecs.Each2(p.instances, p.lifetimes, func(id ecs.EntityID, _ *Instance, lt *lifetime) {
		lt.remaining -= dt
		if lt.remaining <= 0 {
			p.world.MarkForDestruction(id)
		}
	})
}

// Get returns a copy of a live effect.
func (p *Pool) Get(h Handle) (Instance, bool) {
	inst, ok := p.live(h)
	if !ok {
		return Instance{}, false
	}
	return *inst, true
}

// Alive reports whether h is spawned and not yet marked for destruction.
func (p *Pool) Alive(h Handle) bool {
	_, ok := p.live(h)
	return ok
}

// Active counts live effects, optionally filtered by prefab ("" = all).
func (p *Pool) Active(prefab Prefab) int {
	n := 0
	p.instances.Each(func(id ecs.EntityID, inst *Instance) {
		if p.world.Marked(id) {
			return
		}
		if prefab == "" || inst.Prefab == prefab {
			n++
		}
	})
	return n
}

// Spawned is how many effects of prefab were ever created.
func (p *Pool) Spawned(prefab Prefab) int { return p.spawned[prefab] }

func (p *Pool) live(h Handle) (*Instance, bool) {
	id := ecs.EntityID(h)
	if h.IsZero() || !p.world.Alive(id) || p.world.Marked(id) {
		return nil, false
	}
	return p.instances.Get(id)
}
