package system

import (
	"time"

	"github.com/petstore/bossfight/internal/anim"
	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/effect"
)

// AnimationSystem advances clip clocks. Phase 3 (PostUpdate).
type AnimationSystem struct {
	animators []*anim.Animator
}

func NewAnimationSystem(animators ...*anim.Animator) *AnimationSystem {
	return &AnimationSystem{animators: animators}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *AnimationSystem) Update(dt time.Duration) {
	for _, a := range s.animators {
		a.Update(dt)
	}
}

// EffectSystem ages effect instances and queues expired ones for
// destruction. Phase 3 (PostUpdate).
type EffectSystem struct {
	pool *effect.Pool
}

func NewEffectSystem(pool *effect.Pool) *EffectSystem {
	return &EffectSystem{pool: pool}
}

func (s *EffectSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *EffectSystem) Update(dt time.Duration) {
	s.pool.Update(dt)
}
