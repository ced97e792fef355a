package system

import (
	"time"

	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/health"
	"github.com/petstore/bossfight/internal/mental"
)

// RegenSystem advances the player's out-of-combat health regeneration.
// Phase 3 (PostUpdate). Runs every frame; the model's own damage window
// gates actual regen.
type RegenSystem struct {
	health *health.Model
}

func NewRegenSystem(h *health.Model) *RegenSystem {
	return &RegenSystem{health: h}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(dt time.Duration) {
	s.health.Tick(dt)
}

// MentalSystem runs the mental model once per period: decay, or recovery
// while grooming. Phase 3 (PostUpdate).
//
// The period is re-read from the model every frame so a tuning reload takes
// effect without resetting the accumulator.
type MentalSystem struct {
	mental *mental.Model
	acc    time.Duration
}

func NewMentalSystem(m *mental.Model) *MentalSystem {
	return &MentalSystem{mental: m}
}

func (s *MentalSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *MentalSystem) Update(dt time.Duration) {
	period := s.mental.Config().Period
	if period <= 0 {
		return
	}
	s.acc += dt
	for s.acc >= period {
		s.acc -= period
		s.mental.Tick()
	}
}
