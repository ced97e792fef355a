package system

import (
	"time"

	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/nav"
	"github.com/petstore/bossfight/internal/player"
)

// MovementSystem integrates the player body and the boss's nav agent.
// Phase 1 (Physics), runs on the fixed step.
type MovementSystem struct {
	player *player.Player
	agents []*nav.Mover
}

func NewMovementSystem(p *player.Player, agents ...*nav.Mover) *MovementSystem {
	return &MovementSystem{player: p, agents: agents}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *MovementSystem) Update(dt time.Duration) {
	s.player.FixedUpdate(dt)
	for _, a := range s.agents {
		a.Step(dt)
	}
}
