package system

import (
	"time"

	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/player"
)

// InputSource produces one frame of player intent.
type InputSource interface {
	Next(dt time.Duration) player.Input
}

// InputSystem samples the input source and feeds the player controller.
// Phase 0 (Input).
type InputSystem struct {
	src    InputSource
	player *player.Player
}

func NewInputSystem(src InputSource, p *player.Player) *InputSystem {
	return &InputSystem{src: src, player: p}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	var in player.Input
	if s.src != nil {
		in = s.src.Next(dt)
	}
	s.player.Update(in, dt)
}
