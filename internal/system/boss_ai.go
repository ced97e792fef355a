package system

import (
	"time"

	"github.com/petstore/bossfight/internal/boss"
	coresys "github.com/petstore/bossfight/internal/core/system"
)

// BossSystem advances the boss state machine once per frame.
// Phase 2 (Update).
type BossSystem struct {
	boss *boss.Behavior
}

func NewBossSystem(b *boss.Behavior) *BossSystem {
	return &BossSystem{boss: b}
}

func (s *BossSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *BossSystem) Update(dt time.Duration) {
	s.boss.Tick(dt)
}
