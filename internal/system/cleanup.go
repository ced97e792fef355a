package system

import (
	"time"

	"github.com/petstore/bossfight/internal/core/ecs"
	coresys "github.com/petstore/bossfight/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world   *ecs.World
	flushed int
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.flushed += s.world.FlushDestroyQueue()
}

// Flushed is the number of entities destroyed so far.
func (s *CleanupSystem) Flushed() int { return s.flushed }
