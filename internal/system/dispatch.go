package system

import (
	"time"

	"github.com/petstore/bossfight/internal/core/event"
	coresys "github.com/petstore/bossfight/internal/core/system"
)

// DispatchSystem delivers the events emitted this frame. Handlers that
// emit again are delivered next frame. Phase 4 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
