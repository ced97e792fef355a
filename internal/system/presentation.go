package system

import (
	"time"

	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/presentation"
)

// PointerSource reports the mouse for the camera.
type PointerSource interface {
	Pointer() presentation.Pointer
}

// Follow is whatever the camera tracks.
type Follow interface {
	Position() geom.Vec3
}

// PresentationSystem updates the HUD after events are delivered.
// Phase 5 (Presentation).
type PresentationSystem struct {
	hud     *presentation.HUD
	follow  Follow
	pointer PointerSource
}

func NewPresentationSystem(hud *presentation.HUD, follow Follow, pointer PointerSource) *PresentationSystem {
	return &PresentationSystem{hud: hud, follow: follow, pointer: pointer}
}

func (s *PresentationSystem) Phase() coresys.Phase { return coresys.PhasePresentation }

func (s *PresentationSystem) Update(dt time.Duration) {
	var in presentation.Pointer
	if s.pointer != nil {
		in = s.pointer.Pointer()
	}
	s.hud.Update(s.follow.Position(), in, dt)
}
