package system

import "time"

// Phase orders systems within one frame.
type Phase int

const (
	PhaseInput        Phase = iota // 0: sample player/bot input
	PhasePhysics                   // 1: fixed-step movement integration
	PhaseUpdate                    // 2: state machines
	PhasePostUpdate                // 3: regen, mental decay, clip clocks, effect lifetimes
	PhaseDispatch                  // 4: swap + deliver this frame's events
	PhasePresentation              // 5: cosmetic reads (camera, bars, vignette)
	PhaseCleanup                   // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePhysics:
		return "physics"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseDispatch:
		return "dispatch"
	case PhasePresentation:
		return "presentation"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is implemented by everything the Runner drives.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
