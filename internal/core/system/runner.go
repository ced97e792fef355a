package system

import (
	"sort"
	"time"
)

// maxFixedSteps caps physics catch-up per frame so a long stall cannot
// snowball into ever longer frames.
const maxFixedSteps = 8

// Runner executes systems in phase order each frame. Physics systems run on
// a fixed step: zero or more times per frame, after input and before the
// state machines.
type Runner struct {
	systems   []System
	sorted    bool
	fixedStep time.Duration
	accum     time.Duration
}

// NewRunner creates a runner. fixedStep <= 0 runs physics once per frame
// with the frame delta.
func NewRunner(fixedStep time.Duration) *Runner {
	return &Runner{
		systems:   make([]System, 0, 16),
		fixedStep: fixedStep,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) FixedStep() time.Duration { return r.fixedStep }

// Tick runs one frame.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	r.TickPhase(PhaseInput, dt)
	r.stepPhysics(dt)
	for _, s := range r.systems {
		if s.Phase() > PhasePhysics {
			s.Update(dt)
		}
	}
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) stepPhysics(dt time.Duration) {
	if r.fixedStep <= 0 {
		r.TickPhase(PhasePhysics, dt)
		return
	}
	r.accum += dt
	steps := 0
	for r.accum >= r.fixedStep && steps < maxFixedSteps {
		r.TickPhase(PhasePhysics, r.fixedStep)
		r.accum -= r.fixedStep
		steps++
	}
	if r.accum >= r.fixedStep {
		r.accum %= r.fixedStep
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
