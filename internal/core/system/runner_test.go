package system

import (
	"testing"
	"time"
)

type phaseStub struct {
	phase Phase
	name  string
	log   *[]string
	dts   []time.Duration
}

func (p *phaseStub) Phase() Phase { return p.phase }

func (p *phaseStub) Update(dt time.Duration) {
	*p.log = append(*p.log, p.name)
	p.dts = append(p.dts, dt)
}

func TestTickOrdersPhases(t *testing.T) {
	var log []string
	r := NewRunner(0)
	r.Register(&phaseStub{phase: PhaseCleanup, name: "cleanup", log: &log})
	r.Register(&phaseStub{phase: PhasePresentation, name: "hud", log: &log})
	r.Register(&phaseStub{phase: PhaseUpdate, name: "boss", log: &log})
	r.Register(&phaseStub{phase: PhaseDispatch, name: "events", log: &log})
	r.Register(&phaseStub{phase: PhasePhysics, name: "move", log: &log})
	r.Register(&phaseStub{phase: PhaseInput, name: "input", log: &log})

	r.Tick(16 * time.Millisecond)
	want := []string{"input", "move", "boss", "events", "hud", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order %v, want %v", log, want)
		}
	}
}

func TestPhysicsRunsOnFixedStep(t *testing.T) {
	var log []string
	r := NewRunner(20 * time.Millisecond)
	phys := &phaseStub{phase: PhasePhysics, name: "move", log: &log}
	frame := &phaseStub{phase: PhaseUpdate, name: "boss", log: &log}
	r.Register(phys)
	r.Register(frame)

	r.Tick(50 * time.Millisecond)
	if len(phys.dts) != 2 {
		t.Fatalf("physics ran %d times, want 2", len(phys.dts))
	}
	r.Tick(30 * time.Millisecond)
	if len(phys.dts) != 4 {
		t.Fatalf("physics ran %d times, want 4 (carry-over)", len(phys.dts))
	}
	for _, dt := range phys.dts {
		if dt != 20*time.Millisecond {
			t.Errorf("physics dt = %v", dt)
		}
	}
	if len(frame.dts) != 2 || frame.dts[1] != 30*time.Millisecond {
		t.Errorf("frame dts = %v", frame.dts)
	}

	// a long stall is capped
	r.Tick(time.Second)
	if got := len(phys.dts) - 4; got != maxFixedSteps {
		t.Errorf("catch-up steps = %d, want %d", got, maxFixedSteps)
	}
}
