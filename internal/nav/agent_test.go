package nav

import (
	"testing"
	"time"

	"github.com/petstore/bossfight/internal/geom"
)

func run(m *Mover, steps int) {
	for i := 0; i < steps; i++ {
		m.Step(20 * time.Millisecond)
	}
}

func TestMoverReachesDestination(t *testing.T) {
	m := NewMover(geom.Vec3{})
	m.SetSpeed(3)
	m.SetDestination(geom.V(10, 0, 0))
	if !m.PathPending() {
		t.Fatal("new destination should be pending until the next step")
	}
	run(m, 1)
	if m.PathPending() {
		t.Fatal("path still pending after a step")
	}

	run(m, 500)
	if m.Position() != geom.V(10, 0, 0) {
		t.Fatalf("position = %+v", m.Position())
	}
	if m.RemainingDistance() != 0 {
		t.Errorf("remaining = %v", m.RemainingDistance())
	}
	if !m.Velocity().IsZero() {
		t.Errorf("velocity = %+v after arrival", m.Velocity())
	}
}

func TestMoverBrakesAtStoppingDistance(t *testing.T) {
	m := NewMover(geom.Vec3{})
	m.SetSpeed(3)
	m.SetStoppingDistance(1)
	m.SetDestination(geom.V(10, 0, 0))
	run(m, 500)

	r := m.RemainingDistance()
	if r <= 0.2 || r > 1 {
		t.Fatalf("remaining = %v, want to stop just inside the stopping distance", r)
	}
	if m.Velocity().Len() > 1e-9 {
		t.Errorf("still moving: %+v", m.Velocity())
	}
}

func TestMoverStoppedAndDisabled(t *testing.T) {
	m := NewMover(geom.Vec3{})
	m.SetDestination(geom.V(5, 0, 0))
	m.SetStopped(true)
	run(m, 50)
	if m.Position() != (geom.Vec3{}) {
		t.Fatalf("stopped agent moved to %+v", m.Position())
	}

	m.SetEnabled(false)
	m.SetStopped(false)
	m.SetDestination(geom.V(5, 0, 0))
	run(m, 50)
	if _, ok := m.Destination(); ok {
		t.Error("disabled agent accepted a destination")
	}
	if m.Position() != (geom.Vec3{}) {
		t.Errorf("disabled agent moved to %+v", m.Position())
	}
}

func TestResetPathClearsRemaining(t *testing.T) {
	m := NewMover(geom.Vec3{})
	m.SetDestination(geom.V(0, 0, 8))
	if m.RemainingDistance() != 8 {
		t.Fatalf("remaining = %v", m.RemainingDistance())
	}
	m.ResetPath()
	if m.RemainingDistance() != 0 || m.PathPending() {
		t.Errorf("remaining = %v pending = %v", m.RemainingDistance(), m.PathPending())
	}
}

func TestWarpClearsVelocity(t *testing.T) {
	m := NewMover(geom.Vec3{})
	m.SetDestination(geom.V(10, 0, 0))
	run(m, 10)
	m.Warp(geom.V(-3, 0, 2))
	if m.Position() != geom.V(-3, 0, 2) || !m.Velocity().IsZero() {
		t.Fatalf("pos = %+v vel = %+v", m.Position(), m.Velocity())
	}
}
