package mental

import (
	"math"
	"testing"
)

func TestDecayOneTick(t *testing.T) {
	m := New(DefaultConfig())
	m.Set(50)
	m.Tick()
	if math.Abs(m.Current()-49.44) > 1e-9 {
		t.Fatalf("current = %v, want 49.44", m.Current())
	}
	if m.IsTired() {
		t.Error("not tired above zero")
	}
}

func TestTiredOnlyAtZero(t *testing.T) {
	m := New(DefaultConfig())
	enter := 0
	m.SetHooks(Hooks{OnTiredEnter: func() { enter++ }})
	m.Set(1)

	m.Tick()
	if m.IsTired() {
		t.Fatalf("tired at %v", m.Current())
	}
	m.Tick()
	if !m.IsTired() || m.Current() != 0 {
		t.Fatalf("tired = %v current = %v", m.IsTired(), m.Current())
	}
	m.Tick()
	if enter != 1 {
		t.Errorf("OnTiredEnter fired %d times", enter)
	}
}

func TestGroomingRecovers(t *testing.T) {
	m := New(DefaultConfig())
	var starts, stops, exits int
	m.SetHooks(Hooks{
		OnGroomStart: func() { starts++ },
		OnGroomStop:  func() { stops++ },
		OnTiredExit:  func() { exits++ },
	})
	m.Set(0)
	m.SetGrooming(true)
	m.SetGrooming(true)
	m.Tick()
	if m.Current() != 20 || m.IsTired() {
		t.Fatalf("current = %v tired = %v", m.Current(), m.IsTired())
	}
	if starts != 1 || exits != 1 {
		t.Errorf("starts = %d exits = %d", starts, exits)
	}
	m.SetGrooming(false)
	if stops != 1 || m.IsGrooming() {
		t.Errorf("stops = %d grooming = %v", stops, m.IsGrooming())
	}
}

func TestRecoverClampsToMax(t *testing.T) {
	m := New(DefaultConfig())
	m.Set(95)
	m.SetGrooming(true)
	m.Tick()
	if m.Current() != 100 {
		t.Errorf("current = %v, want 100", m.Current())
	}
	if m.Percentage() != 1 {
		t.Errorf("percentage = %v", m.Percentage())
	}
}
