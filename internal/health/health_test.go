package health

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestApplyDamageClamps(t *testing.T) {
	m := New(DefaultConfig())
	steps := []struct {
		dmg  float64
		want float64
	}{
		{10, 90},
		{0, 90},
		{-20, 100},
		{85, 15},
		{50, 0},
	}
	for _, s := range steps {
		m.ApplyDamage(s.dmg)
		if m.Current() != s.want {
			t.Fatalf("after damage %v: current = %v, want %v", s.dmg, m.Current(), s.want)
		}
	}
}

func TestDeathFiresOnceAndIsFinal(t *testing.T) {
	m := New(DefaultConfig())
	deaths := 0
	m.SetHooks(Hooks{OnDeath: func() { deaths++ }})

	m.ApplyDamage(150)
	m.ApplyDamage(10)
	m.Heal(50)
	m.Tick(10 * time.Second)

	if deaths != 1 {
		t.Errorf("OnDeath fired %d times", deaths)
	}
	if !m.IsDead() || m.Current() != 0 {
		t.Errorf("dead = %v current = %v", m.IsDead(), m.Current())
	}
}

func TestRegenWaitsForDelay(t *testing.T) {
	m := New(DefaultConfig())
	m.ApplyDamage(50)

	// exactly the delay is not enough
	for i := 0; i < 50; i++ {
		m.Tick(100 * time.Millisecond)
	}
	if m.Current() != 50 || m.Regenerating() {
		t.Fatalf("regen before delay: current = %v", m.Current())
	}

	m.Tick(100 * time.Millisecond)
	if !m.Regenerating() {
		t.Fatal("regen should start once the delay has passed")
	}
	if !approx(m.Current(), 50.2) {
		t.Errorf("current = %v, want 50.2", m.Current())
	}
}

func TestSecondHitRestartsDelay(t *testing.T) {
	m := New(DefaultConfig())
	m.ApplyDamage(20)
	m.Tick(3 * time.Second)
	m.ApplyDamage(20)
	m.Tick(4 * time.Second)
	if m.Regenerating() || m.Current() != 60 {
		t.Fatalf("regen started from the first hit: current = %v", m.Current())
	}
	m.Tick(1100 * time.Millisecond)
	if !m.Regenerating() {
		t.Fatal("regen should start 5s after the second hit")
	}
}

func TestZeroDamageRestartsDelay(t *testing.T) {
	m := New(DefaultConfig())
	m.ApplyDamage(20)
	m.Tick(5500 * time.Millisecond)
	if !m.Regenerating() {
		t.Fatal("regen should be running")
	}

	m.ApplyDamage(0)
	if m.Regenerating() || m.SinceDamage() != 0 {
		t.Fatalf("regenerating = %v since = %v after a zero hit", m.Regenerating(), m.SinceDamage())
	}
	m.Tick(4 * time.Second)
	if m.Regenerating() {
		t.Fatal("regen restarted before the delay")
	}
}

func TestDamageCancelsRegen(t *testing.T) {
	m := New(DefaultConfig())
	starts, stops := 0, 0
	m.SetHooks(Hooks{
		OnRegenStart: func() { starts++ },
		OnRegenStop:  func() { stops++ },
	})
	m.ApplyDamage(30)
	m.Tick(6 * time.Second)
	if starts != 1 {
		t.Fatalf("starts = %d", starts)
	}
	m.ApplyDamage(1)
	if m.Regenerating() || stops != 1 {
		t.Fatalf("regenerating = %v stops = %d", m.Regenerating(), stops)
	}

	// re-arms after another full delay
	m.Tick(5100 * time.Millisecond)
	if starts != 2 {
		t.Errorf("regen did not re-arm, starts = %d", starts)
	}
}

func TestRegenStopsAtMax(t *testing.T) {
	m := New(DefaultConfig())
	stops := 0
	m.SetHooks(Hooks{OnRegenStop: func() { stops++ }})
	m.ApplyDamage(1)
	m.Tick(6 * time.Second)
	for i := 0; i < 20 && m.Regenerating(); i++ {
		m.Tick(100 * time.Millisecond)
	}
	if m.Current() != 100 || !m.IsFull() {
		t.Fatalf("current = %v, want 100", m.Current())
	}
	if stops != 1 {
		t.Errorf("stops = %d, want 1", stops)
	}
}

func TestRegenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegenEnabled = false
	m := New(cfg)
	m.ApplyDamage(10)
	m.Tick(time.Minute)
	if m.Current() != 90 {
		t.Errorf("current = %v, want 90", m.Current())
	}
}

func TestLowHealthEdges(t *testing.T) {
	m := New(DefaultConfig())
	enter, exit := 0, 0
	m.SetHooks(Hooks{
		OnLowEnter: func() { enter++ },
		OnLowExit:  func() { exit++ },
	})

	m.ApplyDamage(71)
	m.ApplyDamage(1)
	if !m.IsLow() || enter != 1 {
		t.Fatalf("low = %v enter = %d", m.IsLow(), enter)
	}
	m.Heal(20)
	if m.IsLow() || exit != 1 {
		t.Fatalf("low = %v exit = %d", m.IsLow(), exit)
	}
	m.ApplyDamage(20)
	m.ApplyDamage(100)
	if m.IsLow() {
		t.Error("death should clear the low flag")
	}
	if enter != 2 || exit != 2 {
		t.Errorf("enter = %d exit = %d, want 2/2", enter, exit)
	}
}

func TestPercentage(t *testing.T) {
	m := New(DefaultConfig())
	m.ApplyDamage(25)
	if m.Percentage() != 0.75 {
		t.Errorf("percentage = %v", m.Percentage())
	}
	if New(Config{}).Percentage() != 0 {
		t.Error("zero max should report 0")
	}
}
