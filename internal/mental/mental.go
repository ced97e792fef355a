// Package mental models the player's "mental health": a resource that decays
// once per period and is restored while the player grooms. Running out leaves
// the player tired.
package mental

import "time"

type Config struct {
	Max          float64
	DecayRate    float64       // points lost per period
	RecoveryRate float64       // points gained per period while grooming
	Period       time.Duration // length of one decay/recovery step
}

func DefaultConfig() Config {
	return Config{
		Max:          100,
		DecayRate:    0.56,
		RecoveryRate: 20,
		Period:       time.Second,
	}
}

type Hooks struct {
	OnChange     func(current, max float64)
	OnTiredEnter func()
	OnTiredExit  func()
	OnGroomStart func()
	OnGroomStop  func()
}

// Model owns one player's mental value. tired holds exactly when current <= 0.
type Model struct {
	cfg      Config
	hooks    Hooks
	current  float64
	tired    bool
	grooming bool
}

func New(cfg Config) *Model {
	m := &Model{cfg: cfg, current: cfg.Max}
	m.tired = m.current <= 0
	return m
}

func (m *Model) SetHooks(h Hooks) { m.hooks = h }

func (m *Model) Config() Config { return m.cfg }

func (m *Model) Reconfigure(cfg Config) {
	m.cfg = cfg
	m.Set(m.current)
}

// Tick runs one period: recover while grooming, decay otherwise.
func (m *Model) Tick() {
	if m.grooming {
		m.Recover(m.cfg.RecoveryRate)
		return
	}
	m.Decrease(m.cfg.DecayRate)
}

func (m *Model) Decrease(amount float64) {
	if amount <= 0 {
		return
	}
	m.Set(m.current - amount)
}

func (m *Model) Recover(amount float64) {
	if amount <= 0 {
		return
	}
	m.Set(m.current + amount)
}

// Set clamps v into [0,max] and fires tired edges.
func (m *Model) Set(v float64) {
	if v < 0 {
		v = 0
	}
	if v > m.cfg.Max {
		v = m.cfg.Max
	}
	m.current = v
	if m.hooks.OnChange != nil {
		m.hooks.OnChange(m.current, m.cfg.Max)
	}

	tired := m.current <= 0
	if tired == m.tired {
		return
	}
	m.tired = tired
	if tired {
		if m.hooks.OnTiredEnter != nil {
			m.hooks.OnTiredEnter()
		}
	} else if m.hooks.OnTiredExit != nil {
		m.hooks.OnTiredExit()
	}
}

func (m *Model) SetGrooming(on bool) {
	if on == m.grooming {
		return
	}
	m.grooming = on
	if on {
		if m.hooks.OnGroomStart != nil {
			m.hooks.OnGroomStart()
		}
	} else if m.hooks.OnGroomStop != nil {
		m.hooks.OnGroomStop()
	}
}

func (m *Model) Current() float64 { return m.current }
func (m *Model) Max() float64     { return m.cfg.Max }
func (m *Model) IsTired() bool    { return m.tired }
func (m *Model) IsGrooming() bool { return m.grooming }

// IsMentallyHealthy reports whether the player is not tired.
func (m *Model) IsMentallyHealthy() bool { return !m.tired }

func (m *Model) Percentage() float64 {
	if m.cfg.Max <= 0 {
		return 0
	}
	return m.current / m.cfg.Max
}
