// Package health tracks hit points with delayed regeneration and death.
package health

import "time"

// Config is the immutable tuning for a Model.
type Config struct {
	Max          float64
	RegenEnabled bool
	RegenDelay   time.Duration // quiet time after damage before regen may start
	RegenRate    float64       // points per second
	LowThreshold float64       // ratio of Max at or below which health is "low"
}

func DefaultConfig() Config {
	return Config{
		Max:          100,
		RegenEnabled: true,
		RegenDelay:   5 * time.Second,
		RegenRate:    2,
		LowThreshold: 0.3,
	}
}

// Hooks are optional edge callbacks. Nil fields are skipped.
type Hooks struct {
	OnChange     func(current, max float64)
	OnDeath      func()
	OnLowEnter   func()
	OnLowExit    func()
	OnRegenStart func()
	OnRegenStop  func()
}

// Model is the sole mutator of one entity's hit points.
// Accessed only from the game loop goroutine.
type Model struct {
	cfg   Config
	hooks Hooks

	current      float64
	sinceDamage  time.Duration
	regenerating bool
	dead         bool
	low          bool
}

func New(cfg Config) *Model {
	return &Model{cfg: cfg, current: cfg.Max}
}

func (m *Model) SetHooks(h Hooks) { m.hooks = h }

func (m *Model) Config() Config { return m.cfg }

// Reconfigure swaps the tuning. Current health is clamped to the new max.
func (m *Model) Reconfigure(cfg Config) {
	m.cfg = cfg
	if m.current > cfg.Max {
		m.current = cfg.Max
		m.changed()
	}
	if !cfg.RegenEnabled {
		m.stopRegen()
	}
	m.updateLow()
}

// ApplyDamage subtracts amount, clamped to [0,max], restarts the regen
// window and cancels any running regeneration. Every hit counts, including
// zero. Crossing to zero fires OnDeath exactly once.
func (m *Model) ApplyDamage(amount float64) {
	if m.dead {
		return
	}
	m.current -= amount
	if m.current < 0 {
		m.current = 0
	}
	if m.current > m.cfg.Max {
		m.current = m.cfg.Max
	}
	m.sinceDamage = 0
	m.stopRegen()
	m.changed()

	if m.current <= 0 {
		m.dead = true
		m.updateLow()
		if m.hooks.OnDeath != nil {
			m.hooks.OnDeath()
		}
		return
	}
	m.updateLow()
}

func (m *Model) Heal(amount float64) {
	if m.dead || amount <= 0 {
		return
	}
	m.current += amount
	if m.current > m.cfg.Max {
		m.current = m.cfg.Max
	}
	m.changed()
	m.updateLow()
}

// Tick advances the regen window and, once it has elapsed, regenerates
// RegenRate*dt per tick until full.
func (m *Model) Tick(dt time.Duration) {
	if m.dead {
		return
	}
	m.sinceDamage += dt
	if !m.cfg.RegenEnabled {
		return
	}

	if !m.regenerating && m.sinceDamage > m.cfg.RegenDelay && m.current < m.cfg.Max {
		m.regenerating = true
		if m.hooks.OnRegenStart != nil {
			m.hooks.OnRegenStart()
		}
	}
	if !m.regenerating {
		return
	}

	m.current += m.cfg.RegenRate * dt.Seconds()
	if m.current >= m.cfg.Max {
		m.current = m.cfg.Max
	}
	m.changed()
	m.updateLow()
	if m.current >= m.cfg.Max {
		m.stopRegen()
	}
}

// Revive restores a dead or damaged model to full health.
func (m *Model) Revive() {
	m.stopRegen()
	m.dead = false
	m.current = m.cfg.Max
	m.sinceDamage = 0
	m.changed()
	m.updateLow()
}

func (m *Model) stopRegen() {
	if !m.regenerating {
		return
	}
	m.regenerating = false
	if m.hooks.OnRegenStop != nil {
		m.hooks.OnRegenStop()
	}
}

func (m *Model) changed() {
	if m.hooks.OnChange != nil {
		m.hooks.OnChange(m.current, m.cfg.Max)
	}
}

// updateLow fires the low-health edge callbacks. Death clears the flag.
func (m *Model) updateLow() {
	low := !m.dead && m.cfg.Max > 0 && m.current/m.cfg.Max <= m.cfg.LowThreshold
	if low == m.low {
		return
	}
	m.low = low
	if low {
		if m.hooks.OnLowEnter != nil {
			m.hooks.OnLowEnter()
		}
	} else if m.hooks.OnLowExit != nil {
		m.hooks.OnLowExit()
	}
}

func (m *Model) Current() float64           { return m.current }
func (m *Model) Max() float64               { return m.cfg.Max }
func (m *Model) IsDead() bool               { return m.dead }
func (m *Model) IsAlive() bool              { return !m.dead }
func (m *Model) IsFull() bool               { return m.current >= m.cfg.Max }
func (m *Model) IsLow() bool                { return m.low }
func (m *Model) Regenerating() bool         { return m.regenerating }
func (m *Model) SinceDamage() time.Duration { return m.sinceDamage }

// Percentage is current/max in [0,1].
func (m *Model) Percentage() float64 {
	if m.cfg.Max <= 0 {
		return 0
	}
	return m.current / m.cfg.Max
}
