// Package nav is the movement service used by AI-driven entities.
package nav

import (
	"time"

	"github.com/petstore/bossfight/internal/geom"
)

// Agent is the navigation surface the boss drives. It mirrors what a
// navmesh agent exposes to game code.
type Agent interface {
	SetDestination(p geom.Vec3)
	Destination() (geom.Vec3, bool)
	ResetPath()
	SetStopped(stopped bool)
	Stopped() bool
	Velocity() geom.Vec3
	// RemainingDistance is the distance left on the current path, 0 without one.
	RemainingDistance() float64
	PathPending() bool
	SetSpeed(speed float64)
	Speed() float64
	SetAcceleration(accel float64)
	SetStoppingDistance(d float64)
	Position() geom.Vec3
	Warp(p geom.Vec3)
	SetEnabled(enabled bool)
	Enabled() bool
}

// Mover is a straight-line Agent on open ground. Paths are requested by
// SetDestination and computed on the next Step, so PathPending is true for
// one physics step after a new destination.
type Mover struct {
	pos  geom.Vec3
	vel  geom.Vec3
	dest geom.Vec3

	hasPath  bool
	pending  bool
	stopped  bool
	disabled bool

	speed    float64
	accel    float64
	stopDist float64
}

func NewMover(pos geom.Vec3) *Mover {
	return &Mover{pos: pos, speed: 3.5, accel: 8}
}

func (m *Mover) SetDestination(p geom.Vec3) {
	if m.disabled {
		return
	}
	if !m.hasPath || m.dest != p {
		m.pending = true
	}
	m.dest = p
	m.hasPath = true
}

func (m *Mover) Destination() (geom.Vec3, bool) { return m.dest, m.hasPath }

func (m *Mover) ResetPath() {
	m.hasPath = false
	m.pending = false
}

func (m *Mover) RemainingDistance() float64 {
	if !m.hasPath {
		return 0
	}
	return m.pos.FlatDist(m.dest)
}

func (m *Mover) SetStopped(stopped bool)       { m.stopped = stopped }
func (m *Mover) Stopped() bool                 { return m.stopped }
func (m *Mover) Velocity() geom.Vec3           { return m.vel }
func (m *Mover) PathPending() bool             { return m.pending }
func (m *Mover) SetSpeed(speed float64)        { m.speed = speed }
func (m *Mover) Speed() float64                { return m.speed }
func (m *Mover) SetAcceleration(accel float64) { m.accel = accel }
func (m *Mover) SetStoppingDistance(d float64) { m.stopDist = d }
func (m *Mover) Position() geom.Vec3           { return m.pos }
func (m *Mover) Enabled() bool                 { return !m.disabled }

// Warp teleports the agent and clears its velocity. The path is kept.
func (m *Mover) Warp(p geom.Vec3) {
	m.pos = p
	m.vel = geom.Vec3{}
}

func (m *Mover) SetEnabled(enabled bool) {
	m.disabled = !enabled
	if m.disabled {
		m.vel = geom.Vec3{}
		m.ResetPath()
	}
}

// Step integrates one physics step: accelerate toward the destination at
// Speed, brake inside the stopping distance, never overshoot.
func (m *Mover) Step(dt time.Duration) {
	if m.disabled {
		return
	}
	m.pending = false
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	desired := geom.Vec3{}
	var remaining float64
	if m.hasPath && !m.stopped {
		to := m.dest.Sub(m.pos).Flat()
		remaining = to.Len()
		if remaining > m.stopDist && remaining > 1e-4 {
			desired = to.Scale(m.speed / remaining)
		}
	}
	m.vel = geom.MoveTowards(m.vel, desired, m.accel*sec)

	step := m.vel.Scale(sec)
	if !desired.IsZero() && step.Len() >= remaining {
		m.pos = geom.Vec3{X: m.dest.X, Y: m.pos.Y, Z: m.dest.Z}
		m.vel = geom.Vec3{}
		return
	}
	m.pos = m.pos.Add(step)
}
