package presentation

import (
	"math"
	"math/rand"
	"time"
)

// VignettePulse is the low-health screen effect.
type VignettePulse struct {
	MaxIntensity float64
	Speed        float64

	running   bool
	clock     time.Duration
	intensity float64
}

func NewVignettePulse() *VignettePulse {
	return &VignettePulse{MaxIntensity: 0.6, Speed: 1.5}
}

func (v *VignettePulse) Start() { v.running = true }

// Stop halts the pulse and clears the effect. Stopping twice is harmless.
func (v *VignettePulse) Stop() {
	v.running = false
	v.intensity = 0
}

func (v *VignettePulse) Update(dt time.Duration) {
	v.clock += dt
	if !v.running {
		return
	}
	v.intensity = (math.Sin(v.clock.Seconds()*v.Speed) + 1) / 2 * v.MaxIntensity
}

func (v *VignettePulse) Running() bool      { return v.running }
func (v *VignettePulse) Intensity() float64 { return v.intensity }

// LightFlicker jitters a candle's intensity every Period.
type LightFlicker struct {
	Min, Max float64
	Period   time.Duration

	rng       *rand.Rand
	timer     time.Duration
	intensity float64
}

func NewLightFlicker(rng *rand.Rand) *LightFlicker {
	return &LightFlicker{
		Min:       0.8,
		Max:       1.2,
		Period:    100 * time.Millisecond,
		rng:       rng,
		timer:     100 * time.Millisecond,
		intensity: 1,
	}
}

func (l *LightFlicker) Update(dt time.Duration) {
	l.timer -= dt
	if l.timer > 0 {
		return
	}
	l.intensity = l.Min + l.rng.Float64()*(l.Max-l.Min)
	l.timer = l.Period
}

func (l *LightFlicker) Intensity() float64 { return l.intensity }

// CursorKind is the pointer texture to show.
type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorAttack
	CursorInteract
)

func (k CursorKind) String() string {
	switch k {
	case CursorAttack:
		return "attack"
	case CursorInteract:
		return "interact"
	}
	return "default"
}

// Tags the pointer can hover.
const (
	TagMonster      = "Monster"
	TagInteractable = "Interactable"
)

// Cursor maps the tag under the pointer to a cursor kind.
type Cursor struct{ kind CursorKind }

// Hover updates the cursor; an empty tag means nothing is under the pointer.
func (c *Cursor) Hover(tag string) CursorKind {
	switch tag {
	case TagMonster:
		c.kind = CursorAttack
	case TagInteractable:
		c.kind = CursorInteract
	default:
		c.kind = CursorDefault
	}
	return c.kind
}

func (c *Cursor) Kind() CursorKind { return c.kind }
