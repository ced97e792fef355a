package presentation

import (
	"math"
	"time"
)

// HealthColor ramps green to yellow above 60%, yellow to red down to 30%,
// and is solid red below that.
func HealthColor(pct float64) Color {
	switch {
	case pct > 0.6:
		return LerpColor(Green, Yellow, (1-pct)/0.4)
	case pct > 0.3:
		return LerpColor(Yellow, Red, (0.6-pct)/0.3)
	}
	return Red
}

// HealthBar is the world-space bar over the player.
type HealthBar struct {
	HideWhenFull bool
	HideDelay    time.Duration

	fill    float64
	color   Color
	visible bool
	since   time.Duration
}

func NewHealthBar() *HealthBar {
	return &HealthBar{
		HideWhenFull: true,
		HideDelay:    3 * time.Second,
		fill:         1,
		color:        Green,
		visible:      true,
	}
}

// Set shows the bar and restarts the hide timer.
func (h *HealthBar) Set(current, max float64) {
	if max <= 0 {
		return
	}
	h.fill = current / max
	h.color = HealthColor(h.fill)
	h.visible = true
	h.since = 0
}

func (h *HealthBar) Update(dt time.Duration) {
	h.since += dt
	if h.HideWhenFull && h.visible && h.since > h.HideDelay && h.fill >= 1 {
		h.visible = false
	}
}

func (h *HealthBar) Show() { h.visible = true }
func (h *HealthBar) Hide() { h.visible = false }

func (h *HealthBar) Fill() float64 { return h.fill }
func (h *HealthBar) Color() Color  { return h.color }
func (h *HealthBar) Visible() bool { return h.visible }

// MentalBar is the radial gauge. Below the pulse threshold its alpha
// oscillates; grooming tints it green without touching alpha.
type MentalBar struct {
	PulseThreshold float64
	PulseSpeed     float64
	Base           Color

	fill     float64
	color    Color
	pulsing  bool
	grooming bool
	clock    time.Duration
}

func NewMentalBar() *MentalBar {
	return &MentalBar{
		PulseThreshold: 0.3,
		PulseSpeed:     2,
		Base:           White,
		fill:           1,
		color:          White,
	}
}

func (m *MentalBar) Set(current, max float64) {
	if max <= 0 {
		return
	}
	m.fill = current / max
	pulse := m.fill <= m.PulseThreshold
	if pulse == m.pulsing {
		return
	}
	m.pulsing = pulse
	if !pulse {
		m.color = m.hue().WithAlpha(1)
	}
}

func (m *MentalBar) SetGrooming(on bool) {
	m.grooming = on
	m.color = m.hue().WithAlpha(m.color.A)
}

func (m *MentalBar) hue() Color {
	if m.grooming {
		return Green
	}
	return m.Base
}

func (m *MentalBar) Update(dt time.Duration) {
	m.clock += dt
	if m.pulsing {
		a := 0.7 + 0.3*math.Sin(m.clock.Seconds()*m.PulseSpeed)
		m.color = m.hue().WithAlpha(a)
	}
}

func (m *MentalBar) Fill() float64  { return m.fill }
func (m *MentalBar) Color() Color   { return m.color }
func (m *MentalBar) Pulsing() bool  { return m.pulsing }
func (m *MentalBar) Grooming() bool { return m.grooming }
