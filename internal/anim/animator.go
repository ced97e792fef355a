package anim

import (
	"time"

	"go.uber.org/zap"
)

// Animator is a headless Sink that tracks which clip is playing and for how
// long. Clips without a length loop forever.
type Animator struct {
	name    string
	clips   map[Trigger]time.Duration
	current Trigger
	elapsed time.Duration
	started bool

	bools  [paramCount]bool
	floats [paramCount]float64
	plays  [triggerCount]int

	log *zap.Logger
}

func NewAnimator(name string, clips map[Trigger]time.Duration, log *zap.Logger) *Animator {
	if log == nil {
		log = zap.NewNop()
	}
	c := make(map[Trigger]time.Duration, len(clips))
	for k, v := range clips {
		c[k] = v
	}
	return &Animator{name: name, clips: c, log: log}
}

// Play switches to t. Re-playing a clip that is still running is ignored, so
// looping states can be requested every frame.
func (a *Animator) Play(t Trigger) {
	if a.started && a.current == t && a.playing() {
		return
	}
	a.current = t
	a.elapsed = 0
	a.started = true
	if t >= 0 && t < triggerCount {
		a.plays[t]++
	}
	a.log.Debug("anim play", zap.String("entity", a.name), zap.Stringer("state", t))
}

func (a *Animator) SetBool(p Param, v bool) {
	if p >= 0 && p < paramCount {
		a.bools[p] = v
	}
}

func (a *Animator) SetFloat(p Param, v float64) {
	if p >= 0 && p < paramCount {
		a.floats[p] = v
	}
}

// Update advances the current clip.
func (a *Animator) Update(dt time.Duration) {
	if a.started {
		a.elapsed += dt
	}
}

func (a *Animator) playing() bool {
	d, ok := a.clips[a.current]
	return !ok || d <= 0 || a.elapsed < d
}

// IsPlaying reports whether t is the current clip and has not finished.
func (a *Animator) IsPlaying(t Trigger) bool {
	return a.started && a.current == t && a.playing()
}

// IntroActive is true while a finite Angry clip is running.
func (a *Animator) IntroActive() bool {
	d, ok := a.clips[TriggerAngry]
	if !ok || d <= 0 {
		return false
	}
	return a.started && a.current == TriggerAngry && a.elapsed < d
}

func (a *Animator) Current() Trigger  { return a.current }
func (a *Animator) Bool(p Param) bool { return p >= 0 && p < paramCount && a.bools[p] }
func (a *Animator) PlayCount(t Trigger) int {
	if t < 0 || t >= triggerCount {
		return 0
	}
	return a.plays[t]
}

func (a *Animator) Float(p Param) float64 {
	if p < 0 || p >= paramCount {
		return 0
	}
	return a.floats[p]
}
