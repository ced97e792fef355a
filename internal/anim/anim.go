// Package anim is the boundary between game logic and whatever plays
// animations. Logic only ever names a Trigger or Param; the string names an
// animator controller expects live in one table here.
package anim

import "fmt"

type Trigger int

const (
	TriggerIdle Trigger = iota
	TriggerAngry
	TriggerWalk
	TriggerAttack
	TriggerAreaAttackReady
	TriggerAreaAttack
	TriggerDamage
	TriggerDie
	TriggerSkill
	TriggerUltimate
	TriggerOpen
	TriggerClose
	triggerCount
)

type Param int

const (
	ParamSpeed Param = iota
	ParamIsJumping
	ParamIsTired
	ParamIsGrooming
	ParamIsHiding
	paramCount
)

// Controller state and parameter names, indexed by enum value.
var (
	triggerNames = [triggerCount]string{
		TriggerIdle:            "Idle",
		TriggerAngry:           "Angry",
		TriggerWalk:            "Walk",
		TriggerAttack:          "Attack",
		TriggerAreaAttackReady: "AreaAttackReady",
		TriggerAreaAttack:      "AreaAttack",
		TriggerDamage:          "Damage",
		TriggerDie:             "Die",
		TriggerSkill:           "Skill",
		TriggerUltimate:        "Ultimate",
		TriggerOpen:            "Open",
		TriggerClose:           "Close",
	}
	paramNames = [paramCount]string{
		ParamSpeed:      "Speed",
		ParamIsJumping:  "IsJumping",
		ParamIsTired:    "IsTired",
		ParamIsGrooming: "IsGrooming",
		ParamIsHiding:   "IsHiding",
	}
)

func (t Trigger) String() string {
	if t < 0 || t >= triggerCount {
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
	return triggerNames[t]
}

func (p Param) String() string {
	if p < 0 || p >= paramCount {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramNames[p]
}

// ParseTrigger maps a controller state name back to its Trigger.
func ParseTrigger(name string) (Trigger, error) {
	for i, n := range triggerNames {
		if n == name {
			return Trigger(i), nil
		}
	}
	return 0, fmt.Errorf("unknown animation trigger %q", name)
}

// Sink receives animation commands.
type Sink interface {
	Play(t Trigger)
	SetBool(p Param, v bool)
	SetFloat(p Param, v float64)
}

// IntroSignal reports whether an entity's intro (aggro) animation is still
// playing.
type IntroSignal interface {
	IntroActive() bool
}

// Discard is a Sink that ignores everything.
type Discard struct{}

func (Discard) Play(Trigger)            {}
func (Discard) SetBool(Param, bool)     {}
func (Discard) SetFloat(Param, float64) {}
