package sim

import (
	"github.com/petstore/bossfight/internal/geom"
	"github.com/petstore/bossfight/internal/player"
	"github.com/petstore/bossfight/internal/presentation"
	"github.com/petstore/bossfight/internal/scripting"
)

// Observation is what a brain may read each frame.
type Observation struct {
	Time float64

	Player    geom.Vec3
	HP, MaxHP float64
	Mental    float64
	MaxMental float64
	Tired     bool
	Grooming  bool
	LowHealth bool
	Regen     bool

	Boss          geom.Vec3
	BossDist      float64
	BossHP        float64
	BossMaxHP     float64
	BossState     string
	BossAttacking bool

	AreaActive bool
	AreaCenter geom.Vec3
	AreaRadius float64

	Abilities [player.ActionCount]player.Ability
	Ready     [player.ActionCount]bool

	Popup       string // open popup name, "" when none
	Talked      bool
	ChestOpened bool
	Adopted     bool
}

// Brain decides the player's input from an observation.
type Brain interface {
	Decide(o Observation) player.Input
}

// Clicker is implemented by brains that also click scene objects. Click is
// asked right after Decide with the same observation.
type Clicker interface {
	Click(o Observation) string
}

// errands greets the shopkeeper and adopts from the chest, one click per
// frame, then returns "" for good.
func errands(o Observation) string {
	switch {
	case !o.Talked:
		return presentation.ClickShopkeeper
	case o.Popup == "dialogue":
		return presentation.ClickClose
	case !o.ChestOpened:
		return presentation.ClickChest
	case o.Popup == "adopt" && !o.Adopted:
		return presentation.ClickAdopt
	}
	return ""
}

// ChaseBrain is the built-in autopilot: dodge telegraphed areas, back off
// at low health, groom when tired and otherwise close in and attack.
type ChaseBrain struct {
	KiteBelow float64 // health ratio
}

func NewChaseBrain() *ChaseBrain { return &ChaseBrain{KiteBelow: 0.25} }

func (b *ChaseBrain) Decide(o Observation) player.Input {
	var in player.Input
	if o.BossState == "Dead" {
		return in
	}
	if o.Tired {
		in.Groom = true
		return in
	}

	if o.AreaActive && o.Player.FlatDist(o.AreaCenter) <= o.AreaRadius+0.5 {
		away := o.Player.Sub(o.AreaCenter).Flat()
		if away.Len() < 1e-4 {
			away = geom.V(1, 0, 0)
		}
		in.Move = away.Norm()
		in.Run = true
		return in
	}

	if o.MaxHP > 0 && o.HP/o.MaxHP < b.KiteBelow && o.BossDist < 8 {
		in.Move = o.Player.Sub(o.Boss).Flat().Norm()
		in.Run = true
		return in
	}

	switch {
	case o.Ready[player.ActionUltimate] && o.BossDist <= o.Abilities[player.ActionUltimate].Range:
		in.Ultimate = true
	case o.Ready[player.ActionSkill] && o.BossDist <= o.Abilities[player.ActionSkill].Range:
		in.Skill = true
	case o.Ready[player.ActionAttack] && o.BossDist <= o.Abilities[player.ActionAttack].Range:
		in.Attack = true
	}

	if o.BossDist > o.Abilities[player.ActionAttack].Range*0.8 {
		in.Move = o.Boss.Sub(o.Player).Flat().Norm()
		in.Run = o.BossDist > 6
	}
	return in
}

// Click runs the shop errands while the boss is still idle.
func (b *ChaseBrain) Click(o Observation) string {
	if o.BossState != "Idle" {
		return ""
	}
	return errands(o)
}

// ScriptBrain asks the Lua bot_decide function and falls back to another
// brain when the script is missing or fails.
type ScriptBrain struct {
	engine   *scripting.Engine
	fallback Brain

	scripted bool // last Decide came from the script
	click    string
}

func NewScriptBrain(engine *scripting.Engine, fallback Brain) *ScriptBrain {
	return &ScriptBrain{engine: engine, fallback: fallback}
}

func (b *ScriptBrain) Decide(o Observation) player.Input {
	cmd, ok := b.engine.RunBot(botContext(o))
	b.scripted, b.click = ok, cmd.Click
	if !ok {
		if b.fallback == nil {
			return player.Input{}
		}
		return b.fallback.Decide(o)
	}
	return player.Input{
		Move:     geom.V(cmd.MoveX, 0, cmd.MoveZ),
		Run:      cmd.Run,
		Jump:     cmd.Jump,
		Groom:    cmd.Groom,
		Hide:     cmd.Hide,
		Attack:   cmd.Attack,
		Skill:    cmd.Skill,
		Ultimate: cmd.Ultimate,
	}
}

// Click returns the script's click, or the fallback's when the script did
// not run.
func (b *ScriptBrain) Click(o Observation) string {
	if b.scripted {
		return b.click
	}
	if c, ok := b.fallback.(Clicker); ok {
		return c.Click(o)
	}
	return ""
}

func botContext(o Observation) scripting.BotContext {
	return scripting.BotContext{
		Time:      o.Time,
		X:         o.Player.X,
		Z:         o.Player.Z,
		HP:        o.HP,
		MaxHP:     o.MaxHP,
		Mental:    o.Mental,
		MaxMental: o.MaxMental,
		Tired:     o.Tired,
		Grooming:  o.Grooming,
		LowHealth: o.LowHealth,
		Regen:     o.Regen,

		BossX:      o.Boss.X,
		BossZ:      o.Boss.Z,
		BossDist:   o.BossDist,
		BossHP:     o.BossHP,
		BossMaxHP:  o.BossMaxHP,
		BossState:  o.BossState,
		BossAttack: o.BossAttacking,

		AreaActive: o.AreaActive,
		AreaX:      o.AreaCenter.X,
		AreaZ:      o.AreaCenter.Z,
		AreaRadius: o.AreaRadius,

		AttackRange:   o.Abilities[player.ActionAttack].Range,
		SkillRange:    o.Abilities[player.ActionSkill].Range,
		UltimateRange: o.Abilities[player.ActionUltimate].Range,
		AttackReady:   o.Ready[player.ActionAttack],
		SkillReady:    o.Ready[player.ActionSkill],
		UltimateReady: o.Ready[player.ActionUltimate],

		Popup:       o.Popup,
		Talked:      o.Talked,
		ChestOpened: o.ChestOpened,
		Adopted:     o.Adopted,
	}
}
