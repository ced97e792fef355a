package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/petstore/bossfight/internal/boss"
	"github.com/petstore/bossfight/internal/data"
	"github.com/petstore/bossfight/internal/player"
	"github.com/petstore/bossfight/internal/scripting"
)

func setup(seed int64, d time.Duration, b Brain) Setup {
	return Setup{
		Tuning:    data.DefaultTuning(),
		Seed:      seed,
		Frame:     20 * time.Millisecond,
		FixedStep: 20 * time.Millisecond,
		Duration:  d,
		Brain:     b,
	}
}

type still struct{}

func (still) Decide(Observation) player.Input { return player.Input{} }

// victim walks up to the boss and stands there.
type victim struct{}

func (victim) Decide(o Observation) player.Input {
	if o.BossDist > 1.5 {
		return player.Input{Move: o.Boss.Sub(o.Player).Flat().Norm()}
	}
	return player.Input{}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() []byte {
		res, err := New(setup(99, time.Minute, nil)).Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(res)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed gave different results:\n%s\n%s", a, b)
	}
}

func TestIdlePlayerNeverWakesBoss(t *testing.T) {
	s := New(setup(1, 5*time.Second, still{}))
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeTimeout || res.BossState != "Idle" {
		t.Fatalf("outcome %s boss %s", res.Outcome, res.BossState)
	}
	if len(res.Stats.Transitions) != 0 {
		t.Errorf("transitions = %+v", res.Stats.Transitions)
	}
	if res.Frames != 250 {
		t.Errorf("frames = %d", res.Frames)
	}
}

func TestPassivePlayerIsKilled(t *testing.T) {
	s := New(setup(3, time.Minute, victim{}))
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomePlayerDefeated {
		t.Fatalf("outcome = %s after %.1fs", res.Outcome, res.Seconds)
	}
	if res.PlayerHP != 0 || !res.Stats.PlayerDied {
		t.Errorf("player hp = %v", res.PlayerHP)
	}
	want := []string{"Idle", "FirstEncounter", "Combat"}
	tr := res.Stats.Transitions
	if len(tr) < 2 || tr[0].From != want[0] || tr[0].To != want[1] || tr[1].To != want[2] {
		t.Errorf("transitions = %+v", tr)
	}
	melee := res.Stats.Attacks["boss/melee"]
	if melee == nil || melee.Hits == 0 {
		t.Fatalf("boss melee stats = %+v", melee)
	}
	if res.Stats.PlayerDamage < 100 {
		t.Errorf("player damage taken = %v", res.Stats.PlayerDamage)
	}
	if !res.HUD.Health.Visible || res.HUD.Health.Fill != 0 {
		t.Errorf("hud health = %+v", res.HUD.Health)
	}
}

func TestChaseBrainFinishesEncounter(t *testing.T) {
	res, err := New(setup(7, 3*time.Minute, nil)).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome == OutcomeTimeout || res.Outcome == OutcomeRunning {
		t.Fatalf("outcome = %s", res.Outcome)
	}
	if res.Stats.BossDamage <= 0 {
		t.Error("player never hurt the boss")
	}
	if a := res.Stats.Attacks["player/attack"]; a == nil || a.Started == 0 {
		t.Errorf("player attack stats = %+v", a)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(setup(1, time.Minute, nil)).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if res.Frames != 0 || res.Outcome != OutcomeRunning {
		t.Errorf("result = %+v", res)
	}
}

func TestReconfigureAppliesTuning(t *testing.T) {
	s := New(setup(1, time.Minute, still{}))
	s.Step()

	tun := data.DefaultTuning()
	tun.Boss.MaxHealth = 400
	tun.Player.Health.Max = 50
	tun.Scene.HUD.VignetteMax = 0.9
	s.Reconfigure(tun)

	if s.Boss().MaxHealth() != 400 {
		t.Errorf("boss max = %v", s.Boss().MaxHealth())
	}
	if s.Player().Health().Max() != 50 || s.Player().Health().Current() > 50 {
		t.Errorf("player health = %v/%v", s.Player().Health().Current(), s.Player().Health().Max())
	}
	if s.HUD().Vignette.MaxIntensity != 0.9 {
		t.Error("scene not applied")
	}
}

func TestScriptBrainFallsBack(t *testing.T) {
	eng, err := scripting.NewEngine(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	o := Observation{Player: player.DefaultConfig().Start, BossDist: 20, BossState: boss.StateCombat.String()}
	o.Abilities = player.DefaultConfig().Abilities
	sb := NewScriptBrain(eng, NewChaseBrain())
	if got, want := sb.Decide(o), NewChaseBrain().Decide(o); got != want {
		t.Errorf("fallback input = %+v, want %+v", got, want)
	}
	if got := NewScriptBrain(eng, nil).Decide(o); got != (player.Input{}) {
		t.Errorf("no fallback input = %+v", got)
	}
}

func TestBundledBotFightsToTheEnd(t *testing.T) {
	eng, err := scripting.NewEngine("../../scripts", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	res, err := New(setup(11, 3*time.Minute, NewScriptBrain(eng, nil))).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome == OutcomeTimeout {
		t.Fatalf("scripted bot timed out: %+v", res.Stats)
	}
	if !res.HUD.Talked || !res.HUD.Adopted {
		t.Errorf("bot skipped its errands: %+v", res.HUD)
	}
}

func TestChaseBrainRunsErrandsWhileBossIdles(t *testing.T) {
	s := New(setup(3, time.Minute, nil))
	s.Step()
	if snap := s.HUD().Snapshot(); snap.Popup != "dialogue" || snap.Cursor != "interact" {
		t.Fatalf("first click: %+v", snap)
	}
	for i := 0; i < 4; i++ {
		s.Step()
	}
	snap := s.HUD().Snapshot()
	if !snap.Talked || !snap.Adopted || snap.Popup != "" || !s.HUD().Chest.Opened() {
		t.Fatalf("errands not finished: %+v", snap)
	}
	if s.Boss().State() != boss.StateIdle {
		t.Fatalf("boss woke during errands: %v", s.Boss().State())
	}

	// brains without clicks leave the scene alone
	q := New(setup(3, time.Minute, still{}))
	for i := 0; i < 5; i++ {
		q.Step()
	}
	if snap := q.HUD().Snapshot(); snap.Talked || snap.Adopted || snap.Popup != "" {
		t.Errorf("still brain clicked: %+v", snap)
	}
}

func TestChaseBrainDodgesTelegraph(t *testing.T) {
	b := NewChaseBrain()
	o := Observation{BossDist: 2, BossState: "Combat", MaxHP: 100, HP: 100}
	o.Abilities = player.DefaultConfig().Abilities
	o.Ready = [player.ActionCount]bool{true, true, true}
	o.AreaActive = true
	o.AreaRadius = 4
	o.AreaCenter = o.Player.Add(o.Player.Sub(o.Boss)) // on top of the player
	in := b.Decide(o)
	if !in.Run || in.Attack || in.Move.Len() == 0 {
		t.Errorf("did not dodge: %+v", in)
	}

	o.Tired = true
	if in := b.Decide(o); !in.Groom || in.Run {
		t.Errorf("tired input = %+v", in)
	}
}
