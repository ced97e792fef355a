// Package sim wires the boss, the player and the presentation adapters into
// one deterministic encounter driven by a fixed frame clock.
package sim

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/boss"
	"github.com/petstore/bossfight/internal/core/event"
	coresys "github.com/petstore/bossfight/internal/core/system"
	"github.com/petstore/bossfight/internal/data"
	"github.com/petstore/bossfight/internal/effect"
	"github.com/petstore/bossfight/internal/nav"
	"github.com/petstore/bossfight/internal/player"
	"github.com/petstore/bossfight/internal/presentation"
	"github.com/petstore/bossfight/internal/system"
)

// Setup is everything needed to build one encounter.
type Setup struct {
	Tuning    *data.Tuning
	Seed      int64
	Frame     time.Duration // variable-rate frame delta
	FixedStep time.Duration // physics step
	Duration  time.Duration // time limit
	Brain     Brain         // nil = ChaseBrain
	Log       *zap.Logger
}

type Outcome string

const (
	OutcomeRunning        Outcome = "running"
	OutcomeBossDefeated   Outcome = "boss_defeated"
	OutcomePlayerDefeated Outcome = "player_defeated"
	OutcomeTimeout        Outcome = "timeout"
)

// Simulation is one encounter. Not safe for concurrent use; run separate
// encounters on separate Simulations.
type Simulation struct {
	setup  Setup
	log    *zap.Logger
	bus    *event.Bus
	runner *coresys.Runner

	rng      *rand.Rand
	effects  *effect.Pool
	agent    *nav.Mover
	bossAnim *anim.Animator
	plAnim   *anim.Animator
	boss     *boss.Behavior
	player   *player.Player
	hud      *presentation.HUD
	brain    Brain
	cleanup  *system.CleanupSystem
	click    string

	clock  time.Duration
	frames int
	stats  *Stats
}

func New(s Setup) *Simulation {
	if s.Tuning == nil {
		s.Tuning = data.DefaultTuning()
	}
	if s.Frame <= 0 {
		s.Frame = 16 * time.Millisecond
	}
	if s.Duration <= 0 {
		s.Duration = 3 * time.Minute
	}
	if s.Brain == nil {
		s.Brain = NewChaseBrain()
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	t := s.Tuning

	sim := &Simulation{
		setup:  s,
		log:    log,
		bus:    event.NewBus(),
		runner: coresys.NewRunner(s.FixedStep),
		rng:    rand.New(rand.NewSource(s.Seed)),
		brain:  s.Brain,
	}

	sim.effects = effect.NewPool(log.Named("fx"))
	origin := t.Scene.BossOrigin.Vec3()
	sim.agent = nav.NewMover(origin)
	sim.bossAnim = anim.NewAnimator("boss", data.Clips(t.Scene.BossClips), log.Named("anim"))
	sim.plAnim = anim.NewAnimator("player", data.Clips(t.Scene.PlayerClips), log.Named("anim"))

	sim.player = player.New(t.Player, player.Deps{
		Anim:    sim.plAnim,
		Effects: sim.effects,
		Bus:     sim.bus,
		Log:     log.Named("player"),
	})
	sim.boss = boss.New(t.Boss, boss.Deps{
		Target:  sim.player,
		Agent:   sim.agent,
		Anim:    sim.bossAnim,
		Intro:   sim.bossAnim,
		Effects: sim.effects,
		Rand:    sim.rng,
		Bus:     sim.bus,
		Log:     log.Named("boss"),
		Origin:  &origin,
	})
	sim.player.SetFoe(sim.boss)

	// cosmetic randomness must not shift the boss's rolls
	sim.hud = presentation.NewHUD(rand.New(rand.NewSource(s.Seed+1)), log.Named("hud"))
	sim.applyScene(t.Scene)
	sim.hud.Subscribe(sim.bus)
	sim.hud.SetBoss(sim.boss.State().String(), sim.boss.Health(), sim.boss.MaxHealth())

	sim.stats = newStats(sim.player.Health().Current())
	sim.stats.subscribe(sim.bus, func() float64 { return sim.clock.Seconds() })

	sim.cleanup = system.NewCleanupSystem(sim.effects.World())
	sim.runner.Register(system.NewInputSystem(sim, sim.player))
	sim.runner.Register(system.NewMovementSystem(sim.player, sim.agent))
	sim.runner.Register(system.NewBossSystem(sim.boss))
	sim.runner.Register(system.NewRegenSystem(sim.player.Health()))
	sim.runner.Register(system.NewMentalSystem(sim.player.Mental()))
	sim.runner.Register(system.NewAnimationSystem(sim.bossAnim, sim.plAnim))
	sim.runner.Register(system.NewEffectSystem(sim.effects))
	sim.runner.Register(system.NewDispatchSystem(sim.bus))
	sim.runner.Register(system.NewPresentationSystem(sim.hud, sim.player, sim))
	sim.runner.Register(sim.cleanup)
	return sim
}

func (s *Simulation) applyScene(sc data.SceneTuning) {
	s.hud.Camera = presentation.NewCamera(sc.CameraConfig())
	s.hud.Health.HideDelay = sc.HUD.HealthHideDelay.Duration()
	s.hud.Mental.PulseThreshold = sc.HUD.PulseThreshold
	s.hud.Mental.PulseSpeed = sc.HUD.PulseSpeed
	s.hud.Vignette.MaxIntensity = sc.HUD.VignetteMax
	s.hud.Vignette.Speed = sc.HUD.VignetteSpeed
	s.hud.Candle.Min = sc.HUD.FlickerMin
	s.hud.Candle.Max = sc.HUD.FlickerMax
	s.hud.Candle.Period = sc.HUD.FlickerPeriod.Duration()
}

// Next implements system.InputSource by asking the brain.
func (s *Simulation) Next(time.Duration) player.Input {
	o := s.Observe()
	in := s.brain.Decide(o)

	s.click = ""
	if c, ok := s.brain.(Clicker); ok {
		s.click = c.Click(o)
	}

	// the player points at whatever they are swinging at
	switch {
	case s.click != "":
		s.hud.Cursor.Hover(presentation.TagInteractable)
	case in.Attack || in.Skill || in.Ultimate:
		s.hud.Cursor.Hover(presentation.TagMonster)
	default:
		s.hud.Cursor.Hover("")
	}
	return in
}

// Pointer implements system.PointerSource: a centred mouse carrying the
// brain's click for this frame.
func (s *Simulation) Pointer() presentation.Pointer {
	p := presentation.Pointer{X: 960, Y: 540, Width: 1920, Height: 1080, Click: s.click}
	s.click = ""
	return p
}

// Observe snapshots the world for a brain.
func (s *Simulation) Observe() Observation {
	p, b := s.player, s.boss
	o := Observation{
		Time:      s.clock.Seconds(),
		Player:    p.Position(),
		HP:        p.Health().Current(),
		MaxHP:     p.Health().Max(),
		Mental:    p.Mental().Current(),
		MaxMental: p.Mental().Max(),
		Tired:     p.IsTired(),
		Grooming:  p.IsGrooming(),
		LowHealth: p.Health().IsLow(),
		Regen:     p.Health().Regenerating(),

		Boss:          b.Position(),
		BossDist:      p.Position().Dist(b.Position()),
		BossHP:        b.Health(),
		BossMaxHP:     b.MaxHealth(),
		BossState:     b.State().String(),
		BossAttacking: b.Attacking(),
	}
	if g, ok := b.AreaGeometry(); ok {
		o.AreaActive = true
		o.AreaCenter = g.Center
		o.AreaRadius = g.Radius
	}
	o.Talked = s.hud.Dialogue.Talked()
	o.ChestOpened = s.hud.Chest.Opened()
	o.Adopted = s.hud.Chest.Adopted()
	if p := s.hud.Popups.Active(); p != nil {
		o.Popup = p.Name
	}
	cfg := s.setup.Tuning.Player
	for a := player.ActionAttack; a < player.ActionCount; a++ {
		o.Abilities[a] = cfg.Abilities[a]
		o.Ready[a] = p.Cooldown(a) <= 0
	}
	return o
}

// Step runs one frame.
func (s *Simulation) Step() {
	s.runner.Tick(s.setup.Frame)
	s.clock += s.setup.Frame
	s.frames++
}

func (s *Simulation) Outcome() Outcome {
	switch {
	case s.stats.BossDied:
		return OutcomeBossDefeated
	case s.stats.PlayerDied:
		return OutcomePlayerDefeated
	case s.clock >= s.setup.Duration:
		return OutcomeTimeout
	}
	return OutcomeRunning
}

func (s *Simulation) Done() bool { return s.Outcome() != OutcomeRunning }

// Run steps until the encounter ends or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		s.Step()
	}
	res := s.Result()
	s.log.Info("encounter finished",
		zap.String("outcome", string(res.Outcome)),
		zap.Float64("seconds", res.Seconds),
		zap.Int64("seed", res.Seed))
	return res, nil
}

// Reconfigure swaps tuning between frames.
func (s *Simulation) Reconfigure(t *data.Tuning) {
	s.setup.Tuning = t
	s.boss.Reconfigure(t.Boss)
	s.player.Reconfigure(t.Player)
	s.applyScene(t.Scene)
	s.log.Info("tuning applied")
}

// Result is the JSON summary of an encounter.
type Result struct {
	Seed        int64                 `json:"seed"`
	Outcome     Outcome               `json:"outcome"`
	Seconds     float64               `json:"seconds"`
	Frames      int                   `json:"frames"`
	BossState   string                `json:"boss_state"`
	BossHealth  float64               `json:"boss_health"`
	PlayerHP    float64               `json:"player_health"`
	PlayerMind  float64               `json:"player_mental"`
	EffectsLeft int                   `json:"effects_left"`
	Destroyed   int                   `json:"effects_destroyed"`
	Stats       *Stats                `json:"stats"`
	HUD         presentation.Snapshot `json:"hud"`
	Debug       boss.Overlay          `json:"debug"`
}

func (s *Simulation) Result() Result {
	return Result{
		Seed:        s.setup.Seed,
		Outcome:     s.Outcome(),
		Seconds:     s.clock.Seconds(),
		Frames:      s.frames,
		BossState:   s.boss.State().String(),
		BossHealth:  s.boss.Health(),
		PlayerHP:    s.player.Health().Current(),
		PlayerMind:  s.player.Mental().Current(),
		EffectsLeft: s.effects.Active(""),
		Destroyed:   s.cleanup.Flushed(),
		Stats:       s.stats,
		HUD:         s.hud.Snapshot(),
		Debug:       s.boss.Debug(),
	}
}

func (s *Simulation) Boss() *boss.Behavior   { return s.boss }
func (s *Simulation) Player() *player.Player { return s.player }
func (s *Simulation) HUD() *presentation.HUD { return s.hud }
func (s *Simulation) Effects() *effect.Pool  { return s.effects }
func (s *Simulation) Bus() *event.Bus        { return s.bus }
func (s *Simulation) Clock() time.Duration   { return s.clock }
func (s *Simulation) Stats() *Stats          { return s.stats }
