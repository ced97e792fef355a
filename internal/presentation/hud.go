package presentation

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/combat"
	"github.com/petstore/bossfight/internal/core/event"
	"github.com/petstore/bossfight/internal/geom"
)

// HUD groups the adapters and keeps them in sync with bus events.
type HUD struct {
	Camera   *Camera
	Health   *HealthBar
	Mental   *MentalBar
	Vignette *VignettePulse
	Cursor   *Cursor
	Candle   *LightFlicker
	Popups   *PopupGroup
	Chest    *Chest
	Dialogue *Dialogue

	log *zap.Logger

	bossState  string
	bossHealth float64
	bossMax    float64
	telegraph  *Telegraph
	lastHit    *HitMarker
	regen      bool
	tired      bool
}

// Telegraph is the area-attack warning currently on screen.
type Telegraph struct {
	Center geom.Vec3 `json:"center"`
	Radius float64   `json:"radius"`
}

// HitMarker is the last resolved attack.
type HitMarker struct {
	Attacker string  `json:"attacker"`
	Kind     string  `json:"kind"`
	Hit      bool    `json:"hit"`
	Damage   float64 `json:"damage"`
}

func NewHUD(rng *rand.Rand, log *zap.Logger) *HUD {
	if log == nil {
		log = zap.NewNop()
	}
	popups := &PopupGroup{}
	adopt := popups.Add("adopt")
	talk := popups.Add("dialogue")
	return &HUD{
		Camera:   NewCamera(DefaultCameraConfig()),
		Health:   NewHealthBar(),
		Mental:   NewMentalBar(),
		Vignette: NewVignettePulse(),
		Cursor:   &Cursor{},
		Candle:   NewLightFlicker(rng),
		Popups:   popups,
		Chest:    NewChest(popups, adopt, nil),
		Dialogue: NewDialogue(popups, talk),
		log:      log,
	}
}

// Subscribe wires the HUD to the events it renders.
func (h *HUD) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.PlayerHealthChanged) { h.Health.Set(e.Current, e.Max) })
	event.Subscribe(bus, func(e event.MentalChanged) { h.Mental.Set(e.Current, e.Max) })
	event.Subscribe(bus, func(e event.GroomingChanged) { h.Mental.SetGrooming(e.Grooming) })
	event.Subscribe(bus, func(e event.TiredChanged) { h.tired = e.Tired })
	event.Subscribe(bus, func(e event.RegenChanged) { h.regen = e.Active })
	event.Subscribe(bus, func(e event.LowHealthChanged) {
		if e.Low {
			h.Vignette.Start()
		} else {
			h.Vignette.Stop()
		}
	})
	event.Subscribe(bus, func(event.PlayerDied) {
		h.Vignette.Stop()
		h.log.Debug("hud: player died")
	})
	event.Subscribe(bus, func(e event.BossStateChanged) { h.bossState = e.To })
	event.Subscribe(bus, func(e event.BossDamaged) {
		h.bossHealth, h.bossMax = e.Current, e.Max
	})
	event.Subscribe(bus, func(e event.AreaTelegraphed) {
		h.telegraph = &Telegraph{Center: e.Center, Radius: e.Radius}
	})
	event.Subscribe(bus, func(e event.AttackResolved) {
		if e.Kind == combat.KindArea.String() {
			h.telegraph = nil
		}
		h.lastHit = &HitMarker{Attacker: e.Attacker, Kind: e.Kind, Hit: e.Hit, Damage: e.Damage}
	})
	event.Subscribe(bus, func(event.BossDied) { h.telegraph = nil })
}

// SetBoss seeds the boss bar before the first damage event.
func (h *HUD) SetBoss(state string, current, max float64) {
	h.bossState, h.bossHealth, h.bossMax = state, current, max
}

// Clickable scene objects.
const (
	ClickShopkeeper = "shopkeeper"
	ClickChest      = "chest"
	ClickAdopt      = "adopt"
	ClickClose      = "close"
)

// Click routes a left click on a named scene object to its popup.
func (h *HUD) Click(target string) {
	switch target {
	case ClickShopkeeper:
		h.Dialogue.Click()
	case ClickChest:
		h.Chest.Click()
	case ClickAdopt:
		h.Chest.Adopt()
	case ClickClose:
		h.Popups.CloseAll()
	case "":
	default:
		h.log.Debug("hud: click on unknown object", zap.String("target", target))
	}
}

func (h *HUD) Update(follow geom.Vec3, in Pointer, dt time.Duration) {
	if in.Click != "" {
		h.Click(in.Click)
	}
	h.Camera.Update(follow, in, dt)
	h.Health.Update(dt)
	h.Mental.Update(dt)
	h.Vignette.Update(dt)
	h.Candle.Update(dt)
}

type BarView struct {
	Fill    float64 `json:"fill"`
	Color   Color   `json:"color"`
	Visible bool    `json:"visible"`
}

type Snapshot struct {
	Camera     geom.Vec3  `json:"camera"`
	Zoom       float64    `json:"zoom"`
	Health     BarView    `json:"health"`
	Mental     BarView    `json:"mental"`
	Pulsing    bool       `json:"pulsing"`
	Grooming   bool       `json:"grooming"`
	Tired      bool       `json:"tired"`
	Regen      bool       `json:"regen"`
	Vignette   float64    `json:"vignette"`
	Cursor     string     `json:"cursor"`
	Candle     float64    `json:"candle"`
	Popup      string     `json:"popup,omitempty"`
	Talked     bool       `json:"talked"`
	Adopted    bool       `json:"adopted"`
	BossState  string     `json:"boss_state"`
	BossHealth float64    `json:"boss_health"`
	BossMax    float64    `json:"boss_max"`
	Telegraph  *Telegraph `json:"telegraph,omitempty"`
	LastHit    *HitMarker `json:"last_hit,omitempty"`
}

func (h *HUD) Snapshot() Snapshot {
	s := Snapshot{
		Camera:     h.Camera.Position(),
		Zoom:       h.Camera.Zoom(),
		Health:     BarView{Fill: h.Health.Fill(), Color: h.Health.Color(), Visible: h.Health.Visible()},
		Mental:     BarView{Fill: h.Mental.Fill(), Color: h.Mental.Color(), Visible: true},
		Pulsing:    h.Mental.Pulsing(),
		Grooming:   h.Mental.Grooming(),
		Tired:      h.tired,
		Regen:      h.regen,
		Vignette:   h.Vignette.Intensity(),
		Cursor:     h.Cursor.Kind().String(),
		Candle:     h.Candle.Intensity(),
		BossState:  h.bossState,
		BossHealth: h.bossHealth,
		BossMax:    h.bossMax,
		Telegraph:  h.telegraph,
		LastHit:    h.lastHit,
		Talked:     h.Dialogue.Talked(),
		Adopted:    h.Chest.Adopted(),
	}
	if p := h.Popups.Active(); p != nil {
		s.Popup = p.Name
	}
	return s
}
