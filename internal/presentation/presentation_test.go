package presentation

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/petstore/bossfight/internal/anim"
	"github.com/petstore/bossfight/internal/core/event"
	"github.com/petstore/bossfight/internal/geom"
)

const frame = 16 * time.Millisecond

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestHealthColorRamp(t *testing.T) {
	cases := []struct {
		pct  float64
		want Color
	}{
		{1, Green},
		{0.6, Yellow},
		{0.3, Red},
		{0.1, Red},
		{0, Red},
	}
	for _, c := range cases {
		got := HealthColor(c.pct)
		if !near(got.R, c.want.R, 1e-9) || !near(got.G, c.want.G, 1e-9) || !near(got.B, c.want.B, 1e-9) {
			t.Errorf("HealthColor(%v) = %+v, want %+v", c.pct, got, c.want)
		}
	}
	mid := HealthColor(0.8)
	if !near(mid.R, 0.5, 1e-9) {
		t.Errorf("HealthColor(0.8).R = %v, want 0.5", mid.R)
	}
}

func TestHealthBarHidesWhenFull(t *testing.T) {
	h := NewHealthBar()
	h.Set(50, 100)
	for i := 0; i < 40; i++ {
		h.Update(100 * time.Millisecond)
	}
	if !h.Visible() {
		t.Fatal("damaged bar hidden")
	}

	h.Set(100, 100)
	for i := 0; i < 30; i++ {
		h.Update(100 * time.Millisecond)
	}
	if !h.Visible() {
		t.Fatal("hidden before delay elapsed")
	}
	h.Update(100 * time.Millisecond)
	if h.Visible() {
		t.Fatal("full bar still visible after delay")
	}
}

func TestMentalBarPulseAndGrooming(t *testing.T) {
	m := NewMentalBar()
	m.Set(20, 100)
	if !m.Pulsing() {
		t.Fatal("not pulsing at 20%")
	}
	for i := 0; i < 50; i++ {
		m.Update(frame)
		if a := m.Color().A; a < 0.4-1e-9 || a > 1+1e-9 {
			t.Fatalf("alpha %v out of pulse range", a)
		}
	}

	m.SetGrooming(true)
	alpha := m.Color().A
	if m.Color().G != 1 || m.Color().R != 0 || m.Color().A != alpha {
		t.Errorf("grooming tint = %+v", m.Color())
	}

	m.SetGrooming(false)
	m.Set(80, 100)
	if m.Pulsing() || m.Color() != White {
		t.Errorf("after recovery pulsing=%v color=%+v", m.Pulsing(), m.Color())
	}
}

func TestVignetteStopResets(t *testing.T) {
	v := NewVignettePulse()
	v.Start()
	peak := 0.0
	for i := 0; i < 300; i++ {
		v.Update(frame)
		peak = math.Max(peak, v.Intensity())
		if v.Intensity() < 0 || v.Intensity() > v.MaxIntensity+1e-9 {
			t.Fatalf("intensity %v out of range", v.Intensity())
		}
	}
	if peak < 0.5 {
		t.Errorf("peak intensity = %v", peak)
	}
	v.Stop()
	v.Update(frame)
	if v.Intensity() != 0 || v.Running() {
		t.Fatal("stop did not reset")
	}
	v.Stop()
	v.Start()
	v.Update(frame)
	if !v.Running() {
		t.Fatal("not restartable")
	}
}

func TestCameraZoomAndPan(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	screen := Pointer{X: 400, Y: 300, Width: 800, Height: 600}

	c.Update(geom.Vec3{}, screen, frame)
	if !near(c.Position().Y, 10, 1e-9) || !near(c.Position().Z, -5, 1e-9) {
		t.Fatalf("rest position = %+v", c.Position())
	}

	scroll := screen
	scroll.Scroll = 10
	c.Update(geom.Vec3{}, scroll, frame)
	if c.TargetZoom() != 0.5 {
		t.Errorf("target zoom = %v, want clamped 0.5", c.TargetZoom())
	}
	for i := 0; i < 300; i++ {
		c.Update(geom.Vec3{}, screen, frame)
	}
	if !near(c.Zoom(), 0.5, 1e-3) {
		t.Errorf("zoom settled at %v", c.Zoom())
	}

	edge := Pointer{X: 799, Y: 300, Width: 800, Height: 600}
	for i := 0; i < 1000; i++ {
		c.Update(geom.Vec3{}, edge, frame)
	}
	if !near(c.TargetPan().Len(), 10, 1e-9) {
		t.Errorf("pan offset %v not clamped to 10", c.TargetPan().Len())
	}
	if c.TargetPan().X <= 0 {
		t.Errorf("right edge panned %+v", c.TargetPan())
	}

	recenter := screen
	recenter.Recenter = true
	c.Update(geom.Vec3{}, recenter, frame)
	if !c.TargetPan().IsZero() {
		t.Errorf("recenter left %+v", c.TargetPan())
	}
}

func TestCursorTags(t *testing.T) {
	var c Cursor
	if c.Hover(TagMonster) != CursorAttack {
		t.Error("monster")
	}
	if c.Hover(TagInteractable) != CursorInteract {
		t.Error("interactable")
	}
	if c.Hover("") != CursorDefault || c.Hover("Wall") != CursorDefault {
		t.Error("default")
	}
}

func TestLightFlickerRange(t *testing.T) {
	l := NewLightFlicker(rand.New(rand.NewSource(1)))
	changes := 0
	last := l.Intensity()
	for i := 0; i < 100; i++ {
		l.Update(50 * time.Millisecond)
		if l.Intensity() < l.Min || l.Intensity() > l.Max {
			t.Fatalf("intensity %v out of range", l.Intensity())
		}
		if l.Intensity() != last {
			changes++
			last = l.Intensity()
		}
	}
	if changes < 40 || changes > 50 {
		t.Errorf("flickered %d times in 5s", changes)
	}
}

type triggers struct{ plays []anim.Trigger }

func (r *triggers) Play(t anim.Trigger)          { r.plays = append(r.plays, t) }
func (r *triggers) SetBool(anim.Param, bool)     {}
func (r *triggers) SetFloat(anim.Param, float64) {}

func TestChestAndDialogueAreExclusive(t *testing.T) {
	group := &PopupGroup{}
	adopt := group.Add("adopt")
	talk := group.Add("dialogue")
	sink := &triggers{}
	chest := NewChest(group, adopt, sink)
	npc := NewDialogue(group, talk)

	npc.Click()
	if group.Active() != talk {
		t.Fatal("dialogue not open")
	}
	chest.Click()
	if group.Active() != adopt || talk.Active() {
		t.Fatal("chest did not replace dialogue")
	}
	chest.Adopt()
	if group.Active() != nil || !chest.Opened() {
		t.Fatal("adopt should close window and leave chest open")
	}
	chest.Click()
	if chest.Opened() {
		t.Fatal("second click did not close chest")
	}
	want := []anim.Trigger{anim.TriggerOpen, anim.TriggerClose}
	if len(sink.plays) != 2 || sink.plays[0] != want[0] || sink.plays[1] != want[1] {
		t.Errorf("plays = %v", sink.plays)
	}
}

func TestHUDRoutesClicks(t *testing.T) {
	h := NewHUD(rand.New(rand.NewSource(1)), nil)

	h.Update(geom.Vec3{}, Pointer{Click: ClickAdopt}, frame)
	if h.Chest.Adopted() {
		t.Fatal("adopted without the window open")
	}

	steps := []struct {
		click string
		popup string
	}{
		{ClickShopkeeper, "dialogue"},
		{ClickClose, ""},
		{ClickChest, "adopt"},
		{ClickAdopt, ""},
		{"mailbox", ""},
	}
	for _, st := range steps {
		h.Update(geom.Vec3{}, Pointer{Click: st.click}, frame)
		if got := h.Snapshot().Popup; got != st.popup {
			t.Fatalf("after %q: popup = %q, want %q", st.click, got, st.popup)
		}
	}
	snap := h.Snapshot()
	if !snap.Talked || !snap.Adopted || !h.Chest.Opened() {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestHUDFollowsEvents(t *testing.T) {
	bus := event.NewBus()
	h := NewHUD(rand.New(rand.NewSource(1)), nil)
	h.Subscribe(bus)

	event.Emit(bus, event.PlayerHealthChanged{Current: 20, Max: 100})
	event.Emit(bus, event.LowHealthChanged{Low: true})
	event.Emit(bus, event.BossStateChanged{From: "Idle", To: "Combat"})
	event.Emit(bus, event.AreaTelegraphed{Center: geom.V(1, 0, 1), Radius: 3})
	bus.SwapBuffers()
	bus.DispatchAll()

	for i := 0; i < 60; i++ {
		h.Update(geom.Vec3{}, Pointer{}, frame)
	}
	s := h.Snapshot()
	if s.Health.Fill != 0.2 || s.Health.Color != Red {
		t.Errorf("health view = %+v", s.Health)
	}
	if !h.Vignette.Running() || s.BossState != "Combat" || s.Telegraph == nil {
		t.Errorf("snapshot = %+v", s)
	}

	event.Emit(bus, event.AttackResolved{Attacker: "boss", Kind: "area", Hit: true, Damage: 20})
	event.Emit(bus, event.LowHealthChanged{Low: false})
	bus.SwapBuffers()
	bus.DispatchAll()
	s = h.Snapshot()
	if s.Telegraph != nil || s.LastHit == nil || !s.LastHit.Hit || s.Vignette != 0 {
		t.Errorf("after resolve snapshot = %+v", s)
	}
}
