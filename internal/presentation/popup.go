package presentation

import "github.com/petstore/bossfight/internal/anim"

// Popup is one UI window in an exclusive group.
type Popup struct {
	Name   string
	active bool
}

func (p *Popup) Active() bool { return p.active }

// PopupGroup keeps at most one popup open.
type PopupGroup struct {
	popups []*Popup
}

// Add creates a popup owned by the group.
func (g *PopupGroup) Add(name string) *Popup {
	p := &Popup{Name: name}
	g.popups = append(g.popups, p)
	return p
}

func (g *PopupGroup) CloseAll() {
	for _, p := range g.popups {
		p.active = false
	}
}

// Open closes every other popup and shows p.
func (g *PopupGroup) Open(p *Popup) {
	g.CloseAll()
	if p != nil {
		p.active = true
	}
}

// Active returns the open popup or nil.
func (g *PopupGroup) Active() *Popup {
	for _, p := range g.popups {
		if p.active {
			return p
		}
	}
	return nil
}

// Chest toggles between open and closed on each click. Opening shows the
// adopt window.
type Chest struct {
	group   *PopupGroup
	window  *Popup
	anim    anim.Sink
	opened  bool
	adopted bool
}

func NewChest(group *PopupGroup, window *Popup, sink anim.Sink) *Chest {
	if sink == nil {
		sink = anim.Discard{}
	}
	return &Chest{group: group, window: window, anim: sink}
}

func (c *Chest) Click() {
	c.opened = !c.opened
	if c.opened {
		c.anim.Play(anim.TriggerOpen)
		c.group.Open(c.window)
		return
	}
	c.anim.Play(anim.TriggerClose)
	if c.window != nil {
		c.window.active = false
	}
}

// Adopt confirms the adoption and closes the window. The chest stays open.
// Only counts while the window is showing.
func (c *Chest) Adopt() {
	if c.window == nil || !c.window.active {
		return
	}
	c.window.active = false
	c.adopted = true
}

func (c *Chest) Opened() bool  { return c.opened }
func (c *Chest) Adopted() bool { return c.adopted }

// Dialogue opens the shop keeper's window.
type Dialogue struct {
	group  *PopupGroup
	window *Popup
	talked bool
}

func NewDialogue(group *PopupGroup, window *Popup) *Dialogue {
	return &Dialogue{group: group, window: window}
}

func (d *Dialogue) Click() {
	d.group.Open(d.window)
	d.talked = true
}

func (d *Dialogue) Talked() bool { return d.talked }
