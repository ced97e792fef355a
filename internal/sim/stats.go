package sim

import (
	"github.com/petstore/bossfight/internal/core/event"
)

// AttackStats tallies one attacker/kind pair.
type AttackStats struct {
	Started int     `json:"started"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	Damage  float64 `json:"damage"`
}

// Stats is collected from the bus; nothing here reads model state.
type Stats struct {
	Attacks      map[string]*AttackStats `json:"attacks"` // "boss/melee", "player/skill", ...
	Transitions  []Transition            `json:"transitions"`
	BossDamage   float64                 `json:"boss_damage_taken"`
	PlayerDamage float64                 `json:"player_damage_taken"`
	Telegraphs   int                     `json:"telegraphs"`
	TiredSpells  int                     `json:"tired_spells"`
	GroomStarts  int                     `json:"groom_starts"`
	RegenStarts  int                     `json:"regen_starts"`
	LowHealth    int                     `json:"low_health_entries"`
	BossDied     bool                    `json:"boss_died"`
	PlayerDied   bool                    `json:"player_died"`

	lastPlayerHP float64
}

type Transition struct {
	At   float64 `json:"at"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

func newStats(playerHP float64) *Stats {
	return &Stats{Attacks: make(map[string]*AttackStats), lastPlayerHP: playerHP}
}

func (s *Stats) attack(attacker, kind string) *AttackStats {
	key := attacker + "/" + kind
	a, ok := s.Attacks[key]
	if !ok {
		a = &AttackStats{}
		s.Attacks[key] = a
	}
	return a
}

func (s *Stats) subscribe(bus *event.Bus, clock func() float64) {
	event.Subscribe(bus, func(e event.BossStateChanged) {
		s.Transitions = append(s.Transitions, Transition{At: clock(), From: e.From, To: e.To})
	})
	event.Subscribe(bus, func(e event.AttackStarted) { s.attack(e.Attacker, e.Kind).Started++ })
	event.Subscribe(bus, func(e event.AttackResolved) {
		a := s.attack(e.Attacker, e.Kind)
		if e.Hit {
			a.Hits++
			a.Damage += e.Damage
		} else {
			a.Misses++
		}
	})
	event.Subscribe(bus, func(e event.BossDamaged) { s.BossDamage += e.Amount })
	event.Subscribe(bus, func(e event.PlayerHealthChanged) {
		if e.Current < s.lastPlayerHP {
			s.PlayerDamage += s.lastPlayerHP - e.Current
		}
		s.lastPlayerHP = e.Current
	})
	event.Subscribe(bus, func(event.AreaTelegraphed) { s.Telegraphs++ })
	event.Subscribe(bus, func(e event.TiredChanged) {
		if e.Tired {
			s.TiredSpells++
		}
	})
	event.Subscribe(bus, func(e event.GroomingChanged) {
		if e.Grooming {
			s.GroomStarts++
		}
	})
	event.Subscribe(bus, func(e event.RegenChanged) {
		if e.Active {
			s.RegenStarts++
		}
	})
	event.Subscribe(bus, func(e event.LowHealthChanged) {
		if e.Low {
			s.LowHealth++
		}
	})
	event.Subscribe(bus, func(event.BossDied) { s.BossDied = true })
	event.Subscribe(bus, func(event.PlayerDied) { s.PlayerDied = true })
}
