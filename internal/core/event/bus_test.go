package event

import "testing"

func TestDispatchAfterSwap(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e BossStateChanged) { got = append(got, e.To) })
	Subscribe(b, func(e TiredChanged) {
		if e.Tired {
			got = append(got, "tired")
		}
	})

	Emit(b, BossStateChanged{From: "Idle", To: "FirstEncounter"})
	Emit(b, TiredChanged{Tired: true})
	Emit(b, BossStateChanged{From: "FirstEncounter", To: "Combat"})

	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	want := []string{"FirstEncounter", "tired", "Combat"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmitDuringDispatchWaitsForNextFrame(t *testing.T) {
	b := NewBus()
	died := 0
	Subscribe(b, func(BossDamaged) { Emit(b, BossDied{}) })
	Subscribe(b, func(BossDied) { died++ })

	Emit(b, BossDamaged{Amount: 100})
	b.SwapBuffers()
	b.DispatchAll()
	if died != 0 || b.Pending() != 1 {
		t.Fatalf("died = %d pending = %d", died, b.Pending())
	}
	b.SwapBuffers()
	b.DispatchAll()
	if died != 1 {
		t.Errorf("died = %d", died)
	}
}

func TestEmitOnNilBus(t *testing.T) {
	var b *Bus
	Emit(b, PlayerDied{})
}
