package boss

type State int

const (
	StateIdle State = iota
	StateFirstEncounter
	StateCombat
	StateReturning
	StateDead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFirstEncounter:
		return "FirstEncounter"
	case StateCombat:
		return "Combat"
	case StateReturning:
		return "Returning"
	case StateDead:
		return "Dead"
	}
	return "Unknown"
}
