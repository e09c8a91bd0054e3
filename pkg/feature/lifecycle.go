package feature

import "github.com/dmitrymomot/modkit/pkg/patch"

// State is a lifecycle state.
type State string

const (
	StateDiscovered   State = "discovered"
	StateApplicable   State = "applicable"
	StateInapplicable State = "inapplicable"
	StateDisabled     State = "disabled"
	StateEnabled      State = "enabled"
	StateDegraded     State = "degraded"
	StateDestroyed    State = "destroyed"
)

// Event drives lifecycle transitions.
type Event string

const (
	EventGate    Event = "gate"
	EventEnable  Event = "enable"
	EventDisable Event = "disable"
	EventDestroy Event = "destroy"
)

// outcome is the data guards evaluate.
type outcome struct {
	applicable bool
	batch      patch.BatchResult
}

type guard func(outcome) bool

type transition struct {
	to     State
	guards []guard
}

func applicable(o outcome) bool   { return o.applicable }
func fullyApplied(o outcome) bool { return o.batch.OK() }

var (
	toEnabled = []transition{
		{to: StateEnabled, guards: []guard{fullyApplied}},
		{to: StateDegraded},
	}
	toDisabled  = []transition{{to: StateDisabled}}
	toDestroyed = []transition{{to: StateDestroyed}}
)

// lifecycle is the transition table: [from][event] -> candidates. The first
// candidate whose guards all pass wins.
var lifecycle = map[State]map[Event][]transition{
	StateDiscovered: {
		EventGate: {
			{to: StateApplicable, guards: []guard{applicable}},
			{to: StateInapplicable},
		},
		EventDestroy: toDestroyed,
	},
	StateApplicable: {
		EventEnable:  toEnabled,
		EventDisable: toDisabled,
		EventDestroy: toDestroyed,
	},
	StateInapplicable: {
		EventDestroy: toDestroyed,
	},
	StateDisabled: {
		EventEnable:  toEnabled,
		EventDisable: toDisabled,
		EventDestroy: toDestroyed,
	},
	StateEnabled: {
		EventDisable: toDisabled,
		EventDestroy: toDestroyed,
	},
	StateDegraded: {
		EventEnable:  toEnabled,
		EventDisable: toDisabled,
		EventDestroy: toDestroyed,
	},
}

func next(from State, ev Event, o outcome) (State, error) {
	for _, t := range lifecycle[from][ev] {
		passed := true
		for _, g := range t.guards {
			if !g(o) {
				passed = false
				break
			}
		}
		if passed {
			return t.to, nil
		}
	}
	return from, &TransitionError{State: from, Event: ev}
}

// CanFire reports whether ev has any transition out of s.
func (s State) CanFire(ev Event) bool {
	return len(lifecycle[s][ev]) > 0
}
