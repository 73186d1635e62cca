package session

// State is a session's lifecycle position. Samples are scored only in
// StateReadingTest; other states accept samples without scoring them.
type State string

const (
	StateIdle        State = "idle"
	StateCalibrating State = "calibrating"
	StateReady       State = "ready"
	StateReadingTest State = "reading_test"
	StateCompleted   State = "completed"
)

// validTransitions lists the allowed forward transitions. Ending a
// session is always allowed and handled separately.
var validTransitions = map[State][]State{
	StateIdle:        {StateCalibrating},
	StateCalibrating: {StateReady},
	StateReady:       {StateCalibrating, StateReadingTest},
	StateReadingTest: {StateCompleted},
	StateCompleted:   {},
}

// CanTransition reports whether moving from s to next is a legal
// lifecycle step.
func (s State) CanTransition(next State) bool {
	for _, t := range validTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
