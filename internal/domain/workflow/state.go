package workflow

// State represents a proposal state in the approval lifecycle
type State string

const (
	StateDraft    State = "DRAFT"
	StatePending  State = "PENDING"
	StateDone     State = "DONE"
	StateRejected State = "REJECTED"
)

var validStates = map[State]bool{
	StateDraft:    true,
	StatePending:  true,
	StateDone:     true,
	StateRejected: true,
}

var terminalStates = map[State]bool{
	StateDone:     true,
	StateRejected: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid proposal state
func (s State) IsValid() bool {
	return validStates[s]
}
