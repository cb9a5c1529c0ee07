package workflow

import (
	"context"
	"fmt"
)

// GuardFunc is a function that evaluates whether a transition should be allowed
type GuardFunc func(ctx context.Context) bool

// StateMachine tracks the current proposal state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new state if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can be fired in the current state
	PermittedTriggers() []Trigger
}

// transition represents a state transition with optional guard
type transition struct {
	toState State
	guard   GuardFunc
}

type stateMachine struct {
	currentState State
	transitions  map[State]map[Trigger][]transition
}

// Builder configures a state machine before building instances of it
type Builder struct {
	transitions map[State]map[Trigger][]transition
}

// NewBuilder creates a new state machine builder
func NewBuilder() *Builder {
	return &Builder{transitions: make(map[State]map[Trigger][]transition)}
}

// Permit allows a trigger to move fromState to toState
func (b *Builder) Permit(fromState State, trigger Trigger, toState State) *Builder {
	return b.PermitIf(fromState, trigger, toState, nil)
}

// PermitIf allows a trigger to move fromState to toState if the guard passes
func (b *Builder) PermitIf(fromState State, trigger Trigger, toState State, guard GuardFunc) *Builder {
	if !fromState.IsValid() || !toState.IsValid() {
		panic(fmt.Sprintf("invalid state in transition %s -> %s", fromState, toState))
	}
	if b.transitions[fromState] == nil {
		b.transitions[fromState] = make(map[Trigger][]transition)
	}
	b.transitions[fromState][trigger] = append(b.transitions[fromState][trigger], transition{
		toState: toState,
		guard:   guard,
	})
	return b
}

// Build creates a new state machine instance with the given initial state
func (b *Builder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	// Copy transitions so the built machine is immune to later builder changes
	copied := make(map[State]map[Trigger][]transition, len(b.transitions))
	for state, byTrigger := range b.transitions {
		copied[state] = make(map[Trigger][]transition, len(byTrigger))
		for trigger, ts := range byTrigger {
			copied[state][trigger] = append([]transition{}, ts...)
		}
	}

	return &stateMachine{
		currentState: initialState,
		transitions:  copied,
	}
}

// NewProposalMachine builds the proposal lifecycle machine:
// DRAFT -SUBMIT-> PENDING, PENDING -APPROVE-> PENDING,
// PENDING -COMPLETE-> DONE, PENDING -REJECT-> REJECTED.
func NewProposalMachine(initialState State) StateMachine {
	b := NewBuilder()
	b.Permit(StateDraft, TriggerSubmit, StatePending)
	b.Permit(StatePending, TriggerApprove, StatePending)
	b.Permit(StatePending, TriggerComplete, StateDone)
	b.Permit(StatePending, TriggerReject, StateRejected)
	return b.Build(initialState)
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger is permitted in the current state
func (m *stateMachine) CanFire(trigger Trigger) bool {
	byTrigger, exists := m.transitions[m.currentState]
	if !exists {
		return false
	}
	return len(byTrigger[trigger]) > 0
}

// Fire attempts to execute the trigger, transitioning to the new state if allowed
func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	byTrigger, exists := m.transitions[m.currentState]
	if !exists {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	ts, exists := byTrigger[trigger]
	if !exists || len(ts) == 0 {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	// Try each transition in order until one passes its guard
	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from state %s rejected by guard", ErrInvalidTransition, trigger, m.currentState)
}

// PermittedTriggers returns all triggers that can be fired in the current state
func (m *stateMachine) PermittedTriggers() []Trigger {
	byTrigger, exists := m.transitions[m.currentState]
	if !exists {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(byTrigger))
	for trigger := range byTrigger {
		triggers = append(triggers, trigger)
	}
	return triggers
}
