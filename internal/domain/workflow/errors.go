package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a state transition is not allowed
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not valid
	ErrInvalidState = errors.New("invalid state")

	// ErrProposalFinalized is returned when acting on a proposal already in a terminal state
	ErrProposalFinalized = errors.New("proposal already finalized")

	// ErrNotApprover is returned when the actor holds no line on the proposal
	ErrNotApprover = errors.New("actor is not an approver for this proposal")

	// ErrLineNotPending is returned when the actor's line has already been decided
	ErrLineNotPending = errors.New("approval line is not pending")

	// ErrOutOfOrder is returned when a lower-order line is still pending
	ErrOutOfOrder = errors.New("earlier approval line is still pending")

	// ErrDuplicateOrder is returned when two lines share an order rank
	ErrDuplicateOrder = errors.New("duplicate approval line order")
)
