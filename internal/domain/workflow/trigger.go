package workflow

// Trigger represents an event that can cause a proposal state transition
type Trigger string

const (
	// TriggerSubmit moves a draft into the approval chain
	TriggerSubmit Trigger = "SUBMIT"
	// TriggerApprove records a non-final line approval; the proposal stays pending
	TriggerApprove Trigger = "APPROVE"
	// TriggerComplete records the final line approval
	TriggerComplete Trigger = "COMPLETE"
	// TriggerReject rejects any line and terminates the proposal
	TriggerReject Trigger = "REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
