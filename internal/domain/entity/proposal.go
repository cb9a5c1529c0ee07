package entity

import "time"

// Proposal represents an internal request document requiring sequential sign-off
type Proposal struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Amount      float64    `json:"amount"`
	AuthorID    int64      `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	Team        string     `json:"team"`
	State       string     `json:"state"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ApprovalLine is one role's slot in a proposal's sign-off chain.
// OrderNo ranks the chain ascending; a line may act only after every
// lower-order line is approved.
type ApprovalLine struct {
	ID           int64      `json:"id"`
	ProposalID   int64      `json:"proposal_id"`
	ApproverID   int64      `json:"approver_id"`
	ApproverName string     `json:"approver_name"`
	OrderNo      int        `json:"order_no"`
	State        string     `json:"state"`
	Comment      string     `json:"comment,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Reference is a read-only observer attached to a proposal
type Reference struct {
	ID         int64     `json:"id"`
	ProposalID int64     `json:"proposal_id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Attachment represents an uploaded file belonging to a proposal
type Attachment struct {
	ID         int64     `json:"id"`
	ProposalID int64     `json:"proposal_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}
