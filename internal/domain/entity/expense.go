package entity

import "time"

// Expense represents a reimbursable spend record, either a general office
// expense or one billed against a project.
type Expense struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	ProjectName string    `json:"project_name,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Team        string    `json:"team"`
	SpentAt     time.Time `json:"spent_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
