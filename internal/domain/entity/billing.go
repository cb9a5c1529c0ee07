package entity

import "time"

// Estimate represents a quotation issued to a client
type Estimate struct {
	ID         int64     `json:"id"`
	ClientName string    `json:"client_name"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	IssuedAt   time.Time `json:"issued_at"`
	AuthorID   int64     `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Invoice represents a bill issued to a client
type Invoice struct {
	ID         int64      `json:"id"`
	ClientName string     `json:"client_name"`
	Title      string     `json:"title"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	AuthorID   int64      `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
