package entity

import "time"

// Notice is a company-wide announcement
type Notice struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookRequest is an employee request to purchase a book
type BookRequest struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Link          string    `json:"link,omitempty"`
	RequesterID   int64     `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Device is an IT inventory item
type Device struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	Model        string    `json:"model"`
	Serial       string    `json:"serial"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	AssigneeName string    `json:"assignee_name,omitempty"`
	State        string    `json:"state"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Schedule is a calendar row, either a plain event or a vacation
type Schedule struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkHours records worked minutes for a user on a single day
type WorkHours struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkDate  time.Time `json:"work_date"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
