package entity

import "time"

// User represents a portal account
type User struct {
	ID           int64     `json:"id"`
	LoginID      string    `json:"login_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Team         string    `json:"team"`
	Position     string    `json:"position"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	RefreshHash  string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
