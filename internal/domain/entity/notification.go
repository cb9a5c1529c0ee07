package entity

import "time"

// Notification is a message owned by its recipient. Created by an approval
// decision or another portal event; mutated only by the read toggle or
// bulk delete.
type Notification struct {
	ID            int64     `json:"id"`
	RecipientID   int64     `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	ActorID       int64     `json:"actor_id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	URL           string    `json:"url"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}
