package models

import "time"

// Event is one raw user-submitted text entry, timestamped at capture.
// Events are append-only; they are removed only through a confirmed
// deletion dialog and never mutated.
type Event struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
