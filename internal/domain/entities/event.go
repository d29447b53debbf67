package entities

import "time"

// Event is a scheduled group activity. Capacity 0 means unlimited seats.
// StartsAt is stored once at creation and never re-derived.
type Event struct {
	ID          int64
	Title       string
	StartsAt    time.Time
	CreatorID   string
	Capacity    int
	Description string
	MediaRef    string
	CreatedAt   time.Time
}

func (e *Event) HasSeatLimit() bool {
	return e.Capacity > 0
}
