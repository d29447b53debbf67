package entities

import "time"

// Participant is an identity booked on an event, including its creator.
// (EventID, UserID) is the composite key: one booking per identity per event.
type Participant struct {
	EventID  int64
	UserID   string
	Username string
	JoinedAt time.Time
}
