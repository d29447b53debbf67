package entities

import "gamenight/internal/domain"

// ReminderJob records one scheduled notification for an event. At most one
// firing ever happens per (EventID, Offset); Fired is flipped after the
// fan-out has been attempted.
type ReminderJob struct {
	EventID int64
	Offset  domain.ReminderOffset
	Fired   bool
}
