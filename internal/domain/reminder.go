package domain

import "time"

// ReminderOffset names a fixed interval before an event's start time at
// which a notification fires. The string value is what gets persisted.
type ReminderOffset string

const (
	OffsetOneDay  ReminderOffset = "1day"
	OffsetOneHour ReminderOffset = "1hour"
)

// DefaultOffsets is the engine-wide reminder schedule.
var DefaultOffsets = []ReminderOffset{OffsetOneDay, OffsetOneHour}

func (o ReminderOffset) Duration() time.Duration {
	switch o {
	case OffsetOneDay:
		return 24 * time.Hour
	case OffsetOneHour:
		return time.Hour
	}
	return 0
}

func (o ReminderOffset) Valid() bool {
	return o.Duration() > 0
}
