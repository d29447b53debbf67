package discord

import (
	"fmt"
	"strings"
	"time"

	"gamenight/internal/domain"
)

const (
	displayLayout = "02.01.2006 15:04"
	shortLayout   = "02.01 15:04"
)

// ParseEventDateTime parses "DD.MM.YYYY HH:MM" in the local timezone.
// The result must be strictly after now.
func ParseEventDateTime(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	t, err := time.ParseInLocation(displayLayout, input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time (expected DD.MM.YYYY HH:MM): %w", err)
	}
	if !t.After(now) {
		return time.Time{}, domain.ErrDateTimeInPast
	}
	return t, nil
}

func FormatEventDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayLayout)
}

// FormatEventDateShort is the compact variant used in list views.
func FormatEventDateShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(shortLayout)
}
