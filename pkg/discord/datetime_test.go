package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamenight/internal/domain"
)

func TestParseEventDateTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	t.Run("accepts DD.MM.YYYY HH:MM", func(t *testing.T) {
		got, err := ParseEventDateTime("24.12.2025 19:30", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 24, 19, 30, 0, 0, time.Local), got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := ParseEventDateTime("  24.12.2025 19:30  ", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 24, 19, 30, 0, 0, time.Local), got)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, input := range []string{"", "tomorrow", "2025-12-24 19:30", "24.12.2025", "19:30", "32.01.2026 10:00"} {
			_, err := ParseEventDateTime(input, now)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("rejects the past and the exact present", func(t *testing.T) {
		_, err := ParseEventDateTime("01.06.2025 11:59", now)
		assert.ErrorIs(t, err, domain.ErrDateTimeInPast)
		_, err = ParseEventDateTime("01.06.2025 12:00", now)
		assert.ErrorIs(t, err, domain.ErrDateTimeInPast)
	})
}

func TestFormatEventDateTime(t *testing.T) {
	at := time.Date(2025, 12, 24, 19, 30, 0, 0, time.Local)
	assert.Equal(t, "24.12.2025 19:30", FormatEventDateTime(at))
	assert.Equal(t, "24.12 19:30", FormatEventDateShort(at))
	assert.Empty(t, FormatEventDateTime(time.Time{}))
	assert.Empty(t, FormatEventDateShort(time.Time{}))
}
