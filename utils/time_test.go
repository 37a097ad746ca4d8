package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseDBDate(t *testing.T) {
	original := time.Date(2026, 3, 15, 9, 30, 0, 0, SeoulLocation())

	formatted := FormatDateTimeForDB(original)
	assert.Equal(t, "2026-03-15 09:30:00", formatted)

	parsed, err := ParseDBDate(formatted)
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestParseDBDateDateOnly(t *testing.T) {
	parsed, err := ParseDBDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestParseDBDateInvalid(t *testing.T) {
	_, err := ParseDBDate("")
	assert.Error(t, err)

	_, err = ParseDBDate("not a date")
	assert.Error(t, err)
}

func TestRemainingDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, SeoulLocation())

	assert.Equal(t, 30, RemainingDays(now.Add(30*24*time.Hour), now))
	assert.Equal(t, 0, RemainingDays(now.Add(12*time.Hour), now))

	// 만료가 지났으면 음수가 아니라 0을 반환합니다.
	assert.Equal(t, 0, RemainingDays(now.Add(-time.Hour), now))
	assert.Equal(t, 0, RemainingDays(now, now))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 15, 23, 59, 59, 0, SeoulLocation())
	start := StartOfDay(ts)

	assert.Equal(t, "2026-03-15 00:00:00", FormatDateTimeForDB(start))
}
