package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeekStartsMonday(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeek(monday))
	assert.Equal(t, 2, DayOfWeek(monday.AddDate(0, 0, 2)))
	assert.Equal(t, 6, DayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestWeekDatesNormalizesToMonday(t *testing.T) {
	sunday := time.Date(2024, 6, 9, 18, 30, 0, 0, time.FixedZone("X", 3600))
	dates := WeekDates(sunday)
	require.Len(t, dates, DaysPerWeek)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), dates[6])
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, DateOf(d), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}
