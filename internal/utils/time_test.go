package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-09-14")
	require.NoError(t, err)

	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.September, date.Month())
	assert.Equal(t, 14, date.Day())
	assert.Equal(t, 0, date.Hour())
	assert.Equal(t, ReferenceLocation().String(), date.Location().String())

	_, err = ParseDate("14-09-2026")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	date, err := ParseDate("2026-09-14")
	require.NoError(t, err)

	late := date.Add(23*time.Hour + 59*time.Minute)
	assert.True(t, StartOfDay(late).Equal(date))
	assert.True(t, StartOfDay(date).Equal(date))
}

func TestCombineDateAndClock(t *testing.T) {
	date, err := ParseDate("2026-09-14")
	require.NoError(t, err)

	t.Run("builds the departure instant on the travel date", func(t *testing.T) {
		departure, err := CombineDateAndClock(date, "14:30")
		require.NoError(t, err)
		assert.Equal(t, 14, departure.Hour())
		assert.Equal(t, 30, departure.Minute())
		assert.True(t, StartOfDay(departure).Equal(date))
	})

	t.Run("midnight and end of day stay on the same date", func(t *testing.T) {
		for _, clock := range []string{"00:00", "23:59"} {
			departure, err := CombineDateAndClock(date, clock)
			require.NoError(t, err)
			assert.True(t, StartOfDay(departure).Equal(date), clock)
		}
	})

	t.Run("rejects malformed clocks", func(t *testing.T) {
		for _, clock := range []string{"24:00", "9:5", "noon", ""} {
			_, err := CombineDateAndClock(date, clock)
			assert.Error(t, err, clock)
		}
	})
}

func TestSetReferenceTimezone(t *testing.T) {
	original := ReferenceLocation()
	t.Cleanup(func() {
		refMu.Lock()
		refLoc = original
		refMu.Unlock()
	})

	require.NoError(t, SetReferenceTimezone("Europe/Bucharest"))
	assert.Equal(t, "Europe/Bucharest", ReferenceLocation().String())

	err := SetReferenceTimezone("Mars/Olympus")
	assert.Error(t, err)
	// A failed change leaves the previous zone in place.
	assert.Equal(t, "Europe/Bucharest", ReferenceLocation().String())
}
