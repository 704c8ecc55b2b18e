package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	refMu  sync.RWMutex
	refLoc = mustLoadLocation(DefaultTimeZone)
)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SetReferenceTimezone changes the canonical zone. Called once at startup from
// configuration, before any ride is created or swept.
func SetReferenceTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	refMu.Lock()
	refLoc = loc
	refMu.Unlock()
	return nil
}

// ReferenceLocation returns the single configured zone shared by all
// travel-date and expiry comparisons.
func ReferenceLocation() *time.Location {
	refMu.RLock()
	defer refMu.RUnlock()
	return refLoc
}

func NowInReferenceZone() time.Time {
	return time.Now().In(ReferenceLocation())
}

// StartOfDay truncates t to midnight in the reference zone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(ReferenceLocation())
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ReferenceLocation())
}

// ParseDate parses a calendar date as midnight in the reference zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, ReferenceLocation())
}

// CombineDateAndClock builds the departure instant from a travel date and a
// wall-clock time such as "14:30". The date component of the result always
// equals the date component of date.
func CombineDateAndClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(ClockLayout, clock, ReferenceLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure time %q: %w", clock, err)
	}
	year, month, day := date.In(ReferenceLocation()).Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, ReferenceLocation()), nil
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}
