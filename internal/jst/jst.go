// Package jst converts between the local date-time strings used by forms and the
// zoned instants persisted for event windows. Every instant lives at a fixed +09:00
// offset regardless of the host time zone.
package jst

import (
	"fmt"
	"time"
)

const (
	// LocalLayout is the datetime-local form value, minute precision, no zone.
	LocalLayout = "2006-01-02T15:04"
	// DateLayout is the calendar date form value.
	DateLayout = "2006-01-02"

	zonedLayout = "2006-01-02T15:04:05-07:00"
)

var Zone = time.FixedZone("JST", 9*60*60)

// ParseLocal reads a LocalLayout string as wall-clock time in Zone.
func ParseLocal(local string) (time.Time, error) {
	t, err := time.ParseInLocation(LocalLayout, local, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local datetime %q: %w", local, err)
	}
	return t, nil
}

// FormatLocal renders t as wall-clock time in Zone, dropping seconds.
func FormatLocal(t time.Time) string {
	return t.In(Zone).Format(LocalLayout)
}

// ToZoned turns "2025-04-01T19:30" into "2025-04-01T19:30:00+09:00".
func ToZoned(local string) (string, error) {
	t, err := ParseLocal(local)
	if err != nil {
		return "", err
	}
	return t.Format(zonedLayout), nil
}

// FromZoned accepts any RFC 3339 instant and returns its +09:00 wall-clock minute.
func FromZoned(zoned string) (string, error) {
	t, err := time.Parse(time.RFC3339, zoned)
	if err != nil {
		return "", fmt.Errorf("invalid zoned datetime %q: %w", zoned, err)
	}
	return FormatLocal(t), nil
}

// ParseDate validates a DateLayout string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}
