// File: utils/clock.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// ParseDate parses a "YYYY-MM-DD" value as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
// "24:00" is accepted as end of day.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM[:SS]", s)
	}
	h, m, sec, err := clockFields(parts)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h > 24 || m > 59 || sec > 59 || (h == 24 && (m > 0 || sec > 0)) {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return clockOffset(h, m, sec), nil
}

// maxDurationHours caps ParseClockDuration.
const maxDurationHours = 48

// ParseClockDuration parses a clock-duration string ("HH:MM:SS" or "HH:MM").
// Hours may exceed 24 up to maxDurationHours.
func ParseClockDuration(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q: expected HH:MM:SS", s)
	}
	h, m, sec, err := clockFields(parts)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if h > maxDurationHours || m > 59 || sec > 59 || (h == maxDurationHours && (m > 0 || sec > 0)) {
		return 0, fmt.Errorf("invalid duration %q: out of range", s)
	}
	return clockOffset(h, m, sec), nil
}

// At combines a calendar day with a clock offset.
func At(day time.Time, clock time.Duration) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, day.Location()).Add(clock)
}

// FormatClock renders an offset from midnight as "HH:MM:SS".
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// clockFields reads each field as one or two ASCII digits, so signs and
// oversized values never reach strconv.
func clockFields(parts []string) (h, m, sec int, err error) {
	vals := make([]int, 3)
	for i, p := range parts {
		if p == "" || len(p) > 2 || strings.IndexFunc(p, notDigit) >= 0 {
			return 0, 0, 0, fmt.Errorf("non-numeric field %q", p)
		}
		v, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("non-numeric field %q", p)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

func clockOffset(h, m, sec int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
}
