package catalog

import (
	"strconv"
	"strings"
	"time"
)

type ExpirationStatus string

const (
	// ExpirationUnknown means exp_date could not be read; nothing is shown.
	ExpirationUnknown      ExpirationStatus = ""
	ExpirationValid        ExpirationStatus = "valid"
	ExpirationExpiringSoon ExpirationStatus = "expiring-soon"
	ExpirationExpired      ExpirationStatus = "expired"
)

// ExpiringSoonMonths is how far ahead an offer counts as expiring soon.
const ExpiringSoonMonths = 6

// ExpiresAt reads the "M/YY" or "M/YYYY" shorthand and returns midnight on
// the last day of that month in loc. ok is false for anything else.
func ExpiresAt(expDate string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(expDate), "/")
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 0 {
		return time.Time{}, false
	}

	if year < 100 {
		year += 2000
	}

	// Day 0 of the following month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc), true
}

func (e *Engine) ExpirationStatus(expDate string) ExpirationStatus {
	now := e.now()

	expires, ok := ExpiresAt(expDate, now.Location())
	if !ok {
		return ExpirationUnknown
	}

	switch {
	case expires.Before(now):
		return ExpirationExpired
	case !expires.After(now.AddDate(0, ExpiringSoonMonths, 0)):
		return ExpirationExpiringSoon
	default:
		return ExpirationValid
	}
}
