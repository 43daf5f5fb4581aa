package utils

import (
	"fmt"
	"time"
)

// ParseDate parses a request date that may arrive either as full RFC 3339 or
// as a bare YYYY-MM-DD day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
