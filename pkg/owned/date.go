package owned

import (
	"time"

	"kisan/pkg/apperr"
)

// ParseDate accepts a calendar day (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation(field + " must be a date (YYYY-MM-DD)")
}
