// Package workers holds helpers shared by the stage worker packages.
package workers

import (
	"time"

	apperrors "hiring-pipeline/internal/common/errors"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339. An empty value yields the zero
// time.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError(field + " must be YYYY-MM-DD or RFC 3339, got " + value)
	}
	return t.UTC(), nil
}

func ParseOptionalDate(field, value string) (*time.Time, error) {
	t, err := ParseDate(field, value)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
