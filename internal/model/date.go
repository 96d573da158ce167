package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for Task.Date. Lexicographic
// order of dates in this layout matches chronological order.
const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses s as a calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// AddDays shifts a calendar date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
