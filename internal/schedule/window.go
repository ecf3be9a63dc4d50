package schedule

import (
	"fmt"
	"regexp"
	"time"
)

var dayRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDay parses a YYYY-MM-DD calendar day as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	if !dayRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Window is an inclusive range of calendar days. A zero bound is open.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow parses start and end days and checks their order.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseDay(start)
	if err != nil {
		return Window{}, fmt.Errorf("start: %w", err)
	}
	e, err := ParseDay(end)
	if err != nil {
		return Window{}, fmt.Errorf("end: %w", err)
	}
	if s.After(e) {
		return Window{}, fmt.Errorf("start date %s has to be before the end date %s", start, end)
	}
	return Window{Start: s, End: e}, nil
}

// lower returns the first instant inside the window.
func (w Window) lower() time.Time {
	return truncateDay(w.Start)
}

// upper returns the first instant after the window, or the zero time when
// the window has no end.
func (w Window) upper() time.Time {
	if w.End.IsZero() {
		return time.Time{}
	}
	return truncateDay(w.End).Add(day)
}

// Contains reports whether t falls on one of the window's days.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.lower()) {
		return false
	}
	if u := w.upper(); !u.IsZero() && !t.Before(u) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return truncateDay(a).Equal(truncateDay(b))
}
