package events

import (
	"time"
)

// ListModeOwn is the value of the "where" query parameter that scopes the
// listing to the caller's own events, canceled ones included.
const ListModeOwn = "just-my-events"

// parseDate accepts the two date shapes clients send: a full RFC 3339
// timestamp or a plain calendar day.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// monthWindow returns the inclusive [start of month, end of month] range
// containing the given day.
func monthWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
