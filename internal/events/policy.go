package events

import (
	"time"

	"ms-events/internal/models"
)

// CancelGraceMargin is how long before the start an event stops being
// cancelable. Zero means an event stays cancelable any time before it starts.
const CancelGraceMargin = 0 * time.Minute

// Past reports whether the event date is strictly before now.
func Past(date, now time.Time) bool {
	return date.Before(now)
}

// Cancelable reports whether the event may still be canceled at now: it must
// not be canceled already and the cancellation cutoff must not have elapsed.
func Cancelable(event *models.Event, now time.Time) bool {
	if event.CanceledAt != nil {
		return false
	}
	cutoff := event.Date.Add(-CancelGraceMargin)
	return now.Before(cutoff)
}
