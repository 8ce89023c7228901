package events_test

import (
	"testing"
	"time"

	"ms-events/internal/events"
	"ms-events/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPast(t *testing.T) {
	now := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, events.Past(now.Add(-time.Second), now))
	assert.False(t, events.Past(now.Add(time.Second), now))
	// the boundary instant is not past
	assert.False(t, events.Past(now, now))
}

func TestPastMonotonicAsClockAdvances(t *testing.T) {
	date := time.Date(2020, 6, 15, 18, 0, 0, 0, time.UTC)

	now := date.Add(-2 * time.Hour)
	wasPast := false
	for i := 0; i < 8; i++ {
		p := events.Past(date, now)
		if wasPast {
			assert.True(t, p, "past must never flip back to false as now advances")
		}
		wasPast = p
		now = now.Add(time.Hour)
	}
	assert.True(t, wasPast)
}

func TestCancelable(t *testing.T) {
	now := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)

	upcoming := &models.Event{Date: now.Add(48 * time.Hour)}
	assert.True(t, events.Cancelable(upcoming, now))

	started := &models.Event{Date: now.Add(-time.Minute)}
	assert.False(t, events.Cancelable(started, now))

	canceledAt := now.Add(-time.Hour)
	canceled := &models.Event{Date: now.Add(48 * time.Hour), CanceledAt: &canceledAt}
	assert.False(t, events.Cancelable(canceled, now))
}

func TestPastAndCancelableAgreeForSameNow(t *testing.T) {
	now := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)
	event := &models.Event{Date: now.Add(time.Hour)}

	// an event that is not past is still cancelable under the default margin
	assert.False(t, events.Past(event.Date, now))
	assert.True(t, events.Cancelable(event, now))
}
