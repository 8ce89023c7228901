package events

import (
	"time"

	"ms-events/internal/models"
)

// guardUpdate runs the mutation checks in their fixed order: existence,
// past-state, ownership. The first failure wins so error messages stay
// deterministic. Banner and date validation happen after, in the service.
func guardUpdate(event *models.Event, callerID string, now time.Time) error {
	if event == nil {
		return NotFound(MsgEventNotFound)
	}
	if Past(event.Date, now) {
		return InvalidState(MsgEventFinished)
	}
	if event.OwnerID != callerID {
		return Forbidden(MsgNotOwner)
	}
	return nil
}

// guardCancel order: existence, already-canceled, past-state, ownership.
func guardCancel(event *models.Event, callerID string, now time.Time) error {
	if event == nil {
		return NotFound(MsgEventNotFoundCancel)
	}
	if event.CanceledAt != nil {
		return InvalidState(MsgAlreadyCanceled)
	}
	if Past(event.Date, now) {
		return InvalidState(MsgCancelFinished)
	}
	if event.OwnerID != callerID {
		return Forbidden(MsgNotOwnerCancel)
	}
	return nil
}
