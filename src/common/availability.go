package common

import (
	"context"
	"etb/src/models"
	"etb/src/types"
	"time"
)

// CheckEventAvailable answers whether an event can be purchased for right
// now. Every failure here is terminal for the purchase attempt.
func CheckEventAvailable(ctx context.Context, events EventLookup, eventID uint, now time.Time) (*models.Event, error) {
	event, err := events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != types.EVENT_ACTIVE {
		return nil, types.ErrEventNotAvailable
	}
	if event.StartDate.Before(now) {
		return nil, types.ErrEventAlreadyStarted
	}
	return event, nil
}
