package output

import (
	"context"
	"time"

	"gamenight/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	// FindUpcoming returns a snapshot of events starting strictly after now,
	// ascending by start time.
	FindUpcoming(ctx context.Context, now time.Time) ([]entities.Event, error)
	// FindUpcomingByUserID is FindUpcoming restricted to events the identity
	// is booked on.
	FindUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]entities.Event, error)
	// Delete removes the event together with its participants and reminder
	// jobs as one unit.
	Delete(ctx context.Context, id int64) error
}
