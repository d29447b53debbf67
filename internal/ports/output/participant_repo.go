package output

import (
	"context"

	"gamenight/internal/domain/entities"
)

type ParticipantRepository interface {
	// Create inserts a booking; domain.ErrAlreadyJoined when the
	// (event, identity) pair already exists.
	Create(ctx context.Context, participant *entities.Participant) error
	FindByEventID(ctx context.Context, eventID int64) ([]entities.Participant, error)
	// FindByEventIDAndUserID returns domain.ErrNotJoined when absent.
	FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error)
	// Delete removes a booking; domain.ErrNotJoined when there was none.
	Delete(ctx context.Context, eventID int64, userID string) error
	CountByEventID(ctx context.Context, eventID int64) (int64, error)
}
