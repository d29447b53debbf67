package input

import (
	"context"

	"gamenight/internal/domain/entities"
)

type EventUseCase interface {
	GetEvent(ctx context.Context, id int64) (*entities.Event, error)
	Upcoming(ctx context.Context) ([]entities.Event, error)
	Mine(ctx context.Context, userID string) ([]entities.Event, error)
	Participants(ctx context.Context, eventID int64) ([]entities.Participant, error)
	// DeleteEvent removes the event with everything attached to it and
	// notifies the remaining participants. The returned reply is already
	// rendered for the requester.
	DeleteEvent(ctx context.Context, locale string, eventID int64, requesterID string) (string, error)
}
