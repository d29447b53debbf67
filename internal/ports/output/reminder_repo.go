package output

import (
	"context"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
)

type ReminderJobRepository interface {
	// Ensure inserts the job row if it does not exist yet. Re-ensuring an
	// existing (fired or not) job is a no-op.
	Ensure(ctx context.Context, eventID int64, offset domain.ReminderOffset) error
	Get(ctx context.Context, eventID int64, offset domain.ReminderOffset) (*entities.ReminderJob, error)
	MarkFired(ctx context.Context, eventID int64, offset domain.ReminderOffset) error
	FindUnfired(ctx context.Context) ([]entities.ReminderJob, error)
}
