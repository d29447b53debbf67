package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/output"
)

var _ output.ReminderJobRepository = (*ReminderJobRepository)(nil)

// ReminderJobRepository implements output.ReminderJobRepository on pgx.
type ReminderJobRepository struct {
	pool *pgxpool.Pool
}

func NewReminderJobRepository(pool *pgxpool.Pool) *ReminderJobRepository {
	return &ReminderJobRepository{pool: pool}
}

func (r *ReminderJobRepository) Ensure(ctx context.Context, eventID int64, offset domain.ReminderOffset) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminder_jobs (event_id, offset_kind)
		VALUES ($1, $2)
		ON CONFLICT (event_id, offset_kind) DO NOTHING`, eventID, string(offset))
	if err != nil {
		return fmt.Errorf("ensure reminder job: %w", err)
	}
	return nil
}

func (r *ReminderJobRepository) Get(ctx context.Context, eventID int64, offset domain.ReminderOffset) (*entities.ReminderJob, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT event_id, offset_kind, fired
		FROM reminder_jobs
		WHERE event_id = $1 AND offset_kind = $2`, eventID, string(offset))
	job, err := scanReminderJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get reminder job: %w", err)
	}
	return &job, nil
}

func (r *ReminderJobRepository) MarkFired(ctx context.Context, eventID int64, offset domain.ReminderOffset) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminder_jobs SET fired = TRUE
		WHERE event_id = $1 AND offset_kind = $2`, eventID, string(offset))
	if err != nil {
		return fmt.Errorf("mark reminder fired: %w", err)
	}
	return nil
}

func (r *ReminderJobRepository) FindUnfired(ctx context.Context) ([]entities.ReminderJob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, offset_kind, fired
		FROM reminder_jobs
		WHERE fired = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("find unfired reminder jobs: %w", err)
	}
	defer rows.Close()

	var out []entities.ReminderJob
	for rows.Next() {
		job, err := scanReminderJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder job: %w", err)
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder jobs: %w", err)
	}
	return out, nil
}

func scanReminderJob(row pgx.Row) (entities.ReminderJob, error) {
	var job entities.ReminderJob
	var offset string
	if err := row.Scan(&job.EventID, &offset, &job.Fired); err != nil {
		return entities.ReminderJob{}, err
	}
	job.Offset = domain.ReminderOffset(offset)
	return job, nil
}
