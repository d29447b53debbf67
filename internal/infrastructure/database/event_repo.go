package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository implements output.EventRepository on pgx.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, starts_at, creator_id, capacity, description, media_ref, created_at`

func scanEvent(row pgx.Row) (entities.Event, error) {
	var e entities.Event
	err := row.Scan(&e.ID, &e.Title, &e.StartsAt, &e.CreatorID, &e.Capacity, &e.Description, &e.MediaRef, &e.CreatedAt)
	return e, err
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, starts_at, creator_id, capacity, description, media_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		event.Title, event.StartsAt, event.CreatorID, event.Capacity, event.Description, event.MediaRef,
	)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) FindUpcoming(ctx context.Context, now time.Time) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE starts_at > $1
		ORDER BY starts_at`, now)
	if err != nil {
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) FindUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.title, e.starts_at, e.creator_id, e.capacity, e.description, e.media_ref, e.created_at
		FROM events e
		JOIN participants p ON p.event_id = e.id
		WHERE p.user_id = $1 AND e.starts_at > $2
		ORDER BY e.starts_at`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("find upcoming events by user: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]entities.Event, error) {
	var out []entities.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// Delete removes the event with its participants and reminder jobs in one
// transaction. The foreign keys cascade; the explicit deletes keep the
// intent visible and the order deterministic.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete event: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reminder_jobs WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete reminder jobs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM participants WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return tx.Commit(ctx)
}
