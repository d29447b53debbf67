package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamenight/internal/domain"
	"gamenight/internal/domain/entities"
	"gamenight/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// ParticipantRepository implements output.ParticipantRepository on pgx.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO participants (event_id, user_id, username, joined_at)
		VALUES ($1, $2, $3, $4)`,
		participant.EventID, participant.UserID, participant.Username, participant.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyJoined
		}
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID int64) ([]entities.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, user_id, username, joined_at
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("find participants: %w", err)
	}
	defer rows.Close()

	var out []entities.Participant
	for rows.Next() {
		var p entities.Participant
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Username, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (r *ParticipantRepository) FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT event_id, user_id, username, joined_at
		FROM participants
		WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	var p entities.Participant
	if err := row.Scan(&p.EventID, &p.UserID, &p.Username, &p.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotJoined
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return &p, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, eventID int64, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotJoined
	}
	return nil
}

func (r *ParticipantRepository) CountByEventID(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM participants WHERE event_id = $1`, eventID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}
