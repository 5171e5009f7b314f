package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

func (r *UsageRepository) InsertSession(ctx context.Context, s *domain.UsageSession) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO usage_tracking (user_id, item_id, clicked_at, session_start)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		s.UserID, s.ItemID, s.ClickedAt, s.SessionStart).Scan(&id)
	if err != nil {
		return 0, storageErr("insert session", err)
	}
	return id, nil
}

func (r *UsageRepository) GetSession(ctx context.Context, id int64) (*domain.UsageSession, error) {
	var s domain.UsageSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, item_id, clicked_at, session_start, session_end, duration_seconds
		FROM usage_tracking
		WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.ItemID, &s.ClickedAt, &s.SessionStart, &s.SessionEnd, &s.DurationSeconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, storageErr("get session", err)
	}
	return &s, nil
}

// CloseSession applies the close write conditionally: the "session_end IS
// NULL" guard makes the first of two racing closes win and the loser a
// harmless no-op, without any application-level locking.
func (r *UsageRepository) CloseSession(ctx context.Context, id, userID int64, end time.Time, durationSeconds int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE usage_tracking
		SET session_end = $3, duration_seconds = $4
		WHERE id = $1 AND user_id = $2 AND session_end IS NULL`,
		id, userID, end, durationSeconds)
	if err != nil {
		return false, storageErr("close session", err)
	}
	return tag.RowsAffected() > 0, nil
}
