package ports

import (
	"context"
	"time"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// UsageRepository defines persistence operations for usage sessions. A
// session row is mutated at most once, by CloseSession.
type UsageRepository interface {
	// InsertSession writes a new open session and returns its generated id.
	InsertSession(ctx context.Context, s *domain.UsageSession) (int64, error)
	GetSession(ctx context.Context, id int64) (*domain.UsageSession, error)
	// CloseSession sets session_end and duration_seconds, guarded by
	// "session_end IS NULL" so that only the first of two racing closes is
	// applied. It returns false when the guard rejected the write.
	CloseSession(ctx context.Context, id, userID int64, end time.Time, durationSeconds int64) (bool, error)
}
