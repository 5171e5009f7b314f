package ports

import (
	"context"
	"time"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts and their
// password-change audit trail.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists username and admin flag changes.
	Update(ctx context.Context, user *domain.User) error
	// UpdatePassword replaces the stored hash and sets the forced-change flag.
	UpdatePassword(ctx context.Context, id int64, passwordHash string, mustChange bool) error
	RecordLastLogin(ctx context.Context, id int64, at time.Time) error
	// Delete removes the user; assignments and usage rows cascade at the
	// schema level.
	Delete(ctx context.Context, id int64) error
	// InsertPasswordChange appends an audit row (who changed, by whom).
	InsertPasswordChange(ctx context.Context, userID, changedBy int64) error
}
