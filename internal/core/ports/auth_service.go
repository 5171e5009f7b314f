package ports

import (
	"context"
	"time"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// AuthService implements login, logout, and password self-service.
type AuthService interface {
	// Login verifies credentials, records last_login, and returns a signed
	// bearer token alongside the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// ChangePassword verifies the current password, stores the new hash,
	// clears the forced-change flag, and appends an audit row.
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}
