package ports

import (
	"context"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create an account. New accounts
// always start with a forced password change.
type CreateUserInput struct {
	Username string
	Password string
	IsAdmin  bool
}

// UpdateUserInput carries admin-side account changes. NewPassword is
// optional; when set, the user is forced to change it at next login and an
// audit row is written attributed to ActorID.
type UpdateUserInput struct {
	ID          int64
	Username    string
	IsAdmin     bool
	NewPassword string
	ActorID     int64
}

// UserService defines admin-side account management.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) error
	// Delete removes an account. Deleting the acting admin's own account is
	// rejected.
	Delete(ctx context.Context, id, actorID int64) error
	// Assignments returns the item ids assigned to the user, in display order.
	Assignments(ctx context.Context, userID int64) ([]int64, error)
	// ReplaceAssignments rewrites the user's assignment set in the given order.
	ReplaceAssignments(ctx context.Context, userID int64, itemIDs []int64) error
}
