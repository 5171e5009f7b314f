package ports

import (
	"context"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// ItemInput carries catalog entry fields for create and update.
type ItemInput struct {
	ID              int64 // ignored on create
	Name            string
	Description     string
	URL             string
	Icon            string
	Category        string
	OpenInNewWindow bool
	CreatedBy       int64 // acting admin, recorded on create
}

// ItemService defines admin-side catalog management.
type ItemService interface {
	List(ctx context.Context) ([]*ItemWithCount, error)
	Create(ctx context.Context, input ItemInput) (*domain.Item, error)
	Update(ctx context.Context, input ItemInput) error
	Delete(ctx context.Context, id int64) error
	// AssignedUsers returns the users the item is visible to.
	AssignedUsers(ctx context.Context, itemID int64) ([]*domain.User, error)
}

// DashboardService is the end-user read surface over the catalog.
type DashboardService interface {
	// Items returns the caller's assigned items in display order.
	Items(ctx context.Context, userID int64) ([]*domain.Item, error)
	// Item returns one assigned item; unassigned or absent items yield
	// domain.ErrItemNotFound so the catalog is not enumerable.
	Item(ctx context.Context, itemID, userID int64) (*domain.Item, error)
}
