package ports

import (
	"context"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// ItemWithCount is the admin list view: a catalog entry plus the number of
// users it is assigned to.
type ItemWithCount struct {
	domain.Item
	UserCount int `json:"user_count"`
}

// ItemRepository defines persistence operations for the tool catalog.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	// ListWithCounts returns all items ordered by category then name, each
	// carrying its assigned-user count.
	ListWithCounts(ctx context.Context) ([]*ItemWithCount, error)
	// ListForUser returns the items assigned to userID ordered by the
	// assignment's display_order, then name.
	ListForUser(ctx context.Context, userID int64) ([]*domain.Item, error)
	// GetForUser returns the item only when it is assigned to userID;
	// otherwise domain.ErrItemNotFound.
	GetForUser(ctx context.Context, itemID, userID int64) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	// Delete removes the item; assignments cascade and usage rows keep a
	// nulled item reference.
	Delete(ctx context.Context, id int64) error
}

// AssignmentRepository manages the user ↔ item grants.
type AssignmentRepository interface {
	IsAssigned(ctx context.Context, userID, itemID int64) (bool, error)
	// ListItemIDs returns the item ids assigned to userID in display order.
	ListItemIDs(ctx context.Context, userID int64) ([]int64, error)
	// Replace rewrites the full assignment set for userID; display_order
	// follows the position of each id in itemIDs.
	Replace(ctx context.Context, userID int64, itemIDs []int64) error
	// ListUsersForItem returns the users an item is assigned to, ordered by
	// username.
	ListUsersForItem(ctx context.Context, itemID int64) ([]*domain.User, error)
}
