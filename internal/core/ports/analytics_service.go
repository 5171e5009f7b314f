package ports

import (
	"context"
	"time"
)

// AnalyticsSummary is the headline stats block of the analytics view.
type AnalyticsSummary struct {
	Users    int64   `json:"total_users"`
	Items    int64   `json:"total_items"`
	Sessions int64   `json:"total_sessions"`
	Hours    float64 `json:"total_hours"`
}

// TopToolsInput bounds the ranking. From/To are optional clicked_at filters.
type TopToolsInput struct {
	Limit int
	From  time.Time
	To    time.Time
}

// AnalyticsService answers the read-only reporting queries. All inputs with
// a limit or day count reject non-positive values with domain.ErrInvalidInput.
type AnalyticsService interface {
	Summary(ctx context.Context) (*AnalyticsSummary, error)
	TopTools(ctx context.Context, input TopToolsInput) ([]*ToolUsage, error)
	UserActivity(ctx context.Context, days int) ([]*DayActivity, error)
	// Recent returns the latest sessions with usernames resolved and deleted
	// items replaced by the domain.DeletedItemName placeholder.
	Recent(ctx context.Context, limit int) ([]*RecentActivityEntry, error)
}

// RecentActivityEntry is one row of the recent-activity feed, ready for
// display: the item name is always present, falling back to the deleted-item
// placeholder.
type RecentActivityEntry struct {
	SessionID       int64      `json:"session_id"`
	Username        string     `json:"username"`
	ItemName        string     `json:"item_name"`
	ItemIcon        string     `json:"icon,omitempty"`
	ItemDeleted     bool       `json:"item_deleted,omitempty"`
	ClickedAt       time.Time  `json:"clicked_at"`
	// DurationSeconds is nil while the session is open or was never closed.
	DurationSeconds *int64 `json:"duration_seconds,omitempty"`
}
