package ports

import (
	"context"
	"time"
)

// SummaryTotals carries the raw aggregate counters for the summary view.
// Hours are derived by the service from DurationSeconds.
type SummaryTotals struct {
	Users           int64
	Items           int64
	Sessions        int64
	DurationSeconds int64
}

// ToolUsage is one row of the top-tools ranking.
type ToolUsage struct {
	ItemID       int64
	Name         string
	Icon         string
	Clicks       int64
	TotalSeconds int64
}

// DayActivity is the session count for one calendar day.
type DayActivity struct {
	Date  time.Time
	Count int64
}

// RecentSession is one row of the recent-activity feed. ItemName and
// ItemIcon are empty when the item was deleted.
type RecentSession struct {
	SessionID       int64
	Username        string
	ItemName        *string
	ItemIcon        *string
	ClickedAt       time.Time
	DurationSeconds *int64
}

// TopToolsFilter bounds the top-tools ranking. From/To filter on clicked_at
// when non-zero.
type TopToolsFilter struct {
	Limit int
	From  time.Time
	To    time.Time
}

// AnalyticsRepository answers read-only aggregate queries over usage
// sessions. No method mutates state.
type AnalyticsRepository interface {
	SummaryTotals(ctx context.Context) (*SummaryTotals, error)
	// TopTools returns at most Limit rows ordered by clicks descending,
	// ties broken by item id ascending. Items with zero clicks are excluded.
	TopTools(ctx context.Context, filter TopToolsFilter) ([]*ToolUsage, error)
	// DailyActivity returns exactly days rows, one per calendar day ending
	// today, zero-count days included, ordered by date ascending.
	DailyActivity(ctx context.Context, days int) ([]*DayActivity, error)
	// RecentSessions returns the limit most recently clicked sessions,
	// clicked_at descending.
	RecentSessions(ctx context.Context, limit int) ([]*RecentSession, error)
}
