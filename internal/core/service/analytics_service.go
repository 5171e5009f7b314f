package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/toolhub/dashboard-api/internal/api/metrics"
	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// AnalyticsService answers the reporting queries of the admin analytics
// view. Every operation is a pure read; ordering and bucketing are done by
// the repository so results stay deterministic.
type AnalyticsService struct {
	repo ports.AnalyticsRepository
}

func NewAnalyticsService(repo ports.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Summary reports distinct users and items with recorded activity, the total
// session count, and accumulated hours. Sessions that never received a close
// signal count toward the session total but contribute zero hours.
func (s *AnalyticsService) Summary(ctx context.Context) (*ports.AnalyticsSummary, error) {
	defer observeQuery("summary")()

	totals, err := s.repo.SummaryTotals(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.AnalyticsSummary{
		Users:    totals.Users,
		Items:    totals.Items,
		Sessions: totals.Sessions,
		Hours:    float64(totals.DurationSeconds) / 3600,
	}, nil
}

// TopTools ranks items by click count, descending, ties broken by item id so
// output is reproducible. Items with no recorded clicks are excluded.
func (s *AnalyticsService) TopTools(ctx context.Context, input ports.TopToolsInput) ([]*ports.ToolUsage, error) {
	if input.Limit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	defer observeQuery("top_tools")()

	return s.repo.TopTools(ctx, ports.TopToolsFilter{
		Limit: input.Limit,
		From:  input.From,
		To:    input.To,
	})
}

// UserActivity returns one row per calendar day over the trailing window,
// zero-count days included.
func (s *AnalyticsService) UserActivity(ctx context.Context, days int) ([]*ports.DayActivity, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	defer observeQuery("user_activity")()

	return s.repo.DailyActivity(ctx, days)
}

// Recent returns the most recently clicked sessions. Sessions whose item was
// deleted keep their history and are labelled with a placeholder name.
func (s *AnalyticsService) Recent(ctx context.Context, limit int) ([]*ports.RecentActivityEntry, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	defer observeQuery("recent")()

	rows, err := s.repo.RecentSessions(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*ports.RecentActivityEntry, 0, len(rows))
	for _, r := range rows {
		entry := &ports.RecentActivityEntry{
			SessionID:       r.SessionID,
			Username:        r.Username,
			ClickedAt:       r.ClickedAt,
			DurationSeconds: r.DurationSeconds,
		}
		if r.ItemName != nil {
			entry.ItemName = *r.ItemName
			if r.ItemIcon != nil {
				entry.ItemIcon = *r.ItemIcon
			}
		} else {
			entry.ItemName = domain.DeletedItemName
			entry.ItemDeleted = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// observeQuery times one aggregate query; call the returned func when done.
func observeQuery(query string) func() {
	timer := prometheus.NewTimer(metrics.AnalyticsQueryDuration.WithLabelValues(query))
	return func() { timer.ObserveDuration() }
}
