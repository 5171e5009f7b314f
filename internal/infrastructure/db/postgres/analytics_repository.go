package postgres

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// AnalyticsRepository answers the reporting queries. All aggregation,
// ordering, and day bucketing happens in SQL so results are deterministic
// regardless of row order.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) SummaryTotals(ctx context.Context) (*ports.SummaryTotals, error) {
	var t ports.SummaryTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id),
		       COUNT(DISTINCT item_id),
		       COUNT(*),
		       COALESCE(SUM(duration_seconds), 0)
		FROM usage_tracking`).
		Scan(&t.Users, &t.Items, &t.Sessions, &t.DurationSeconds)
	if err != nil {
		return nil, storageErr("summary totals", err)
	}
	return &t, nil
}

// TopTools ranks items by click count. The inner join drops sessions whose
// item was deleted (there is nothing left to rank) and the tie break on item
// id keeps the output reproducible.
func (r *AnalyticsRepository) TopTools(ctx context.Context, filter ports.TopToolsFilter) ([]*ports.ToolUsage, error) {
	query := `
		SELECT di.id, di.name, di.icon, COUNT(*) AS clicks,
		       COALESCE(SUM(ut.duration_seconds), 0) AS total_seconds
		FROM usage_tracking ut
		JOIN dashboard_items di ON di.id = ut.item_id
		WHERE TRUE`
	args := []any{}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += ` AND ut.clicked_at >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += ` AND ut.clicked_at <= $` + strconv.Itoa(len(args))
	}
	args = append(args, filter.Limit)
	query += `
		GROUP BY di.id, di.name, di.icon
		ORDER BY clicks DESC, di.id ASC
		LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("top tools", err)
	}
	defer rows.Close()

	var tools []*ports.ToolUsage
	for rows.Next() {
		var t ports.ToolUsage
		if err := rows.Scan(&t.ItemID, &t.Name, &t.Icon, &t.Clicks, &t.TotalSeconds); err != nil {
			return nil, storageErr("scan top tools", err)
		}
		tools = append(tools, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("top tools", err)
	}
	return tools, nil
}

// DailyActivity generates the full day series in SQL so zero-count days are
// present in the result instead of being synthesized by the caller.
func (r *AnalyticsRepository) DailyActivity(ctx context.Context, days int) ([]*ports.DayActivity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d::date AS day, COUNT(ut.id) AS session_count
		FROM generate_series(CURRENT_DATE - ($1::int - 1), CURRENT_DATE, INTERVAL '1 day') AS d
		LEFT JOIN usage_tracking ut ON ut.clicked_at::date = d::date
		GROUP BY day
		ORDER BY day`, days)
	if err != nil {
		return nil, storageErr("daily activity", err)
	}
	defer rows.Close()

	var activity []*ports.DayActivity
	for rows.Next() {
		var a ports.DayActivity
		if err := rows.Scan(&a.Date, &a.Count); err != nil {
			return nil, storageErr("scan daily activity", err)
		}
		activity = append(activity, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("daily activity", err)
	}
	return activity, nil
}

func (r *AnalyticsRepository) RecentSessions(ctx context.Context, limit int) ([]*ports.RecentSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ut.id, u.username, di.name, di.icon, ut.clicked_at, ut.duration_seconds
		FROM usage_tracking ut
		JOIN users u ON u.id = ut.user_id
		LEFT JOIN dashboard_items di ON di.id = ut.item_id
		ORDER BY ut.clicked_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, storageErr("recent sessions", err)
	}
	defer rows.Close()

	var sessions []*ports.RecentSession
	for rows.Next() {
		var s ports.RecentSession
		if err := rows.Scan(&s.SessionID, &s.Username, &s.ItemName, &s.ItemIcon, &s.ClickedAt, &s.DurationSeconds); err != nil {
			return nil, storageErr("scan recent sessions", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("recent sessions", err)
	}
	return sessions, nil
}
