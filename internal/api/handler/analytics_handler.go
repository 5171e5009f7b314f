package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// Query parameter defaults for the analytics endpoints.
const (
	defaultTopToolsLimit = 10
	defaultActivityDays  = 30
	defaultRecentLimit   = 20
)

// AnalyticsHandler serves the admin reporting views.
type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type topToolRow struct {
	ItemID       int64  `json:"item_id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Clicks       int64  `json:"clicks"`
	TotalSeconds int64  `json:"total_seconds"`
}

type topToolsResponse struct {
	Tools []topToolRow `json:"tools"`
}

type dayActivityRow struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type activityResponse struct {
	Days []dayActivityRow `json:"days"`
}

type recentResponse struct {
	Sessions []*ports.RecentActivityEntry `json:"sessions"`
}

// queryInt reads an optional positive integer query parameter. A missing or
// empty parameter yields the default; garbage yields domain.ErrInvalidInput.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return n, nil
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidInput, name)
	}
	return t, nil
}

// Summary returns the headline totals.
//
// @Summary      Analytics summary
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AnalyticsSummary
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	summary, err := h.analytics.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// TopTools returns the most-clicked tools.
//
// @Summary      Top tools ranking
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int     false  "Maximum rows"      default(10)
// @Param        from   query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to     query     string  false  "End date (YYYY-MM-DD)"
// @Success      200    {object}  topToolsResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/admin/analytics/top-tools [get]
func (h *AnalyticsHandler) TopTools(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultTopToolsLimit)
	if err != nil {
		return err
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}

	tools, err := h.analytics.TopTools(c.Request().Context(), ports.TopToolsInput{
		Limit: limit,
		From:  from,
		To:    to,
	})
	if err != nil {
		return err
	}

	rows := make([]topToolRow, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, topToolRow{
			ItemID:       t.ItemID,
			Name:         t.Name,
			Icon:         t.Icon,
			Clicks:       t.Clicks,
			TotalSeconds: t.TotalSeconds,
		})
	}

	return c.JSON(http.StatusOK, topToolsResponse{Tools: rows})
}

// UserActivity returns the per-day session counts, zero days included.
//
// @Summary      Daily activity
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Window length in days"  default(30)
// @Success      200   {object}  activityResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/analytics/activity [get]
func (h *AnalyticsHandler) UserActivity(c echo.Context) error {
	days, err := queryInt(c, "days", defaultActivityDays)
	if err != nil {
		return err
	}

	activity, err := h.analytics.UserActivity(c.Request().Context(), days)
	if err != nil {
		return err
	}

	rows := make([]dayActivityRow, 0, len(activity))
	for _, d := range activity {
		rows = append(rows, dayActivityRow{
			Date:  d.Date.Format("2006-01-02"),
			Count: d.Count,
		})
	}

	return c.JSON(http.StatusOK, activityResponse{Days: rows})
}

// Recent returns the latest sessions.
//
// @Summary      Recent activity feed
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum rows"  default(20)
// @Success      200    {object}  recentResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/admin/analytics/recent [get]
func (h *AnalyticsHandler) Recent(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultRecentLimit)
	if err != nil {
		return err
	}

	sessions, err := h.analytics.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, recentResponse{Sessions: sessions})
}
