package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// DashboardHandler serves the end-user's assigned tool catalog.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type itemListResponse struct {
	Items []*domain.Item `json:"items"`
}

// List returns the caller's assigned items in display order.
//
// @Summary      List assigned dashboard items
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  itemListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/items [get]
func (h *DashboardHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	items, err := h.dashboard.Items(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, itemListResponse{Items: items})
}

// Get returns one assigned item. Items outside the caller's assignments are
// indistinguishable from absent ones.
//
// @Summary      Get an assigned dashboard item
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  map[string]string
// @Router       /v1/items/{id} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		return fmt.Errorf("%w: invalid item id", domain.ErrInvalidInput)
	}

	item, err := h.dashboard.Item(c.Request().Context(), itemID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}
