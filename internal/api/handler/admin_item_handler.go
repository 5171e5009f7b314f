package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// AdminItemHandler handles admin-side catalog management.
type AdminItemHandler struct {
	items ports.ItemService
}

func NewAdminItemHandler(items ports.ItemService) *AdminItemHandler {
	return &AdminItemHandler{items: items}
}

type adminItemListResponse struct {
	Items []*ports.ItemWithCount `json:"items"`
}

type itemUsersResponse struct {
	Users []*domain.User `json:"users"`
}

// List returns the full catalog with assigned-user counts.
//
// @Summary      List catalog items
// @Tags         admin-items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminItemListResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/items [get]
func (h *AdminItemHandler) List(c echo.Context) error {
	items, err := h.items.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminItemListResponse{Items: items})
}

// Create adds a catalog entry.
//
// @Summary      Create a catalog item
// @Tags         admin-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item details"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/items [post]
func (h *AdminItemHandler) Create(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	item, err := h.items.Create(c.Request().Context(), ports.ItemInput{
		Name:            req.Name,
		Description:     req.Description,
		URL:             req.URL,
		Icon:            req.Icon,
		Category:        req.Category,
		OpenInNewWindow: req.OpenInNewWindow,
		CreatedBy:       actorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

// Update edits a catalog entry.
//
// @Summary      Update a catalog item
// @Tags         admin-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Item id"
// @Param        body  body  itemRequest  true  "Item changes"
// @Success      204   "item updated"
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/items/{id} [put]
func (h *AdminItemHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := h.items.Update(c.Request().Context(), ports.ItemInput{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		URL:             req.URL,
		Icon:            req.Icon,
		Category:        req.Category,
		OpenInNewWindow: req.OpenInNewWindow,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a catalog entry. Usage history keeps a nulled reference so
// past sessions still count in analytics.
//
// @Summary      Delete a catalog item
// @Tags         admin-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Item id"
// @Success      204  "item deleted"
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/items/{id} [delete]
func (h *AdminItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.items.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AssignedUsers returns the users an item is visible to.
//
// @Summary      List users assigned to an item
// @Tags         admin-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  itemUsersResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/items/{id}/users [get]
func (h *AdminItemHandler) AssignedUsers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	users, err := h.items.AssignedUsers(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, itemUsersResponse{Users: users})
}
