package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// AdminUserHandler handles admin-side account and assignment management.
type AdminUserHandler struct {
	users ports.UserService
}

func NewAdminUserHandler(users ports.UserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
}

type assignmentsResponse struct {
	ItemIDs []int64 `json:"item_ids"`
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// List returns all accounts.
//
// @Summary      List users
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users})
}

// Create provisions a new account. The user must change the password at
// first login.
//
// @Summary      Create a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/users [post]
func (h *AdminUserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Update edits an account. An optional new password forces a change at the
// user's next login.
//
// @Summary      Update a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "User id"
// @Param        body  body  updateUserRequest  true  "Account changes"
// @Success      204   "user updated"
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/users/{id} [put]
func (h *AdminUserHandler) Update(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := h.users.Update(c.Request().Context(), ports.UpdateUserInput{
		ID:          id,
		Username:    req.Username,
		IsAdmin:     req.IsAdmin,
		NewPassword: req.Password,
		ActorID:     actorID,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account. Self-deletion is rejected.
//
// @Summary      Delete a user
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "User id"
// @Success      204  "user deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), id, actorID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Assignments returns the item ids assigned to a user.
//
// @Summary      List a user's item assignments
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  assignmentsResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/items [get]
func (h *AdminUserHandler) Assignments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	itemIDs, err := h.users.Assignments(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assignmentsResponse{ItemIDs: itemIDs})
}

// ReplaceAssignments rewrites a user's assignment set; display order follows
// the order of the submitted ids.
//
// @Summary      Replace a user's item assignments
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                        true  "User id"
// @Param        body  body  replaceAssignmentsRequest  true  "Full assignment set"
// @Success      204   "assignments replaced"
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id}/items [put]
func (h *AdminUserHandler) ReplaceAssignments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req replaceAssignmentsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := h.users.ReplaceAssignments(c.Request().Context(), id, req.ItemIDs); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
