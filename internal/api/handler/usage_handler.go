package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// UsageHandler records tool usage sessions for the authenticated user.
type UsageHandler struct {
	usage ports.UsageService
}

func NewUsageHandler(usage ports.UsageService) *UsageHandler {
	return &UsageHandler{usage: usage}
}

type startUsageResponse struct {
	SessionID int64 `json:"session_id"`
}

// Start opens a usage session when the user launches a tool.
//
// @Summary      Start a usage session
// @Tags         usage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startUsageRequest  true  "Item being launched"
// @Success      201   {object}  startUsageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/usage/start [post]
func (h *UsageHandler) Start(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req startUsageRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	sessionID, err := h.usage.Start(c.Request().Context(), userID, req.ItemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, startUsageResponse{SessionID: sessionID})
}

// End closes a usage session. Clients send this as a best-effort beacon on
// tab close, so a repeat close is answered with success rather than an error.
//
// @Summary      End a usage session
// @Tags         usage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  endUsageRequest  true  "Session to close"
// @Success      204   "session closed"
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/usage/end [post]
func (h *UsageHandler) End(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req endUsageRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := h.usage.End(c.Request().Context(), req.SessionID, userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
