package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toolhub/dashboard-api/internal/api/middleware"
)

// callerID extracts the authenticated user id injected by the Auth
// middleware. A zero id means the middleware did not run; reject with 401
// before any service call.
func callerID(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.CtxUserID).(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// callerToken extracts the token id and expiry for logout.
func callerToken(c echo.Context) (jti string, exp time.Time, err error) {
	jti, _ = c.Get(middleware.CtxTokenID).(string)
	if jti == "" {
		return "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	exp, _ = c.Get(middleware.CtxTokenExp).(time.Time)
	return jti, exp, nil
}
