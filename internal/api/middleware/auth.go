package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxIsAdmin  = "is_admin"
	CtxTokenID  = "token_id"
	CtxTokenExp = "token_exp"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the bearer JWT, rejects revoked tokens and injects the
// caller's identity into the echo context.
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if revoked != nil && jti != "" {
				rev, err := revoked.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "token verification unavailable")
				}
				if rev {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			// Numeric claims round-trip through JSON as float64.
			sub, _ := claims["sub"].(float64)
			isAdmin, _ := claims["is_admin"].(bool)
			exp, _ := claims["exp"].(float64)

			c.Set(CtxUserID, int64(sub))
			c.Set(CtxUsername, claims["username"])
			c.Set(CtxIsAdmin, isAdmin)
			c.Set(CtxTokenID, jti)
			c.Set(CtxTokenExp, time.Unix(int64(exp), 0))

			return next(c)
		}
	}
}
