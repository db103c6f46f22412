package middleware

import (
	"log/slog"
	"net/http"

	"notes-storage/internal/domain"
	"notes-storage/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session credential.
const SessionCookieName = "sessionId"

// identityContextKey is the echo context key for the authenticated identity.
const identityContextKey = "identity"

// Authenticate returns middleware enforcing session authentication.
// Requests without a session cookie are rejected immediately, without
// contacting the identity provider; requests whose session cannot be
// validated are rejected without ever adopting a stale or partial identity.
func Authenticate(auth *usecase.Authenticate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				slog.WarnContext(ctx, "unauthenticated connection attempt")
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			identity, err := auth.Execute(ctx, cookie.Value)
			if err != nil {
				slog.WarnContext(ctx, "unknown session connection attempt", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity placed by Authenticate.
func IdentityFromContext(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*domain.Identity)
	return identity, ok && identity != nil
}
