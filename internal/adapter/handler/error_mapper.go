package handler

import (
	"errors"
	"net/http"

	"notes-storage/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// An unavailable identity provider rejects as unauthenticated rather than
// surfacing a gateway error: a session that cannot be validated is treated
// like one that failed validation.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrSessionInactive),
		errors.Is(err, domain.ErrMissingIdentity),
		errors.Is(err, domain.ErrIdentityUnavailable):
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")

	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "not a member of this chat")

	case errors.Is(err, domain.ErrNoteNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "note not found")

	case errors.Is(err, domain.ErrMalformedRecord):
		return echo.NewHTTPError(http.StatusInternalServerError, "conversion failed")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusInternalServerError, "retrieval failed")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
