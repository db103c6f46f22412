package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"notes-storage/internal/domain"
)

// Authenticate resolves a session credential to an identity with a
// cache-through strategy.
type Authenticate struct {
	validator domain.SessionValidator
	cache     domain.IdentityCache
	logger    *slog.Logger
}

// NewAuthenticate creates a new Authenticate usecase.
func NewAuthenticate(v domain.SessionValidator, c domain.IdentityCache, l *slog.Logger) *Authenticate {
	return &Authenticate{validator: v, cache: c, logger: l}
}

// Execute resolves the identity for sessionID. On a cache hit no upstream
// call is made; on a miss the identity provider validates the session and
// the result is cached. A failed upstream validation is surfaced as-is and
// nothing is cached.
func (uc *Authenticate) Execute(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if cached, found := uc.cache.Get(sessionID); found {
		return &domain.Identity{
			UserID:    cached.UserID,
			Email:     cached.Email,
			SessionID: sessionID,
		}, nil
	}

	// Cache miss – validate with the identity provider
	fullCookie := fmt.Sprintf("ory_kratos_session=%s", sessionID)
	identity, err := uc.validator.ValidateSession(ctx, fullCookie)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(sessionID, domain.CachedIdentity{
		UserID: identity.UserID,
		Email:  identity.Email,
	})

	identity.SessionID = sessionID
	return identity, nil
}
