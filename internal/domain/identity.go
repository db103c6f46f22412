package domain

import "time"

// Identity represents an authenticated user resolved from the identity provider.
// Immutable once resolved; request handlers only ever read it.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
	CreatedAt time.Time
}

// CachedIdentity holds the identity fields stored in the session cache.
type CachedIdentity struct {
	UserID string
	Email  string
}
