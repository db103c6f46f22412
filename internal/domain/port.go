package domain

import "context"

// SessionValidator validates a session cookie against the identity provider.
type SessionValidator interface {
	ValidateSession(ctx context.Context, cookie string) (*Identity, error)
}

// IdentityCache provides read/write access to cached identities keyed by
// session id. A miss is an expected outcome, not an error.
type IdentityCache interface {
	Get(sessionID string) (*CachedIdentity, bool)
	Set(sessionID string, identity CachedIdentity)
}

// MembershipChecker reports whether a user belongs to a chat. The caller's
// session credential is forwarded so the chat service can do its own
// validation.
type MembershipChecker interface {
	HasMember(ctx context.Context, sessionID, chatID, userID string) (bool, error)
}

// NoteStore is the persistence port for notes keyed by (chatID, noteID).
// Implementations must surface connectivity failure distinctly from
// "no match found".
type NoteStore interface {
	ListByChat(ctx context.Context, chatID string) ([]Note, error)
	Insert(ctx context.Context, note Note) error
	Find(ctx context.Context, chatID, noteID string) (*Note, error)
	Update(ctx context.Context, chatID, noteID string, changes NoteChanges) error
	Delete(ctx context.Context, chatID, noteID string) error
}
