package domain

import "errors"

// Authentication errors.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrSessionInactive     = errors.New("session is not active")
	ErrMissingIdentity     = errors.New("missing identity in session")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
)

// Authorization errors.
var (
	ErrUnauthorized    = errors.New("not a member of the chat")
	ErrChatUnavailable = errors.New("chat service unavailable")
)

// Store errors.
var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrStoreUnavailable = errors.New("note store unreachable")
	ErrMalformedRecord  = errors.New("stored note could not be converted")
)
