package usecase

import (
	"context"
	"log/slog"
	"slices"

	"notes-storage/internal/domain"

	"github.com/google/uuid"
)

// NoteListing is the result of listing a chat's notes: the notes themselves
// plus the union of all tags seen across them.
type NoteListing struct {
	Notes []domain.Note
	Tags  []string
}

// Notes implements the note operations. Every operation verifies chat
// membership before touching the store; membership is deliberately not
// cached so that a revoked member loses access on the next request.
type Notes struct {
	members domain.MembershipChecker
	store   domain.NoteStore
	logger  *slog.Logger
}

// NewNotes creates a new Notes usecase.
func NewNotes(m domain.MembershipChecker, s domain.NoteStore, l *slog.Logger) *Notes {
	return &Notes{members: m, store: s, logger: l}
}

// checkAccess verifies that identity belongs to chatID. Any failure of the
// membership lookup denies access: fail closed, never open.
func (uc *Notes) checkAccess(ctx context.Context, identity *domain.Identity, sessionID, chatID string) error {
	ok, err := uc.members.HasMember(ctx, sessionID, chatID, identity.UserID)
	if err != nil {
		uc.logger.WarnContext(ctx, "membership check failed, denying access",
			"chat_id", chatID,
			"user_id", identity.UserID,
			"error", err)
		return domain.ErrUnauthorized
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// GetAll returns all notes of a chat plus the deduplicated union of their
// tags. Tag order follows first appearance.
func (uc *Notes) GetAll(ctx context.Context, identity *domain.Identity, sessionID, chatID string) (*NoteListing, error) {
	if err := uc.checkAccess(ctx, identity, sessionID, chatID); err != nil {
		return nil, err
	}

	notes, err := uc.store.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, note := range notes {
		for _, tag := range note.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return &NoteListing{Notes: notes, Tags: tags}, nil
}

// CreateNew persists a new note under chatID and returns its generated id.
// Names are not unique; no collision check is performed.
func (uc *Notes) CreateNew(ctx context.Context, identity *domain.Identity, sessionID, chatID string, draft domain.NoteDraft) (string, error) {
	if err := uc.checkAccess(ctx, identity, sessionID, chatID); err != nil {
		return "", err
	}

	id := uuid.New().String()
	note := domain.Note{
		ID:      id,
		ChatID:  chatID,
		Name:    draft.Name,
		Content: draft.Content,
		Tags:    draft.Tags,
	}
	if err := uc.store.Insert(ctx, note); err != nil {
		return "", err
	}
	return id, nil
}

// FindOne returns the note identified by (chatID, noteID). A note that
// exists under a different chat is not found: the id alone never grants
// access across chats.
func (uc *Notes) FindOne(ctx context.Context, identity *domain.Identity, sessionID, chatID, noteID string) (*domain.Note, error) {
	if err := uc.checkAccess(ctx, identity, sessionID, chatID); err != nil {
		return nil, err
	}
	return uc.store.Find(ctx, chatID, noteID)
}

// ChangeOne applies the merge rule to the stored note and returns the fully
// merged result. Empty patch fields keep the stored value; only fields that
// actually differ are written, one store write per changed field.
func (uc *Notes) ChangeOne(ctx context.Context, identity *domain.Identity, sessionID, chatID, noteID string, patch domain.NotePatch) (*domain.Note, error) {
	if err := uc.checkAccess(ctx, identity, sessionID, chatID); err != nil {
		return nil, err
	}

	current, err := uc.store.Find(ctx, chatID, noteID)
	if err != nil {
		return nil, err
	}

	merged := *current
	var changes domain.NoteChanges
	if patch.Name != "" && patch.Name != current.Name {
		changes.Name = &patch.Name
		merged.Name = patch.Name
	}
	if patch.Content != "" && patch.Content != current.Content {
		changes.Content = &patch.Content
		merged.Content = patch.Content
	}
	if patch.Tags != nil && !slices.Equal(patch.Tags, current.Tags) {
		changes.Tags = &patch.Tags
		merged.Tags = patch.Tags
	}

	if !changes.Empty() {
		if err := uc.store.Update(ctx, chatID, noteID, changes); err != nil {
			return nil, err
		}
	}
	return &merged, nil
}

// DeleteOne removes the note identified by (chatID, noteID). Deleting a
// note that does not exist is a no-op, not an error.
func (uc *Notes) DeleteOne(ctx context.Context, identity *domain.Identity, sessionID, chatID, noteID string) error {
	if err := uc.checkAccess(ctx, identity, sessionID, chatID); err != nil {
		return err
	}
	return uc.store.Delete(ctx, chatID, noteID)
}
