package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"notes-storage/internal/domain"

	"github.com/jackc/pgx/v5"
)

// NoteRepository implements domain.NoteStore for PostgreSQL.
type NoteRepository struct {
	db     Queryer
	logger *slog.Logger
}

// NewNoteRepository creates a new PostgreSQL note repository.
func NewNoteRepository(db Queryer, logger *slog.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: logger.With("component", "note_repository"),
	}
}

// ListByChat returns all notes belonging to chatID.
func (r *NoteRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Note, error) {
	query := `SELECT id, chat_id, name, content, tags FROM notes WHERE chat_id = $1`

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to query notes", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.ChatID, &note.Name, &note.Content, &note.Tags); err != nil {
			r.logger.ErrorContext(ctx, "failed to convert stored note", "chat_id", chatID, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return notes, nil
}

// Insert persists a new note.
func (r *NoteRepository) Insert(ctx context.Context, note domain.Note) error {
	query := `
		INSERT INTO notes (id, chat_id, name, content, tags)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, note.ID, note.ChatID, note.Name, note.Content, note.Tags)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to insert note", "chat_id", note.ChatID, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Find returns the note matching both chatID and noteID.
func (r *NoteRepository) Find(ctx context.Context, chatID, noteID string) (*domain.Note, error) {
	query := `SELECT id, chat_id, name, content, tags FROM notes WHERE chat_id = $1 AND id = $2`

	var note domain.Note
	err := r.db.QueryRow(ctx, query, chatID, noteID).
		Scan(&note.ID, &note.ChatID, &note.Name, &note.Content, &note.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		r.logger.ErrorContext(ctx, "failed to find note", "chat_id", chatID, "note_id", noteID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &note, nil
}

// Update writes the changed fields of a note, one statement per field.
// Fields left nil in changes are not touched.
func (r *NoteRepository) Update(ctx context.Context, chatID, noteID string, changes domain.NoteChanges) error {
	type fieldChange struct {
		column string
		value  any
	}

	fields := make([]fieldChange, 0, 3)
	if changes.Name != nil {
		fields = append(fields, fieldChange{"name", *changes.Name})
	}
	if changes.Content != nil {
		fields = append(fields, fieldChange{"content", *changes.Content})
	}
	if changes.Tags != nil {
		fields = append(fields, fieldChange{"tags", *changes.Tags})
	}

	for _, f := range fields {
		// Column names come from the fixed set above, never from input.
		query := fmt.Sprintf(`UPDATE notes SET %s = $1 WHERE chat_id = $2 AND id = $3`, f.column)
		if _, err := r.db.Exec(ctx, query, f.value, chatID, noteID); err != nil {
			r.logger.ErrorContext(ctx, "failed to update note field",
				"chat_id", chatID, "note_id", noteID, "field", f.column, "error", err)
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// Delete removes the note matching both chatID and noteID. Deleting a
// non-existent note is not an error.
func (r *NoteRepository) Delete(ctx context.Context, chatID, noteID string) error {
	query := `DELETE FROM notes WHERE chat_id = $1 AND id = $2`

	_, err := r.db.Exec(ctx, query, chatID, noteID)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete note", "chat_id", chatID, "note_id", noteID, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
