package domain

// Note is a freeform note owned by a single chat. A note is uniquely
// identified by (ChatID, ID); ChatID never changes after creation.
type Note struct {
	ID      string
	ChatID  string
	Name    string
	Content string
	Tags    []string
}

// NoteDraft carries the fields for a note to be created.
type NoteDraft struct {
	Name    string
	Content string
	Tags    []string
}

// NotePatch carries requested changes to a note. An empty Name or Content
// and nil Tags mean "keep the stored value" (merge-on-update).
type NotePatch struct {
	Name    string
	Content string
	Tags    []string
}

// NoteChanges is the field-level diff handed to the store. Only non-nil
// fields are written.
type NoteChanges struct {
	Name    *string
	Content *string
	Tags    *[]string
}

// Empty reports whether the diff contains no changes.
func (c NoteChanges) Empty() bool {
	return c.Name == nil && c.Content == nil && c.Tags == nil
}
