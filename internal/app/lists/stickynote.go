package lists

import (
	"context"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// ─── Sticky Note Mutator ────────────────────────────────────────────────────

// StickyNoteService mutates goals.<id>.stickyNotes.
type StickyNoteService struct {
	core core[domain.StickyNote]
}

// NewStickyNoteService creates the sticky note mutator.
func NewStickyNoteService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *StickyNoteService {
	return &StickyNoteService{core: core[domain.StickyNote]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldStickyNotes,
		name:   "notes",
		label:  "sticky notes",
		policy: appendToEnd,
		items:  func(g domain.Goal) []domain.StickyNote { return g.StickyNotes },
		touch:  func(n *domain.StickyNote, now domain.Timestamp) { n.UpdatedAt = now },
	}}
}

// StickyNoteInput carries caller-supplied fields for a new note.
type StickyNoteInput struct {
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Color   domain.NoteColor `json:"color"`
}

// Add appends a new note. Default color is yellow.
func (s *StickyNoteService) Add(ctx context.Context, userID, goalID string, in StickyNoteInput) (domain.StickyNote, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.StickyNote {
		color := in.Color
		if color == "" {
			color = domain.NoteYellow
		}
		return domain.StickyNote{
			ID:        id,
			Title:     in.Title,
			Content:   in.Content,
			Color:     color,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
}

// StickyNotePatch carries the optional fields of a partial update.
type StickyNotePatch struct {
	Title   *string           `json:"title"`
	Content *string           `json:"content"`
	Color   *domain.NoteColor `json:"color"`
}

// Update merges the patch into the note with itemID.
func (s *StickyNoteService) Update(ctx context.Context, userID, goalID, itemID string, p StickyNotePatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(n *domain.StickyNote, _ domain.Timestamp) {
		if p.Title != nil {
			n.Title = *p.Title
		}
		if p.Content != nil {
			n.Content = *p.Content
		}
		if p.Color != nil {
			n.Color = *p.Color
		}
	})
}

// Delete removes the note with itemID; absent ids are a no-op.
func (s *StickyNoteService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}
