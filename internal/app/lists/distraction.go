package lists

import (
	"context"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// ─── Distraction List Mutator ───────────────────────────────────────────────

// DistractionService mutates goals.<id>.notToDoList.
type DistractionService struct {
	core core[domain.DistractionItem]
}

// NewDistractionService creates the distraction list mutator.
func NewDistractionService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *DistractionService {
	return &DistractionService{core: core[domain.DistractionItem]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldNotToDoList,
		name:   "distractions",
		label:  "distraction list",
		policy: appendToEnd,
		items:  func(g domain.Goal) []domain.DistractionItem { return g.NotToDoList },
		touch:  func(d *domain.DistractionItem, now domain.Timestamp) { d.UpdatedAt = now },
	}}
}

// DistractionInput carries caller-supplied fields for a new entry.
type DistractionInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TriggerPatterns []string `json:"triggerPatterns"`
}

// Add appends a new distraction entry. Defaults: count 0, empty
// trigger patterns.
func (s *DistractionService) Add(ctx context.Context, userID, goalID string, in DistractionInput) (domain.DistractionItem, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.DistractionItem {
		patterns := in.TriggerPatterns
		if patterns == nil {
			patterns = []string{}
		}
		return domain.DistractionItem{
			ID:              id,
			Title:           in.Title,
			Description:     in.Description,
			TriggerPatterns: patterns,
			Count:           0,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	})
}

// DistractionPatch carries the optional fields of a partial update.
type DistractionPatch struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	TriggerPatterns *[]string `json:"triggerPatterns"`
	Count           *int      `json:"count"`
}

// Update merges the patch into the entry with itemID.
func (s *DistractionService) Update(ctx context.Context, userID, goalID, itemID string, p DistractionPatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(d *domain.DistractionItem, _ domain.Timestamp) {
		if p.Title != nil {
			d.Title = *p.Title
		}
		if p.Description != nil {
			d.Description = *p.Description
		}
		if p.TriggerPatterns != nil {
			d.TriggerPatterns = *p.TriggerPatterns
		}
		if p.Count != nil {
			d.Count = *p.Count
		}
	})
}

// Delete removes the entry with itemID; absent ids are a no-op.
func (s *DistractionService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}
