package lists

import (
	"context"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// ─── To-Do List Mutator ─────────────────────────────────────────────────────
// The one ordered list. New tasks enter at the head with order 0 and
// every existing task shifts down by one; order stays contiguous from 0.

// TodoService mutates goals.<id>.toDoList.
type TodoService struct {
	core core[domain.TodoItem]
}

// NewTodoService creates the to-do list mutator.
func NewTodoService(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *TodoService {
	return &TodoService{core: core[domain.TodoItem]{
		states: states,
		store:  store,
		log:    log,
		field:  domain.FieldToDoList,
		name:   "todos",
		label:  "to-do list",
		policy: prependAndShift,
		items:  func(g domain.Goal) []domain.TodoItem { return g.ToDoList },
		touch:  func(t *domain.TodoItem, now domain.Timestamp) { t.UpdatedAt = now },
		reorder: func(list []domain.TodoItem) {
			for i := range list {
				list[i].Order = i
			}
		},
	}}
}

// TodoInput carries caller-supplied fields for a new task.
type TodoInput struct {
	Text        string            `json:"text"`
	Description string            `json:"description"`
	Deadline    *domain.Timestamp `json:"deadline"`
}

// Add inserts a new task at the head of the list.
func (s *TodoService) Add(ctx context.Context, userID, goalID string, in TodoInput) (domain.TodoItem, error) {
	return s.core.add(ctx, userID, goalID, func(id string, now domain.Timestamp) domain.TodoItem {
		return domain.TodoItem{
			ID:          id,
			Text:        in.Text,
			Description: in.Description,
			Order:       0,
			Completed:   false,
			Deadline:    in.Deadline,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	})
}

// TodoPatch carries the optional fields of a partial task update.
type TodoPatch struct {
	Text        *string           `json:"text"`
	Description *string           `json:"description"`
	Deadline    *domain.Timestamp `json:"deadline"`
	Completed   *bool             `json:"completed"`
}

// Update merges the patch into the task with itemID. Setting Completed
// to true stamps completedAt; setting it to false clears it.
func (s *TodoService) Update(ctx context.Context, userID, goalID, itemID string, p TodoPatch) error {
	return s.core.update(ctx, userID, goalID, itemID, func(t *domain.TodoItem, now domain.Timestamp) {
		if p.Text != nil {
			t.Text = *p.Text
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Deadline != nil {
			t.Deadline = p.Deadline
		}
		if p.Completed != nil {
			t.Completed = *p.Completed
			if t.Completed {
				done := now
				t.CompletedAt = &done
			} else {
				t.CompletedAt = nil
			}
		}
	})
}

// Delete removes the task with itemID; absent ids are a no-op.
func (s *TodoService) Delete(ctx context.Context, userID, goalID, itemID string) error {
	return s.core.delete(ctx, userID, goalID, itemID)
}

// Reorder writes the caller's fully reordered list verbatim, stamping
// updatedAt on every task. The aggregate is not re-fetched and the
// list's order values are not re-validated — the caller is trusted to
// supply a complete, correctly-ordered list.
func (s *TodoService) Reorder(ctx context.Context, userID, goalID string, list []domain.TodoItem) error {
	return s.core.replace(ctx, userID, goalID, list)
}
