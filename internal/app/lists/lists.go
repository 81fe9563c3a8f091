// Package lists implements the sub-list mutation layer: add, update,
// delete and reorder against exactly one list field nested inside a
// goal. One generic engine carries the shared read-modify-write
// discipline; each entity kind binds it with its field path, defaults,
// and insertion policy.
//
// The discipline, in order, for every structured mutation:
//
//  1. fetch the whole aggregate document (truth, not cache)
//  2. locate the goal (GoalNotFound before any write)
//  3. transform the one target list in memory
//  4. write the ENTIRE new list back to its single dot-path field
//
// There is no compare-and-swap between steps 1 and 4. Two concurrent
// callers mutating the same list both read the pre-mutation list and
// the last write wins. That lost-update window is an accepted property
// of the single-active-client design, not something this layer papers
// over with locking.
package lists

import (
	"context"

	"github.com/google/uuid"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/observability"
)

// Item is the contract every sub-list entity satisfies.
type Item interface {
	ItemID() string
}

// insertPolicy controls where a new item lands in the list.
type insertPolicy int

const (
	appendToEnd    insertPolicy = iota // unordered lists
	prependAndShift                    // ordered lists: head insert, renumber
)

// core is the generic mutator over one list field of a goal. The
// per-kind services in this package are thin bindings around it.
type core[T Item] struct {
	states *goalstate.Service
	store  domain.DocumentStore
	log    *logging.Logger

	field   domain.ListField
	name    string // metric/message label, e.g. "todos"
	label   string // user-facing list name for error messages
	policy  insertPolicy
	items   func(domain.Goal) []T
	touch   func(*T, domain.Timestamp)
	reorder func([]T) // contiguous renumbering; nil for unordered lists
}

// ─── Operations ─────────────────────────────────────────────────────────────

// add synthesizes a new entity via build (which receives a fresh id and
// the creation timestamp), inserts it per policy, and writes the whole
// list back. Returns the created entity.
func (c *core[T]) add(ctx context.Context, userID, goalID string, build func(id string, now domain.Timestamp) T) (T, error) {
	var zero T
	goal, err := c.locate(ctx, userID, goalID)
	if err != nil {
		observability.MutationFailures.WithLabelValues(c.name).Inc()
		return zero, err
	}

	item := build(uuid.NewString(), domain.Now())
	current := c.items(goal)

	var next []T
	switch c.policy {
	case prependAndShift:
		next = make([]T, 0, len(current)+1)
		next = append(next, item)
		next = append(next, current...)
		c.reorder(next)
	default:
		next = make([]T, 0, len(current)+1)
		next = append(next, current...)
		next = append(next, item)
	}

	if err := c.write(ctx, userID, goalID, next, "add"); err != nil {
		return zero, err
	}
	return item, nil
}

// update merges changes into the item matching itemID and stamps its
// updatedAt. An absent itemID produces an unchanged list that is still
// written back; callers get no error for that case.
func (c *core[T]) update(ctx context.Context, userID, goalID, itemID string, apply func(*T, domain.Timestamp)) error {
	goal, err := c.locate(ctx, userID, goalID)
	if err != nil {
		observability.MutationFailures.WithLabelValues(c.name).Inc()
		return err
	}

	now := domain.Now()
	current := c.items(goal)
	next := make([]T, len(current))
	for i, it := range current {
		if it.ItemID() == itemID {
			apply(&it, now)
			c.touch(&it, now)
		}
		next[i] = it
	}
	return c.write(ctx, userID, goalID, next, "update")
}

// delete filters the item matching itemID out of the list. Deleting an
// absent id is a no-op, not an error.
func (c *core[T]) delete(ctx context.Context, userID, goalID, itemID string) error {
	goal, err := c.locate(ctx, userID, goalID)
	if err != nil {
		observability.MutationFailures.WithLabelValues(c.name).Inc()
		return err
	}

	current := c.items(goal)
	next := make([]T, 0, len(current))
	for _, it := range current {
		if it.ItemID() != itemID {
			next = append(next, it)
		}
	}
	return c.write(ctx, userID, goalID, next, "delete")
}

// replace writes the caller's full list verbatim after stamping
// updatedAt on every item. No fetch, no validation of order or
// uniqueness: the caller owns the list's shape. This backs reorder.
func (c *core[T]) replace(ctx context.Context, userID, goalID string, list []T) error {
	now := domain.Now()
	stamped := make([]T, len(list))
	for i, it := range list {
		c.touch(&it, now)
		stamped[i] = it
	}
	return c.write(ctx, userID, goalID, stamped, "reorder")
}

// ─── Internals ──────────────────────────────────────────────────────────────

func (c *core[T]) locate(ctx context.Context, userID, goalID string) (domain.Goal, error) {
	state, err := c.states.Fetch(ctx, userID)
	if err != nil {
		return domain.Goal{}, err
	}
	return c.states.Locate(state, goalID)
}

func (c *core[T]) write(ctx context.Context, userID, goalID string, list []T, op string) error {
	fields := map[string]any{domain.GoalField(goalID, c.field): list}
	if err := c.store.Update(ctx, userID, fields); err != nil {
		observability.MutationFailures.WithLabelValues(c.name).Inc()
		c.log.Error("list write failed", "list", c.name, "op", op, "goal_id", goalID, "err", err)
		return domain.StoreWrite("Failed to update "+c.label+".", err)
	}
	observability.ListMutations.WithLabelValues(c.name, op).Inc()
	c.log.Debug("list written", "list", c.name, "op", op, "goal_id", goalID, "len", len(list))
	return nil
}
