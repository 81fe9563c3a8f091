// Package quotes toggles starred-quote membership. Unlike the
// structured list mutators it never reads the aggregate: membership
// has no per-item metadata or ordering, so the atomic set primitives
// cover it without the read-modify-write discipline (and without its
// lost-update window — add and remove are commutative and idempotent).
// No existence check on the goal id is performed before writing.
package quotes

import (
	"context"

	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/observability"
)

// Service is the starred-quote set-membership mutator.
type Service struct {
	store domain.DocumentStore
	log   *logging.Logger
}

// New creates the starred-quote mutator.
func New(store domain.DocumentStore, log *logging.Logger) *Service {
	return &Service{store: store, log: log}
}

// Star adds quoteID to goals.<goalID>.starredQuotes with one atomic
// add-to-set call.
func (s *Service) Star(ctx context.Context, userID, goalID string, quoteID int64) error {
	path := domain.GoalField(goalID, domain.FieldStarredQuotes)
	if err := s.store.ArrayUnion(ctx, userID, path, quoteID); err != nil {
		s.log.Error("star quote failed", "goal_id", goalID, "quote_id", quoteID, "err", err)
		return domain.StoreWrite("Failed to star quote.", err)
	}
	observability.QuoteToggles.WithLabelValues("star").Inc()
	return nil
}

// Unstar removes quoteID from goals.<goalID>.starredQuotes with one
// atomic remove-from-set call.
func (s *Service) Unstar(ctx context.Context, userID, goalID string, quoteID int64) error {
	path := domain.GoalField(goalID, domain.FieldStarredQuotes)
	if err := s.store.ArrayRemove(ctx, userID, path, quoteID); err != nil {
		s.log.Error("unstar quote failed", "goal_id", goalID, "quote_id", quoteID, "err", err)
		return domain.StoreWrite("Failed to unstar quote.", err)
	}
	observability.QuoteToggles.WithLabelValues("unstar").Inc()
	return nil
}
