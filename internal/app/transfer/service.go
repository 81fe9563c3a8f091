package transfer

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/observability"
)

// Service exports the goals collection as a file and persists imported
// goals back into the aggregate document.
type Service struct {
	states *goalstate.Service
	store  domain.DocumentStore
	log    *logging.Logger
}

// New creates the transfer service.
func New(states *goalstate.Service, store domain.DocumentStore, log *logging.Logger) *Service {
	return &Service{states: states, store: store, log: log}
}

// Export renders the user's goals, oldest first, as an indented JSON
// array with ISO-8601 timestamps.
func (s *Service) Export(ctx context.Context, userID string) ([]byte, error) {
	state, err := s.states.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(state.Goals))
	for _, g := range state.Goals {
		goals = append(goals, g)
	}
	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].CreatedAt.Equal(goals[j].CreatedAt.Time) {
			return goals[i].CreatedAt.Before(goals[j].CreatedAt.Time)
		}
		return goals[i].ID < goals[j].ID
	})

	out, err := json.MarshalIndent(SerializeForExport(goals), "", "  ")
	if err != nil {
		return nil, domain.StoreRead("Failed to export goals.", err)
	}
	observability.GoalsExported.Add(float64(len(goals)))
	s.log.Info("goals exported", "user_id", userID, "count", len(goals))
	return out, nil
}

// Import validates and deserializes raw, then persists each goal under
// its freshly generated id in one partial write. Returns the goals as
// persisted.
func (s *Service) Import(ctx context.Context, userID string, raw []byte) ([]domain.Goal, error) {
	goals, err := DeserializeForImport(raw)
	if err != nil {
		observability.ImportRejections.Inc()
		s.log.Warn("import rejected", "user_id", userID, "err", err)
		return nil, err
	}
	if len(goals) == 0 {
		return goals, nil
	}

	fields := make(map[string]any, len(goals))
	for _, g := range goals {
		fields[domain.GoalPath(g.ID)] = g
	}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		return nil, domain.StoreWrite("Failed to import goals.", err)
	}
	observability.GoalsImported.Add(float64(len(goals)))
	s.log.Info("goals imported", "user_id", userID, "count", len(goals))
	return goals, nil
}
