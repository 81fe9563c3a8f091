// Package goalstate is the single read path over the aggregate
// document: fetch the whole per-user state, locate one goal inside it.
// Every structured-list mutator starts here; the starred-quote mutator
// is the one component that does not.
//
// It also owns the document-level operations: first-run initialization,
// goal create/delete, active-goal selection, and profile updates.
package goalstate

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// Service reads and maintains the aggregate document.
type Service struct {
	store domain.DocumentStore
	log   *logging.Logger
}

// New creates the aggregate state service.
func New(store domain.DocumentStore, log *logging.Logger) *Service {
	return &Service{store: store, log: log}
}

// ─── Read Path ──────────────────────────────────────────────────────────────

// Fetch loads the full aggregate document for userID.
func (s *Service) Fetch(ctx context.Context, userID string) (domain.AppState, error) {
	raw, err := s.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrUserDataNotFound) {
		return domain.AppState{}, domain.UserDataNotFound()
	}
	if err != nil {
		return domain.AppState{}, domain.StoreRead("Failed to load user data.", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.AppState{}, domain.StoreRead("Failed to load user data.", err)
	}
	if state.Goals == nil {
		state.Goals = map[string]domain.Goal{}
	}
	return state, nil
}

// Locate finds one goal by id inside a fetched state. Pure, no I/O.
func (s *Service) Locate(state domain.AppState, goalID string) (domain.Goal, error) {
	goal, ok := state.Goals[goalID]
	if !ok {
		return domain.Goal{}, domain.GoalNotFound(goalID)
	}
	return goal, nil
}

// ─── Document Lifecycle ─────────────────────────────────────────────────────

// Initialize creates an empty aggregate document for a first-time user.
// Re-initializing an existing user is a no-op returning current state.
func (s *Service) Initialize(ctx context.Context, userID string) (domain.AppState, error) {
	if userID == "" {
		return domain.AppState{}, domain.NoAuthenticatedUser()
	}

	fresh := domain.NewAppState()
	doc, err := domain.MarshalDocument(fresh)
	if err != nil {
		return domain.AppState{}, domain.StoreWrite("Failed to initialize user data.", err)
	}

	err = s.store.Create(ctx, userID, doc)
	if errors.Is(err, domain.ErrDocumentExists) {
		return s.Fetch(ctx, userID)
	}
	if err != nil {
		return domain.AppState{}, domain.StoreWrite("Failed to initialize user data.", err)
	}
	s.log.Info("user document initialized", "user_id", userID)
	return fresh, nil
}

// GoalInput carries the caller-supplied fields for a new goal.
type GoalInput struct {
	Name        string
	Description string
	StartDate   domain.Timestamp
	EndDate     domain.Timestamp
}

// CreateGoal synthesizes a new goal with empty sub-lists and persists
// it under goals.<id> in one partial write.
func (s *Service) CreateGoal(ctx context.Context, userID string, in GoalInput) (domain.Goal, error) {
	if _, err := s.Fetch(ctx, userID); err != nil {
		return domain.Goal{}, err
	}

	now := domain.Now()
	goal := domain.Goal{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        domain.StatusActive,
		DailyProgress: map[string]domain.DailyProgress{},
		ToDoList:      []domain.TodoItem{},
		NotToDoList:   []domain.DistractionItem{},
		StickyNotes:   []domain.StickyNote{},
		StarredQuotes: []int64{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	fields := map[string]any{domain.GoalPath(goal.ID): goal}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		return domain.Goal{}, domain.StoreWrite("Failed to create goal.", err)
	}
	s.log.Info("goal created", "user_id", userID, "goal_id", goal.ID)
	return goal, nil
}

// DeleteGoal removes a goal from the map, clearing the active-goal
// pointer when it referenced the deleted goal. One store call.
func (s *Service) DeleteGoal(ctx context.Context, userID, goalID string) error {
	state, err := s.Fetch(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.Locate(state, goalID); err != nil {
		return err
	}

	delete(state.Goals, goalID)
	fields := map[string]any{domain.PathGoals: state.Goals}
	if state.ActiveGoalID != nil && *state.ActiveGoalID == goalID {
		fields[domain.PathActiveGoal] = nil
	}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		return domain.StoreWrite("Failed to delete goal.", err)
	}
	s.log.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	return nil
}

// SetActiveGoal points activeGoalId at an existing goal, or clears it
// when goalID is nil.
func (s *Service) SetActiveGoal(ctx context.Context, userID string, goalID *string) error {
	if goalID != nil {
		state, err := s.Fetch(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := s.Locate(state, *goalID); err != nil {
			return err
		}
	}

	var value any
	if goalID != nil {
		value = *goalID
	}
	fields := map[string]any{domain.PathActiveGoal: value}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		return domain.StoreWrite("Failed to set active goal.", err)
	}
	return nil
}

// ─── Profile ────────────────────────────────────────────────────────────────

// ProfilePatch carries the optional profile fields to change.
type ProfilePatch struct {
	DisplayName *string
	PhotoURL    *string
}

// UpdateProfile applies a partial profile update. Fails with
// NoAuthenticatedUser when no identity was resolved.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error {
	if userID == "" {
		return domain.NoAuthenticatedUser()
	}

	fields := map[string]any{domain.PathProfileUpdatedAt: domain.Now()}
	if patch.DisplayName != nil {
		fields[domain.PathProfileDisplayName] = *patch.DisplayName
	}
	if patch.PhotoURL != nil {
		fields[domain.PathProfilePhotoURL] = *patch.PhotoURL
	}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		return domain.StoreWrite("Failed to update user profile.", err)
	}
	return nil
}
