package api

import (
	"net/http"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
)

// ─── Aggregate State ────────────────────────────────────────────────────────

// handleInitState creates the per-user document on first login. Calling
// it again returns the existing state unchanged.
func (s *Server) handleInitState(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.States.Initialize(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.States.Fetch(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleSetActiveGoal points activeGoalId at a goal; a null goalId
// clears the pointer.
func (s *Server) handleSetActiveGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GoalID *string `json:"goalId"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.States.SetActiveGoal(r.Context(), userID(r), body.GoalID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DisplayName *string `json:"displayName"`
		PhotoURL    *string `json:"photoURL"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w)
		return
	}
	patch := goalstate.ProfilePatch{DisplayName: body.DisplayName, PhotoURL: body.PhotoURL}
	if err := s.svc.States.UpdateProfile(r.Context(), userID(r), patch); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		StartDate   domain.Timestamp `json:"startDate"`
		EndDate     domain.Timestamp `json:"endDate"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w)
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Goal name is required.")
		return
	}
	goal, err := s.svc.States.CreateGoal(r.Context(), userID(r), goalstate.GoalInput{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.States.DeleteGoal(r.Context(), userID(r), goalParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
