package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/lists"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
)

func goalParam(r *http.Request) string { return chi.URLParam(r, "goalID") }
func itemParam(r *http.Request) string { return chi.URLParam(r, "itemID") }

// ─── To-Dos ─────────────────────────────────────────────────────────────────

func (s *Server) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	var in lists.TodoInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	item, err := s.svc.Todos.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var p lists.TodoPatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Todos.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Todos.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderTodos(w http.ResponseWriter, r *http.Request) {
	var list []domain.TodoItem
	if err := decode(r, &list); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Todos.Reorder(r.Context(), userID(r), goalParam(r), list); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Distractions ───────────────────────────────────────────────────────────

func (s *Server) handleAddDistraction(w http.ResponseWriter, r *http.Request) {
	var in lists.DistractionInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	item, err := s.svc.Distractions.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateDistraction(w http.ResponseWriter, r *http.Request) {
	var p lists.DistractionPatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Distractions.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDistraction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Distractions.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Sticky Notes ───────────────────────────────────────────────────────────

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var in lists.StickyNoteInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	note, err := s.svc.Notes.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var p lists.StickyNotePatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Notes.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Notes.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Finance ────────────────────────────────────────────────────────────────

func (s *Server) handleAddSubscription(w http.ResponseWriter, r *http.Request) {
	var in lists.SubscriptionInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	sub, err := s.svc.Subscriptions.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var p lists.SubscriptionPatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Subscriptions.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Subscriptions.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	var in lists.AssetInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	asset, err := s.svc.Assets.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var p lists.AssetPatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Assets.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Assets.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddLiability(w http.ResponseWriter, r *http.Request) {
	var in lists.LiabilityInput
	if err := decode(r, &in); err != nil {
		badRequest(w)
		return
	}
	liability, err := s.svc.Liabilities.Add(r.Context(), userID(r), goalParam(r), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, liability)
}

func (s *Server) handleUpdateLiability(w http.ResponseWriter, r *http.Request) {
	var p lists.LiabilityPatch
	if err := decode(r, &p); err != nil {
		badRequest(w)
		return
	}
	if err := s.svc.Liabilities.Update(r.Context(), userID(r), goalParam(r), itemParam(r), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Liabilities.Delete(r.Context(), userID(r), goalParam(r), itemParam(r)); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Starred Quotes ─────────────────────────────────────────────────────────

func quoteParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Quote id must be an integer.")
		return 0, false
	}
	return id, true
}

func (s *Server) handleStarQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := quoteParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.Quotes.Star(r.Context(), userID(r), goalParam(r), quoteID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnstarQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := quoteParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.Quotes.Unstar(r.Context(), userID(r), goalParam(r), quoteID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
