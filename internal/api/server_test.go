package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/lists"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/quotes"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/transfer"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/docstore"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/identity"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// setupServer wires the full stack against a real SQLite store. The
// identity provider runs in insecure mode: the bearer credential IS the
// user id, which keeps requests readable.
func setupServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logging.Nop()
	states := goalstate.New(db, log)
	srv := NewServer(Services{
		States:        states,
		Todos:         lists.NewTodoService(states, db, log),
		Distractions:  lists.NewDistractionService(states, db, log),
		Notes:         lists.NewStickyNoteService(states, db, log),
		Subscriptions: lists.NewSubscriptionService(states, db, log),
		Assets:        lists.NewAssetService(states, db, log),
		Liabilities:   lists.NewLiabilityService(states, db, log),
		Quotes:        quotes.New(db, log),
		Transfer:      transfer.New(states, db, log),
	}, identity.New(""), log)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
}

// initUser creates the user document and one goal, returning the goal id.
func initUser(t *testing.T, h http.Handler, user string) string {
	t.Helper()
	if w := do(t, h, http.MethodPost, "/api/state/init", user, nil); w.Code != http.StatusOK {
		t.Fatalf("init: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w := do(t, h, http.MethodPost, "/api/goals", user, map[string]any{"name": "ship v1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create goal: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var goal domain.Goal
	decodeBody(t, w, &goal)
	return goal.ID
}

// ─── Auth ───────────────────────────────────────────────────────────────────

func TestAPI_RequiresCredential(t *testing.T) {
	h := setupServer(t)

	w := do(t, h, http.MethodGet, "/api/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var resp map[string]map[string]any
	decodeBody(t, w, &resp)
	if resp["error"]["message"] != "No authenticated user found to update profile." {
		t.Errorf("message = %v", resp["error"]["message"])
	}
}

func TestAPI_HealthIsPublic(t *testing.T) {
	h := setupServer(t)
	if w := do(t, h, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ─── State Lifecycle ────────────────────────────────────────────────────────

func TestAPI_InitIsIdempotent(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")

	// Re-init must not wipe the goal.
	w := do(t, h, http.MethodPost, "/api/state/init", "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var state domain.AppState
	decodeBody(t, w, &state)
	if _, ok := state.Goals[goalID]; !ok {
		t.Error("re-init should return the existing state with its goals")
	}
}

func TestAPI_StateBeforeInitIs404(t *testing.T) {
	h := setupServer(t)
	w := do(t, h, http.MethodGet, "/api/state", "nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_ActiveGoalRoundTrip(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")

	if w := do(t, h, http.MethodPut, "/api/state/active-goal", "alice",
		map[string]any{"goalId": goalID}); w.Code != http.StatusNoContent {
		t.Fatalf("set active: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if state.ActiveGoalID == nil || *state.ActiveGoalID != goalID {
		t.Errorf("ActiveGoalID = %v, want %s", state.ActiveGoalID, goalID)
	}

	// Clearing.
	if w := do(t, h, http.MethodPut, "/api/state/active-goal", "alice",
		map[string]any{"goalId": nil}); w.Code != http.StatusNoContent {
		t.Fatalf("clear active: expected 204, got %d", w.Code)
	}
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if state.ActiveGoalID != nil {
		t.Errorf("ActiveGoalID = %v, want nil", state.ActiveGoalID)
	}
}

func TestAPI_SetActiveGoalUnknownIs404(t *testing.T) {
	h := setupServer(t)
	initUser(t, h, "alice")

	w := do(t, h, http.MethodPut, "/api/state/active-goal", "alice",
		map[string]any{"goalId": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp map[string]map[string]any
	decodeBody(t, w, &resp)
	if resp["error"]["message"] != "Goal with ID ghost not found." {
		t.Errorf("message = %v", resp["error"]["message"])
	}
}

func TestAPI_ProfilePatch(t *testing.T) {
	h := setupServer(t)
	initUser(t, h, "alice")

	w := do(t, h, http.MethodPatch, "/api/profile", "alice",
		map[string]any{"displayName": "Alice"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if state.Profile.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q, want Alice", state.Profile.DisplayName)
	}
	if state.Profile.UpdatedAt == nil {
		t.Error("profile updatedAt should be stamped")
	}
}

// ─── Goals and Sub-lists ────────────────────────────────────────────────────

func TestAPI_TodoLifecycle(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")
	base := fmt.Sprintf("/api/goals/%s/todos", goalID)

	// Two adds: the second lands at order 0 and shifts the first.
	w := do(t, h, http.MethodPost, base, "alice", map[string]any{"text": "first"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var first domain.TodoItem
	decodeBody(t, w, &first)

	w = do(t, h, http.MethodPost, base, "alice", map[string]any{"text": "second"})
	var second domain.TodoItem
	decodeBody(t, w, &second)

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	list := state.Goals[goalID].ToDoList
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].ID != second.ID || list[0].Order != 0 {
		t.Errorf("head = {%s, %d}, want {%s, 0}", list[0].ID, list[0].Order, second.ID)
	}
	if list[1].ID != first.ID || list[1].Order != 1 {
		t.Errorf("tail = {%s, %d}, want {%s, 1}", list[1].ID, list[1].Order, first.ID)
	}

	// Complete the first task.
	w = do(t, h, http.MethodPatch, base+"/"+first.ID, "alice", map[string]any{"completed": true})
	if w.Code != http.StatusNoContent {
		t.Fatalf("patch: expected 204, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	done := state.Goals[goalID].ToDoList[1]
	if !done.Completed || done.CompletedAt == nil {
		t.Errorf("completed = %v, completedAt = %v", done.Completed, done.CompletedAt)
	}

	// Reorder: swap.
	reordered := []domain.TodoItem{state.Goals[goalID].ToDoList[1], state.Goals[goalID].ToDoList[0]}
	reordered[0].Order, reordered[1].Order = 0, 1
	w = do(t, h, http.MethodPut, base+"/order", "alice", reordered)
	if w.Code != http.StatusNoContent {
		t.Fatalf("reorder: expected 204, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if got := state.Goals[goalID].ToDoList[0].ID; got != first.ID {
		t.Errorf("head after reorder = %s, want %s", got, first.ID)
	}

	// Delete.
	if w := do(t, h, http.MethodDelete, base+"/"+second.ID, "alice", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if len(state.Goals[goalID].ToDoList) != 1 {
		t.Errorf("list length = %d, want 1", len(state.Goals[goalID].ToDoList))
	}
}

func TestAPI_MissingGoalIs404(t *testing.T) {
	h := setupServer(t)
	initUser(t, h, "alice")

	w := do(t, h, http.MethodPost, "/api/goals/ghost/todos", "alice", map[string]any{"text": "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_FinanceSubscription(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")
	base := fmt.Sprintf("/api/goals/%s/finance/subscriptions", goalID)

	w := do(t, h, http.MethodPost, base, "alice", map[string]any{"name": "Gym", "amount": 29.99})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var sub domain.Subscription
	decodeBody(t, w, &sub)
	if sub.BillingCycle != domain.CycleMonthly {
		t.Errorf("BillingCycle = %q, want monthly", sub.BillingCycle)
	}

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	goal := state.Goals[goalID]
	if goal.FinanceData == nil || len(goal.FinanceData.Subscriptions) != 1 {
		t.Fatal("financeData.subscriptions should hold the new entry")
	}
}

func TestAPI_StarUnstarQuote(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")
	path := fmt.Sprintf("/api/goals/%s/quotes/42", goalID)

	if w := do(t, h, http.MethodPut, path, "alice", nil); w.Code != http.StatusNoContent {
		t.Fatalf("star: expected 204, got %d: %s", w.Code, w.Body.String())
	}
	// Idempotent.
	do(t, h, http.MethodPut, path, "alice", nil)

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if got := state.Goals[goalID].StarredQuotes; len(got) != 1 || got[0] != 42 {
		t.Errorf("StarredQuotes = %v, want [42]", got)
	}

	if w := do(t, h, http.MethodDelete, path, "alice", nil); w.Code != http.StatusNoContent {
		t.Fatalf("unstar: expected 204, got %d", w.Code)
	}
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if got := state.Goals[goalID].StarredQuotes; len(got) != 0 {
		t.Errorf("StarredQuotes = %v, want empty", got)
	}
}

func TestAPI_QuoteIDMustBeInteger(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")

	w := do(t, h, http.MethodPut, fmt.Sprintf("/api/goals/%s/quotes/nope", goalID), "alice", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAPI_DeleteGoalClearsActive(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")
	do(t, h, http.MethodPut, "/api/state/active-goal", "alice", map[string]any{"goalId": goalID})

	if w := do(t, h, http.MethodDelete, "/api/goals/"+goalID, "alice", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "alice", nil), &state)
	if len(state.Goals) != 0 {
		t.Errorf("goals = %v, want empty", state.Goals)
	}
	if state.ActiveGoalID != nil {
		t.Errorf("ActiveGoalID = %v, want nil", state.ActiveGoalID)
	}
}

// ─── Transfer ───────────────────────────────────────────────────────────────

func TestAPI_ExportImportRoundTrip(t *testing.T) {
	h := setupServer(t)
	goalID := initUser(t, h, "alice")
	do(t, h, http.MethodPost, fmt.Sprintf("/api/goals/%s/todos", goalID), "alice",
		map[string]any{"text": "carry me over"})

	w := do(t, h, http.MethodGet, "/api/export", "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	exported := w.Body.Bytes()

	// Import into a different user.
	do(t, h, http.MethodPost, "/api/state/init", "bob", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	req.Header.Set("Authorization", "Bearer bob")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var state domain.AppState
	decodeBody(t, do(t, h, http.MethodGet, "/api/state", "bob", nil), &state)
	if len(state.Goals) != 1 {
		t.Fatalf("bob's goals = %d, want 1", len(state.Goals))
	}
	for id, goal := range state.Goals {
		if id == goalID {
			t.Error("imported goal must get a fresh id")
		}
		if goal.Name != "ship v1" || len(goal.ToDoList) != 1 {
			t.Errorf("imported goal = %+v, want name and todos preserved", goal)
		}
	}
}

func TestAPI_ImportRejectionIs400(t *testing.T) {
	h := setupServer(t)
	initUser(t, h, "alice")

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader([]byte(`{"no":"array"}`)))
	req.Header.Set("Authorization", "Bearer alice")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
