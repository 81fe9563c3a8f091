package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

type fakeStore struct {
	doc       []byte
	getErr    error
	updateErr error
	writes    []map[string]any
}

func (f *fakeStore) Get(context.Context, string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeStore) Create(context.Context, string, []byte) error { return nil }

func (f *fakeStore) Update(_ context.Context, _ string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.writes = append(f.writes, fields)
	return nil
}

func (f *fakeStore) ArrayUnion(context.Context, string, string, any) error  { return nil }
func (f *fakeStore) ArrayRemove(context.Context, string, string, any) error { return nil }

func newService(store *fakeStore) *Service {
	return New(goalstate.New(store, logging.Nop()), store, logging.Nop())
}

func seed(t *testing.T, goals map[string]domain.Goal) []byte {
	t.Helper()
	raw, err := json.Marshal(domain.AppState{Goals: goals})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

// ─── Export ─────────────────────────────────────────────────────────────────

func TestExport_SortsOldestFirst(t *testing.T) {
	older := fullGoal(t)
	older.ID = "old"
	newer := fullGoal(t)
	newer.ID = "new"
	newer.CreatedAt = ts(t, "2025-01-01T00:00:00.000Z")

	store := &fakeStore{doc: seed(t, map[string]domain.Goal{"new": newer, "old": older})}
	out, err := newService(store).Export(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var plain []map[string]any
	if err := json.Unmarshal(out, &plain); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	if len(plain) != 2 {
		t.Fatalf("exported %d goals, want 2", len(plain))
	}
	if plain[0]["id"] != "old" || plain[1]["id"] != "new" {
		t.Errorf("order = [%v, %v], want [old, new]", plain[0]["id"], plain[1]["id"])
	}
	if got := plain[0]["createdAt"]; got != "2024-03-01T09:00:00.000Z" {
		t.Errorf("createdAt = %v, want ISO string", got)
	}
}

func TestExport_Indented(t *testing.T) {
	store := &fakeStore{doc: seed(t, map[string]domain.Goal{"g": fullGoal(t)})}
	out, err := newService(store).Export(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.HasPrefix(string(out), "[\n  {") {
		t.Error("export should be an indented JSON array")
	}
}

func TestExport_MissingUser(t *testing.T) {
	store := &fakeStore{getErr: domain.ErrUserDataNotFound}
	_, err := newService(store).Export(context.Background(), "u1")
	if !errors.Is(err, domain.ErrUserDataNotFound) {
		t.Errorf("error = %v, want ErrUserDataNotFound", err)
	}
}

// ─── Import ─────────────────────────────────────────────────────────────────

func TestImport_PersistsUnderFreshIDs(t *testing.T) {
	payload, err := json.Marshal(SerializeForExport([]domain.Goal{fullGoal(t)}))
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{}
	goals, err := newService(store).Import(context.Background(), "u1", payload)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("imported %d goals, want 1", len(goals))
	}
	if goals[0].ID == "goal-original" {
		t.Error("imported goal should not keep its exported id")
	}

	if len(store.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(store.writes))
	}
	wantPath := "goals." + goals[0].ID
	written, ok := store.writes[0][wantPath].(domain.Goal)
	if !ok {
		t.Fatalf("write should put a goal under %q, got %v", wantPath, store.writes[0])
	}
	if written.Name != "ship the thing" {
		t.Errorf("written Name = %q, want original name", written.Name)
	}
}

func TestImport_RejectionWritesNothing(t *testing.T) {
	store := &fakeStore{}
	_, err := newService(store).Import(context.Background(), "u1", []byte(`{"not":"an array"}`))
	if !errors.Is(err, domain.ErrImportValidation) {
		t.Errorf("error = %v, want ErrImportValidation", err)
	}
	if len(store.writes) != 0 {
		t.Errorf("writes = %d, want 0", len(store.writes))
	}
}

func TestImport_EmptyArrayWritesNothing(t *testing.T) {
	store := &fakeStore{}
	goals, err := newService(store).Import(context.Background(), "u1", []byte(`[]`))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(goals) != 0 || len(store.writes) != 0 {
		t.Errorf("goals = %v, writes = %d; want none", goals, len(store.writes))
	}
}

func TestImport_WriteFailure(t *testing.T) {
	payload, err := json.Marshal(SerializeForExport([]domain.Goal{fullGoal(t)}))
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{updateErr: errors.New("disk full")}
	_, err = newService(store).Import(context.Background(), "u1", payload)
	if !errors.Is(err, domain.ErrStoreWriteFailed) {
		t.Errorf("error = %v, want ErrStoreWriteFailed", err)
	}
	if got, want := domain.UserMessage(err), "Failed to import goals."; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}
