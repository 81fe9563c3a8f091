package api

import (
	"io"
	"net/http"
)

// ─── Export / Import ────────────────────────────────────────────────────────

// handleExport streams the user's goals as a downloadable JSON file
// with ISO-8601 timestamps.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Transfer.Export(r.Context(), userID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="one-goal-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// maxImportBytes caps import payloads at 8 MiB.
const maxImportBytes = 8 << 20

// handleImport validates and persists an exported goals file. Every
// imported goal gets a fresh id.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		badRequest(w)
		return
	}
	goals, err := s.svc.Transfer.Import(r.Context(), userID(r), raw)
	if err != nil {
		s.fail(w, err)
		return
	}
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(goals),
		"goalIds":  ids,
	})
}
