// Package api provides the HTTP server for the one-goal service: the
// aggregate state endpoints, the per-goal sub-list mutations, and the
// export/import surface. All /api routes require a bearer credential.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/lists"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/quotes"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/transfer"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/identity"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// Version is the API version string reported by /api/version.
const Version = "0.1.0"

// Services bundles the application services the server routes to.
type Services struct {
	States        *goalstate.Service
	Todos         *lists.TodoService
	Distractions  *lists.DistractionService
	Notes         *lists.StickyNoteService
	Subscriptions *lists.SubscriptionService
	Assets        *lists.AssetService
	Liabilities   *lists.LiabilityService
	Quotes        *quotes.Service
	Transfer      *transfer.Service
}

// Server is the HTTP API server.
type Server struct {
	svc            Services
	identity       *identity.Provider
	log            *logging.Logger
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(svc Services, ident *identity.Provider, log *logging.Logger) *Server {
	return &Server{svc: svc, identity: ident, log: log}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/state/init", s.handleInitState)
		r.Get("/state", s.handleGetState)
		r.Put("/state/active-goal", s.handleSetActiveGoal)
		r.Patch("/profile", s.handleUpdateProfile)

		r.Post("/goals", s.handleCreateGoal)
		r.Delete("/goals/{goalID}", s.handleDeleteGoal)

		r.Route("/goals/{goalID}", func(r chi.Router) {
			r.Post("/todos", s.handleAddTodo)
			r.Patch("/todos/{itemID}", s.handleUpdateTodo)
			r.Delete("/todos/{itemID}", s.handleDeleteTodo)
			r.Put("/todos/order", s.handleReorderTodos)

			r.Post("/distractions", s.handleAddDistraction)
			r.Patch("/distractions/{itemID}", s.handleUpdateDistraction)
			r.Delete("/distractions/{itemID}", s.handleDeleteDistraction)

			r.Post("/notes", s.handleAddNote)
			r.Patch("/notes/{itemID}", s.handleUpdateNote)
			r.Delete("/notes/{itemID}", s.handleDeleteNote)

			r.Post("/finance/subscriptions", s.handleAddSubscription)
			r.Patch("/finance/subscriptions/{itemID}", s.handleUpdateSubscription)
			r.Delete("/finance/subscriptions/{itemID}", s.handleDeleteSubscription)
			r.Post("/finance/assets", s.handleAddAsset)
			r.Patch("/finance/assets/{itemID}", s.handleUpdateAsset)
			r.Delete("/finance/assets/{itemID}", s.handleDeleteAsset)
			r.Post("/finance/liabilities", s.handleAddLiability)
			r.Patch("/finance/liabilities/{itemID}", s.handleUpdateLiability)
			r.Delete("/finance/liabilities/{itemID}", s.handleDeleteLiability)

			r.Put("/quotes/{quoteID}", s.handleStarQuote)
			r.Delete("/quotes/{quoteID}", s.handleUnstarQuote)
		})

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	return r
}

// ─── Identity ───────────────────────────────────────────────────────────────

type ctxKey int

const userIDKey ctxKey = iota

// authenticate resolves the bearer credential to a user id and stores
// it on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		userID, err := s.identity.UserID(r.Context(), cred)
		if err != nil {
			writeError(w, http.StatusUnauthorized, domain.UserMessage(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// userID returns the authenticated user id from the request context.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// ─── Response Helpers ───────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// fail maps a service error to its HTTP status and writes the
// user-facing message.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrGoalNotFound), errors.Is(err, domain.ErrUserDataNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrImportValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoAuthenticatedUser):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	writeError(w, status, domain.UserMessage(err))
}

// decode reads the request body into v.
func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// badRequest reports an unreadable request body.
func badRequest(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "Invalid request body.")
}

// corsMiddleware adds CORS headers for the web client.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
