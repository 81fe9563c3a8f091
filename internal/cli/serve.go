package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aadilmughal786/one-goal-sub006/internal/api"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/lists"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/quotes"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/transfer"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/docstore"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/identity"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Start the onegoal daemon: open the document store and serve the API until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	db, err := docstore.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	srv := api.NewServer(buildServices(db, log), identity.New(cfg.Auth.Secret), log)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}
	if cfg.Auth.Secret == "" {
		log.Warn("auth secret is empty: running in insecure mode, credentials are taken as user ids")
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", cfg.Addr(), "store", cfg.Store.Path)
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// buildServices wires the application layer over one store handle.
func buildServices(db *docstore.DB, log *logging.Logger) api.Services {
	states := goalstate.New(db, log)
	return api.Services{
		States:        states,
		Todos:         lists.NewTodoService(states, db, log),
		Distractions:  lists.NewDistractionService(states, db, log),
		Notes:         lists.NewStickyNoteService(states, db, log),
		Subscriptions: lists.NewSubscriptionService(states, db, log),
		Assets:        lists.NewAssetService(states, db, log),
		Liabilities:   lists.NewLiabilityService(states, db, log),
		Quotes:        quotes.New(db, log),
		Transfer:      transfer.New(states, db, log),
	}
}
