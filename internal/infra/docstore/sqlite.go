// Package docstore implements the per-user document store on SQLite.
// One row per user holding the whole aggregate document as JSON.
// Dot-path updates and the array-set primitives each run inside a
// single IMMEDIATE transaction, so every store call is atomic on its
// own; there is deliberately no cross-call transaction or version
// token (see DESIGN.md on the accepted lost-update race).
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/observability"
)

// DB is the SQLite-backed document store.
type DB struct {
	db *sql.DB
}

// migrations returns the schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS user_documents (
			user_id    TEXT PRIMARY KEY,
			doc        TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}

// Open opens (or creates) the store at path and applies migrations.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	// A single writer keeps dot-path read-modify-write atomic.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// ─── Document Operations ────────────────────────────────────────────────────

// Get returns the raw aggregate document for userID.
func (d *DB) Get(ctx context.Context, userID string) ([]byte, error) {
	var doc []byte
	err := d.db.QueryRowContext(ctx, `
		SELECT doc FROM user_documents WHERE user_id = ?
	`, userID).Scan(&doc)
	if err == sql.ErrNoRows {
		observability.StoreReads.WithLabelValues("miss").Inc()
		return nil, domain.ErrUserDataNotFound
	}
	if err != nil {
		observability.StoreReads.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.StoreReads.WithLabelValues("hit").Inc()
	return doc, nil
}

// Create stores a fresh document for userID.
func (d *DB) Create(ctx context.Context, userID string, doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("document for %q is not valid JSON", userID)
	}
	res, err := d.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_documents (user_id, doc) VALUES (?, ?)
	`, userID, string(doc))
	if err != nil {
		observability.StoreWrites.WithLabelValues("create", "error").Inc()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDocumentExists
	}
	observability.StoreWrites.WithLabelValues("create", "ok").Inc()
	return nil
}

// Update replaces the value at every dot-path in fields, in one
// transaction. The document must already exist.
func (d *DB) Update(ctx context.Context, userID string, fields map[string]any) error {
	err := d.mutate(ctx, userID, func(tree map[string]any) error {
		for path, value := range fields {
			normalized, err := valueTree(value)
			if err != nil {
				return err
			}
			if err := setPath(tree, path, normalized); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		observability.StoreWrites.WithLabelValues("update", "error").Inc()
		return err
	}
	observability.StoreWrites.WithLabelValues("update", "ok").Inc()
	return nil
}

// ArrayUnion atomically adds value to the array at fieldPath if absent.
// An absent or null field becomes a one-element array.
func (d *DB) ArrayUnion(ctx context.Context, userID, fieldPath string, value any) error {
	err := d.mutate(ctx, userID, func(tree map[string]any) error {
		member, err := valueTree(value)
		if err != nil {
			return err
		}
		arr := arrayAt(tree, fieldPath)
		for _, existing := range arr {
			if treeEqual(existing, member) {
				return nil
			}
		}
		return setPath(tree, fieldPath, append(arr, member))
	})
	if err != nil {
		observability.StoreWrites.WithLabelValues("array_union", "error").Inc()
		return err
	}
	observability.StoreWrites.WithLabelValues("array_union", "ok").Inc()
	return nil
}

// ArrayRemove atomically removes every occurrence of value from the
// array at fieldPath. Removing from an absent field is a no-op that
// leaves an empty array.
func (d *DB) ArrayRemove(ctx context.Context, userID, fieldPath string, value any) error {
	err := d.mutate(ctx, userID, func(tree map[string]any) error {
		member, err := valueTree(value)
		if err != nil {
			return err
		}
		arr := arrayAt(tree, fieldPath)
		kept := make([]any, 0, len(arr))
		for _, existing := range arr {
			if !treeEqual(existing, member) {
				kept = append(kept, existing)
			}
		}
		return setPath(tree, fieldPath, kept)
	})
	if err != nil {
		observability.StoreWrites.WithLabelValues("array_remove", "error").Inc()
		return err
	}
	observability.StoreWrites.WithLabelValues("array_remove", "ok").Inc()
	return nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

// mutate runs one read-transform-write cycle on the user's document
// inside an IMMEDIATE transaction.
func (d *DB) mutate(ctx context.Context, userID string, transform func(map[string]any) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx, `
		SELECT doc FROM user_documents WHERE user_id = ?
	`, userID).Scan(&doc)
	if err == sql.ErrNoRows {
		return domain.ErrUserDataNotFound
	}
	if err != nil {
		return err
	}

	tree, err := decodeTree(doc)
	if err != nil {
		return err
	}
	if err := transform(tree); err != nil {
		return err
	}

	next, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE user_documents SET doc = ?, updated_at = datetime('now') WHERE user_id = ?
	`, string(next), userID); err != nil {
		return err
	}
	return tx.Commit()
}

// arrayAt returns the array at path, or an empty one when the field is
// absent, null, or not an array.
func arrayAt(tree map[string]any, path string) []any {
	v, ok := getPath(tree, path)
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return arr
}
