package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// DocumentStore abstracts the per-user key-document store. One JSON
// document per user id; dot-path partial updates; atomic set
// primitives for array-of-primitive fields. There is no cross-field
// transaction guarantee between calls — each call is atomic on its own.
type DocumentStore interface {
	// Get returns the raw aggregate document, or ErrUserDataNotFound.
	Get(ctx context.Context, userID string) ([]byte, error)

	// Create stores a fresh document, or ErrDocumentExists.
	Create(ctx context.Context, userID string, doc []byte) error

	// Update replaces the value at every dot-path in fields, in one
	// atomic write. Missing intermediate objects are created; sibling
	// fields are untouched.
	Update(ctx context.Context, userID string, fields map[string]any) error

	// ArrayUnion atomically adds value to the set-valued field at
	// fieldPath if not already present.
	ArrayUnion(ctx context.Context, userID, fieldPath string, value any) error

	// ArrayRemove atomically removes every occurrence of value from the
	// set-valued field at fieldPath.
	ArrayRemove(ctx context.Context, userID, fieldPath string, value any) error
}

// IdentityProvider abstracts the authentication layer: it yields the
// current user id or ErrNoAuthenticatedUser. Sign-in itself is an
// external concern.
type IdentityProvider interface {
	UserID(ctx context.Context, credential string) (string, error)
}
