package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Error kinds are pure — no infrastructure dependency. Callers match
// them with errors.Is; the user-facing message travels on ServiceError.

var (
	// Aggregate errors
	ErrUserDataNotFound = errors.New("user data not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrDocumentExists   = errors.New("user document already exists")

	// Identity errors
	ErrNoAuthenticatedUser = errors.New("no authenticated user")

	// Store errors
	ErrStoreReadFailed  = errors.New("store read failed")
	ErrStoreWriteFailed = errors.New("store write failed")

	// Transfer errors
	ErrImportValidation = errors.New("import validation failed")
)

// ─── ServiceError ───────────────────────────────────────────────────────────

// ServiceError is the single error shape that crosses a public mutator
// boundary: one sentinel kind, one fixed user-presentable message, and
// the underlying cause retained for logging only.
type ServiceError struct {
	Kind    error
	Message string
	Cause   error
}

// Error returns the user-facing message; the cause is appended so logs
// keep the detail, callers should present Message only.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is reports whether target matches this error's kind.
func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Unwrap exposes the inner cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// UserMessage extracts the short presentable message from any error
// produced by a mutator boundary.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// ─── Constructors ───────────────────────────────────────────────────────────

// UserDataNotFound reports a missing aggregate document.
func UserDataNotFound() error {
	return &ServiceError{Kind: ErrUserDataNotFound, Message: "User data not found."}
}

// GoalNotFound reports a goal id absent from the aggregate's goal map.
func GoalNotFound(goalID string) error {
	return &ServiceError{
		Kind:    ErrGoalNotFound,
		Message: fmt.Sprintf("Goal with ID %s not found.", goalID),
	}
}

// NoAuthenticatedUser reports a profile-style mutation with no identity.
func NoAuthenticatedUser() error {
	return &ServiceError{
		Kind:    ErrNoAuthenticatedUser,
		Message: "No authenticated user found to update profile.",
	}
}

// StoreWrite wraps an underlying persistence failure on a write path.
func StoreWrite(message string, cause error) error {
	return &ServiceError{Kind: ErrStoreWriteFailed, Message: message, Cause: cause}
}

// StoreRead wraps an underlying persistence failure on a read path.
func StoreRead(message string, cause error) error {
	return &ServiceError{Kind: ErrStoreReadFailed, Message: message, Cause: cause}
}

// ImportValidation reports a malformed import payload.
func ImportValidation(message string, cause error) error {
	return &ServiceError{Kind: ErrImportValidation, Message: message, Cause: cause}
}
