package services

import (
	"errors"

	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// Error kinds. Every error returned by this package matches exactly one of
// them under errors.Is.
var (
	// ErrUnauthenticated means the caller has no resolved identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound means a referenced post, comment or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller does not own the target.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument means the input was empty or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is a uniqueness race. The toggles absorb it.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable means the store failed or timed out. Safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error is the structured failure returned by every service operation.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op string, kind error, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// storeError classifies an error coming back from the store. Errors already
// classified inside a transaction callback pass through untouched.
func storeError(op string, err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return newError(op, ErrNotFound, err)
	case errors.Is(err, repositories.ErrConflict):
		return newError(op, ErrConflict, err)
	default:
		return newError(op, ErrStoreUnavailable, err)
	}
}

var (
	errEmptyPost    = errors.New("post needs content or an image")
	errEmptyComment = errors.New("comment body is empty")
	errSelfFollow   = errors.New("users cannot follow themselves")
)
