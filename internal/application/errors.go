package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/campus-events/internal/domain/repository"
)

var (
	ErrUserIDRequired        = errors.New("user id is required")
	ErrEventNotFound         = errors.New("event not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrClubNotFound          = errors.New("club not found")
	ErrAlreadyRegistered     = errors.New("user already registered for this event")
	ErrNotRegistered         = errors.New("user not registered for this event")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailDomainNotAllowed = errors.New("email domain not allowed")
	ErrEmailTaken            = errors.New("email already in use")
	ErrPosterStorageDisabled = errors.New("poster storage not configured")
)

// ValidationError carries a message meant for the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError wraps an unexpected failure from a repository call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// lookupErr translates a repository lookup failure: ErrNotFound becomes
// notFound, anything else is a StoreError.
func lookupErr(op string, err, notFound error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFound
	}
	return storeErr(op, err)
}
