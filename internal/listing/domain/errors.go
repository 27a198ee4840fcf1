package domain

import "errors"

var (
	// ErrUnauthenticated means no usable viewer identity was present where one is required.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the viewer is authenticated but is not the owner or lacks the role.
	ErrForbidden = errors.New("action forbidden")
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidStatus means a status string is outside the known taxonomy.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTransition means the status is known but not reachable from the current state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAccountNotActive blocks listing creation (and login) for non-active accounts.
	ErrAccountNotActive = errors.New("account is not active")
	// ErrImmutable means the listing is in a terminal state and cannot be edited.
	ErrImmutable = errors.New("listing can no longer be modified")
	// ErrConflict indicates a concurrent modification was detected via the version counter.
	ErrConflict = errors.New("conflict: listing was modified concurrently")

	ErrInvalidInput       = errors.New("invalid input data")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateName      = errors.New("name already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRepository         = errors.New("repository error")
)
