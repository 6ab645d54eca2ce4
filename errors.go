package uce

import "github.com/ghettovoice/gouce/internal/errorutil"

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
)

// Manager errors.
const (
	// ErrManagerClosed is returned when attempting to use a closed manager.
	ErrManagerClosed Error = "request manager closed"
	// ErrRequestForbidden is returned while the network forbids capability requests.
	ErrRequestForbidden Error = "capability request forbidden by the network"
)

// Coordinator errors.
const (
	// ErrCoordinatorFinished is returned when an operation hits an already finished coordinator.
	ErrCoordinatorFinished Error = "request coordinator finished"
	// ErrRequestNotFound is returned when no active sub-request matches a task id.
	ErrRequestNotFound Error = "request not found"
)

// Error represents a UCE error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
