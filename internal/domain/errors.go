package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories and services when an entity does not exist
// (or belongs to another organization).
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

func NewNotFound(entity, id string) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(message string) error {
	return ValidationError{Message: message}
}

// PermissionError represents insufficient permissions for an operation
type PermissionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *PermissionError) Error() string {
	return e.Message
}

func NewPermissionError(message string) *PermissionError {
	return &PermissionError{Code: "forbidden", Message: message}
}

// NewPlanLimitError is a PermissionError raised when a plan quota is exhausted.
func NewPlanLimitError(resource string, limit int) *PermissionError {
	return &PermissionError{
		Code:    "plan_limit_reached",
		Message: fmt.Sprintf("plan limit reached for %s (%d)", resource, limit),
	}
}

// ConflictError covers uniqueness violations and invalid state transitions.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrUserNotFound   = errors.New("user not found")
	ErrRateLimited    = errors.New("too many requests")

	ErrInsufficientPermissions = NewPermissionError("Insufficient permissions")
)

// ErrInvalidStatusTransition reports a state change that is not allowed from the current status.
func ErrInvalidStatusTransition(entity string, from, to string) error {
	return &ConflictError{Message: fmt.Sprintf("cannot change %s status from %s to %s", entity, from, to)}
}

func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}
