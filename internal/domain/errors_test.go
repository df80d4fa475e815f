package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrNotFound(t *testing.T) {
	err := NewNotFound("contact", "c1")
	assert.Equal(t, "contact not found with ID: c1", err.Error())
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestPlanLimitError(t *testing.T) {
	err := NewPlanLimitError("contacts", 100)
	assert.Equal(t, "plan_limit_reached", err.Code)
	assert.Contains(t, err.Error(), "contacts")

	var perr *PermissionError
	assert.ErrorAs(t, fmt.Errorf("create: %w", err), &perr)
}

func TestConflictErrors(t *testing.T) {
	err := ErrInvalidStatusTransition("followup", "completed", "pending")
	assert.Equal(t, "cannot change followup status from completed to pending", err.Error())

	var conflict *ConflictError
	assert.ErrorAs(t, NewConflictError("contact with email %s already exists", "a@b.io"), &conflict)
	assert.Equal(t, "contact with email a@b.io already exists", conflict.Message)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name is required")
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation error: name is required", err.Error())
}
