package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Empty(t *testing.T) {
	ve := NewValidationError()

	assert.False(t, ve.HasErrors())
	assert.Equal(t, "validation error", ve.Error())
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())
}

func TestValidationError_SingleError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	assert.True(t, ve.HasErrors())
	assert.Contains(t, ve.Error(), "validation error for field 'name'")
	assert.Equal(t, "name is required", ve.GetUserFriendlyMessage())
}

func TestValidationError_MultipleErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")
	ve.AddInvalidValueError("work_item_id", int64(-1), "must be a positive integer")

	assert.True(t, ve.HasErrors())
	assert.Contains(t, ve.Error(), "multiple validation errors")
	assert.Contains(t, ve.GetUserFriendlyMessage(), "Multiple validation errors occurred")
	assert.Contains(t, ve.GetUserFriendlyMessage(), "- name is required")
}

func TestValidationError_AddInvalidLengthError(t *testing.T) {
	tests := []struct {
		name     string
		min      int
		max      int
		expected string
	}{
		{"min and max", 1, 255, "name must be between 1 and 255 characters long"},
		{"min only", 2, 0, "name must be at least 2 characters long"},
		{"max only", 0, 10, "name must be at most 10 characters long"},
		{"neither", 0, 0, "name has invalid length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			ve.AddInvalidLengthError("name", "x", tt.min, tt.max)
			assert.Equal(t, tt.expected, ve.Errors[0].Message)
		})
	}
}

func TestGetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")
	ve.AddRequiredError("start_time")
	ve.AddInvalidValueError("name", "", "bad")

	nameErrors := ve.GetFieldErrors("name")
	assert.Len(t, nameErrors, 2)
	assert.Len(t, ve.GetFieldErrors("start_time"), 1)
	assert.Empty(t, ve.GetFieldErrors("missing"))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError()))
	assert.False(t, IsValidationError(assert.AnError))
	assert.False(t, IsValidationError(nil))
}
