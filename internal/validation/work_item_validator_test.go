package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/domain"
)

func TestValidateName(t *testing.T) {
	wv := NewWorkItemValidator()

	tests := []struct {
		name       string
		input      string
		expectErr  bool
		errorField string
	}{
		{"valid name", "Writing report", false, ""},
		{"valid name with punctuation", "Client call (weekly)", false, ""},
		{"empty name", "", true, "name"},
		{"whitespace only", "   ", true, "name"},
		{"too long", strings.Repeat("a", 256), true, "name"},
		{"at max length", strings.Repeat("a", 255), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wv.ValidateName(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				ve, ok := err.(*ValidationError)
				require.True(t, ok)
				assert.NotEmpty(t, ve.GetFieldErrors(tt.errorField))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateForUpdate(t *testing.T) {
	wv := NewWorkItemValidator()

	assert.NoError(t, wv.ValidateForUpdate(1, "Renamed item"))

	err := wv.ValidateForUpdate(0, "Renamed item")
	require.Error(t, err)
	ve := err.(*ValidationError)
	assert.NotEmpty(t, ve.GetFieldErrors("work_item_id"))

	err = wv.ValidateForUpdate(0, "")
	require.Error(t, err)
	ve = err.(*ValidationError)
	assert.Len(t, ve.Errors, 2)
}

func TestValidateWorkItem(t *testing.T) {
	wv := NewWorkItemValidator()

	valid := domain.NewWorkItem("Writing report", time.Now())
	assert.NoError(t, wv.ValidateWorkItem(valid))

	invalid := domain.WorkItem{ID: 1, Name: ""}
	assert.Error(t, wv.ValidateWorkItem(invalid))
}

func TestWorkItemValidateID(t *testing.T) {
	wv := NewWorkItemValidator()

	assert.NoError(t, wv.ValidateID(1))
	assert.Error(t, wv.ValidateID(0))
	assert.Error(t, wv.ValidateID(-5))
}

func TestGetValidName(t *testing.T) {
	wv := NewWorkItemValidator()

	name, err := wv.GetValidName("  Writing report  ")
	require.NoError(t, err)
	assert.Equal(t, "Writing report", name)

	_, err = wv.GetValidName("   ")
	assert.Error(t, err)
}
