package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNonEmptyString(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"non-empty string", "hello", true},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"tab and newline only", "\t\n", false},
		{"string with surrounding whitespace", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsNonEmptyString(tt.input))
		})
	}
}

func TestIsValidStringLength(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		min      int
		max      int
		expected bool
	}{
		{"within range", "hello", 1, 10, true},
		{"at minimum", "a", 1, 10, true},
		{"at maximum", "abcdefghij", 1, 10, true},
		{"too short", "", 1, 10, false},
		{"too long", "abcdefghijk", 1, 10, false},
		{"whitespace trimmed before counting", "  ab  ", 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsValidStringLength(tt.input, tt.min, tt.max))
		})
	}
}

func TestIsValidTimeRange(t *testing.T) {
	v := NewValidator()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	after := start.Add(time.Hour)
	before := start.Add(-time.Hour)

	tests := []struct {
		name     string
		start    time.Time
		end      *time.Time
		expected bool
	}{
		{"nil end time is valid", start, nil, true},
		{"end after start", start, &after, true},
		{"end equal to start", start, &start, true},
		{"end before start", start, &before, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsValidTimeRange(tt.start, tt.end))
		})
	}
}

func TestIsValidID(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidID(1))
	assert.True(t, v.IsValidID(9999))
	assert.False(t, v.IsValidID(0))
	assert.False(t, v.IsValidID(-1))
}

func TestIsReasonableDate(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsReasonableDate(time.Now()))
	assert.True(t, v.IsReasonableDate(time.Now().AddDate(-5, 0, 0)))
	assert.False(t, v.IsReasonableDate(time.Now().AddDate(-20, 0, 0)))
	assert.False(t, v.IsReasonableDate(time.Now().AddDate(2, 0, 0)))
	assert.False(t, v.IsReasonableDate(time.Time{}))
}

func TestTrimAndValidateString(t *testing.T) {
	v := NewValidator()

	assert.Equal(t, "hello", v.TrimAndValidateString("  hello  "))
	assert.Equal(t, "", v.TrimAndValidateString("   "))
}
