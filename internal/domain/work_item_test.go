package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkItem(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		itemName string
		expected WorkItem
	}{
		{
			name:     "creates work item with name",
			itemName: "Writing report",
			expected: WorkItem{Name: "Writing report", CreatedAt: createdAt},
		},
		{
			name:     "creates work item with empty name",
			itemName: "",
			expected: WorkItem{Name: "", CreatedAt: createdAt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewWorkItem(tt.itemName, createdAt)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWorkItem_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		item     WorkItem
		expected bool
	}{
		{
			name:     "valid item with name",
			item:     WorkItem{ID: 1, Name: "Internal project"},
			expected: true,
		},
		{
			name:     "invalid item with empty name",
			item:     WorkItem{ID: 1, Name: ""},
			expected: false,
		},
		{
			name:     "valid item with zero ID",
			item:     WorkItem{ID: 0, Name: "Training"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.IsValid())
		})
	}
}

func TestWorkItem_String(t *testing.T) {
	item := WorkItem{ID: 1, Name: "Some client"}
	assert.Equal(t, "Some client", item.String())
}
