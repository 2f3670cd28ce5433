package domain

import "time"

// WorkItem represents a named unit of work that time is tracked against.
// This is a pure domain model without database-specific concerns.
type WorkItem struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// NewWorkItem creates a new WorkItem with the given name.
func NewWorkItem(name string, createdAt time.Time) WorkItem {
	return WorkItem{
		Name:      name,
		CreatedAt: createdAt,
	}
}

// IsValid checks if the work item has valid data.
func (w WorkItem) IsValid() bool {
	return w.Name != ""
}

// String returns the work item name for display purposes.
func (w WorkItem) String() string {
	return w.Name
}
