package sqlite

import "time"

// WorkItem represents a row in the work_items table.
type WorkItem struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// TimeEntry represents a row in the time_entries table.
// EndTime and DurationSeconds are pointers to allow NULL values;
// both are NULL while the timer is running.
type TimeEntry struct {
	ID              int64
	WorkItemID      int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int64
}
