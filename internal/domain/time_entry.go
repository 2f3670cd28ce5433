package domain

import (
	"time"
)

// TimeEntry represents one timed session against a work item.
// An entry with a nil EndTime is a running timer. DurationSeconds is only
// set once the entry is closed and is always derived from the stored
// timestamps, never from anything the browser reports.
type TimeEntry struct {
	ID              int64
	WorkItemID      int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int64
}

// NewTimeEntry creates a new running TimeEntry for the given work item.
func NewTimeEntry(workItemID int64, startTime time.Time) TimeEntry {
	return TimeEntry{
		WorkItemID: workItemID,
		StartTime:  startTime,
	}
}

// IsRunning returns true if the time entry is currently running (no end time).
func (te TimeEntry) IsRunning() bool {
	return te.EndTime == nil
}

// Stop closes the time entry at the given end time and derives the duration.
func (te TimeEntry) Stop(endTime time.Time) TimeEntry {
	te.EndTime = &endTime
	seconds := int64(endTime.Sub(te.StartTime).Seconds())
	te.DurationSeconds = &seconds
	return te
}

// Duration returns the duration of the time entry.
// If the entry is still running, it returns the duration up to now.
func (te TimeEntry) Duration() time.Duration {
	if te.EndTime == nil {
		return time.Since(te.StartTime)
	}
	return te.EndTime.Sub(te.StartTime)
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.WorkItemID <= 0 {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime != nil && te.EndTime.Before(te.StartTime) {
		return false
	}
	return true
}
