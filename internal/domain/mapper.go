package domain

import (
	"timetracker/internal/repository/sqlite"
)

// WorkItemMapper handles conversion between domain and database WorkItem models.
type WorkItemMapper struct{}

// NewWorkItemMapper creates a new WorkItemMapper instance.
func NewWorkItemMapper() *WorkItemMapper {
	return &WorkItemMapper{}
}

// ToDatabase converts a domain WorkItem to a database WorkItem.
func (m *WorkItemMapper) ToDatabase(item WorkItem) sqlite.WorkItem {
	return sqlite.WorkItem{
		ID:        item.ID,
		Name:      item.Name,
		CreatedAt: item.CreatedAt,
	}
}

// FromDatabase converts a database WorkItem to a domain WorkItem.
func (m *WorkItemMapper) FromDatabase(dbItem sqlite.WorkItem) WorkItem {
	return WorkItem{
		ID:        dbItem.ID,
		Name:      dbItem.Name,
		CreatedAt: dbItem.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database WorkItems to domain WorkItems.
func (m *WorkItemMapper) FromDatabaseSlice(dbItems []*sqlite.WorkItem) []WorkItem {
	items := make([]WorkItem, len(dbItems))
	for i, dbItem := range dbItems {
		items[i] = m.FromDatabase(*dbItem)
	}
	return items
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              entry.ID,
		WorkItemID:      entry.WorkItemID,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		DurationSeconds: entry.DurationSeconds,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:              dbEntry.ID,
		WorkItemID:      dbEntry.WorkItemID,
		StartTime:       dbEntry.StartTime,
		EndTime:         dbEntry.EndTime,
		DurationSeconds: dbEntry.DurationSeconds,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entries[i] = m.FromDatabase(*dbEntry)
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	WorkItem  *WorkItemMapper
	TimeEntry *TimeEntryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		WorkItem:  NewWorkItemMapper(),
		TimeEntry: NewTimeEntryMapper(),
	}
}
