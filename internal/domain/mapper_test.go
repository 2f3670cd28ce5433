package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"timetracker/internal/repository/sqlite"
)

func TestWorkItemMapper_RoundTrip(t *testing.T) {
	mapper := NewWorkItemMapper()
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	original := WorkItem{ID: 1, Name: "Writing report", CreatedAt: createdAt}

	dbItem := mapper.ToDatabase(original)
	assert.Equal(t, sqlite.WorkItem{ID: 1, Name: "Writing report", CreatedAt: createdAt}, dbItem)

	converted := mapper.FromDatabase(dbItem)
	assert.Equal(t, original, converted)
}

func TestWorkItemMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewWorkItemMapper()
	dbItems := []*sqlite.WorkItem{
		{ID: 1, Name: "Some client"},
		{ID: 2, Name: "Training"},
	}

	result := mapper.FromDatabaseSlice(dbItems)

	assert.Len(t, result, 2)
	assert.Equal(t, "Some client", result[0].Name)
	assert.Equal(t, "Training", result[1].Name)
}

func TestWorkItemMapper_EmptySlice(t *testing.T) {
	mapper := NewWorkItemMapper()
	assert.Empty(t, mapper.FromDatabaseSlice([]*sqlite.WorkItem{}))
}

func TestTimeEntryMapper_RoundTrip(t *testing.T) {
	mapper := NewTimeEntryMapper()
	endTime := time.Now()
	seconds := int64(90)
	original := TimeEntry{
		ID:              1,
		WorkItemID:      2,
		StartTime:       endTime.Add(-90 * time.Second),
		EndTime:         &endTime,
		DurationSeconds: &seconds,
	}

	dbEntry := mapper.ToDatabase(original)
	converted := mapper.FromDatabase(dbEntry)

	assert.Equal(t, original, converted)
}

func TestTimeEntryMapper_RunningEntry(t *testing.T) {
	mapper := NewTimeEntryMapper()
	entry := TimeEntry{
		ID:         1,
		WorkItemID: 2,
		StartTime:  time.Now().Add(-time.Hour),
	}

	dbResult := mapper.ToDatabase(entry)
	domainResult := mapper.FromDatabase(dbResult)

	assert.Equal(t, entry, domainResult)
	assert.Nil(t, dbResult.EndTime)
	assert.Nil(t, dbResult.DurationSeconds)
}

func TestTimeEntryMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewTimeEntryMapper()
	endTime := time.Now()
	dbEntries := []*sqlite.TimeEntry{
		{ID: 1, WorkItemID: 1, StartTime: endTime.Add(-time.Hour), EndTime: &endTime},
		{ID: 2, WorkItemID: 2, StartTime: endTime.Add(-30 * time.Minute)},
	}

	result := mapper.FromDatabaseSlice(dbEntries)

	assert.Len(t, result, 2)
	assert.NotNil(t, result[0].EndTime)
	assert.Nil(t, result[1].EndTime)
}

func TestNewMapper(t *testing.T) {
	mapper := NewMapper()

	assert.NotNil(t, mapper)
	assert.NotNil(t, mapper.WorkItem)
	assert.NotNil(t, mapper.TimeEntry)
}
