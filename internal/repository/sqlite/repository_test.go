package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/config"
	"timetracker/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTestWorkItem(t *testing.T, repo *SQLiteRepository, name string) *WorkItem {
	item := &WorkItem{Name: name, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	err := repo.CreateWorkItem(context.Background(), item)
	require.NoError(t, err)
	return item
}

func TestCreateWorkItem(t *testing.T) {
	repo := setupTestDB(t)

	item := createTestWorkItem(t, repo, "Writing report")
	assert.Greater(t, item.ID, int64(0))

	retrieved, err := repo.GetWorkItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, retrieved.ID)
	assert.Equal(t, "Writing report", retrieved.Name)
	assert.Equal(t, item.CreatedAt.Unix(), retrieved.CreatedAt.Unix())
}

func TestGetWorkItem_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetWorkItem(context.Background(), 999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListWorkItems_InsertionOrder(t *testing.T) {
	repo := setupTestDB(t)

	createTestWorkItem(t, repo, "Some client")
	createTestWorkItem(t, repo, "Internal project")
	createTestWorkItem(t, repo, "Training")

	items, err := repo.ListWorkItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Some client", items[0].Name)
	assert.Equal(t, "Internal project", items[1].Name)
	assert.Equal(t, "Training", items[2].Name)
}

func TestUpdateWorkItem(t *testing.T) {
	repo := setupTestDB(t)

	item := createTestWorkItem(t, repo, "Old name")
	item.Name = "New name"
	err := repo.UpdateWorkItem(context.Background(), item)
	require.NoError(t, err)

	retrieved, err := repo.GetWorkItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", retrieved.Name)
}

func TestUpdateWorkItem_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateWorkItem(context.Background(), &WorkItem{ID: 999, Name: "Ghost"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateTimeEntry(t *testing.T) {
	repo := setupTestDB(t)
	item := createTestWorkItem(t, repo, "Writing report")

	now := time.Now().UTC().Truncate(time.Second)
	entry := &TimeEntry{
		WorkItemID: item.ID,
		StartTime:  now,
	}

	err := repo.CreateTimeEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Greater(t, entry.ID, int64(0))

	retrieved, err := repo.GetTimeEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, retrieved.ID)
	assert.Equal(t, item.ID, retrieved.WorkItemID)
	assert.Equal(t, now.Unix(), retrieved.StartTime.Unix())
	assert.Nil(t, retrieved.EndTime)
	assert.Nil(t, retrieved.DurationSeconds)
}

func TestCreateTimeEntry_ForeignKeyViolation(t *testing.T) {
	repo := setupTestDB(t)

	entry := &TimeEntry{
		WorkItemID: 999,
		StartTime:  time.Now(),
	}

	err := repo.CreateTimeEntry(context.Background(), entry)
	assert.Error(t, err)
}

func TestGetTimeEntry_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTimeEntry(context.Background(), 999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateTimeEntry_Close(t *testing.T) {
	repo := setupTestDB(t)
	item := createTestWorkItem(t, repo, "Writing report")

	start := time.Now().UTC().Truncate(time.Second)
	entry := &TimeEntry{WorkItemID: item.ID, StartTime: start}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))

	end := start.Add(90 * time.Second)
	seconds := int64(90)
	entry.EndTime = &end
	entry.DurationSeconds = &seconds

	err := repo.UpdateTimeEntry(context.Background(), entry)
	require.NoError(t, err)

	retrieved, err := repo.GetTimeEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.EndTime)
	assert.Equal(t, end.Unix(), retrieved.EndTime.Unix())
	require.NotNil(t, retrieved.DurationSeconds)
	assert.Equal(t, int64(90), *retrieved.DurationSeconds)
}

func TestDeleteTimeEntry(t *testing.T) {
	repo := setupTestDB(t)
	item := createTestWorkItem(t, repo, "Writing report")

	entry := &TimeEntry{WorkItemID: item.ID, StartTime: time.Now()}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))

	err := repo.DeleteTimeEntry(context.Background(), entry.ID)
	require.NoError(t, err)

	_, err = repo.GetTimeEntry(context.Background(), entry.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteTimeEntry_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.DeleteTimeEntry(context.Background(), 999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTimeEntries_Filters(t *testing.T) {
	repo := setupTestDB(t)
	itemA := createTestWorkItem(t, repo, "Item A")
	itemB := createTestWorkItem(t, repo, "Item B")

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := base.Add(time.Hour)
	seconds := int64(3600)

	closed := &TimeEntry{WorkItemID: itemA.ID, StartTime: base, EndTime: &end, DurationSeconds: &seconds}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), closed))

	running := &TimeEntry{WorkItemID: itemB.ID, StartTime: base.Add(2 * time.Hour)}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), running))

	t.Run("no filter returns all ordered by start time", func(t *testing.T) {
		entries, err := repo.ListTimeEntries(context.Background(), EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, closed.ID, entries[0].ID)
		assert.Equal(t, running.ID, entries[1].ID)
	})

	t.Run("filter by work item", func(t *testing.T) {
		entries, err := repo.ListTimeEntries(context.Background(), EntryFilter{WorkItemID: &itemA.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, closed.ID, entries[0].ID)
	})

	t.Run("filter running only", func(t *testing.T) {
		entries, err := repo.ListTimeEntries(context.Background(), EntryFilter{RunningOnly: true})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, running.ID, entries[0].ID)
		assert.Nil(t, entries[0].EndTime)
	})

	t.Run("filter by time range", func(t *testing.T) {
		after := base.Add(time.Hour)
		before := base.Add(3 * time.Hour)
		entries, err := repo.ListTimeEntries(context.Background(), EntryFilter{
			StartedAfter:  &after,
			StartedBefore: &before,
		})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, running.ID, entries[0].ID)
	})

	t.Run("empty result", func(t *testing.T) {
		missing := int64(999)
		entries, err := repo.ListTimeEntries(context.Background(), EntryFilter{WorkItemID: &missing})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestNewWithConfig_Timeouts(t *testing.T) {
	t.Run("query timeout bounds reads", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Dir = t.TempDir()
		cfg.Database.QueryTimeout = time.Nanosecond

		repo, err := NewWithConfig(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })

		_, err = repo.GetWorkItem(context.Background(), 1)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	})

	t.Run("write timeout bounds writes", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Dir = t.TempDir()
		cfg.Database.WriteTimeout = time.Nanosecond

		repo, err := NewWithConfig(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })

		item := &WorkItem{Name: "Writing report", CreatedAt: time.Now()}
		err = repo.CreateWorkItem(context.Background(), item)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	})

	t.Run("zero timeouts leave operations unbounded", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Dir = t.TempDir()
		cfg.Database.QueryTimeout = 0
		cfg.Database.WriteTimeout = 0

		repo, err := NewWithConfig(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })

		item := &WorkItem{Name: "Writing report", CreatedAt: time.Now()}
		require.NoError(t, repo.CreateWorkItem(context.Background(), item))

		retrieved, err := repo.GetWorkItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Writing report", retrieved.Name)
	})
}
