package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"timetracker/internal/config"
	"timetracker/internal/errors"
	"timetracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// EntryFilter contains all possible filters for listing time entries
type EntryFilter struct {
	WorkItemID    *int64
	StartedAfter  *time.Time
	StartedBefore *time.Time
	RunningOnly   bool
}

// Repository defines the interface for database operations
type Repository interface {
	// Work item operations
	CreateWorkItem(ctx context.Context, item *WorkItem) error
	GetWorkItem(ctx context.Context, id int64) (*WorkItem, error)
	ListWorkItems(ctx context.Context) ([]*WorkItem, error)
	UpdateWorkItem(ctx context.Context, item *WorkItem) error

	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	ListTimeEntries(ctx context.Context, filter EntryFilter) ([]*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite handles one writer at a time; a single pooled connection also
	// keeps the foreign_keys pragma in effect for every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// NewWithConfig creates a repository at the configured database path with
// the configured per-operation timeouts.
func NewWithConfig(cfg *config.Config) (*SQLiteRepository, error) {
	repo, err := New(cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	repo.queryTimeout = cfg.GetQueryTimeout()
	repo.writeTimeout = cfg.GetWriteTimeout()
	return repo, nil
}

// readCtx bounds a read operation with the query timeout, if one is set.
func (r *SQLiteRepository) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// writeCtx bounds a write operation with the write timeout, if one is set.
func (r *SQLiteRepository) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.writeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.writeTimeout)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateWorkItem creates a new work item
func (r *SQLiteRepository) CreateWorkItem(ctx context.Context, item *WorkItem) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `INSERT INTO work_items (name, created_at) VALUES (?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, item.Name, FormatTimeForDB(item.CreatedAt))
	if err != nil {
		return err
	}

	item.ID = id
	return nil
}

// GetWorkItem retrieves a work item by ID
func (r *SQLiteRepository) GetWorkItem(ctx context.Context, id int64) (*WorkItem, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `SELECT id, name, created_at FROM work_items WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanWorkItem, "work item", fmt.Sprintf("%d", id), id)
}

// ListWorkItems retrieves all work items in insertion order
func (r *SQLiteRepository) ListWorkItems(ctx context.Context) ([]*WorkItem, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `SELECT id, name, created_at FROM work_items ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanWorkItems, "work items")
}

// UpdateWorkItem updates an existing work item
func (r *SQLiteRepository) UpdateWorkItem(ctx context.Context, item *WorkItem) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `UPDATE work_items SET name = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "work item", fmt.Sprintf("%d", item.ID), item.Name, item.ID)
}

// CreateTimeEntry creates a new time entry
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `
	INSERT INTO time_entries (work_item_id, start_time, end_time, duration_seconds)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.WorkItemID,
		FormatTimeForDB(entry.StartTime),
		FormatTimePtrForDB(entry.EndTime),
		entry.DurationSeconds,
	)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	query := `
	SELECT id, work_item_id, start_time, end_time, duration_seconds
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// ListTimeEntries retrieves time entries matching the filter, ordered by start time
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context, filter EntryFilter) ([]*TimeEntry, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}

	if filter.WorkItemID != nil {
		conditions = append(conditions, "work_item_id = ?")
		args = append(args, *filter.WorkItemID)
	}
	if filter.StartedAfter != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, FormatTimeForDB(*filter.StartedAfter))
	}
	if filter.StartedBefore != nil {
		conditions = append(conditions, "start_time < ?")
		args = append(args, FormatTimeForDB(*filter.StartedBefore))
	}
	if filter.RunningOnly {
		conditions = append(conditions, "end_time IS NULL")
	}

	query := `
	SELECT id, work_item_id, start_time, end_time, duration_seconds
	FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time ASC"

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `
	UPDATE time_entries
	SET work_item_id = ?, start_time = ?, end_time = ?, duration_seconds = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", entry.ID),
		entry.WorkItemID,
		FormatTimeForDB(entry.StartTime),
		FormatTimePtrForDB(entry.EndTime),
		entry.DurationSeconds,
		entry.ID,
	)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}
