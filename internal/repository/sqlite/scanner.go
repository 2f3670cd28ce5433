package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanTimeEntry scans a single time entry from a database row.
// Timestamps are stored as RFC3339 strings.
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var startTime string
	var endTime sql.NullString
	var duration sql.NullInt64

	err := scanner.Scan(
		&entry.ID,
		&entry.WorkItemID,
		&startTime,
		&endTime,
		&duration,
	)
	if err != nil {
		return nil, err
	}

	entry.StartTime, err = ParseTimeFromDB(startTime)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		parsed, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, err
		}
		entry.EndTime = &parsed
	}

	if duration.Valid {
		entry.DurationSeconds = &duration.Int64
	}

	return entry, nil
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanWorkItem scans a single work item from a database row
func ScanWorkItem(scanner Scanner) (*WorkItem, error) {
	item := &WorkItem{}
	var createdAt string

	err := scanner.Scan(&item.ID, &item.Name, &createdAt)
	if err != nil {
		return nil, err
	}

	item.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ScanWorkItems scans multiple work items from database rows
func ScanWorkItems(rows Rows) ([]*WorkItem, error) {
	var items []*WorkItem
	for rows.Next() {
		item, err := ScanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
