package api

import (
	"context"
	"time"

	"timetracker/internal/config"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/repository/sqlite"
	"timetracker/internal/validation"
)

// TimerSession pairs a running time entry with its work item
type TimerSession struct {
	WorkItem *domain.WorkItem  `json:"work_item"`
	Entry    *domain.TimeEntry `json:"entry"`
}

// EntryWithItem pairs a time entry with its work item for display
type EntryWithItem struct {
	Entry    *domain.TimeEntry `json:"entry"`
	WorkItem *domain.WorkItem  `json:"work_item"`
}

// ListEntriesOptions filters time entry listings
type ListEntriesOptions struct {
	WorkItemID    *int64
	StartedAfter  *time.Time
	StartedBefore *time.Time
	RunningOnly   bool
}

// API defines the application-level interface for time tracking operations
type API interface {
	// ========== Work Item Operations ==========

	// CreateWorkItem creates a new work item with a validated name
	CreateWorkItem(ctx context.Context, name string) (*domain.WorkItem, error)

	// GetWorkItem returns a single work item by ID
	GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error)

	// ListWorkItems returns all work items in creation order
	ListWorkItems(ctx context.Context) ([]*domain.WorkItem, error)

	// UpdateWorkItem renames an existing work item
	UpdateWorkItem(ctx context.Context, id int64, name string) (*domain.WorkItem, error)

	// ========== Time Entry Operations ==========

	// CreateTimeEntry records a time entry, open or closed
	CreateTimeEntry(ctx context.Context, workItemID int64, startTime time.Time, endTime *time.Time) (*domain.TimeEntry, error)

	// GetTimeEntry returns a single time entry by ID
	GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)

	// ListTimeEntries returns time entries matching the options, oldest first
	ListTimeEntries(ctx context.Context, opts ListEntriesOptions) ([]*domain.TimeEntry, error)

	// ListEntriesWithItems returns time entries joined with their work items
	ListEntriesWithItems(ctx context.Context, opts ListEntriesOptions) ([]*EntryWithItem, error)

	// UpdateTimeEntry replaces the mutable fields of a time entry
	UpdateTimeEntry(ctx context.Context, id int64, workItemID int64, startTime time.Time, endTime *time.Time) (*domain.TimeEntry, error)

	// CloseTimeEntry sets the end time of an open entry and derives its duration
	CloseTimeEntry(ctx context.Context, id int64, endTime time.Time) (*domain.TimeEntry, error)

	// DeleteTimeEntry removes a time entry
	DeleteTimeEntry(ctx context.Context, id int64) error

	// ========== Timer Workflows ==========

	// StartTimer opens a new entry for the work item, stopping any running entry first
	StartTimer(ctx context.Context, workItemID int64) (*TimerSession, error)

	// StopTimer closes the currently running entry
	StopTimer(ctx context.Context) (*domain.TimeEntry, error)

	// RunningEntry returns the currently running session, if any
	RunningEntry(ctx context.Context) (*TimerSession, error)
}

type apiImpl struct {
	repo               sqlite.Repository
	mapper             *domain.Mapper
	workItemValidator  *validation.WorkItemValidator
	timeEntryValidator *validation.TimeEntryValidator
	clock              func() time.Time
}

// New creates a new API instance backed by the given repository
func New(repo sqlite.Repository) API {
	return &apiImpl{
		repo:               repo,
		mapper:             domain.NewMapper(),
		workItemValidator:  validation.NewWorkItemValidator(),
		timeEntryValidator: validation.NewTimeEntryValidator(),
		clock:              time.Now,
	}
}

// NewWithConfig creates an API instance whose validators honor the
// configured limits, such as work item name length.
func NewWithConfig(repo sqlite.Repository, cfg *config.Config) API {
	v := validation.NewValidatorWithConfig(cfg)
	return &apiImpl{
		repo:               repo,
		mapper:             domain.NewMapper(),
		workItemValidator:  validation.NewWorkItemValidatorWithConfig(v),
		timeEntryValidator: validation.NewTimeEntryValidatorWithConfig(v),
		clock:              time.Now,
	}
}

// ========== Work Item Operations ==========

func (a *apiImpl) CreateWorkItem(ctx context.Context, name string) (*domain.WorkItem, error) {
	cleanedName, err := a.workItemValidator.GetValidName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid work item name", err)
	}

	dbItem := &sqlite.WorkItem{Name: cleanedName, CreatedAt: a.clock()}
	if err := a.repo.CreateWorkItem(ctx, dbItem); err != nil {
		return nil, err
	}

	domainItem := a.mapper.WorkItem.FromDatabase(*dbItem)
	return &domainItem, nil
}

func (a *apiImpl) GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error) {
	if err := a.workItemValidator.ValidateID(id); err != nil {
		return nil, errors.NewValidationError("invalid work item ID", err)
	}

	dbItem, err := a.repo.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	domainItem := a.mapper.WorkItem.FromDatabase(*dbItem)
	return &domainItem, nil
}

func (a *apiImpl) ListWorkItems(ctx context.Context) ([]*domain.WorkItem, error) {
	dbItems, err := a.repo.ListWorkItems(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.WorkItem, len(dbItems))
	for i, dbItem := range dbItems {
		item := a.mapper.WorkItem.FromDatabase(*dbItem)
		items[i] = &item
	}
	return items, nil
}

func (a *apiImpl) UpdateWorkItem(ctx context.Context, id int64, name string) (*domain.WorkItem, error) {
	if err := a.workItemValidator.ValidateForUpdate(id, name); err != nil {
		return nil, errors.NewValidationError("invalid work item", err)
	}

	cleanedName, err := a.workItemValidator.GetValidName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid work item name", err)
	}

	dbItem, err := a.repo.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	dbItem.Name = cleanedName
	if err := a.repo.UpdateWorkItem(ctx, dbItem); err != nil {
		return nil, err
	}

	domainItem := a.mapper.WorkItem.FromDatabase(*dbItem)
	return &domainItem, nil
}

// ========== Time Entry Operations ==========

func (a *apiImpl) CreateTimeEntry(ctx context.Context, workItemID int64, startTime time.Time, endTime *time.Time) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateForCreation(workItemID, startTime, endTime); err != nil {
		return nil, errors.NewValidationError("invalid time entry", err)
	}

	// The work item must exist; the error carries its ID if not
	if _, err := a.repo.GetWorkItem(ctx, workItemID); err != nil {
		return nil, err
	}

	entry := domain.NewTimeEntry(workItemID, startTime)
	if endTime != nil {
		entry = entry.Stop(*endTime)
	}

	dbEntry := a.mapper.TimeEntry.ToDatabase(entry)
	if err := a.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	domainEntry := a.mapper.TimeEntry.FromDatabase(dbEntry)
	return &domainEntry, nil
}

func (a *apiImpl) GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateID(id); err != nil {
		return nil, errors.NewValidationError("invalid time entry ID", err)
	}

	dbEntry, err := a.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	domainEntry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &domainEntry, nil
}

func (a *apiImpl) ListTimeEntries(ctx context.Context, opts ListEntriesOptions) ([]*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateFilter(opts.WorkItemID, opts.StartedAfter, opts.StartedBefore); err != nil {
		return nil, errors.NewValidationError("invalid entry filter", err)
	}

	dbEntries, err := a.repo.ListTimeEntries(ctx, sqlite.EntryFilter{
		WorkItemID:    opts.WorkItemID,
		StartedAfter:  opts.StartedAfter,
		StartedBefore: opts.StartedBefore,
		RunningOnly:   opts.RunningOnly,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries, nil
}

func (a *apiImpl) ListEntriesWithItems(ctx context.Context, opts ListEntriesOptions) ([]*EntryWithItem, error) {
	entries, err := a.ListTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}

	items, err := a.ListWorkItems(ctx)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[int64]*domain.WorkItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	result := make([]*EntryWithItem, 0, len(entries))
	for _, entry := range entries {
		item, ok := itemsByID[entry.WorkItemID]
		if !ok {
			// Orphaned entry, should not happen with foreign keys on
			continue
		}
		result = append(result, &EntryWithItem{Entry: entry, WorkItem: item})
	}
	return result, nil
}

func (a *apiImpl) UpdateTimeEntry(ctx context.Context, id int64, workItemID int64, startTime time.Time, endTime *time.Time) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateForUpdate(id, workItemID, startTime, endTime); err != nil {
		return nil, errors.NewValidationError("invalid time entry", err)
	}

	if _, err := a.repo.GetWorkItem(ctx, workItemID); err != nil {
		return nil, err
	}

	dbEntry, err := a.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
	entry.WorkItemID = workItemID
	entry.StartTime = startTime
	if endTime != nil {
		entry = entry.Stop(*endTime)
	} else {
		entry.EndTime = nil
		entry.DurationSeconds = nil
	}

	updated := a.mapper.TimeEntry.ToDatabase(entry)
	if err := a.repo.UpdateTimeEntry(ctx, &updated); err != nil {
		return nil, err
	}

	domainEntry := a.mapper.TimeEntry.FromDatabase(updated)
	return &domainEntry, nil
}

func (a *apiImpl) CloseTimeEntry(ctx context.Context, id int64, endTime time.Time) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateID(id); err != nil {
		return nil, errors.NewValidationError("invalid time entry ID", err)
	}

	dbEntry, err := a.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if dbEntry.EndTime != nil {
		return nil, errors.NewConflictError("time entry", "already stopped")
	}

	entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
	entry = entry.Stop(endTime)

	if !entry.IsValid() {
		return nil, errors.NewValidationError("end time must not be before start time", nil)
	}

	updated := a.mapper.TimeEntry.ToDatabase(entry)
	if err := a.repo.UpdateTimeEntry(ctx, &updated); err != nil {
		return nil, err
	}

	domainEntry := a.mapper.TimeEntry.FromDatabase(updated)
	return &domainEntry, nil
}

func (a *apiImpl) DeleteTimeEntry(ctx context.Context, id int64) error {
	if err := a.timeEntryValidator.ValidateID(id); err != nil {
		return errors.NewValidationError("invalid time entry ID", err)
	}

	return a.repo.DeleteTimeEntry(ctx, id)
}

// ========== Timer Workflows ==========

func (a *apiImpl) StartTimer(ctx context.Context, workItemID int64) (*TimerSession, error) {
	if err := a.workItemValidator.ValidateID(workItemID); err != nil {
		return nil, errors.NewValidationError("invalid work item ID", err)
	}

	dbItem, err := a.repo.GetWorkItem(ctx, workItemID)
	if err != nil {
		return nil, err
	}

	// Only one timer may run at a time
	if err := a.stopRunningEntries(ctx); err != nil {
		return nil, err
	}

	dbEntry := &sqlite.TimeEntry{
		WorkItemID: workItemID,
		StartTime:  a.clock(),
	}
	if err := a.repo.CreateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	domainItem := a.mapper.WorkItem.FromDatabase(*dbItem)
	domainEntry := a.mapper.TimeEntry.FromDatabase(*dbEntry)

	return &TimerSession{
		WorkItem: &domainItem,
		Entry:    &domainEntry,
	}, nil
}

func (a *apiImpl) StopTimer(ctx context.Context) (*domain.TimeEntry, error) {
	running, err := a.repo.ListTimeEntries(ctx, sqlite.EntryFilter{RunningOnly: true})
	if err != nil {
		return nil, err
	}

	if len(running) == 0 {
		return nil, errors.NewNotFoundError("running time entry", "")
	}

	return a.CloseTimeEntry(ctx, running[0].ID, a.clock())
}

func (a *apiImpl) RunningEntry(ctx context.Context) (*TimerSession, error) {
	running, err := a.repo.ListTimeEntries(ctx, sqlite.EntryFilter{RunningOnly: true})
	if err != nil {
		return nil, err
	}

	if len(running) == 0 {
		return nil, errors.NewNotFoundError("running time entry", "")
	}

	dbEntry := running[0]
	dbItem, err := a.repo.GetWorkItem(ctx, dbEntry.WorkItemID)
	if err != nil {
		return nil, err
	}

	domainItem := a.mapper.WorkItem.FromDatabase(*dbItem)
	domainEntry := a.mapper.TimeEntry.FromDatabase(*dbEntry)

	return &TimerSession{
		WorkItem: &domainItem,
		Entry:    &domainEntry,
	}, nil
}

// stopRunningEntries closes every open entry at the current time
func (a *apiImpl) stopRunningEntries(ctx context.Context) error {
	running, err := a.repo.ListTimeEntries(ctx, sqlite.EntryFilter{RunningOnly: true})
	if err != nil {
		return err
	}

	now := a.clock()
	for _, dbEntry := range running {
		entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
		entry = entry.Stop(now)

		updated := a.mapper.TimeEntry.ToDatabase(entry)
		if err := a.repo.UpdateTimeEntry(ctx, &updated); err != nil {
			return err
		}
	}
	return nil
}
