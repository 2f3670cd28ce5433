package validation

import (
	"time"

	"timetracker/internal/domain"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator with configured limits
func NewTimeEntryValidatorWithConfig(v *Validator) *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: v,
	}
}

// ValidateForCreation validates a time entry for creation
func (tev *TimeEntryValidator) ValidateForCreation(workItemID int64, startTime time.Time, endTime *time.Time) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(workItemID) {
		validationError.AddInvalidValueError("work_item_id", workItemID, "must be a positive integer")
	}

	if startTime.IsZero() {
		validationError.AddRequiredError("start_time")
	} else if !tev.validator.IsReasonableDate(startTime) {
		validationError.AddInvalidValueError("start_time", startTime, "must be within reasonable date range")
	}

	if endTime != nil {
		if !tev.validator.IsReasonableDate(*endTime) {
			validationError.AddInvalidValueError("end_time", *endTime, "must be within reasonable date range")
		}

		if !tev.validator.IsValidTimeRange(startTime, endTime) {
			validationError.AddInvalidRangeError("time_range", map[string]time.Time{
				"start": startTime,
				"end":   *endTime,
			}, "end time must not be before start time")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateForUpdate validates a time entry for update
func (tev *TimeEntryValidator) ValidateForUpdate(id int64, workItemID int64, startTime time.Time, endTime *time.Time) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(id) {
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
	}

	if entryErr := tev.ValidateForCreation(workItemID, startTime, endTime); entryErr != nil {
		if entryValidationErr, ok := entryErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, entryValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTimeEntry validates a domain.TimeEntry object
func (tev *TimeEntryValidator) ValidateTimeEntry(entry domain.TimeEntry) error {
	validationError := NewValidationError()

	if !entry.IsValid() {
		validationError.AddInvalidValueError("time_entry", entry, "fails basic validation")
	}

	if entryErr := tev.ValidateForCreation(entry.WorkItemID, entry.StartTime, entry.EndTime); entryErr != nil {
		if entryValidationErr, ok := entryErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, entryValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateFilter validates filter options for listing time entries
func (tev *TimeEntryValidator) ValidateFilter(workItemID *int64, startedAfter, startedBefore *time.Time) error {
	validationError := NewValidationError()

	if startedAfter != nil && !tev.validator.IsReasonableDate(*startedAfter) {
		validationError.AddInvalidValueError("started_after", *startedAfter, "must be within reasonable date range")
	}

	if startedBefore != nil && !tev.validator.IsReasonableDate(*startedBefore) {
		validationError.AddInvalidValueError("started_before", *startedBefore, "must be within reasonable date range")
	}

	if !tev.validator.IsValidDateRange(startedAfter, startedBefore) {
		validationError.AddInvalidRangeError("date_range", map[string]interface{}{
			"start": startedAfter,
			"end":   startedBefore,
		}, "end of range must be after or equal to start of range")
	}

	if workItemID != nil && !tev.validator.IsValidID(*workItemID) {
		validationError.AddInvalidValueError("work_item_id", *workItemID, "must be a positive integer")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateID validates a time entry ID
func (tev *TimeEntryValidator) ValidateID(id int64) error {
	if !tev.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
