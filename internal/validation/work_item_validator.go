package validation

import (
	"timetracker/internal/domain"
)

// WorkItemValidator provides validation for WorkItem-related operations
type WorkItemValidator struct {
	validator *Validator
}

// NewWorkItemValidator creates a new work item validator
func NewWorkItemValidator() *WorkItemValidator {
	return &WorkItemValidator{
		validator: NewValidator(),
	}
}

// NewWorkItemValidatorWithConfig creates a work item validator with configured limits
func NewWorkItemValidatorWithConfig(v *Validator) *WorkItemValidator {
	return &WorkItemValidator{
		validator: v,
	}
}

// ValidateName validates a work item name for creation or rename
func (wv *WorkItemValidator) ValidateName(name string) error {
	validationError := NewValidationError()

	trimmedName := wv.validator.TrimAndValidateString(name)

	if !wv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("name")
		return validationError
	}

	if !wv.validator.IsValidNameLength(trimmedName) {
		validationError.AddInvalidLengthError("name", trimmedName,
			wv.validator.getNameMinLength(), wv.validator.getNameMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateForUpdate validates a work item rename
func (wv *WorkItemValidator) ValidateForUpdate(id int64, name string) error {
	validationError := NewValidationError()

	if !wv.validator.IsValidID(id) {
		validationError.AddInvalidValueError("work_item_id", id, "must be a positive integer")
	}

	if nameErr := wv.ValidateName(name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateWorkItem validates a domain.WorkItem object
func (wv *WorkItemValidator) ValidateWorkItem(item domain.WorkItem) error {
	validationError := NewValidationError()

	if nameErr := wv.ValidateName(item.Name); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}

	if item.ID != 0 && !wv.validator.IsValidID(item.ID) {
		validationError.AddInvalidValueError("work_item_id", item.ID, "must be a positive integer")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateID validates a work item ID
func (wv *WorkItemValidator) ValidateID(id int64) error {
	if !wv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("work_item_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidName returns a cleaned work item name if valid
func (wv *WorkItemValidator) GetValidName(name string) (string, error) {
	if err := wv.ValidateName(name); err != nil {
		return "", err
	}
	return wv.validator.TrimAndValidateString(name), nil
}
