package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Roster errors
var (
	ErrStudentNotFound        = NewCustomError(ErrResourceNotFound, "student not found")
	ErrDuplicateID            = errors.New("student ID already exists")
	ErrInstrumentTypeNotFound = NewCustomError(ErrResourceNotFound, "instrument type not found")
)

// Checkout errors
var (
	ErrUnitNotFound                = NewCustomError(ErrResourceNotFound, "equipment unit not found")
	ErrAlreadyAssigned             = errors.New("unit already has a holder")
	ErrNotAssigned                 = errors.New("unit is not checked out")
	ErrStudentAlreadyHoldsCategory = errors.New("student already holds a unit in this category")
	ErrSectionMismatch             = errors.New("instrument section does not match student section")
)

// Store errors
var (
	// ErrUniqueViolation marks a uniqueness constraint rejected by the store.
	ErrUniqueViolation = errors.New("unique constraint violated")
	// ErrStore marks any other transaction, statement or rollback failure.
	ErrStore = errors.New("store error")
)

// Undo errors
var (
	ErrEmptyStack = errors.New("nothing to undo")
	ErrUndoFailed = errors.New("undo failed")
)

// known lists every sentinel the engines raise on purpose. Anything else
// surfacing from a transaction is treated as a store failure.
var known = []error{
	ErrResourceNotFound,
	ErrValidationFailed,
	ErrBadRequest,
	ErrDuplicateID,
	ErrAlreadyAssigned,
	ErrNotAssigned,
	ErrStudentAlreadyHoldsCategory,
	ErrSectionMismatch,
	ErrUniqueViolation,
	ErrStore,
	ErrEmptyStack,
	ErrUndoFailed,
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsKnown reports whether err carries one of the application sentinels.
func IsKnown(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, known[0], known[1:]...)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
