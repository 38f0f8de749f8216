/*
errors.go - Centralized error types for the staff domain

ERROR TAXONOMY:
  1. Validation failures - business-rule violations, raised as errors that
     wrap ErrValidation and carry a human-readable message. The message is
     passed through to API clients unmodified.
  2. Not found - never an error. Lookups return (nil, nil) and deletes
     return (false, nil); absence is an expected outcome.
  3. Storage failures - bubbled up as-is, mapped to a generic 500 at the
     HTTP boundary.

USAGE:
  if staff.IsValidation(err) { ... 400 ... }

SEE ALSO:
  - facade.go: Raises these errors
  - api/handlers.go: Maps them to HTTP statuses
*/
package staff

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of all business-rule violations.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateAttendance is returned when an employee already has an
	// attendance record for the requested date.
	ErrDuplicateAttendance = errors.New("attendance already marked")
)

// ValidationError wraps a human-readable rule violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// validationf builds a ValidationError with a formatted message.
func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateAttendanceError reports the conflicting record's status so the
// UI can tell the user what is already marked.
type DuplicateAttendanceError struct {
	EmployeeID     string
	Date           string
	ExistingStatus string
}

func (e *DuplicateAttendanceError) Error() string {
	return fmt.Sprintf("Attendance already marked for this employee on %s. Current status: %s",
		e.Date, e.ExistingStatus)
}

func (e *DuplicateAttendanceError) Unwrap() error { return ErrDuplicateAttendance }

// IsValidation reports whether the error is a business-rule violation that
// the client can correct (HTTP 400 territory).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicateAttendance)
}
