package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval is returned when an interval would not satisfy start < end.
	ErrInvalidInterval = errors.New("interval start must be before end")
	// ErrIncompleteRow marks a commitment row lacking the date/time fields needed
	// to place it on the calendar. Callers skip such rows.
	ErrIncompleteRow = errors.New("commitment row is missing date or time fields")
	// ErrDateOutsideBlock is returned when a drill targets a day the block does not cover.
	ErrDateOutsideBlock = errors.New("target date is outside the nwd block")
	// ErrLockHeld is returned when another request holds the assignment lock.
	ErrLockHeld = errors.New("assignment lock is held by another request")
	// ErrMonitorUnavailable is returned when an assignment is refused because of conflicts.
	ErrMonitorUnavailable = errors.New("monitor is not available for the requested schedule")
	// ErrUnknownRole is returned for a subject that is neither a monitor nor a client.
	ErrUnknownRole = errors.New("unknown subject role")
	// ErrUnsupportedKind is returned when a commitment ref names a kind the
	// operation cannot take, including kinds that do not exist.
	ErrUnsupportedKind = errors.New("unsupported commitment kind")
)

// MissingDataError reports a commitment row whose referenced course, group,
// subgroup or monitor cannot be resolved. The engine skips the row.
type MissingDataError struct {
	Code    string
	Message string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewMissingDataError(format string, args ...any) error {
	return &MissingDataError{
		Code:    "missingData",
		Message: fmt.Sprintf(format, args...),
	}
}

// MalformedTimeError reports a date or time value that failed to parse.
// It is never skipped.
type MalformedTimeError struct {
	Code    string
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", e.Code, e.Field, e.Value, e.Message)
}

func (e *MalformedTimeError) Unwrap() error {
	return e.Err
}

func newMalformedTimeError(field, value string, err error) error {
	return &MalformedTimeError{
		Code:    "malformedTime",
		Field:   field,
		Value:   value,
		Message: "value could not be parsed",
		Err:     err,
	}
}

// ConflictError carries the commitments that blocked an assignment.
type ConflictError struct {
	Conflicts []CascadeConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d conflicting commitment(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrMonitorUnavailable
}

// skippable reports whether a normalization error should drop the row
// instead of failing the whole query.
func skippable(err error) bool {
	var missing *MissingDataError
	return errors.Is(err, ErrIncompleteRow) || errors.As(err, &missing)
}
