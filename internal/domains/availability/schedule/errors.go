package schedule

import (
	"fmt"
	"net/http"
	"strings"

	"litrato/shared/failure"
)

var (
	ErrInvalidDate      = &failure.Failure{Code: http.StatusBadRequest, Message: "Invalid date supplied"}
	ErrInvalidInterval  = &failure.Failure{Code: http.StatusBadRequest, Message: "event end time must be after its start time on the same day"}
	ErrInvalidExtension = &failure.Failure{Code: http.StatusBadRequest, Message: "extension hours are out of range"}
	ErrOutsideHours     = &failure.Failure{Code: http.StatusBadRequest, Message: "event must start and end within opening hours"}
	ErrPackageNotFound  = &failure.Failure{Code: http.StatusNotFound, Message: "package not found"}
)

const conflictMessage = "The selected time overlaps an existing booking"

// ConflictError carries the intervals that block a candidate. It unwraps to
// a 409 failure so response mapping needs no special casing.
type ConflictError struct {
	Conflicts []BookingInterval
}

func NewConflictError(conflicts []BookingInterval) *ConflictError {
	return &ConflictError{Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return conflictMessage
	}

	return fmt.Sprintf("%s: %s", conflictMessage, strings.Join(e.IDs(), ", "))
}

func (e *ConflictError) Unwrap() error {
	return failure.Conflict(conflictMessage)
}

func (e *ConflictError) Message() string {
	return conflictMessage
}

// IDs returns the identifiers of the blocking records in input order.
func (e *ConflictError) IDs() []string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, conflict := range e.Conflicts {
		ids = append(ids, conflict.Ref.ID)
	}

	return ids
}
