package scheduleerrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	// ErrScheduleInconsistency signals a violated storage invariant: more
	// schedule rows for one employee than a company default plus a personal
	// override. Not user-actionable, so the message stays internal.
	ErrScheduleInconsistency = apperror.Internal(
		apperror.CodeInvalidState,
		"conflicting schedule definitions for employee",
		http.StatusInternalServerError,
	)
	ErrInvalidHolidayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
