package leaveerrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"leave end date is before its start date",
		http.StatusBadRequest,
	)
	ErrInvalidDayPart = apperror.New(
		apperror.CodeInvalidInput,
		"day part must be all_day, morning or afternoon",
		http.StatusBadRequest,
	)
	ErrOverlappingLeave = apperror.New(
		apperror.CodeConflict,
		"requested dates overlap an existing leave",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not in a state that allows this action",
		http.StatusConflict,
	)
	ErrNotLeaveOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may perform this action",
		http.StatusForbidden,
	)
	ErrNotAuthorizedToDecide = apperror.New(
		apperror.CodeForbidden,
		"you do not supervise this employee",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide your own leave request",
		http.StatusForbidden,
	)
	ErrCompanyReadOnly = apperror.New(
		apperror.CodeForbidden,
		"company is in read-only mode",
		http.StatusForbidden,
	)
)
