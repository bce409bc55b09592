package leavetypeerrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeInvalidState,
		"leave type still has leaves booked against it",
		http.StatusConflict,
	)
)
