package allowanceerrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	ErrLeaveTypeMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"leave type does not belong to the employee's company",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year is out of range",
		http.StatusBadRequest,
	)
)
