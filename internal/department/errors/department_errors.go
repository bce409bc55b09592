package departmenterrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrManagerNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"manager does not belong to this company",
		http.StatusBadRequest,
	)
	ErrSupervisorNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"supervisor does not belong to this company",
		http.StatusBadRequest,
	)
)
