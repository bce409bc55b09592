package employeeerrors

import (
	"net/http"

	"go-timeoff/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already used",
		http.StatusConflict,
	)
	ErrDepartmentNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"department does not belong to this company",
		http.StatusBadRequest,
	)
	ErrCannotRemoveAdmin = apperror.New(
		apperror.CodeInvalidState,
		"cannot remove an administrator account",
		http.StatusBadRequest,
	)
	ErrCannotRemoveSupervisor = apperror.New(
		apperror.CodeInvalidState,
		"cannot remove an employee who supervises a department",
		http.StatusBadRequest,
	)
)
