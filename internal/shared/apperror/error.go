package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // Message associated with the error
	HTTPStatus int    // HTTP status code
	ShowToUser bool   // Whether Message is safe to present to the end user
	Err        error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping. Errors built with New carry
// user-presentable messages; infrastructure failures should be passed through
// untouched instead.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		ShowToUser: true,
		Err:        nil,
	}
}

// Internal creates an AppError whose message must not reach the end user.
func Internal(code, message string, httpStatus int) *AppError {
	e := New(code, message, httpStatus)
	e.ShowToUser = false
	return e
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		ShowToUser: true,
		Err:        err,
	}
}

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into the shape handlers answer with. Unknown
// errors (data-store failures and the like) become a generic 500; the caller
// is expected to log the detail.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if !appErr.ShowToUser {
			msg = ErrInternal.Message
		}
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: msg,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
