package shared

import (
	"errors"
	"net/http"
)

// AppError is an error carrying the HTTP status it should surface as. The
// wrapped error stays server-side; only Message reaches the client.
type AppError struct {
	Err        error
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, statusCode int, message string) *AppError {
	return &AppError{Err: err, StatusCode: statusCode, Message: message}
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(err, http.StatusBadRequest, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return NewAppError(err, http.StatusUnauthorized, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return NewAppError(err, http.StatusForbidden, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return NewAppError(err, http.StatusNotFound, message)
}

func NewTooManyRequestsError(err error, message string) *AppError {
	return NewAppError(err, http.StatusTooManyRequests, message)
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(err, http.StatusInternalServerError, message)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
