package errors

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// AppError is an error with an HTTP status. Limit and Reset are only set on 429s.
type AppError struct {
	StatusCode int
	Message    string
	Limit      int
	Reset      int64

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

// NewTooManyRequestsError carries the window so the response can set Retry-After.
func NewTooManyRequestsError(message string, limit int, reset int64) *AppError {
	appErr := NewAppError(http.StatusTooManyRequests, message)
	appErr.Limit = limit
	appErr.Reset = reset
	return appErr
}

// NewInternalServerError logs originalError and hides it from the client behind message.
func NewInternalServerError(originalError error, message string) *AppError {
	entry := logrus.WithField("message", message)
	if originalError != nil {
		entry = entry.WithError(originalError).WithField("error_type", typeName(originalError))
	}
	entry.Error("internal error")

	appErr := NewAppError(http.StatusInternalServerError, message)
	appErr.cause = originalError
	return appErr
}

func typeName(err error) string {
	return fmt.Sprintf("%T", err)
}
