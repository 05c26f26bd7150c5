package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a service-layer error carrying the HTTP status it maps to.
// Services return these uncaught; handlers are the only translation point.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status int, format string, args ...interface{}) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest signals malformed, missing or out-of-range input.
func BadRequest(format string, args ...interface{}) *Error {
	return newError(http.StatusBadRequest, format, args...)
}

// Unauthorized signals failed authentication.
func Unauthorized(format string, args ...interface{}) *Error {
	return newError(http.StatusUnauthorized, format, args...)
}

// NotFound signals that a referenced entity does not exist.
func NotFound(format string, args ...interface{}) *Error {
	return newError(http.StatusNotFound, format, args...)
}

// Conflict signals a uniqueness or referential-protection violation.
func Conflict(format string, args ...interface{}) *Error {
	return newError(http.StatusConflict, format, args...)
}

// StatusOf returns the HTTP status carried by err, or 500 for anything
// the taxonomy does not classify.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
