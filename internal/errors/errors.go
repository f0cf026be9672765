package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// HasStatus reports whether err carries the given status code. Plain
// errors carry none.
func HasStatus(err error, code int) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == code
}

// Validation rejects bad input before any side effect. Not fatal,
// surfaced inline to the user.
func Validation(format string, args ...any) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest}
}

// Permission means the caller must sign in before mutating anything.
func Permission(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

// Configuration marks an unknown identifier in a static lookup table
// (e.g. breathing exercise id). Fatal to that operation.
func Configuration(format string, args ...any) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusUnprocessableEntity}
}

// Conflict marks a duplicate-key rejection from the store. Reaction
// toggles recover from it locally and never surface it.
func Conflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

// TransientStore wraps a network/store failure. The caller may resubmit;
// the operation is not retried automatically.
func TransientStore(err error) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("storage unavailable: %v", err), StatusCode: http.StatusServiceUnavailable}
}

func NotFound(what string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

// StatusCode returns the embedded code or 500 for plain errors.
func StatusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
