package service

import "net/http"

// Error is a service-layer failure carrying the HTTP status the API boundary
// should serialize it with. The handlers map it uniformly; there are no
// partial-success responses.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound covers both "does not exist" and "does not belong to the caller";
// the shared code prevents existence leakage across users.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// BadRequest also covers duplicate-email conflicts: the reference API
// reports those as 400, not 409.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
