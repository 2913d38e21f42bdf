package dto

import "net/http"

// Error class codes returned to API clients. Every domain error carries
// one of these codes; the HTTP status follows from the code alone.
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeStateConflict is used when an operation is rejected by the
	// current state of the resource
	ErrCodeStateConflict = "STATE_CONFLICT"
	// ErrCodeForbidden is used when the request addresses a resource it
	// may not act on
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeAlreadyExists is used when creating a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeStateConflict: http.StatusConflict,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
