package errors

import "fmt"

// APIError is the JSON error body returned by every endpoint.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error codes, one per taxonomy class.
const (
	Unauthenticated = "unauthenticated"
	BadRequest      = "bad_request"
	NotFound        = "not_found"
	Forbidden       = "forbidden"
	ServerError     = "server_error"
)

// Common error constructors
func NewUnauthenticated(description string) *APIError {
	return &APIError{Code: Unauthenticated, Description: description}
}

func NewBadRequest(description string) *APIError {
	return &APIError{Code: BadRequest, Description: description}
}

func NewNotFound(description string) *APIError {
	return &APIError{Code: NotFound, Description: description}
}

func NewForbidden(description string) *APIError {
	return &APIError{Code: Forbidden, Description: description}
}

func NewServerError(description string) *APIError {
	return &APIError{Code: ServerError, Description: description}
}
