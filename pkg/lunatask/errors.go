package lunatask

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnexpectedPong indicates the health endpoint answered 2xx without
	// the expected "pong" message.
	ErrUnexpectedPong = errors.New("health check did not return pong")
	// ErrMissingTask indicates a single-task response had no task in it.
	ErrMissingTask = errors.New("response does not contain a task")
	// ErrNoAccessToken indicates the token source returned no access token.
	ErrNoAccessToken = errors.New("token source returned no access token")
)

// APIError is returned for every non-2xx response. The status and raw body
// are kept as the server sent them.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	Path       string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Body)
	}
	if msg == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Status, msg)
}

// apiErrorResponse is the JSON body the API sends with errors.
type apiErrorResponse struct {
	Message string `json:"message"`
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound returns true if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized returns true if the token was rejected.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsValidationFailed returns true if the request body was rejected.
func IsValidationFailed(err error) bool {
	code := StatusCode(err)
	return code == http.StatusBadRequest || code == http.StatusUnprocessableEntity
}

// IsRateLimited returns true if the request was throttled.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
