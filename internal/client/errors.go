// AngelaMos | 2026
// errors.go

package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carterperez-dev/internhub/internal/core"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsConflict reports a uniqueness conflict, judged by the error code.
func IsConflict(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Code == core.CodeConflict
}

func IsNotFound(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Message is the server-supplied text for err, falling back to fallback.
func Message(err error, fallback string) string {
	if apiErr, ok := asAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
