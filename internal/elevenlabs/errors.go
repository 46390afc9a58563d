package elevenlabs

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is returned when the API answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs: API error (status %d): %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err carries a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
