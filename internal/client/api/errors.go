package api

import (
	"fmt"

	"github.com/werkmate/werkmate-cli/internal/common"
)

// HTTPError is returned for any non-2xx response. It carries the status code
// and the raw response body, and unwraps to one of the common sentinel
// errors so callers can match with errors.Is.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d: %s", e.Status, e.Body)
}

func (e *HTTPError) Unwrap() error {
	switch {
	case e.Status == 401 || e.Status == 403:
		return common.ErrUnauthorized
	case e.Status == 404:
		return common.ErrNotFound
	case e.Status >= 500:
		return common.ErrUnavailable
	default:
		return nil
	}
}
