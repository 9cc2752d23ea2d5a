package triage

import (
	"encoding/json"
	"errors"
	"fmt"

	app_errors "triage-chat/internal/errors"
)

// APIError is a non-2xx answer from the triage API.
type APIError struct {
	StatusCode int
	// Detail is the server's {"detail": "..."} message, when it sent a string.
	Detail string
	Body   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("triage api returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("triage api returned status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return app_errors.ErrUpstream }

// DetailOf extracts the server-provided detail from err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(eb.Detail, &detail); err == nil {
			apiErr.Detail = detail
		}
	}
	return apiErr
}
