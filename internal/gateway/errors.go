package gateway

import (
	"encoding/json"
	"net/http"
)

// APIError is a normalized non-2xx response from the backend. Details
// carries the per-field messages of a structured validation failure;
// Message carries the single error message otherwise.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Details) > 0 {
		return e.Details[0]
	}
	return http.StatusText(e.Status)
}

// Notices returns the user-facing messages for this failure: one per
// structured detail when present, else the single message, else the
// operation-specific fallback supplied by the caller.
func (e *APIError) Notices(fallback string) []string {
	if len(e.Details) > 0 {
		return e.Details
	}
	if e.Message != "" {
		return []string{e.Message}
	}
	return []string{fallback}
}

// errorBody matches the backend's failure shapes: {"msg": "..."} or
// {"details": [{"message": "..."}, ...]}.
type errorBody struct {
	Msg     string `json:"msg"`
	Details []struct {
		Message string `json:"message"`
	} `json:"details"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apiErr
	}
	apiErr.Message = body.Msg
	for _, d := range body.Details {
		if d.Message != "" {
			apiErr.Details = append(apiErr.Details, d.Message)
		}
	}
	return apiErr
}

// Notices extracts user-facing messages from any gateway error. Non-API
// failures (network, decoding) collapse to the fallback.
func Notices(err error, fallback string) []string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Notices(fallback)
	}
	return []string{fallback}
}
