package api

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Detail is the server-provided "detail" message, empty when the body
	// carried none (or a structured validation payload).
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// TransportError covers everything between "request built" and "response
// decoded": unreachable host, broken connection, malformed JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// parseDetail pulls a string "detail" field out of an error body.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
