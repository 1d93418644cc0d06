package export

import (
	"fmt"
)

// SubmissionError describes a failed remote submission. It never invalidates the scan itself.
type SubmissionError struct {
	// URL is the GraphQL endpoint that was called
	URL string

	// StatusCode is the HTTP status, zero when no response was received
	StatusCode int

	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("submit events to %s: %s", e.URL, e.Reason)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
