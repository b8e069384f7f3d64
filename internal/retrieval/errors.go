// Package retrieval produces unranked candidate items per category from an
// external data source.
package retrieval

import "fmt"

// MissingPreferenceError indicates a required preference field was absent
// from a retrieval request. It is fatal to the retrieval call and is
// recoverable only by re-prompting for input, not by retrying.
type MissingPreferenceError struct {
	Field string
}

func (e *MissingPreferenceError) Error() string {
	return fmt.Sprintf("missing required preference: %s", e.Field)
}

// RetrievalError represents an external source failure. The session
// controller retries the call once before surfacing the failure.
type RetrievalError struct {
	Message string
	Cause   error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("retrieval error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("retrieval error: %s", e.Message)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}
