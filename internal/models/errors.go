package models

import "fmt"

// ErrorKind classifies analyzer and lifecycle errors for clients. None of
// these are fatal to the process; a session with bad input degrades its
// confidence instead of terminating.
type ErrorKind string

const (
	ErrInvalidTransition    ErrorKind = "invalid_transition"
	ErrInsufficientBaseline ErrorKind = "insufficient_baseline"
	ErrMalformedSample      ErrorKind = "malformed_sample"
	ErrSessionNotFound      ErrorKind = "session_not_found"
	ErrDegenerateTimestamp  ErrorKind = "degenerate_timestamp"
)

// AnalysisError carries an error kind and a human-readable message.
type AnalysisError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewAnalysisError builds an AnalysisError with a formatted message.
func NewAnalysisError(kind ErrorKind, format string, args ...any) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, or an empty string for foreign errors.
func KindOf(err error) ErrorKind {
	if ae, ok := err.(*AnalysisError); ok {
		return ae.Kind
	}
	return ""
}
