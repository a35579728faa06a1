package core

import "github.com/google/uuid"

// NewTraceID returns an identifier correlating the log lines of a single
// fetch or image load attempt.
func NewTraceID() string {
	return uuid.NewString()
}
