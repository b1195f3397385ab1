package services

import "errors"

// Guard violations inside a session (submitting twice, advancing before
// submitting, hints in exam mode) are silent no-ops, never errors. Errors
// exist only for things outside the state machine's guards.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrExamNotFound    = errors.New("exam not found")
	ErrInvalidMode     = errors.New("invalid quiz mode")
	ErrNotCompleted    = errors.New("session not completed")
	ErrExportFailed    = errors.New("export failed")
)

// IsNotFound checks if error represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrExamNotFound)
}
