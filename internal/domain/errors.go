package domain

import "errors"

// ErrNotFound is returned when an operation targets a card that does not
// exist. It is an expected outcome, not a failure.
var ErrNotFound = errors.New("not found")

// ValidationError reports caller input that violates a rule. It is always
// detected before any mutation, so the store is untouched when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
