package grading

import "errors"

// ErrNoHistory is returned by AggregateHistory when there are no rows to reshape.
var ErrNoHistory = errors.New("no history found for student")

// ValidationError reports input that falls outside the grading contract.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
