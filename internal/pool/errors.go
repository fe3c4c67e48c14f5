package pool

import "errors"

var (
	// ErrWinnerNotFound is returned when the game winner plays on neither team.
	ErrWinnerNotFound = errors.New("winner not found in match")
	// ErrMatchFinished is returned when a game is added to a decided match.
	ErrMatchFinished = errors.New("cannot add games to a finished match")
	// ErrNotFound is returned for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for duplicate names or awards and lost score races.
	ErrConflict = errors.New("conflicting update")
)

// ValidationError reports bad input detected before any state changes.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
