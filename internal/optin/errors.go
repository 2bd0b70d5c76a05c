package optin

import (
	"errors"

	"github.com/pyowdigitals/optin/internal/notify"
)

var (
	// ErrMissingField means the name or the email was blank after trimming.
	ErrMissingField = errors.New("name and email are required")
	// ErrInvalidEmail means the email does not have the local@domain.tld shape.
	ErrInvalidEmail = errors.New("email address is not valid")
	// ErrSubmissionInProgress means a submission for the same form is in flight.
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
)

// Validation error codes.
const (
	CodeMissingField       = "MissingField"
	CodeInvalidEmailFormat = "InvalidEmailFormat"
)

// ValidationError is returned when the submitted fields are rejected. It
// unwraps to ErrMissingField or ErrInvalidEmail.
type ValidationError struct {
	Code         string
	Notification notify.Notification
	err          error
}

func (e *ValidationError) Error() string { return e.err.Error() }
func (e *ValidationError) Unwrap() error { return e.err }

func missingField() *ValidationError {
	return &ValidationError{Code: CodeMissingField, Notification: notify.MissingFields(), err: ErrMissingField}
}

func invalidEmail() *ValidationError {
	return &ValidationError{Code: CodeInvalidEmailFormat, Notification: notify.InvalidEmail(), err: ErrInvalidEmail}
}
