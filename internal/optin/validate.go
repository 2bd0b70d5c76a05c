package optin

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailShape is a minimal shape check, not RFC 5322. RE2's \s is ASCII only,
// so vertical tab, Unicode separators and BOM are excluded explicitly.
var emailShape = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

const (
	tagNotBlank = "notblank"
	tagEmail    = "optin_email"
)

// SubscribeRequest is the DTO bound from the opt-in form.
type SubscribeRequest struct {
	Name  string `form:"name" json:"name" validate:"notblank"`
	Email string `form:"email" json:"email" validate:"notblank,optin_email"`
}

// NewValidator returns a validator that knows the opt-in form rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation(tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

var defaultValidator = NewValidator()

// Validate applies the two form rules in order: both fields must be non-blank,
// then the email must match the minimal shape. It returns a *ValidationError.
func Validate(name, email string) error {
	err := defaultValidator.Struct(SubscribeRequest{Name: name, Email: email})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == tagNotBlank {
			return missingField()
		}
	}
	return invalidEmail()
}
