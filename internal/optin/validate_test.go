package optin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyowdigitals/optin/internal/notify"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		email    string
		wantErr  error
		wantCode string
	}{
		{name: "valid", fullName: "Jo", email: "jo@example.com"},
		{name: "empty name", fullName: "", email: "jo@example.com", wantErr: ErrMissingField, wantCode: CodeMissingField},
		{name: "blank name", fullName: "   ", email: "jo@example.com", wantErr: ErrMissingField, wantCode: CodeMissingField},
		{name: "blank email", fullName: "Jo", email: " \t", wantErr: ErrMissingField, wantCode: CodeMissingField},
		{name: "missing wins over invalid", fullName: "", email: "nope", wantErr: ErrMissingField, wantCode: CodeMissingField},
		{name: "no at sign", fullName: "Jo", email: "not-an-email", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "no dot in domain", fullName: "Jo", email: "jo@example", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "two at signs", fullName: "Jo", email: "jo@@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "inner space", fullName: "Jo", email: "j o@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "surrounding space", fullName: "Jo", email: " jo@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "no-break space in local part", fullName: "Jo", email: "jo\u00a0x@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "em space in domain", fullName: "Jo", email: "jo@exa\u2003mple.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "ideographic space in tld", fullName: "Jo", email: "jo@example.c\u3000om", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "line separator", fullName: "Jo", email: "jo@example.c\u2028om", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "byte order mark", fullName: "Jo", email: "jo\ufeff@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "vertical tab", fullName: "Jo", email: "jo\v@example.com", wantErr: ErrInvalidEmail, wantCode: CodeInvalidEmailFormat},
		{name: "non-ascii letters allowed", fullName: "Jo", email: "jö@exämple.com"},
		{name: "subdomain", fullName: "Jo", email: "jo@mail.example.co.uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.fullName, tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantCode, verr.Code)
			assert.Equal(t, notify.VariantDestructive, verr.Notification.Variant)
		})
	}
}
