package validator

import (
	"testing"

	domainerrors "contacts/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type signupRequest struct {
	Email        string `json:"email" validate:"required,contactemail"`
	Password     string `json:"password" validate:"required,min=5"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=starter pro business"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   signupRequest
		wantMsg string
	}{
		{name: "valid", input: signupRequest{Email: "a@b.com", Password: "secret1"}},
		{name: "valid with plan", input: signupRequest{Email: "first.last@mail.example.org", Password: "12345", Subscription: "pro"}},
		{name: "missing email", input: signupRequest{Password: "secret1"}, wantMsg: `"email" is required`},
		{name: "bad email", input: signupRequest{Email: "a@b", Password: "secret1"}, wantMsg: `"email" must be a valid email`},
		{name: "long tld", input: signupRequest{Email: "a@b.info", Password: "secret1"}, wantMsg: `"email" must be a valid email`},
		{name: "short password", input: signupRequest{Email: "a@b.com", Password: "1234"}, wantMsg: `"password" length must be at least 5 characters long`},
		{name: "unknown plan", input: signupRequest{Email: "a@b.com", Password: "secret1", Subscription: "gold"}, wantMsg: `"subscription" must be one of [starter, pro, business]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

			var appErr domainerrors.AppError
			if assert.True(t, errors.As(err, &appErr)) {
				assert.Equal(t, tt.wantMsg, appErr.Message())
			}
		})
	}
}

func TestCustomValidator_ReportsEveryField(t *testing.T) {
	err := New().Validate(&signupRequest{})

	var appErr domainerrors.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Contains(t, appErr.Details(), `"email" is required`)
		assert.Contains(t, appErr.Details(), `"password" is required`)
	}
}
