package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"", ErrPasswordTooShort},
		{"short1!", ErrPasswordTooShort},
		{"exactly8", ErrPasswordTooShort},
		{"longenough1", ErrPasswordNoUpper},
		{"Longenough!", ErrPasswordNoDigit},
		{"Longenough1", ErrPasswordNoSpec},
		{"Longenough1!", nil},
		{"Passw0rd!", nil},
	}

	for _, tc := range cases {
		err := PasswordValidator(tc.password)
		if tc.want == nil {
			assert.NoError(t, err, "password %q", tc.password)
		} else {
			assert.ErrorIs(t, err, tc.want, "password %q", tc.password)
		}
	}
}

func TestPasswordValidatorRuleOrder(t *testing.T) {
	// Violates every rule at once, length must win
	assert.ErrorIs(t, PasswordValidator("aa"), ErrPasswordTooShort)

	// Violates upper, digit and special, upper must win
	assert.ErrorIs(t, PasswordValidator("aaaaaaaaaa"), ErrPasswordNoUpper)
}

func TestIsPolicyViolation(t *testing.T) {
	assert.True(t, IsPolicyViolation(ErrPasswordNoDigit))
	assert.False(t, IsPolicyViolation(ErrEmailInvalid))
	assert.False(t, IsPolicyViolation(nil))
}

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("alice@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
}
