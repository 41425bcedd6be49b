package validators

import (
	"errors"
	"strings"
	"unicode"
)

// SpecialCharset is the fixed set of characters that satisfy the special
// character rule.
const SpecialCharset = "!@#$%^&*()-_=+[]{};:,.<>?"

var (
	ErrPasswordTooShort = errors.New("password must be longer than 8 characters")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain a digit")
	ErrPasswordNoSpec   = errors.New("password must contain a special character")
	ErrPasswordTooLong  = errors.New("password is too long")
)

var policyErrors = []error{
	ErrPasswordTooShort,
	ErrPasswordNoUpper,
	ErrPasswordNoDigit,
	ErrPasswordNoSpec,
	ErrPasswordTooLong,
}

// PasswordValidator enforces the registration password policy. Rules run
// in a fixed order and the first failing rule is returned, so callers can
// surface a single actionable message.
func PasswordValidator(p string) error {
	if len(p) <= 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	if !strings.ContainsFunc(p, unicode.IsUpper) {
		return ErrPasswordNoUpper
	}

	if !strings.ContainsFunc(p, unicode.IsDigit) {
		return ErrPasswordNoDigit
	}

	if !strings.ContainsAny(p, SpecialCharset) {
		return ErrPasswordNoSpec
	}

	return nil
}

// IsPolicyViolation reports whether err came from PasswordValidator.
func IsPolicyViolation(err error) bool {
	for _, e := range policyErrors {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
