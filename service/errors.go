// Package service implements the authentication core: identity storage,
// credential checks, OTP issuance and verification, and Google sign-in
// reconciliation. Handlers in the api package translate the sentinel
// errors defined here into HTTP responses.
package service

import "errors"

var (
	// ErrInvalidCredentials covers every password login failure: unknown
	// email, federated-only account, or hash mismatch. Callers get one
	// error for all three so responses don't leak which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateIdentity is returned when a non-federated registration
	// targets an email that already has an account.
	ErrDuplicateIdentity = errors.New("account already exists for this email")

	// ErrInvalidOtp is returned when no passcode is pending for the email
	// or the submitted code doesn't match. A mismatch keeps the pending
	// record so the user can retry within the validity window.
	ErrInvalidOtp = errors.New("incorrect or expired code")

	// ErrOtpExpired is returned when the pending passcode outlived its
	// validity window. The record is consumed, a retry needs a fresh code.
	ErrOtpExpired = errors.New("code expired")

	// ErrInvalidAssertion is returned when a Google credential can't be
	// verified or carries no email claim.
	ErrInvalidAssertion = errors.New("invalid identity assertion")

	// ErrMailerNotConfigured is reported by the SMTP mailer when no
	// sender address is configured.
	ErrMailerNotConfigured = errors.New("mail server not configured")
)
