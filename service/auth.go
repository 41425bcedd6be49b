package service

import (
	"context"
	"fmt"

	"prepmate/interview-api/model"
	"prepmate/interview-api/security"
	"prepmate/interview-api/validators"

	"go.uber.org/zap"
)

// Auth sequences the login and registration flows. It is the only type the
// api package talks to: password login and registration both end in a
// pending passcode, Google sign-in skips the passcode entirely. The email
// address is the correlation key between the begin and complete steps, no
// server-side attempt state exists beyond the pending passcode row.
type Auth struct {
	Store  *IdentityStore
	Otp    *OtpService
	Argon  *security.ArgonHash
	Google GoogleVerifier

	// DevGoogleFallback substitutes a fake identity when no Google client
	// ID is configured. Development only.
	DevGoogleFallback bool
}

// CheckCredentials validates a password login attempt. Unknown emails,
// federated accounts and wrong passwords all collapse into
// ErrInvalidCredentials. No side effects.
func (a *Auth) CheckCredentials(email, password string) (string, error) {
	user, err := a.Store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	if user == nil || user.Federated() {
		return "", ErrInvalidCredentials
	}

	ok, err := a.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return "", ErrInvalidCredentials
	}

	return user.ID, nil
}

// BeginLogin runs the first password login step: credentials check, then a
// fresh passcode for the email. The caller stays unauthenticated until
// CompleteOtp succeeds.
func (a *Auth) BeginLogin(email, password string) (*IssueResult, error) {
	if _, err := a.CheckCredentials(email, password); err != nil {
		return nil, err
	}

	return a.Otp.Issue(email)
}

// BeginRegistration creates a password account and issues its first
// passcode. The password policy runs before anything touches the store.
func (a *Auth) BeginRegistration(email, password string, profile *ProfilePatch) (*IssueResult, error) {
	if err := validators.PasswordValidator(password); err != nil {
		return nil, err
	}

	hash, err := a.Argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user := model.NewPasswordUser("", email, hash)
	if profile != nil {
		user.FullName = profile.FullName
		user.Phone = profile.Phone
		user.Bio = profile.Bio
		user.ProfilePicture = profile.ProfilePicture
	}

	if _, err := a.Store.Create(user); err != nil {
		return nil, err
	}

	return a.Otp.Issue(email)
}

// CompleteOtp finishes either flow by consuming the pending passcode and
// returning the authenticated user ID. Verifier errors pass through
// unchanged.
func (a *Auth) CompleteOtp(email, code string) (string, error) {
	return a.Otp.Verify(email, code)
}

// LoginWithGoogle verifies the posted credential and creates or fetches
// the federated account for its email. Repeated logins by the same person
// resolve to the same user row. This path never touches passcodes.
func (a *Auth) LoginWithGoogle(ctx context.Context, credential string) (*GoogleIdentity, string, error) {
	var identity *GoogleIdentity

	if a.DevGoogleFallback {
		zap.L().Warn("No Google client ID configured, using fake identity")
		identity = mockGoogleIdentity()
	} else {
		var err error

		identity, err = a.Google.Verify(ctx, credential)
		if err != nil {
			return nil, "", err
		}
	}

	userID, err := a.Store.Create(model.NewFederatedUser("", identity.Email, identity.Name, identity.Picture))
	if err != nil {
		return nil, "", err
	}

	return identity, userID, nil
}
