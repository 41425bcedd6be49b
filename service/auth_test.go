package service

import (
	"context"
	"testing"

	"prepmate/interview-api/model"
	"prepmate/interview-api/security"
	"prepmate/interview-api/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *GoogleIdentity
	err      error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*GoogleIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}

	return v.identity, nil
}

func newAuth(t *testing.T) (*Auth, *fakeMailer) {
	t.Helper()

	db := testDB(t)
	mailer := &fakeMailer{}

	return &Auth{
		Store: NewIdentityStore(db),
		Otp:   &OtpService{DB: db, Mailer: mailer},
		Argon: security.New(),
	}, mailer
}

func TestCheckCredentials(t *testing.T) {
	a, _ := newAuth(t)

	hash, err := a.Argon.GenerateFromPassword("Passw0rd!x")
	require.NoError(t, err)

	id, err := a.Store.Create(model.NewPasswordUser("", "alice@example.com", hash))
	require.NoError(t, err)

	_, err = a.Store.Create(model.NewFederatedUser("", "bob@example.com", "Bob", ""))
	require.NoError(t, err)

	userID, err := a.CheckCredentials("alice@example.com", "Passw0rd!x")
	require.NoError(t, err)
	assert.Equal(t, id, userID)

	_, err = a.CheckCredentials("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.CheckCredentials("nobody@example.com", "Passw0rd!x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Federated accounts have no usable password, any attempt fails
	_, err = a.CheckCredentials("bob@example.com", "Passw0rd!x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBeginLoginIssuesPasscode(t *testing.T) {
	a, mailer := newAuth(t)

	hash, err := a.Argon.GenerateFromPassword("Passw0rd!x")
	require.NoError(t, err)

	_, err = a.Store.Create(model.NewPasswordUser("", "alice@example.com", hash))
	require.NoError(t, err)

	res, err := a.BeginLogin("alice@example.com", "Passw0rd!x")
	require.NoError(t, err)
	assert.True(t, res.Delivered)
	require.Len(t, mailer.sent, 1)

	_, err = a.BeginLogin("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, mailer.sent, 1, "failed credentials must not issue a passcode")
}

func TestBeginRegistrationPolicyRunsFirst(t *testing.T) {
	a, mailer := newAuth(t)

	cases := []struct {
		password string
		want     error
	}{
		{"short1!", validators.ErrPasswordTooShort},
		{"longenough1", validators.ErrPasswordNoUpper},
		{"Longenough!", validators.ErrPasswordNoDigit},
		{"Longenough1", validators.ErrPasswordNoSpec},
	}

	for _, tc := range cases {
		_, err := a.BeginRegistration("alice@example.com", tc.password, nil)
		assert.ErrorIs(t, err, tc.want, "password %q", tc.password)
	}

	user, err := a.Store.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, user, "a rejected password must never touch the store")
	assert.Empty(t, mailer.sent)
}

func TestBeginRegistrationDuplicate(t *testing.T) {
	a, _ := newAuth(t)

	_, err := a.BeginRegistration("alice@example.com", "Longenough1!", nil)
	require.NoError(t, err)

	_, err = a.BeginRegistration("alice@example.com", "Longenough1!", nil)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegistrationThenOtpScenario(t *testing.T) {
	a, mailer := newAuth(t)

	res, err := a.BeginRegistration("alice@example.com", "Passw0rd!x", &ProfilePatch{FullName: "Alice"})
	require.NoError(t, err)
	assert.True(t, res.Delivered)
	require.Len(t, mailer.sent, 1)

	code := mailer.sent[0].code

	userID, err := a.CompleteOtp("alice@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)

	// The passcode was consumed, a replay fails
	_, err = a.CompleteOtp("alice@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidOtp)

	// The stored password is a hash, never the plaintext
	user, err := a.Store.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotContains(t, user.PasswordHash, "Passw0rd!x")
	assert.Contains(t, user.PasswordHash, "$argon2id$")
	assert.Equal(t, "Alice", user.FullName)
}

func TestLoginWithGoogle(t *testing.T) {
	a, _ := newAuth(t)
	a.Google = &stubVerifier{identity: &GoogleIdentity{
		Email:   "carol@example.com",
		Name:    "Carol",
		Picture: "pic",
	}}

	identity, first, err := a.LoginWithGoogle(context.Background(), "credential")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", identity.Email)

	_, second, err := a.LoginWithGoogle(context.Background(), "credential")
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated Google logins resolve to the same account")

	// No passcode was ever issued on the federated path
	assert.EqualValues(t, 0, pendingCount(t, a.Otp.DB, "carol@example.com"))
}

func TestLoginWithGoogleInvalidAssertion(t *testing.T) {
	a, _ := newAuth(t)
	a.Google = &stubVerifier{err: ErrInvalidAssertion}

	_, _, err := a.LoginWithGoogle(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidAssertion)
}

func TestLoginWithGoogleDevFallback(t *testing.T) {
	a, _ := newAuth(t)
	a.Google = &stubVerifier{err: ErrInvalidAssertion}
	a.DevGoogleFallback = true

	identity, userID, err := a.LoginWithGoogle(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.Equal(t, "mockuser@example.com", identity.Email)
}
