package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const tokeninfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

// GoogleIdentity is the verified identity extracted from a Google ID token.
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier exchanges the credential string posted by the Google
// sign-in widget for a verified identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// HTTPClient lets tests stub the outbound tokeninfo call.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokeninfoVerifier validates ID tokens against Google's tokeninfo
// endpoint. Google rejects tokens that are expired or badly signed, the
// audience check against ClientID happens here.
type TokeninfoVerifier struct {
	ClientID string
	Client   HTTPClient
}

func NewTokeninfoVerifier(clientID string) *TokeninfoVerifier {
	return &TokeninfoVerifier{
		ClientID: clientID,
		Client:   http.DefaultClient,
	}
}

type tokeninfoResponse struct {
	Audience string `json:"aud"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

func (v *TokeninfoVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	if v.ClientID == "" {
		return nil, fmt.Errorf("%w: no client ID configured", ErrInvalidAssertion)
	}

	endpoint := tokeninfoEndpoint + "?id_token=" + url.QueryEscape(credential)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request, %w", err)
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo returned status %d", ErrInvalidAssertion, resp.StatusCode)
	}

	var info tokeninfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: malformed tokeninfo response", ErrInvalidAssertion)
	}

	if info.Audience != v.ClientID {
		return nil, fmt.Errorf("%w: token audience mismatch", ErrInvalidAssertion)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", ErrInvalidAssertion)
	}

	return &GoogleIdentity{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// mockGoogleIdentity is what development builds hand out when no Google
// client ID is configured, mirroring the identity the frontend expects.
func mockGoogleIdentity() *GoogleIdentity {
	return &GoogleIdentity{
		Email:   "mockuser@example.com",
		Name:    "Test Candidate Mode",
		Picture: "https://api.dicebear.com/7.x/avataaars/svg?seed=mockcandidate",
	}
}
