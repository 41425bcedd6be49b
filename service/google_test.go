package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPClient struct {
	status int
	body   string
	err    error
}

func (f *fakeHTTPClient) Do(_ *http.Request) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestTokeninfoVerifierAccepts(t *testing.T) {
	v := &TokeninfoVerifier{
		ClientID: "client-123",
		Client: &fakeHTTPClient{
			status: http.StatusOK,
			body:   `{"aud":"client-123","email":"carol@example.com","name":"Carol","picture":"pic"}`,
		},
	}

	identity, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", identity.Email)
	assert.Equal(t, "Carol", identity.Name)
	assert.Equal(t, "pic", identity.Picture)
}

func TestTokeninfoVerifierRejects(t *testing.T) {
	cases := []struct {
		name   string
		client HTTPClient
	}{
		{"google rejects the token", &fakeHTTPClient{status: http.StatusBadRequest, body: `{"error":"invalid_token"}`}},
		{"audience mismatch", &fakeHTTPClient{status: http.StatusOK, body: `{"aud":"someone-else","email":"carol@example.com"}`}},
		{"missing email claim", &fakeHTTPClient{status: http.StatusOK, body: `{"aud":"client-123"}`}},
		{"malformed response", &fakeHTTPClient{status: http.StatusOK, body: `{`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &TokeninfoVerifier{ClientID: "client-123", Client: tc.client}

			_, err := v.Verify(context.Background(), "token")
			assert.ErrorIs(t, err, ErrInvalidAssertion)
		})
	}
}

func TestTokeninfoVerifierNetworkError(t *testing.T) {
	v := &TokeninfoVerifier{
		ClientID: "client-123",
		Client:   &fakeHTTPClient{err: errors.New("connection refused")},
	}

	_, err := v.Verify(context.Background(), "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidAssertion,
		"a transport failure is not an invalid assertion")
}

func TestTokeninfoVerifierNoClientID(t *testing.T) {
	v := &TokeninfoVerifier{Client: &fakeHTTPClient{status: http.StatusOK, body: `{}`}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidAssertion,
		"production must refuse to verify without a configured client ID")
}
