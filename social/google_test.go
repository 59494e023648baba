package social_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokomiu/kokomiu-api/social"
)

func newTestGoogle(tokenHandler, userInfoHandler http.HandlerFunc) (*social.Google, func()) {
	tokenSrv := httptest.NewServer(tokenHandler)
	userSrv := httptest.NewServer(userInfoHandler)

	g := social.NewGoogle(social.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost/callback",
		TokenURL:     tokenSrv.URL,
		UserInfoURL:  userSrv.URL,
	})

	return g, func() {
		tokenSrv.Close()
		userSrv.Close()
	}
}

func TestGoogleExchange(t *testing.T) {
	var gotForm map[string]string

	g, done := newTestGoogle(
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = map[string]string{
				"code":       r.PostFormValue("code"),
				"client_id":  r.PostFormValue("client_id"),
				"grant_type": r.PostFormValue("grant_type"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok1","token_type":"Bearer","expires_in":3599,"scope":"email profile"}`))
		},
		nil,
	)
	defer done()

	token, err := g.Exchange(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "tok1", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "abc123", gotForm["code"])
	assert.Equal(t, "client-id", gotForm["client_id"])
	assert.Equal(t, "authorization_code", gotForm["grant_type"])
}

func TestGoogleExchangeRejected(t *testing.T) {
	g, done := newTestGoogle(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Malformed auth code."}`))
		},
		nil,
	)
	defer done()

	_, err := g.Exchange(context.Background(), "stale")
	require.Error(t, err)

	var perr *social.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "google", perr.Provider)
	assert.Equal(t, "exchange", perr.Operation)
	assert.Equal(t, http.StatusBadRequest, perr.Status)
	assert.Equal(t, "invalid_grant", perr.Code)
	assert.Equal(t, "Malformed auth code.", perr.Description)
}

// A 200 with no access_token is treated as an upstream fault, never success.
func TestGoogleExchangeMissingAccessToken(t *testing.T) {
	g, done := newTestGoogle(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token_type":"Bearer"}`))
		},
		nil,
	)
	defer done()

	_, err := g.Exchange(context.Background(), "abc123")
	require.Error(t, err)

	var perr *social.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "missing_access_token", perr.Code)
	assert.Equal(t, http.StatusOK, perr.Status)
}

func TestGoogleExchangeUnreachable(t *testing.T) {
	g, done := newTestGoogle(func(w http.ResponseWriter, r *http.Request) {}, nil)
	done() // close the server before the call

	_, err := g.Exchange(context.Background(), "abc123")
	require.Error(t, err)

	var perr *social.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, perr.Status)
	assert.Error(t, perr.Unwrap())
}

func TestGoogleUserInfo(t *testing.T) {
	var gotAuth string

	g, done := newTestGoogle(nil,
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"1001","email":"a@x.com","name":"koko","picture":"https://img/koko.png"}`))
		},
	)
	defer done()

	profile, err := g.UserInfo(context.Background(), &social.Token{AccessToken: "tok1"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok1", gotAuth)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, "koko", profile.Name)
	assert.Equal(t, "https://img/koko.png", profile.AvatarURL)
}

func TestGoogleUserInfoRejected(t *testing.T) {
	g, done := newTestGoogle(nil,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials","status":"UNAUTHENTICATED"}}`))
		},
	)
	defer done()

	_, err := g.UserInfo(context.Background(), &social.Token{AccessToken: "expired"})
	require.Error(t, err)

	var perr *social.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "user_info", perr.Operation)
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, "UNAUTHENTICATED", perr.Code)
	assert.Equal(t, "Invalid Credentials", perr.Description)
}

func TestProviderErrorMessage(t *testing.T) {
	err := &social.ProviderError{
		Provider:    "google",
		Operation:   "exchange",
		Status:      400,
		Code:        "invalid_grant",
		Description: "Malformed auth code.",
	}

	assert.Contains(t, err.Error(), "google exchange")
	assert.Contains(t, err.Error(), "Malformed auth code.")

	meta := err.Metadata()
	assert.Equal(t, 400, meta["status"])
	assert.Equal(t, "invalid_grant", meta["code"])
}
