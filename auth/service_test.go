package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokomiu/kokomiu-api/auth"
	"github.com/kokomiu/kokomiu-api/social"
)

type fakeProvider struct {
	exchangeErr error
	userInfoErr error
	profile     social.Profile

	gotCode  string
	gotToken string
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*social.Token, error) {
	f.gotCode = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &social.Token{AccessToken: "tok1", TokenType: "Bearer"}, nil
}

func (f *fakeProvider) UserInfo(_ context.Context, token *social.Token) (*social.Profile, error) {
	f.gotToken = token.AccessToken
	if f.userInfoErr != nil {
		return nil, f.userInfoErr
	}
	p := f.profile
	return &p, nil
}

var errStoreNotFound = errors.New("not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

type fakeUsers struct {
	byID    map[int64]auth.Principal
	created []string
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (auth.Principal, error) {
	p, ok := f.byID[id]
	if !ok {
		return auth.Principal{}, errStoreNotFound
	}
	return p, nil
}

func (f *fakeUsers) GetOrCreateByEmail(_ context.Context, email, name, _ string) (auth.Principal, error) {
	f.created = append(f.created, email)
	for _, p := range f.byID {
		if p.Nickname == name {
			return p, nil
		}
	}
	p := auth.Principal{ID: int64(len(f.byID) + 1), Kind: auth.RoleUser, Nickname: name}
	if f.byID == nil {
		f.byID = map[int64]auth.Principal{}
	}
	f.byID[p.ID] = p
	return p, nil
}

type fakeAdmins struct {
	byID map[int64]auth.Principal
}

func (f *fakeAdmins) GetByID(_ context.Context, id int64) (auth.Principal, error) {
	p, ok := f.byID[id]
	if !ok {
		return auth.Principal{}, errStoreNotFound
	}
	return p, nil
}

type serviceFixture struct {
	provider *fakeProvider
	users    *fakeUsers
	admins   *fakeAdmins
	issuer   *auth.SessionIssuer
	service  *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		provider: &fakeProvider{profile: social.Profile{Email: "a@x.com", Name: "koko"}},
		users:    &fakeUsers{},
		admins:   &fakeAdmins{byID: map[int64]auth.Principal{}},
	}
	f.issuer = auth.NewSessionIssuer(testSecret, auth.PolicyFor("dev", ""))
	f.service = auth.NewService(f.provider, f.users, f.admins, f.issuer, auth.WithServiceLogger(nopLogger{}))
	return f
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// run executes fn inside a request handler and returns the response plus the
// error fn produced.
func run(t *testing.T, cookies []*http.Cookie, fn func(c *fiber.Ctx) error) (*http.Response, error) {
	t.Helper()

	var handlerErr error
	app := fiber.New()
	app.Post("/x", func(c *fiber.Ctx) error {
		handlerErr = fn(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, handlerErr
}

func TestLoginWithGoogle(t *testing.T) {
	f := newServiceFixture(t)

	var principal auth.Principal
	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		var innerErr error
		principal, innerErr = f.service.LoginWithGoogle(c, "abc123")
		return innerErr
	})
	defer resp.Body.Close()

	require.NoError(t, err)
	assert.Equal(t, "abc123", f.provider.gotCode)
	assert.Equal(t, "tok1", f.provider.gotToken)
	assert.Equal(t, []string{"a@x.com"}, f.users.created)
	assert.Equal(t, auth.RoleUser, principal.Kind)

	cookies := cookieMap(resp)
	require.Len(t, cookies, 4)

	info := decodeSessionInfo(t, cookies[auth.CookieUserInfo].Value)
	assert.Equal(t, auth.RoleUser, info.AuthType)
	assert.Equal(t, principal.ID, info.ID)
	assert.Equal(t, "koko", info.Nickname)
}

func TestLoginWithGoogleRepeatIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)

	var first, second auth.Principal
	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		var innerErr error
		if first, innerErr = f.service.LoginWithGoogle(c, "abc123"); innerErr != nil {
			return innerErr
		}
		second, innerErr = f.service.LoginWithGoogle(c, "abc456")
		return innerErr
	})
	defer resp.Body.Close()

	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestLoginWithGoogleUpstreamRejection(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.exchangeErr = &social.ProviderError{
		Provider:    "google",
		Operation:   "exchange",
		Status:      http.StatusUnauthorized,
		Code:        "invalid_grant",
		Description: "Bad Request",
	}

	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		_, innerErr := f.service.LoginWithGoogle(c, "stale-code")
		return innerErr
	})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, errors.CategoryAuth, rich.Category)
	assert.Equal(t, auth.TextCodeFederationFailed, rich.TextCode)
	assert.Equal(t, "invalid_grant", rich.Metadata["code"])

	// A failed login writes no session cookies.
	assert.Empty(t, resp.Cookies())
}

func TestLoginWithGoogleNetworkFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.exchangeErr = &social.ProviderError{
		Provider:  "google",
		Operation: "exchange",
		Status:    0,
	}

	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		_, innerErr := f.service.LoginWithGoogle(c, "abc123")
		return innerErr
	})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, errors.CategoryInternal, rich.Category)
}

// A success response that carries no access token is an upstream contract
// violation, not a client mistake.
func TestLoginWithGoogleMissingAccessToken(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.exchangeErr = &social.ProviderError{
		Provider:  "google",
		Operation: "exchange",
		Status:    http.StatusOK,
		Code:      "missing_access_token",
	}

	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		_, innerErr := f.service.LoginWithGoogle(c, "abc123")
		return innerErr
	})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, errors.CategoryInternal, rich.Category)
}

func refreshCookie(t *testing.T, subject int64, role auth.Role, purpose auth.Purpose, issuedAt time.Time) *http.Cookie {
	t.Helper()

	claims := auth.NewSessionClaims(subject, role, purpose, issuedAt, auth.RefreshTokenTTL)
	signed, err := auth.EncodeClaims(claims, testSecret)
	require.NoError(t, err)

	return &http.Cookie{Name: auth.CookieRefreshToken, Value: signed}
}

func TestRefresh(t *testing.T) {
	f := newServiceFixture(t)
	f.users.byID = map[int64]auth.Principal{
		42: {ID: 42, Kind: auth.RoleUser, Nickname: "koko"},
	}

	resp, err := run(t,
		[]*http.Cookie{refreshCookie(t, 42, auth.RoleUser, auth.PurposeRefresh, time.Now())},
		func(c *fiber.Ctx) error {
			_, innerErr := f.service.Refresh(c)
			return innerErr
		})
	defer resp.Body.Close()

	require.NoError(t, err)
	assert.Len(t, cookieMap(resp), 4)
}

// Refresh re-issues with the role the token carries, so an admin session
// stays an admin session.
func TestRefreshKeepsAdminRole(t *testing.T) {
	f := newServiceFixture(t)
	f.admins.byID[7] = auth.Principal{ID: 7, Kind: auth.RoleAdmin}

	resp, err := run(t,
		[]*http.Cookie{refreshCookie(t, 7, auth.RoleAdmin, auth.PurposeRefresh, time.Now())},
		func(c *fiber.Ctx) error {
			_, innerErr := f.service.Refresh(c)
			return innerErr
		})
	defer resp.Body.Close()

	require.NoError(t, err)

	cookies := cookieMap(resp)
	require.NotNil(t, cookies[auth.CookieAccessToken])

	claims, err := auth.DecodeClaims(cookies[auth.CookieAccessToken].Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	info := decodeSessionInfo(t, cookies[auth.CookieUserInfo].Value)
	assert.Equal(t, auth.RoleAdmin, info.AuthType)
}

func TestRefreshRejections(t *testing.T) {
	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage token", &http.Cookie{Name: auth.CookieRefreshToken, Value: "garbage"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture(t)
			f.users.byID = map[int64]auth.Principal{42: {ID: 42, Kind: auth.RoleUser}}

			var cookies []*http.Cookie
			if tc.cookie != nil {
				cookies = append(cookies, tc.cookie)
			}

			resp, err := run(t, cookies, func(c *fiber.Ctx) error {
				_, innerErr := f.service.Refresh(c)
				return innerErr
			})
			defer resp.Body.Close()

			require.Error(t, err)

			var rich *errors.Error
			require.True(t, errors.As(err, &rich))
			assert.Equal(t, auth.TextCodeUnauthorized, rich.TextCode)
			assert.Empty(t, resp.Cookies())
		})
	}
}

// An access token presented on the refresh endpoint is rejected even though
// its signature is valid.
func TestRefreshRejectsAccessPurpose(t *testing.T) {
	f := newServiceFixture(t)
	f.users.byID = map[int64]auth.Principal{42: {ID: 42, Kind: auth.RoleUser}}

	resp, err := run(t,
		[]*http.Cookie{refreshCookie(t, 42, auth.RoleUser, auth.PurposeAccess, time.Now())},
		func(c *fiber.Ctx) error {
			_, innerErr := f.service.Refresh(c)
			return innerErr
		})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, auth.TextCodeUnauthorized, rich.TextCode)
	assert.Empty(t, resp.Cookies())
}

func TestRefreshExpiredToken(t *testing.T) {
	f := newServiceFixture(t)
	f.users.byID = map[int64]auth.Principal{42: {ID: 42, Kind: auth.RoleUser}}

	resp, err := run(t,
		[]*http.Cookie{refreshCookie(t, 42, auth.RoleUser, auth.PurposeRefresh, time.Now().Add(-7*time.Hour))},
		func(c *fiber.Ctx) error {
			_, innerErr := f.service.Refresh(c)
			return innerErr
		})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, auth.TextCodeUnauthorized, rich.TextCode)
	assert.Empty(t, resp.Cookies())
}

func TestRefreshPrincipalGone(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := run(t,
		[]*http.Cookie{refreshCookie(t, 99, auth.RoleUser, auth.PurposeRefresh, time.Now())},
		func(c *fiber.Ctx) error {
			_, innerErr := f.service.Refresh(c)
			return innerErr
		})
	defer resp.Body.Close()

	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, auth.TextCodePrincipalNotFound, rich.TextCode)
	assert.Equal(t, errors.CategoryNotFound, rich.Category)
}

func TestLogoutClearsAllCookies(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := run(t, nil, func(c *fiber.Ctx) error {
		f.service.Logout(c)
		return nil
	})
	defer resp.Body.Close()

	require.NoError(t, err)

	cookies := cookieMap(resp)
	require.Len(t, cookies, 4)
	for name, ck := range cookies {
		assert.Empty(t, ck.Value, "cookie %s", name)
	}
}
