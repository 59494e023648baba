package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/kokomiu/kokomiu-api/social"
)

// Service composes the federation client, the storage collaborators, and the
// session issuer into the login, refresh, and logout operations. Every
// dependency is injected at construction; nothing is resolved lazily.
type Service struct {
	provider social.Provider
	users    UserStore
	admins   AdminStore
	issuer   *SessionIssuer
	logger   Logger
}

type ServiceOption func(*Service)

func WithServiceLogger(l Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(provider social.Provider, users UserStore, admins AdminStore, issuer *SessionIssuer, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		users:    users,
		admins:   admins,
		issuer:   issuer,
		logger:   defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Issuer exposes the session issuer so role-specific login controllers (admin)
// can issue with the same secret and cookie policy.
func (s *Service) Issuer() *SessionIssuer {
	return s.issuer
}

// LoginWithGoogle exchanges the authorization code, fetches the profile, maps
// it to a local principal (create-if-absent) and writes the session cookies.
func (s *Service) LoginWithGoogle(c *fiber.Ctx, code string) (Principal, error) {
	ctx := c.UserContext()

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("google code exchange failed: %v", err)
		return Principal{}, federationError(err)
	}

	profile, err := s.provider.UserInfo(ctx, token)
	if err != nil {
		s.logger.Error("google profile fetch failed: %v", err)
		return Principal{}, federationError(err)
	}

	principal, err := s.users.GetOrCreateByEmail(ctx, profile.Email, profile.Name, profile.AvatarURL)
	if err != nil {
		return Principal{}, err
	}

	if err := s.issuer.Issue(c, principal, RoleUser); err != nil {
		return Principal{}, err
	}

	return principal, nil
}

// Refresh verifies the refresh token, re-loads the principal by subject id,
// and re-issues the full cookie set with the role carried by the token. A 401
// leaves the cookie set untouched.
func (s *Service) Refresh(c *fiber.Ctx) (Principal, error) {
	raw := c.Cookies(CookieRefreshToken)
	if raw == "" {
		return Principal{}, ErrUnauthorized
	}

	claims, err := DecodeClaims(raw, s.issuer.secret)
	if err != nil {
		s.logger.Info("refresh token rejected: %v", err)
		return Principal{}, ErrUnauthorized
	}

	if claims.Purpose != PurposeRefresh {
		return Principal{}, ErrUnauthorized
	}

	subject, err := claims.SubjectID()
	if err != nil {
		return Principal{}, ErrUnauthorized
	}

	principal, err := s.loadPrincipal(c, claims.Role, subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, err
	}

	if err := s.issuer.Issue(c, principal, claims.Role); err != nil {
		return Principal{}, err
	}

	return principal, nil
}

// Logout clears all four cookies with the attributes used at issuance. It
// succeeds whether or not a valid session existed.
func (s *Service) Logout(c *fiber.Ctx) {
	ClearSessionCookies(c, s.issuer.policy)
}

func (s *Service) loadPrincipal(c *fiber.Ctx, role Role, id int64) (Principal, error) {
	if role == RoleAdmin {
		return s.admins.GetByID(c.UserContext(), id)
	}
	return s.users.GetByID(c.UserContext(), id)
}

// federationError converts a provider failure into the public taxonomy.
// Network failures and malformed success payloads surface as internal errors;
// upstream rejections surface as auth failures. The upstream status and
// description ride along as metadata.
func federationError(err error) error {
	var perr *social.ProviderError
	if !errors.As(err, &perr) {
		return errors.Wrap(err, errors.CategoryInternal, "identity provider request failed")
	}

	base := ErrFederationFailed
	category, code := base.Category, base.Code
	if perr.Status == 0 || perr.Code == "missing_access_token" {
		category, code = errors.CategoryInternal, errors.CodeInternal
	}

	return errors.Wrap(err, category, base.Message).
		WithTextCode(base.TextCode).
		WithCode(code).
		WithMetadata(perr.Metadata())
}
