package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names are a wire contract with the deployed frontend.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieUserInfo     = "user_info"
	CookieRefreshExp   = "refresh_exp"
)

const (
	// AccessTokenTTL bounds the access token and user_info cookies.
	AccessTokenTTL = time.Hour
	// RefreshTokenTTL bounds the refresh token and refresh_exp cookies.
	RefreshTokenTTL = 6 * time.Hour
)

// EnvProd selects the production cookie policy; any other value gets the
// development policy.
const EnvProd = "prod"

// CookiePolicy holds the attributes shared by all four session cookies.
// Clearing must reuse the exact attributes used at issuance or browsers
// silently keep the cookie.
type CookiePolicy struct {
	Secure   bool
	SameSite string
	Domain   string
}

// PolicyFor derives cookie attributes from the deployment environment. The
// frontend and backend live on different subdomains in production, so
// cross-site delivery needs secure + SameSite=None with an explicit domain.
// Local development runs over plain HTTP and cannot set secure.
func PolicyFor(env, prodDomain string) CookiePolicy {
	if env == EnvProd {
		return CookiePolicy{
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
			Domain:   prodDomain,
		}
	}
	return CookiePolicy{
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (p CookiePolicy) write(c *fiber.Ctx, name, value string, maxAge time.Duration, httpOnly bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   p.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		Secure:   p.Secure,
		HTTPOnly: httpOnly,
		SameSite: p.SameSite,
	})
}

func (p CookiePolicy) clear(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   p.Domain,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		Secure:   p.Secure,
		HTTPOnly: true,
		SameSite: p.SameSite,
	})
}

// CookieSet is one issued session: the four cookie values written together on
// login/refresh and cleared together on logout.
type CookieSet struct {
	AccessToken  string
	RefreshToken string
	UserInfo     string
	RefreshExp   string
}

// Write sets all four cookies on the outbound response. user_info stays
// readable by the frontend, so it is the only cookie without http-only.
func (s CookieSet) Write(c *fiber.Ctx, p CookiePolicy) {
	p.write(c, CookieUserInfo, s.UserInfo, AccessTokenTTL, false)
	p.write(c, CookieAccessToken, s.AccessToken, AccessTokenTTL, true)
	p.write(c, CookieRefreshToken, s.RefreshToken, RefreshTokenTTL, true)
	p.write(c, CookieRefreshExp, s.RefreshExp, RefreshTokenTTL, true)
}

// ClearSessionCookies expires all four cookies. It is a no-op for cookies the
// client never had, which makes logout idempotent.
func ClearSessionCookies(c *fiber.Ctx, p CookiePolicy) {
	p.clear(c, CookieAccessToken)
	p.clear(c, CookieRefreshToken)
	p.clear(c, CookieUserInfo)
	p.clear(c, CookieRefreshExp)
}
