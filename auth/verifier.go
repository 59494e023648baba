package auth

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// RequireIdentity extracts the principal id from the inbound request cookies.
// It fails with ErrUnauthorized when user_info is missing or undecodable, when
// access_token is absent, or when the decoded payload carries no id. Decode
// failures fold into ErrUnauthorized because callers cannot act on the
// distinction.
//
// The access token is a presence check only at this layer; its signature is
// verified on the refresh path. Tests pin this asymmetry so a change to it is
// deliberate.
func RequireIdentity(c *fiber.Ctx) (int64, error) {
	id, ok := decodeUserInfoID(c)
	if !ok {
		return 0, ErrUnauthorized
	}

	if c.Cookies(CookieAccessToken) == "" {
		return 0, ErrUnauthorized
	}

	return id, nil
}

// ProbeIdentity is the best-effort variant: same decode logic, but any failure
// reports absence instead of an error. Used where authentication is optional.
func ProbeIdentity(c *fiber.Ctx) (int64, bool) {
	return decodeUserInfoID(c)
}

func decodeUserInfoID(c *fiber.Ctx) (int64, bool) {
	raw := c.Cookies(CookieUserInfo)
	if raw == "" {
		return 0, false
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return 0, false
	}

	var info SessionInfo
	if err := json.Unmarshal(decoded, &info); err != nil {
		return 0, false
	}

	if info.ID == 0 {
		return 0, false
	}

	return info.ID, true
}
