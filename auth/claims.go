package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Purpose tags a token as either the short-lived access token or the
// longer-lived refresh token.
type Purpose = string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
)

// SessionClaims is the signed payload inside both session tokens. The JSON
// keys ("user", "type") are part of the wire contract with the deployed
// frontend and must not change.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role    Role    `json:"user,omitempty"`
	Purpose Purpose `json:"type,omitempty"`
}

// NewSessionClaims builds claims for a principal. The expiry is computed from
// the supplied issue time so that callers control the reference clock.
func NewSessionClaims(subject int64, role Role, purpose Purpose, issuedAt time.Time, ttl time.Duration) *SessionClaims {
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Role:    role,
		Purpose: purpose,
	}
}

// SubjectID parses the numeric principal id out of the subject claim.
func (c *SessionClaims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, ErrTokenInvalid.Category, ErrTokenInvalid.Message).
			WithTextCode(ErrTokenInvalid.TextCode)
	}
	return id, nil
}

// EncodeClaims signs claims with HS256. The secret is always passed in; the
// codec reads no ambient state.
func EncodeClaims(claims *SessionClaims, secret []byte) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// DecodeClaims parses and validates a token string. Expired tokens map to
// ErrTokenExpired; anything else (bad signature, malformed payload, wrong
// signing method) maps to ErrTokenInvalid.
func DecodeClaims(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenInvalid.Category, ErrTokenInvalid.Message).
			WithTextCode(ErrTokenInvalid.TextCode)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
