package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Session timestamps use a fixed named zone so expiry math stays deterministic
// across deployment hosts.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// SessionInfo is the client-readable, non-secret session summary carried in
// the user_info cookie. It exists for UI display, never for authorization.
type SessionInfo struct {
	AuthType  Role    `json:"auth_type"`
	ID        int64   `json:"id"`
	Nickname  string  `json:"user_nickname,omitempty"`
	CreatedAt *string `json:"created_at"`
}

// SessionIssuer mints the paired access/refresh tokens plus the session-info
// payload and writes them through the cookie policy.
type SessionIssuer struct {
	secret []byte
	policy CookiePolicy
	now    func() time.Time
	logger Logger
}

type IssuerOption func(*SessionIssuer)

// WithIssuerClock overrides the reference clock, mainly for tests.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(si *SessionIssuer) {
		si.now = now
	}
}

func WithIssuerLogger(l Logger) IssuerOption {
	return func(si *SessionIssuer) {
		si.logger = l
	}
}

func NewSessionIssuer(secret []byte, policy CookiePolicy, opts ...IssuerOption) *SessionIssuer {
	si := &SessionIssuer{
		secret: secret,
		policy: policy,
		now:    func() time.Time { return time.Now().In(referenceZone) },
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(si)
		}
	}
	return si
}

// Policy exposes the cookie attributes so logout can clear with the exact
// attributes used at issuance.
func (si *SessionIssuer) Policy() CookiePolicy {
	return si.policy
}

// Issue mints a full cookie set for the principal and writes it to the
// outbound response. It touches no storage.
func (si *SessionIssuer) Issue(c *fiber.Ctx, p Principal, role Role) error {
	set, err := si.MintCookieSet(p, role)
	if err != nil {
		si.logger.Error("session issue failed: %v", err)
		return err
	}

	set.Write(c, si.policy)
	return nil
}

// MintCookieSet builds the four cookie values without touching the response.
func (si *SessionIssuer) MintCookieSet(p Principal, role Role) (CookieSet, error) {
	now := si.now()

	access, err := EncodeClaims(NewSessionClaims(p.ID, role, PurposeAccess, now, AccessTokenTTL), si.secret)
	if err != nil {
		return CookieSet{}, err
	}

	refresh, err := EncodeClaims(NewSessionClaims(p.ID, role, PurposeRefresh, now, RefreshTokenTTL), si.secret)
	if err != nil {
		return CookieSet{}, err
	}

	info, err := encodeSessionInfo(p, role)
	if err != nil {
		return CookieSet{}, err
	}

	decoy, err := si.mintRefreshDecoy(now)
	if err != nil {
		return CookieSet{}, err
	}

	return CookieSet{
		AccessToken:  access,
		RefreshToken: refresh,
		UserInfo:     info,
		RefreshExp:   decoy,
	}, nil
}

type decoyClaims struct {
	jwt.RegisteredClaims
	UUID string `json:"uuid"`
}

// mintRefreshDecoy signs a token carrying only a random uuid. Its presence and
// expiry mirror the refresh token so the client can detect refresh liveness
// without the refresh token's claims ever being readable.
func (si *SessionIssuer) mintRefreshDecoy(now time.Time) (string, error) {
	claims := decoyClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
		},
		UUID: uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(si.secret)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign refresh decoy")
	}
	return signed, nil
}

func encodeSessionInfo(p Principal, role Role) (string, error) {
	info := SessionInfo{
		AuthType: role,
		ID:       p.ID,
	}
	if role == RoleUser {
		info.Nickname = p.Nickname
	}
	if p.CreatedAt != nil {
		iso := p.CreatedAt.Format(time.RFC3339)
		info.CreatedAt = &iso
	}

	raw, err := json.Marshal(info)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to encode session info")
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}
