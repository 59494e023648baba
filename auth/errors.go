package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeUnauthorized       = "UNAUTHORIZED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenInvalid       = "TOKEN_INVALID"
	TextCodeFederationFailed   = "FEDERATION_FAILED"
	TextCodePrincipalNotFound  = "PRINCIPAL_NOT_FOUND"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// ErrUnauthorized covers every missing/undecodable credential case. Callers
// get no detail beyond the short message.
var ErrUnauthorized = errors.New("unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned by DecodeClaims when the token is past its expiry.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid is returned by DecodeClaims for a bad signature or a
// malformed payload.
var ErrTokenInvalid = errors.New("token invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrFederationFailed is the base error for identity-provider failures. The
// upstream status and body travel in metadata for operator diagnostics; they
// never include client secrets.
var ErrFederationFailed = errors.New("identity provider request failed", errors.CategoryAuth).
	WithTextCode(TextCodeFederationFailed).
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalNotFound is returned when a referenced principal no longer exists.
var ErrPrincipalNotFound = errors.New("principal not found", errors.CategoryNotFound).
	WithTextCode(TextCodePrincipalNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidCredentials is returned for a missing admin or a password
// mismatch. Both cases share one message on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(errors.CodeBadRequest)
