package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Stored hashes carry their own parameters, so these
// only apply to newly hashed passwords.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// ErrMismatchedHashAndPassword is returned when the cleartext does not match
// the stored hash.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// HashPassword will generate an argon2id password hash in the standard
// encoded form.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the encoded argon2id hash.
func ComparePasswordAndHash(password, hash string) error {
	salt, key, time, memory, threads, err := decodeArgon2Hash(hash)
	if err != nil {
		return err
	}

	other := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(key, other) != 1 {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

func decodeArgon2Hash(hash string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("not an argon2id hash", errors.CategoryInternal)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, errors.CategoryInternal, "malformed argon2 version")
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, errors.New("unsupported argon2 version", errors.CategoryInternal)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, errors.CategoryInternal, "malformed argon2 parameters")
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, errors.CategoryInternal, "malformed argon2 salt")
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, errors.CategoryInternal, "malformed argon2 key")
	}

	return salt, key, time, memory, threads, nil
}
