package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/orgvault/internal/common"
)

// Argon2id parameters. Changing these only affects newly hashed passwords:
// the parameters travel inside each encoded hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

var (
	// ErrIncorrectPassword is the one verification failure callers may
	// translate into a user-facing validation message. Anything else from
	// VerifyPassword is an internal failure and must stay opaque.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrInvalidHash reports a stored hash that cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")
)

// HashPassword derives an argon2id hash of plain with a fresh random salt and
// returns it in the standard encoded form. Two calls with the same input
// produce different strings; both verify.
func HashPassword(plain string) (string, error) {
	salt := common.GenerateRandByteArray(argonSaltLen)
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return encoded, nil
}

// VerifyPassword checks plain against an encoded argon2id hash. A mismatch is
// ErrIncorrectPassword; a hash that cannot be parsed is ErrInvalidHash.
func VerifyPassword(plain string, encoded string) error {
	salt, key, time, memory, threads, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(plain), salt, time, memory, threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrIncorrectPassword
	}
	return nil
}

func decodeHash(encoded string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}

	return salt, key, time, memory, threads, nil
}
