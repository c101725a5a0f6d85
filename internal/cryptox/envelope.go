// Package cryptox implements the two cryptographic primitives of the vault:
// the envelope cipher protecting entry fields and the password hash used for
// user credentials.
//
// The envelope scheme encrypts every value under its own random 256-bit data
// key, then wraps that data key under the long-lived master key. Compromise of
// one value's data key exposes nothing else, and the master key could later be
// rotated by rewrapping data keys without touching bulk ciphertext.
package cryptox

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dmitrijs2005/orgvault/internal/common"
)

// methodTag identifies the only supported AEAD, XChaCha20-Poly1305. Unknown
// tags are rejected outright rather than best-effort parsed.
const methodTag = "xc20p"

const (
	dataKeySize = chacha20poly1305.KeySize   // 32
	nonceSize   = chacha20poly1305.NonceSizeX // 24
)

var (
	// ErrCipher covers structural and authentication failures: a malformed
	// envelope, an unknown method tag, a wrong key, or tampered ciphertext.
	ErrCipher = errors.New("cipher error")

	// ErrDecode covers base64 decoding failures inside an envelope part.
	ErrDecode = errors.New("decode error")
)

// Encrypt seals plaintext under a fresh random data key and wraps that key
// under masterKey. The result is "<wrapped>|<sealed>" where each part is
// "xc20p:<base64 nonce>:<base64 ciphertext>" with standard padded base64.
// The two nonces are drawn independently.
func Encrypt(masterKey string, plaintext string) (string, error) {
	master, err := keyBytes(masterKey)
	if err != nil {
		return "", err
	}

	dataKey := common.GenerateRandByteArray(dataKeySize)

	wrapped, err := sealPart(master, dataKey)
	if err != nil {
		return "", err
	}
	sealed, err := sealPart(dataKey, []byte(plaintext))
	if err != nil {
		return "", err
	}

	return wrapped + "|" + sealed, nil
}

// Decrypt reverses Encrypt. Any structural problem, decode failure or
// authentication failure yields a typed error, never a silently empty result.
func Decrypt(masterKey string, ciphertext string) (string, error) {
	master, err := keyBytes(masterKey)
	if err != nil {
		return "", err
	}

	parts := strings.Split(ciphertext, "|")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: expected two envelope parts", ErrCipher)
	}

	dataKey, err := openPart(master, parts[0])
	if err != nil {
		return "", err
	}
	if len(dataKey) != dataKeySize {
		return "", fmt.Errorf("%w: wrapped key has wrong size", ErrCipher)
	}

	plaintext, err := openPart(dataKey, parts[1])
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func keyBytes(key string) ([]byte, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes", ErrCipher, chacha20poly1305.KeySize)
	}
	return []byte(key), nil
}

func sealPart(key []byte, plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCipher, err)
	}

	nonce := common.GenerateRandByteArray(nonceSize)
	ct := aead.Seal(nil, nonce, plaintext, nil)

	return methodTag + ":" +
		base64.StdEncoding.EncodeToString(nonce) + ":" +
		base64.StdEncoding.EncodeToString(ct), nil
}

func openPart(key []byte, part string) ([]byte, error) {
	fields := strings.Split(part, ":")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected method:nonce:data", ErrCipher)
	}
	if fields[0] != methodTag {
		return nil, fmt.Errorf("%w: unsupported method %q", ErrCipher, fields[0])
	}

	nonce, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrDecode, err)
	}
	data, err := base64.StdEncoding.DecodeString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrDecode, err)
	}
	if len(nonce) != nonceSize {
		return nil, fmt.Errorf("%w: nonce has wrong size", ErrCipher)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCipher, err)
	}

	plaintext, err := aead.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrCipher)
	}
	return plaintext, nil
}
