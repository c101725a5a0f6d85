package common

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// GenerateID returns a new random identifier for a stored record.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateRandByteArray returns size cryptographically secure random bytes.
// It panics if the system random source fails, which is not recoverable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
