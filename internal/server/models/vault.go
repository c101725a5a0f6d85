package models

import "time"

// Vault groups entries inside an org. TestCipher is a probe ciphertext
// written at creation time; decrypting it verifies the master key without
// touching any entry.
type Vault struct {
	ID         string
	OrgID      string
	Name       string
	TestCipher string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
