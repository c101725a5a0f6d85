package models

import (
	"database/sql"
	"time"
)

const (
	EntryStatusActive   = "active"
	EntryStatusArchived = "archived"
)

// Entry is a stored secret. The label is plaintext; the four Cipher* columns
// hold envelope ciphertext strings and are opaque to every layer except the
// handlers that encrypt and decrypt them.
type Entry struct {
	ID               string
	VaultID          string
	Label            string
	CipherUsername   sql.NullString
	CipherPassword   sql.NullString
	CipherNotes      sql.NullString
	CipherExtraNotes sql.NullString
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
