package models

import "time"

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User belongs to exactly one org. Roles is the ordered comma-joined role
// list as stored; Password is the encoded argon2id hash, never plaintext.
type User struct {
	ID        string
	OrgID     string
	Username  string
	Password  string
	Status    string
	Roles     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the user may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
