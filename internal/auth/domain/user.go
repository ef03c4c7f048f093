package domain

import "time"

// User is the identity record the whole service revolves around. The two
// nullable token fields are the live one-time secrets: at most one of each
// exists per user, and both are cleared on successful use.
type User struct {
	ID            string
	Username      string // unique
	PasswordHash  string // argon2id encoded, never plaintext
	Email         string
	ContactNumber string
	Roles         []Role

	MFAEnabled bool
	MFACode    *string // live emailed one-time code (nullable)

	ResetToken          *string    // live password-reset token (nullable)
	ResetTokenExpiresAt *time.Time // set together with ResetToken

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user carries the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles in store order.
func (u User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}
