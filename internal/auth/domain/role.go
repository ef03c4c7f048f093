package domain

import "time"

// Role is a named permission group. Roles are seed data: created out of
// band, looked up by name during registration, never mutated here.
type Role struct {
	ID        string
	Name      string // unique
	CreatedAt time.Time
	UpdatedAt time.Time
}
