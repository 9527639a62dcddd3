// Package models defines the wire-level types exchanged with the
// Book Review Platform backend.
package models

import "time"

// Role classifies an account. It is the only authorization discriminant
// the platform has; there are no per-resource ACLs.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the backend's account record. The client holds an immutable
// snapshot captured at login time; it is not refreshed until the next login.
type User struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the snapshot carries the admin role.
// The role is trusted as returned by the server and never re-derived.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
