package model

import "time"

// Role is the closed set of account roles.  Role strings arrive from the
// outside world (registration payloads, JWT claims) and must pass through
// ParseRole before being trusted.
type Role string

const (
	RoleVolunteer   Role = "volunteer"
	RoleAdmin       Role = "admin"
	RoleMasterAdmin Role = "master_admin"
	RoleAccounts    Role = "accounts"
	RoleTrustee     Role = "trustee"
	RoleGraphics    Role = "graphics"
)

// ParseRole validates a caller-supplied role string against the closed
// enumeration.  Unrecognized values are rejected at the boundary instead of
// being stored as-is.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleVolunteer, RoleAdmin, RoleMasterAdmin, RoleAccounts, RoleTrustee, RoleGraphics:
		return Role(s), true
	}
	return "", false
}

// AdminTier reports whether the role sits in the admin tier of the
// hierarchy.  Only master_admin may delete admin-tier accounts.
func (r Role) AdminTier() bool {
	return r == RoleAdmin || r == RoleMasterAdmin
}

// User mirrors the `users` table.  The password hash is excluded from JSON
// serialization so a user record can be returned directly from handlers.
//
// FirstTime marks accounts that must change their password on first login;
// it is set on registration and cleared by any password update or reset.
type User struct {
	ID           uint64    `json:"id"`             // users.id
	Username     string    `json:"username"`       // users.username (unique)
	Email        string    `json:"email"`          // users.email (unique)
	PasswordHash string    `json:"-"`              // users.password_hash
	Role         Role      `json:"role"`           // users.role
	FirstTime    bool      `json:"firstTime"`      // users.first_time
	CreatedAt    time.Time `json:"createdAt"`      // users.created_at
}
