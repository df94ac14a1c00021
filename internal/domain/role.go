package domain

// Role is a bot-wide privilege
type Role string

const (
	RoleOwner       Role = "owner"
	RoleGlobalAdmin Role = "global_admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleGlobalAdmin
}

// RoleAssignment grants a role to a user
type RoleAssignment struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
