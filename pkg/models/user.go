package models

import "time"

// UserRole is the closed set of shop roles.
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleHeadMechanic UserRole = "head_mechanic"
	UserRoleMechanic     UserRole = "mechanic"
	UserRoleOperations   UserRole = "operations"
)

// Valid reports whether r is one of the closed set of roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleHeadMechanic, UserRoleMechanic, UserRoleOperations:
		return true
	}

	return false
}

// User is a shop employee. Authentication is handled upstream; this record
// only carries identity and role.
type User struct {
	ID        string    `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
