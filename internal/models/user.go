package models

import "time"

// UserRole represents the available roles for the RBAC system. Each user
// holds exactly one role.
type UserRole string

const (
	RoleSuperadmin UserRole = "superadmin"
	RoleReviewer   UserRole = "reviewer"
	RoleApprover   UserRole = "approver"
)

// ValidUserRole reports whether the value is a known role.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleSuperadmin, RoleReviewer, RoleApprover:
		return true
	}
	return false
}

// User represents an application user stored in the users table. Credential
// verification happens at the identity provider; the hash is kept only for
// seeding it.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserStatistics aggregates user counts shown on the dashboard.
type UserStatistics struct {
	Total     int `db:"total" json:"total"`
	Reviewers int `db:"reviewers" json:"reviewers"`
	Approvers int `db:"approvers" json:"approvers"`
}
