package types

import "fmt"

// Role represents the authority an actor holds within a company
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleCorporateManager Role = "corporate_manager"
	RoleApproverManager  Role = "approver_manager"
	// RoleEmployee is the basic submitter role. It can open reports and
	// add public comments but has no case-management authority.
	RoleEmployee Role = "employee"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleCorporateManager,
		RoleApproverManager,
		RoleEmployee,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCorporateManager, RoleApproverManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsManager reports whether the role carries case-management authority
func (r Role) IsManager() bool {
	switch r {
	case RoleAdmin, RoleCorporateManager, RoleApproverManager:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
