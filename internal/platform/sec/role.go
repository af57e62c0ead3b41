// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: employee records, corrections, announcements
	RoleAdmin UserRole = "admin"

	// Can review and approve leave requests for their department
	RoleApprover UserRole = "approver"

	// Default role for standard staff accounts
	RoleEmployee UserRole = "employee"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsValid reports whether the role is one of the known account roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleApprover:
		return 20
	case RoleEmployee:
		return 10
	default:
		return 0
	}
}
