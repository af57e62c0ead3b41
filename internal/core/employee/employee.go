// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package employee implements administrative management of employee accounts:
creation with password policy enforcement, search and listing, profile
updates, and soft deletion.

Accounts created here are the same rows the auth module authenticates
against; the two packages share the users table but never each other's types.
*/
package employee

import (
	"time"

	"github.com/taibuivan/presensya/internal/platform/sec"
)

// # Domain Entities

// Employee is the administrative view of an account. The password hash never
// leaves the package.
type Employee struct {
	ID           string       `json:"id"`
	EmployeeID   string       `json:"employeeId"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	PasswordHash string       `json:"-"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName,omitempty"`
	Department   string       `json:"department,omitempty"`
	Designation  string       `json:"designation,omitempty"`
	Role         sec.UserRole `json:"role"`
	Status       string       `json:"status"`
	JoinDate     *time.Time   `json:"joinDate,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Account status values. Deleted rows stay in the table for audit and
// foreign-key integrity; every read path filters them out.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// # Field Identifiers

const (
	FieldEmployeeID  = "employeeId"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldStatus      = "status"
	FieldDepartment  = "department"
	FieldDesignation = "designation"
	FieldSearch      = "search"
)
