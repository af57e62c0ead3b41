// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes table and column identifiers so that query
// builders never embed raw string literals.
package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table       string
	ID          string
	EmployeeID  string
	Username    string
	Email       string
	Phone       string
	Password    string
	Role        string
	Status      string
	FirstName   string
	LastName    string
	Department  string
	Designation string
	JoinDate    string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for the users table
var UserAccount = UserAccountTable{
	Table:       "users",
	ID:          "id",
	EmployeeID:  "employee_id",
	Username:    "username",
	Email:       "email",
	Phone:       "phone",
	Password:    "password_hash",
	Role:        "role",
	Status:      "status",
	FirstName:   "first_name",
	LastName:    "last_name",
	Department:  "department",
	Designation: "designation",
	JoinDate:    "join_date",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.EmployeeID, t.Username, t.Email, t.Phone, t.Password,
		t.Role, t.Status, t.FirstName, t.LastName, t.Department,
		t.Designation, t.JoinDate, t.CreatedAt, t.UpdatedAt,
	}
}
