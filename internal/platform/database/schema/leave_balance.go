// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LeaveBalanceTable represents the 'leave_balance' table
type LeaveBalanceTable struct {
	Table            string
	ID               string
	EmployeeID       string
	FinancialYear    string
	AnnualAllocated  string
	AnnualUsed       string
	SickAllocated    string
	SickUsed         string
	EmergencyAllowed string
	EmergencyUsed    string
	UpdatedAt        string
}

// LeaveBalance is the schema definition for leave_balance
var LeaveBalance = LeaveBalanceTable{
	Table:            "leave_balance",
	ID:               "id",
	EmployeeID:       "employee_id",
	FinancialYear:    "financial_year",
	AnnualAllocated:  "annual_allocated",
	AnnualUsed:       "annual_used",
	SickAllocated:    "sick_allocated",
	SickUsed:         "sick_used",
	EmergencyAllowed: "emergency_allocated",
	EmergencyUsed:    "emergency_used",
	UpdatedAt:        "updated_at",
}
