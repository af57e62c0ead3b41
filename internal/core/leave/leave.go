// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package leave implements leave balance tracking per employee and financial
year: annual, sick, and emergency allocations with their used counters.

Balances are adjusted by administrators; employees read their own. Leave
requests themselves are a separate approval workflow and out of scope here;
this package owns only the ledger the workflow would debit.
*/
package leave

import (
	"strconv"
	"time"
)

// # Domain Entities

// Balance is one employee's leave ledger for one financial year.
type Balance struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	FinancialYear string    `json:"financialYear"`
	Annual        Bucket    `json:"annual"`
	Sick          Bucket    `json:"sick"`
	Emergency     Bucket    `json:"emergency"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Bucket is one leave category's allocation and consumption, in days.
type Bucket struct {
	Allocated int `json:"allocated"`
	Used      int `json:"used"`
}

// Remaining returns the unconsumed days. It can go negative when an
// administrator backfills usage above the allocation; the ledger records it
// rather than rejecting it.
func (b Bucket) Remaining() int {
	return b.Allocated - b.Used
}

// CurrentFinancialYear returns the ledger year for a point in time.
func CurrentFinancialYear(now time.Time) string {
	return strconv.Itoa(now.Year())
}

// Default allocations in days for a newly opened ledger year.
const (
	DefaultAnnualAllocated    = 15
	DefaultSickAllocated      = 10
	DefaultEmergencyAllocated = 5
)

// # Field Identifiers

const (
	FieldEmployeeID        = "employeeId"
	FieldAnnualLeaveUsed   = "annualLeaveUsed"
	FieldSickLeaveUsed     = "sickLeaveUsed"
	FieldEmergencyUsed     = "emergencyLeaveUsed"
	FieldFinancialYear     = "financialYear"
	FieldAnnualAllocated   = "annualLeaveAllocated"
	FieldSickAllocated     = "sickLeaveAllocated"
	FieldEmergencyAllotted = "emergencyLeaveAllocated"
)
