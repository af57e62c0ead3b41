// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package leave

import (
	"context"
	"time"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/pkg/pointer"
	"github.com/taibuivan/presensya/pkg/uuid"
)

// # DTOs

// AdjustInput carries an administrative ledger adjustment. Nil fields keep
// the stored value; allocations may be raised mid-year.
type AdjustInput struct {
	EmployeeID         string
	FinancialYear      string
	AnnualUsed         *int
	SickUsed           *int
	EmergencyUsed      *int
	AnnualAllocated    *int
	SickAllocated      *int
	EmergencyAllocated *int
}

// # Service

// Service implements leave ledger reads and administrative adjustments.
type Service struct {
	balances Repository
}

// NewService creates the leave service.
func NewService(balances Repository) *Service {
	return &Service{balances: balances}
}

// ListForEmployee returns all ledger years for an employee, newest first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]*Balance, error) {
	return s.balances.ListByEmployee(ctx, employeeID)
}

/*
Adjust amends (or opens) an employee's ledger for a financial year.

Description: When no ledger exists for the year yet, one is opened with the
default allocations before the adjustment is applied, so a first-time
adjustment does not fail with not-found.

Parameters:
  - ctx: request context.
  - input: AdjustInput (year defaults to the current financial year).

Returns:
  - *Balance: The ledger after the adjustment.
  - error: Store failures.
*/
func (s *Service) Adjust(ctx context.Context, input AdjustInput) (*Balance, error) {
	year := input.FinancialYear
	if year == "" {
		year = CurrentFinancialYear(time.Now())
	}

	balance, err := s.balances.FindByYear(ctx, input.EmployeeID, year)
	if err != nil {
		if !apperr.HasCode(err, "NOT_FOUND") {
			return nil, err
		}
		balance = newYearLedger(input.EmployeeID, year)
	}

	balance.Annual.Used = pointer.Fallback(input.AnnualUsed, balance.Annual.Used)
	balance.Sick.Used = pointer.Fallback(input.SickUsed, balance.Sick.Used)
	balance.Emergency.Used = pointer.Fallback(input.EmergencyUsed, balance.Emergency.Used)
	balance.Annual.Allocated = pointer.Fallback(input.AnnualAllocated, balance.Annual.Allocated)
	balance.Sick.Allocated = pointer.Fallback(input.SickAllocated, balance.Sick.Allocated)
	balance.Emergency.Allocated = pointer.Fallback(input.EmergencyAllocated, balance.Emergency.Allocated)

	if err := s.balances.Upsert(ctx, balance); err != nil {
		return nil, err
	}

	return balance, nil
}

// newYearLedger opens a ledger year with the default allocations.
func newYearLedger(employeeID, year string) *Balance {
	return &Balance{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		FinancialYear: year,
		Annual:        Bucket{Allocated: DefaultAnnualAllocated},
		Sick:          Bucket{Allocated: DefaultSickAllocated},
		Emergency:     Bucket{Allocated: DefaultEmergencyAllocated},
	}
}
