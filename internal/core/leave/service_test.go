// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/presensya/internal/core/leave"
	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/pkg/pointer"
)

// fakeRepo keys ledgers by employee and financial year.
type fakeRepo struct {
	balances map[string]*leave.Balance
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[string]*leave.Balance)}
}

func ledgerKey(employeeID, year string) string { return employeeID + "/" + year }

func (r *fakeRepo) ListByEmployee(_ context.Context, employeeID string) ([]*leave.Balance, error) {
	var out []*leave.Balance
	for _, balance := range r.balances {
		if balance.EmployeeID == employeeID {
			copied := *balance
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByYear(_ context.Context, employeeID, year string) (*leave.Balance, error) {
	balance, ok := r.balances[ledgerKey(employeeID, year)]
	if !ok {
		return nil, apperr.NotFound("Leave balance")
	}
	copied := *balance
	return &copied, nil
}

func (r *fakeRepo) Upsert(_ context.Context, balance *leave.Balance) error {
	copied := *balance
	r.balances[ledgerKey(balance.EmployeeID, balance.FinancialYear)] = &copied
	return nil
}

/*
TestAdjust_OpensLedgerWithDefaults verifies that adjusting a year with no
ledger yet opens one with the default allocations first.
*/
func TestAdjust_OpensLedgerWithDefaults(t *testing.T) {
	repo := newFakeRepo()
	service := leave.NewService(repo)

	balance, err := service.Adjust(context.Background(), leave.AdjustInput{
		EmployeeID:    "emp-1",
		FinancialYear: "2026",
		AnnualUsed:    pointer.To(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026", balance.FinancialYear)
	assert.Equal(t, leave.DefaultAnnualAllocated, balance.Annual.Allocated)
	assert.Equal(t, 3, balance.Annual.Used)
	assert.Equal(t, leave.DefaultAnnualAllocated-3, balance.Annual.Remaining())
	assert.Equal(t, leave.DefaultSickAllocated, balance.Sick.Allocated)
	assert.Equal(t, 0, balance.Sick.Used)
	assert.Equal(t, leave.DefaultEmergencyAllocated, balance.Emergency.Allocated)

	// The opened ledger was persisted.
	stored, err := repo.FindByYear(context.Background(), "emp-1", "2026")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Annual.Used)
}

/*
TestAdjust_DefaultsToCurrentYear verifies that an omitted financial year
targets the current one.
*/
func TestAdjust_DefaultsToCurrentYear(t *testing.T) {
	repo := newFakeRepo()
	service := leave.NewService(repo)

	balance, err := service.Adjust(context.Background(), leave.AdjustInput{
		EmployeeID: "emp-1",
		SickUsed:   pointer.To(1),
	})
	require.NoError(t, err)
	assert.Equal(t, leave.CurrentFinancialYear(time.Now()), balance.FinancialYear)
}

/*
TestAdjust_PartialUpdate verifies that nil fields keep the stored counters
while provided ones overwrite them.
*/
func TestAdjust_PartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	service := leave.NewService(repo)
	ctx := context.Background()

	_, err := service.Adjust(ctx, leave.AdjustInput{
		EmployeeID:    "emp-1",
		FinancialYear: "2026",
		AnnualUsed:    pointer.To(5),
		SickUsed:      pointer.To(2),
	})
	require.NoError(t, err)

	balance, err := service.Adjust(ctx, leave.AdjustInput{
		EmployeeID:      "emp-1",
		FinancialYear:   "2026",
		AnnualUsed:      pointer.To(6),
		AnnualAllocated: pointer.To(20),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, balance.Annual.Used)
	assert.Equal(t, 20, balance.Annual.Allocated)
	assert.Equal(t, 2, balance.Sick.Used)
	assert.Equal(t, leave.DefaultSickAllocated, balance.Sick.Allocated)
}

/*
TestAdjust_AllowsNegativeRemaining verifies that backfilled usage above the
allocation is recorded, not rejected.
*/
func TestAdjust_AllowsNegativeRemaining(t *testing.T) {
	repo := newFakeRepo()
	service := leave.NewService(repo)

	balance, err := service.Adjust(context.Background(), leave.AdjustInput{
		EmployeeID:    "emp-1",
		FinancialYear: "2026",
		EmergencyUsed: pointer.To(leave.DefaultEmergencyAllocated + 2),
	})
	require.NoError(t, err)
	assert.Equal(t, -2, balance.Emergency.Remaining())
}

/*
TestAdjust_SeparateYears verifies that ledger years are independent.
*/
func TestAdjust_SeparateYears(t *testing.T) {
	repo := newFakeRepo()
	service := leave.NewService(repo)
	ctx := context.Background()

	_, err := service.Adjust(ctx, leave.AdjustInput{
		EmployeeID:    "emp-1",
		FinancialYear: "2025",
		AnnualUsed:    pointer.To(15),
	})
	require.NoError(t, err)

	_, err = service.Adjust(ctx, leave.AdjustInput{
		EmployeeID:    "emp-1",
		FinancialYear: "2026",
	})
	require.NoError(t, err)

	current, err := repo.FindByYear(ctx, "emp-1", "2026")
	require.NoError(t, err)
	assert.Equal(t, 0, current.Annual.Used)

	balances, err := service.ListForEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, balances, 2)
}
