// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/database/schema"
	"github.com/taibuivan/presensya/internal/platform/dberr"
)

// # Leave Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListByEmployee returns the employee's ledgers, newest financial year first.

Parameters:
  - context: context.Context
  - employeeID: string

Returns:
  - []*Balance: All ledger years, possibly empty
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByEmployee(context context.Context, employeeID string) ([]*Balance, error) {
	t := schema.LeaveBalance
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		balanceColumnList(), t.Table, t.EmployeeID, t.FinancialYear)

	rows, err := repository.pool.Query(context, query, employeeID)
	if err != nil {
		return nil, dberr.Wrap(err, "leave_list")
	}
	defer rows.Close()

	balances := []*Balance{}
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "leave_scan")
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "leave_rows")
	}

	return balances, nil
}

/*
FindByYear returns the employee's ledger for one financial year.

Parameters:
  - context: context.Context
  - employeeID: string
  - financialYear: string

Returns:
  - *Balance: Hydrated ledger
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByYear(context context.Context, employeeID, financialYear string) (*Balance, error) {
	t := schema.LeaveBalance
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		balanceColumnList(), t.Table, t.EmployeeID, t.FinancialYear)

	balance, err := scanBalance(repository.pool.QueryRow(context, query, employeeID, financialYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Leave balance")
		}
		return nil, dberr.Wrap(err, "leave_find")
	}

	return balance, nil
}

/*
Upsert creates the ledger row or updates it in place.

Description: Keyed on (employee, financial year); the unique constraint
turns concurrent first-writes into one insert plus one update.

Parameters:
  - context: context.Context
  - balance: *Balance

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Upsert(context context.Context, balance *Balance) error {
	t := schema.LeaveBalance
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		t.Table, balanceColumnList(),
		t.EmployeeID, t.FinancialYear,
		t.AnnualAllocated, t.AnnualAllocated, t.AnnualUsed, t.AnnualUsed,
		t.SickAllocated, t.SickAllocated, t.SickUsed, t.SickUsed,
		t.EmergencyAllowed, t.EmergencyAllowed, t.EmergencyUsed, t.EmergencyUsed,
		t.UpdatedAt, t.UpdatedAt)

	balance.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		balance.ID,
		balance.EmployeeID,
		balance.FinancialYear,
		balance.Annual.Allocated,
		balance.Annual.Used,
		balance.Sick.Allocated,
		balance.Sick.Used,
		balance.Emergency.Allocated,
		balance.Emergency.Used,
		balance.UpdatedAt,
	)

	return dberr.Wrap(err, "leave_upsert")
}

// scanBalance hydrates one ledger from a row.
func scanBalance(row pgx.Row) (*Balance, error) {
	balance := &Balance{}
	err := row.Scan(
		&balance.ID,
		&balance.EmployeeID,
		&balance.FinancialYear,
		&balance.Annual.Allocated,
		&balance.Annual.Used,
		&balance.Sick.Allocated,
		&balance.Sick.Used,
		&balance.Emergency.Allocated,
		&balance.Emergency.Used,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// balanceColumnList returns the ledger columns in scan order.
func balanceColumnList() string {
	t := schema.LeaveBalance
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.EmployeeID, t.FinancialYear,
		t.AnnualAllocated, t.AnnualUsed,
		t.SickAllocated, t.SickUsed,
		t.EmergencyAllowed, t.EmergencyUsed,
		t.UpdatedAt)
}
