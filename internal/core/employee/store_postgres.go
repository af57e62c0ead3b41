// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/database/schema"
	"github.com/taibuivan/presensya/internal/platform/dberr"
	"github.com/taibuivan/presensya/pkg/pagination"
)

// # Employee Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new account row.

Description: Duplicate employee codes, usernames, or emails surface as
409 Conflict through the unique-constraint mapping.

Parameters:
  - context: context.Context
  - employee: *Employee (Entity to persist, hash already computed)

Returns:
  - error: apperr.Conflict on duplicates or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, employee *Employee) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.Table, employeeColumnList())

	now := time.Now()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		employee.ID,
		employee.EmployeeID,
		employee.Username,
		employee.Email,
		employee.Phone,
		employee.PasswordHash,
		employee.Role,
		employee.Status,
		employee.FirstName,
		employee.LastName,
		employee.Department,
		employee.Designation,
		employee.JoinDate,
		employee.CreatedAt,
		employee.UpdatedAt,
	)

	return dberr.Wrap(err, "employee_create")
}

/*
List returns one page of non-deleted accounts, newest first.

Parameters:
  - context: context.Context
  - filter: ListFilter (search, department, status)
  - params: pagination.Params

Returns:
  - []*Employee: One page of accounts
  - int: Total matching accounts across all pages
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Employee, int, error) {
	t := schema.UserAccount

	conditions := []string{fmt.Sprintf("%s != $1", t.Status)}
	args := []any{StatusDeleted}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			t.FirstName, len(args), t.EmployeeID, len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", t.Department, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", t.Status, len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", t.Table, where)
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "employee_count")
	}

	args = append(args, params.Limit, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		employeeColumnList(), t.Table, where, t.CreatedAt, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "employee_list")
	}
	defer rows.Close()

	employees := make([]*Employee, 0, params.Limit)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "employee_scan")
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "employee_rows")
	}

	return employees, total, nil
}

/*
FindByCode returns the account with the given employee code.

Parameters:
  - context: context.Context
  - code: string (Human-facing employee code, e.g. EMP-0042)

Returns:
  - *Employee: Hydrated account
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByCode(context context.Context, code string) (*Employee, error) {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s != $2`,
		employeeColumnList(), t.Table, t.EmployeeID, t.Status)

	employee, err := scanEmployee(repository.pool.QueryRow(context, query, code, StatusDeleted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Employee")
		}
		return nil, dberr.Wrap(err, "employee_find")
	}

	return employee, nil
}

/*
Update persists the account's mutable profile fields.

Parameters:
  - context: context.Context
  - employee: *Employee

Returns:
  - error: apperr.NotFound when the row is gone, apperr.Conflict on
    duplicate email, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, employee *Employee) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s != $10`,
		t.Table, t.FirstName, t.LastName, t.Email, t.Phone,
		t.Department, t.Designation, t.Status, t.UpdatedAt,
		t.ID, t.Status)

	employee.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.Department,
		employee.Designation,
		employee.Status,
		employee.UpdatedAt,
		StatusDeleted,
	)

	if err != nil {
		return dberr.Wrap(err, "employee_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Employee")
	}

	return nil
}

/*
SoftDelete marks the account as deleted by employee code.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - error: apperr.NotFound when no live row matches
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, code string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1 AND %s != $2`,
		t.Table, t.Status, t.UpdatedAt, t.EmployeeID, t.Status)

	tag, err := repository.pool.Exec(context, query, code, StatusDeleted, time.Now())
	if err != nil {
		return dberr.Wrap(err, "employee_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Employee")
	}

	return nil
}

// scanEmployee hydrates one account from a row.
func scanEmployee(row pgx.Row) (*Employee, error) {
	employee := &Employee{}
	err := row.Scan(
		&employee.ID,
		&employee.EmployeeID,
		&employee.Username,
		&employee.Email,
		&employee.Phone,
		&employee.PasswordHash,
		&employee.Role,
		&employee.Status,
		&employee.FirstName,
		&employee.LastName,
		&employee.Department,
		&employee.Designation,
		&employee.JoinDate,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// employeeColumnList returns the account columns in scan order.
func employeeColumnList() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.EmployeeID, t.Username, t.Email, t.Phone, t.Password,
		t.Role, t.Status, t.FirstName, t.LastName, t.Department,
		t.Designation, t.JoinDate, t.CreatedAt, t.UpdatedAt)
}
