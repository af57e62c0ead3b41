// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/presensya/internal/platform/database/schema"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// Lookups are mapped to the store-level sentinel errors so the service layer
// never sees pgx internals.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByUsername retrieves an account by its unique username.

Description: Standard lookup for the password step of login. Soft-deleted
accounts are filtered out; inactive accounts are returned so the service can
report a precise rejection.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s != $2`,
		userColumnList(), schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Status)

	return repository.scanOne(context, "find_by_username", query, username, StatusDeleted)
}

/*
FindByID retrieves an account by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s != $2`,
		userColumnList(), schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Status)

	return repository.scanOne(context, "find_by_id", query, id, StatusDeleted)
}

// scanOne runs a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(ctx context.Context, action, query string, args ...any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.EmployeeID,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.FirstName,
		&user.LastName,
		&user.Department,
		&user.Designation,
		&user.JoinDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", action, err)
	}

	return user, nil
}

// userColumnList returns the account columns in scan order.
func userColumnList() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.EmployeeID, t.Username, t.Email, t.Phone, t.Password,
		t.Role, t.Status, t.FirstName, t.LastName, t.Department,
		t.Designation, t.JoinDate, t.CreatedAt, t.UpdatedAt)
}
