// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/pkg/pagination"
	"github.com/taibuivan/presensya/pkg/pointer"
	"github.com/taibuivan/presensya/pkg/uuid"
)

// # DTOs

// CreateInput carries a new-account request. Password policy is enforced at
// the HTTP boundary; the service receives it pre-validated but still hashes
// it itself.
type CreateInput struct {
	EmployeeID  string
	Name        string
	Email       string
	Phone       string
	Department  string
	Designation string
	Password    string
	Role        sec.UserRole
	Status      string
	JoinDate    *time.Time
}

// UpdateInput carries a profile amendment. Nil fields keep the stored value.
type UpdateInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Department  *string
	Designation *string
	Status      *string
}

// # Service

// Service implements administrative account management.
type Service struct {
	employees Repository
}

// NewService creates the employee service.
func NewService(employees Repository) *Service {
	return &Service{employees: employees}
}

/*
Create provisions a new employee account.

Description: Hashes the password, defaults role to employee and status to
active, and derives the username from the employee code when not supplied
separately (matching how accounts are provisioned in bulk imports).

Parameters:
  - ctx: request context.
  - input: CreateInput

Returns:
  - *Employee: The created account.
  - error: apperr.Conflict on duplicate code, username, or email.
*/
func (s *Service) Create(ctx context.Context, input CreateInput) (*Employee, error) {
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("employee_service_hash_failed: %w", err))
	}

	role := input.Role
	if role == "" {
		role = sec.RoleEmployee
	}
	status := input.Status
	if status == "" {
		status = StatusActive
	}

	now := time.Now()
	account := &Employee{
		ID:           uuid.New(),
		EmployeeID:   input.EmployeeID,
		Username:     input.EmployeeID,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		FirstName:    input.Name,
		Department:   input.Department,
		Designation:  input.Designation,
		Role:         role,
		Status:       status,
		JoinDate:     input.JoinDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.employees.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// List returns one page of accounts matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]*Employee, pagination.Meta, error) {
	employees, total, err := s.employees.List(ctx, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return employees, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns the account with the given employee code.
func (s *Service) Get(ctx context.Context, code string) (*Employee, error) {
	return s.employees.FindByCode(ctx, code)
}

/*
Update amends an account's profile.

Description: Loads the current account, applies only the provided fields,
and persists the result. Role changes are deliberately excluded from this
path; they require a separate grant flow.

Parameters:
  - ctx: request context.
  - code: employee code.
  - input: UpdateInput

Returns:
  - *Employee: The amended account.
  - error: apperr.NotFound or apperr.Conflict on duplicate email.
*/
func (s *Service) Update(ctx context.Context, code string, input UpdateInput) (*Employee, error) {
	account, err := s.employees.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	account.FirstName = pointer.Fallback(input.Name, account.FirstName)
	account.Email = pointer.Fallback(input.Email, account.Email)
	account.Phone = pointer.Fallback(input.Phone, account.Phone)
	account.Department = pointer.Fallback(input.Department, account.Department)
	account.Designation = pointer.Fallback(input.Designation, account.Designation)
	account.Status = pointer.Fallback(input.Status, account.Status)

	if err := s.employees.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete soft-deletes the account with the given employee code. The row is
// retained so attendance and leave history keep a valid owner.
func (s *Service) Delete(ctx context.Context, code string) error {
	return s.employees.SoftDelete(ctx, code)
}
