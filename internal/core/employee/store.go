// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"

	"github.com/taibuivan/presensya/pkg/pagination"
)

// ListFilter narrows an employee listing. Zero values mean "no filter".
type ListFilter struct {
	// Search matches first name or employee code, case-insensitive substring.
	Search     string
	Department string
	Status     string
}

// Repository persists employee accounts.
//
// Not-found conditions surface as apperr.NotFound from the storage layer;
// constraint violations are mapped through dberr.
type Repository interface {
	// Create inserts a new account row.
	Create(ctx context.Context, employee *Employee) error

	// List returns one page of non-deleted accounts, newest first, plus
	// the total match count.
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]*Employee, int, error)

	// FindByCode returns the account with the given employee code.
	FindByCode(ctx context.Context, code string) (*Employee, error)

	// Update persists the account's mutable profile fields.
	Update(ctx context.Context, employee *Employee) error

	// SoftDelete marks the account as deleted by employee code.
	SoftDelete(ctx context.Context, code string) error
}
