// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package leave

import "context"

// Repository persists leave ledgers.
//
// Not-found conditions surface as apperr.NotFound from the storage layer.
type Repository interface {
	// ListByEmployee returns the employee's ledgers, newest financial year
	// first. An employee with no ledgers yields an empty slice.
	ListByEmployee(ctx context.Context, employeeID string) ([]*Balance, error)

	// FindByYear returns the employee's ledger for one financial year.
	FindByYear(ctx context.Context, employeeID, financialYear string) (*Balance, error)

	// Upsert creates the ledger row or updates it in place.
	Upsert(ctx context.Context, balance *Balance) error
}
