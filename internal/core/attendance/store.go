// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/taibuivan/presensya/pkg/pagination"
)

// ErrRecordNotFound is returned when no attendance record matches the lookup.
var ErrRecordNotFound = errors.New("attendance record not found")

// ListFilter narrows an attendance listing. Zero values mean "no filter".
type ListFilter struct {
	Type      RecordType
	StartDate time.Time
	EndDate   time.Time
}

// Repository persists the attendance event log.
type Repository interface {
	// Create appends a clock event.
	Create(ctx context.Context, record *Record) error

	// LatestByType returns the employee's most recent event of the given
	// type, or ErrRecordNotFound when none exists.
	LatestByType(ctx context.Context, employeeID string, recordType RecordType) (*Record, error)

	// ListByEmployee returns the employee's events newest first, filtered
	// and paginated. The total count ignores pagination.
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter, params pagination.Params) ([]*Record, int, error)

	// FindByID returns a single event, or ErrRecordNotFound.
	FindByID(ctx context.Context, id string) (*Record, error)

	// Update amends a corrected event in place.
	Update(ctx context.Context, record *Record) error
}
