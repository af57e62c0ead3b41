// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package announcement

import "context"

// ListFilter narrows an announcement listing.
type ListFilter struct {
	// ActiveOnly drops retracted entries. The admin view sets it false to
	// audit retractions.
	ActiveOnly bool
	// Unexpired drops entries past their expiry date.
	Unexpired bool
	// Role and Department match targeted entries; untargeted entries always
	// pass. Empty values skip the audience check.
	Role       string
	Department string
}

// Repository persists announcements.
//
// Not-found conditions surface as apperr.NotFound from the storage layer.
type Repository interface {
	// Create inserts a new notice.
	Create(ctx context.Context, announcement *Announcement) error

	// List returns notices pinned-first, then newest announcement date.
	List(ctx context.Context, filter ListFilter) ([]*Announcement, error)

	// FindByID returns one notice regardless of active state.
	FindByID(ctx context.Context, id string) (*Announcement, error)

	// Update persists a notice's mutable fields.
	Update(ctx context.Context, announcement *Announcement) error

	// Retract sets IsActive=false by id.
	Retract(ctx context.Context, id string) error
}
