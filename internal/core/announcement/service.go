// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package announcement

import (
	"context"
	"time"

	"github.com/taibuivan/presensya/pkg/pointer"
	"github.com/taibuivan/presensya/pkg/uuid"
)

// # DTOs

// CreateInput carries a new announcement.
type CreateInput struct {
	Title            string
	Content          string
	CreatedBy        string
	AnnouncementDate time.Time
	IsPinned         bool
	TargetRole       string
	TargetDepartment string
	ExpiryDate       *time.Time
}

// UpdateInput carries an amendment. Nil fields keep the stored value.
type UpdateInput struct {
	Title            *string
	Content          *string
	IsPinned         *bool
	TargetRole       *string
	TargetDepartment *string
	ExpiryDate       *time.Time
}

// # Service

// Service implements announcement publishing and the employee feed.
type Service struct {
	announcements Repository
}

// NewService creates the announcement service.
func NewService(announcements Repository) *Service {
	return &Service{announcements: announcements}
}

// Create publishes a new notice.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Announcement, error) {
	now := time.Now()
	notice := &Announcement{
		ID:               uuid.New(),
		Title:            input.Title,
		Content:          input.Content,
		CreatedBy:        input.CreatedBy,
		AnnouncementDate: input.AnnouncementDate,
		IsPinned:         input.IsPinned,
		IsActive:         true,
		TargetRole:       input.TargetRole,
		TargetDepartment: input.TargetDepartment,
		ExpiryDate:       input.ExpiryDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.announcements.Create(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

// Feed returns the announcements visible to one employee: active, unexpired,
// and either untargeted or targeted at the employee's role or department.
func (s *Service) Feed(ctx context.Context, role, department string) ([]*Announcement, error) {
	return s.announcements.List(ctx, ListFilter{
		ActiveOnly: true,
		Unexpired:  true,
		Role:       role,
		Department: department,
	})
}

// ListAll returns the administrative view, including retracted and expired
// notices when activeOnly is false.
func (s *Service) ListAll(ctx context.Context, activeOnly bool) ([]*Announcement, error) {
	return s.announcements.List(ctx, ListFilter{ActiveOnly: activeOnly})
}

/*
Update amends a notice.

Parameters:
  - ctx: request context.
  - id: announcement id.
  - input: UpdateInput

Returns:
  - *Announcement: The amended notice.
  - error: apperr.NotFound when the id is unknown.
*/
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Announcement, error) {
	notice, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notice.Title = pointer.Fallback(input.Title, notice.Title)
	notice.Content = pointer.Fallback(input.Content, notice.Content)
	notice.IsPinned = pointer.Fallback(input.IsPinned, notice.IsPinned)
	notice.TargetRole = pointer.Fallback(input.TargetRole, notice.TargetRole)
	notice.TargetDepartment = pointer.Fallback(input.TargetDepartment, notice.TargetDepartment)
	if input.ExpiryDate != nil {
		notice.ExpiryDate = input.ExpiryDate
	}

	if err := s.announcements.Update(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

// Retract takes a notice out of the feed without deleting its row.
func (s *Service) Retract(ctx context.Context, id string) error {
	return s.announcements.Retract(ctx, id)
}
