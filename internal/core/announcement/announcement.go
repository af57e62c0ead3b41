// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package announcement implements company announcements: administrative
publishing with optional role and department targeting, and the employee
feed that filters out expired or retracted entries.
*/
package announcement

import "time"

// # Domain Entities

// Announcement is one published notice.
//
// TargetRole and TargetDepartment narrow the audience; an empty value means
// everyone. Deletion is a retraction (IsActive=false), never a row removal,
// so the feed history stays auditable.
type Announcement struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	CreatedBy        string     `json:"createdBy"`
	AnnouncementDate time.Time  `json:"announcementDate"`
	IsPinned         bool       `json:"isPinned"`
	IsActive         bool       `json:"isActive"`
	TargetRole       string     `json:"targetRole,omitempty"`
	TargetDepartment string     `json:"targetDepartment,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Expired reports whether the notice has an expiry in the past.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiryDate != nil && now.After(*a.ExpiryDate)
}

// # Field Identifiers

const (
	FieldTitle            = "title"
	FieldContent          = "content"
	FieldAnnouncementDate = "announcementDate"
	FieldIsPinned         = "isPinned"
	FieldTargetRole       = "targetRole"
	FieldTargetDepartment = "targetDepartment"
	FieldExpiryDate       = "expiryDate"
)
