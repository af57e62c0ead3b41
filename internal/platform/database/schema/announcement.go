// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AnnouncementTable represents the 'announcements' table
type AnnouncementTable struct {
	Table            string
	ID               string
	Title            string
	Content          string
	CreatedBy        string
	AnnouncementDate string
	IsPinned         string
	IsActive         string
	TargetRole       string
	TargetDepartment string
	ExpiryDate       string
	CreatedAt        string
	UpdatedAt        string
}

// Announcement is the schema definition for announcements
var Announcement = AnnouncementTable{
	Table:            "announcements",
	ID:               "id",
	Title:            "title",
	Content:          "content",
	CreatedBy:        "created_by",
	AnnouncementDate: "announcement_date",
	IsPinned:         "is_pinned",
	IsActive:         "is_active",
	TargetRole:       "target_role",
	TargetDepartment: "target_department",
	ExpiryDate:       "expiry_date",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}
