// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AttendanceRecordTable represents the 'attendance_records' table
type AttendanceRecordTable struct {
	Table      string
	ID         string
	EmployeeID string
	Type       string
	Timestamp  string
	Latitude   string
	Longitude  string
	Address    string
	Remarks    string
	EditedBy   string
	EditedAt   string
	CreatedAt  string
}

// AttendanceRecord is the schema definition for attendance_records
var AttendanceRecord = AttendanceRecordTable{
	Table:      "attendance_records",
	ID:         "id",
	EmployeeID: "employee_id",
	Type:       "type",
	Timestamp:  "recorded_at",
	Latitude:   "latitude",
	Longitude:  "longitude",
	Address:    "address",
	Remarks:    "remarks",
	EditedBy:   "edited_by",
	EditedAt:   "edited_at",
	CreatedAt:  "created_at",
}

// Columns returns all standard column names
func (t AttendanceRecordTable) Columns() []string {
	return []string{
		t.ID, t.EmployeeID, t.Type, t.Timestamp, t.Latitude, t.Longitude,
		t.Address, t.Remarks, t.EditedBy, t.EditedAt, t.CreatedAt,
	}
}
