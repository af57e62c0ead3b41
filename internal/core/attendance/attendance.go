// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package attendance implements shift tracking: geolocated clock-in/clock-out
events, shift state resolution, and administrative corrections.

# Shift Model

Attendance is an append-only event log. A shift is never stored as its own
row; it is derived from the ordering of events. The employee's state follows
from the two most recent events alone:

  - latest event is a time-in  -> an open shift exists (clocked-in)
  - latest event is a time-out -> the last shift is closed (clocked-out)
  - no events                  -> not-clocked-in

Ordering is strictly by event timestamp, not by calendar day: a night-shift
clock-out after midnight closes the previous evening's clock-in.
*/
package attendance

import (
	"fmt"
	"time"
)

// # Domain Entities

// RecordType distinguishes the two attendance event kinds.
type RecordType string

const (
	TypeTimeIn  RecordType = "time-in"
	TypeTimeOut RecordType = "time-out"
)

// IsValid reports whether the type is a known event kind.
func (t RecordType) IsValid() bool {
	return t == TypeTimeIn || t == TypeTimeOut
}

// Record is a single clock event. Records are append-only; only the
// administrative correction path may amend one, and it stamps EditedBy.
type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Type       RecordType `json:"type"`
	Timestamp  time.Time  `json:"timestamp"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Address    string     `json:"address"`
	Remarks    string     `json:"remarks,omitempty"`
	EditedBy   string     `json:"editedBy,omitempty"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Location is the wire shape for a record's coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// Location returns the record's coordinates in wire shape.
func (r *Record) Location() Location {
	return Location{Latitude: r.Latitude, Longitude: r.Longitude, Address: r.Address}
}

// ShiftSummary reports the completed shift attached to a clock-out response.
type ShiftSummary struct {
	TimeIn  time.Time `json:"timeIn"`
	TimeOut time.Time `json:"timeOut"`
	// HoursWorked is the shift duration in hours, rounded to 2 decimals.
	HoursWorked float64 `json:"hoursWorked"`
	// LocationChangeDistance is the great-circle distance in kilometers
	// between the clock-in and clock-out points, rounded to 3 decimals.
	LocationChangeDistance float64 `json:"locationChangeDistance"`
}

// # Shift Status

// ShiftState is the derived clock state of an employee.
type ShiftState string

const (
	StateNotClockedIn ShiftState = "not-clocked-in"
	StateClockedIn    ShiftState = "clocked-in"
	StateClockedOut   ShiftState = "clocked-out"
)

// Status is the response shape of the shift-state query.
type Status struct {
	EmployeeID       string     `json:"employeeId"`
	Status           ShiftState `json:"status"`
	CurrentRecord    *Record    `json:"currentRecord"`
	LastStatusChange *time.Time `json:"lastStatusChange,omitempty"`
}

// resolveState derives the shift state from the two latest events. Either
// record may be nil.
func resolveState(latestIn, latestOut *Record) (ShiftState, *Record) {
	if latestIn == nil {
		return StateNotClockedIn, nil
	}
	if latestOut == nil || latestOut.Timestamp.Before(latestIn.Timestamp) {
		return StateClockedIn, latestIn
	}
	return StateClockedOut, latestOut
}

// defaultAddress renders a fixed-precision coordinate string for events
// submitted without a reverse-geocoded address.
func defaultAddress(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f, %.4f", latitude, longitude)
}

// # Field Identifiers

const (
	FieldEmployeeID = "employeeId"
	FieldLatitude   = "latitude"
	FieldLongitude  = "longitude"
	FieldAddress    = "address"
	FieldType       = "type"
	FieldTimestamp  = "timestamp"
	FieldRemarks    = "remarks"
	FieldStartDate  = "startDate"
	FieldEndDate    = "endDate"
)
