// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/pkg/geo"
	"github.com/taibuivan/presensya/pkg/keymutex"
	"github.com/taibuivan/presensya/pkg/pagination"
	"github.com/taibuivan/presensya/pkg/uuid"
)

// # DTOs

// ClockInput carries a clock-in or clock-out request.
type ClockInput struct {
	EmployeeID string
	Latitude   float64
	Longitude  float64
	Address    string
	// Accuracy is the client-reported GPS accuracy in meters. Echoed back,
	// never validated or stored.
	Accuracy *float64
}

// ClockResult is the response to a successful clock event.
type ClockResult struct {
	RecordID  string     `json:"recordId"`
	Type      RecordType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Location  Location   `json:"location"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	// ShiftSummary is present on clock-out only.
	ShiftSummary *ShiftSummary `json:"shiftSummary,omitempty"`
}

// CorrectionInput carries an administrative amendment to a clock event.
// Nil pointer fields keep the stored value.
type CorrectionInput struct {
	RecordID  string
	EditorID  string
	Timestamp *time.Time
	Latitude  *float64
	Longitude *float64
	Address   *string
	Remarks   *string
}

// # Service

// Service implements shift tracking on top of the append-only event log.
type Service struct {
	records Repository

	// clockLocks serializes clock events per employee so two concurrent
	// clock-ins cannot both pass the open-shift check.
	clockLocks keymutex.KeyMutex
}

// NewService creates the attendance service.
func NewService(records Repository) *Service {
	return &Service{records: records}
}

/*
ClockIn records a time-in event for an employee.

Description: Rejects the event when an open shift already exists, i.e. the
employee's latest event is a time-in. The check is ordering-based, not
calendar-day-based, so overnight shifts behave correctly.

Parameters:
  - ctx: request context.
  - input: ClockInput (employee, coordinates, optional address).

Returns:
  - *ClockResult: The created event.
  - error: apperr.Conflict when a shift is already open.
*/
func (s *Service) ClockIn(ctx context.Context, input ClockInput) (*ClockResult, error) {
	unlock := s.clockLocks.Lock(input.EmployeeID)
	defer unlock()

	state, err := s.currentState(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if state == StateClockedIn {
		return nil, apperr.Conflict("Already clocked in. Please clock out first.")
	}

	record, err := s.appendEvent(ctx, TypeTimeIn, input)
	if err != nil {
		return nil, err
	}

	return &ClockResult{
		RecordID:  record.ID,
		Type:      record.Type,
		Timestamp: record.Timestamp,
		Location:  record.Location(),
		Accuracy:  input.Accuracy,
	}, nil
}

/*
ClockOut records a time-out event and summarizes the closed shift.

Description: Requires an open shift. The summary reports hours worked
(2 decimals) and the great-circle distance between the clock-in and
clock-out points (3 decimals).

Parameters:
  - ctx: request context.
  - input: ClockInput (employee, coordinates, optional address).

Returns:
  - *ClockResult: The created event with its ShiftSummary.
  - error: apperr.ValidationError when no time-in exists at all,
    apperr.Conflict when the latest shift is already closed.
*/
func (s *Service) ClockOut(ctx context.Context, input ClockInput) (*ClockResult, error) {
	unlock := s.clockLocks.Lock(input.EmployeeID)
	defer unlock()

	latestIn, err := s.latestOrNil(ctx, input.EmployeeID, TypeTimeIn)
	if err != nil {
		return nil, err
	}
	if latestIn == nil {
		return nil, apperr.ValidationError("No active time in record. Please clock in first.")
	}

	latestOut, err := s.latestOrNil(ctx, input.EmployeeID, TypeTimeOut)
	if err != nil {
		return nil, err
	}
	if latestOut != nil && latestOut.Timestamp.After(latestIn.Timestamp) {
		return nil, apperr.Conflict("Already clocked out. Please clock in again to start a new shift.")
	}

	record, err := s.appendEvent(ctx, TypeTimeOut, input)
	if err != nil {
		return nil, err
	}

	hours := record.Timestamp.Sub(latestIn.Timestamp).Hours()
	summary := &ShiftSummary{
		TimeIn:                 latestIn.Timestamp,
		TimeOut:                record.Timestamp,
		HoursWorked:            geo.Round(hours, 2),
		LocationChangeDistance: geo.Distance(latestIn.Latitude, latestIn.Longitude, input.Latitude, input.Longitude),
	}

	return &ClockResult{
		RecordID:     record.ID,
		Type:         record.Type,
		Timestamp:    record.Timestamp,
		Location:     record.Location(),
		Accuracy:     input.Accuracy,
		ShiftSummary: summary,
	}, nil
}

/*
GetStatus resolves the employee's current shift state.

Description: Pure derivation from the two latest events; calling it
repeatedly without intervening clock events returns the same answer.

Parameters:
  - ctx: request context.
  - employeeID: string

Returns:
  - *Status: state plus the record that produced it.
  - error: Store failures only; an employee with no events is a valid
    not-clocked-in status, never an error.
*/
func (s *Service) GetStatus(ctx context.Context, employeeID string) (*Status, error) {
	latestIn, err := s.latestOrNil(ctx, employeeID, TypeTimeIn)
	if err != nil {
		return nil, err
	}
	latestOut, err := s.latestOrNil(ctx, employeeID, TypeTimeOut)
	if err != nil {
		return nil, err
	}

	state, current := resolveState(latestIn, latestOut)
	status := &Status{
		EmployeeID:    employeeID,
		Status:        state,
		CurrentRecord: current,
	}
	if current != nil {
		status.LastStatusChange = &current.Timestamp
	}

	return status, nil
}

/*
List returns one page of the employee's events, newest first.

Parameters:
  - ctx: request context.
  - employeeID: string
  - filter: ListFilter (event type, date range).
  - params: pagination.Params

Returns:
  - []*Record: One page of events.
  - pagination.Meta: Paging metadata.
  - error: Store failures.
*/
func (s *Service) List(ctx context.Context, employeeID string, filter ListFilter, params pagination.Params) ([]*Record, pagination.Meta, error) {
	records, total, err := s.records.ListByEmployee(ctx, employeeID, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Internal(fmt.Errorf("attendance_service_list_failed: %w", err))
	}
	return records, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Correct amends a clock event on behalf of an administrator.

Description: Applies only the provided fields, then stamps the editor and
edit time. Corrections participate in shift ordering like any other event,
so moving a timestamp can reopen or close a shift.

Parameters:
  - ctx: request context.
  - input: CorrectionInput (record id, editor id, amended fields).

Returns:
  - *Record: The amended event.
  - error: apperr.NotFound when the record does not exist.
*/
func (s *Service) Correct(ctx context.Context, input CorrectionInput) (*Record, error) {
	record, err := s.records.FindByID(ctx, input.RecordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, apperr.NotFound("Attendance record")
		}
		return nil, apperr.Internal(fmt.Errorf("attendance_service_find_failed: %w", err))
	}

	if input.Timestamp != nil {
		record.Timestamp = *input.Timestamp
	}
	if input.Latitude != nil {
		record.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		record.Longitude = *input.Longitude
	}
	if input.Address != nil {
		record.Address = *input.Address
	}
	if input.Remarks != nil {
		record.Remarks = *input.Remarks
	}

	now := time.Now()
	record.EditedBy = input.EditorID
	record.EditedAt = &now

	if err := s.records.Update(ctx, record); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, apperr.NotFound("Attendance record")
		}
		return nil, apperr.Internal(fmt.Errorf("attendance_service_update_failed: %w", err))
	}

	return record, nil
}

// currentState resolves the shift state without building the full Status.
func (s *Service) currentState(ctx context.Context, employeeID string) (ShiftState, error) {
	latestIn, err := s.latestOrNil(ctx, employeeID, TypeTimeIn)
	if err != nil {
		return "", err
	}
	latestOut, err := s.latestOrNil(ctx, employeeID, TypeTimeOut)
	if err != nil {
		return "", err
	}
	state, _ := resolveState(latestIn, latestOut)
	return state, nil
}

// latestOrNil adapts the repository's not-found sentinel to a nil record.
func (s *Service) latestOrNil(ctx context.Context, employeeID string, recordType RecordType) (*Record, error) {
	record, err := s.records.LatestByType(ctx, employeeID, recordType)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(fmt.Errorf("attendance_service_latest_failed: %w", err))
	}
	return record, nil
}

// appendEvent creates and persists a clock event from validated input.
func (s *Service) appendEvent(ctx context.Context, recordType RecordType, input ClockInput) (*Record, error) {
	address := input.Address
	if address == "" {
		address = defaultAddress(input.Latitude, input.Longitude)
	}

	now := time.Now()
	record := &Record{
		ID:         uuid.New(),
		EmployeeID: input.EmployeeID,
		Type:       recordType,
		Timestamp:  now,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Address:    address,
		CreatedAt:  now,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperr.Internal(fmt.Errorf("attendance_service_create_failed: %w", err))
	}

	return record, nil
}
