// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/presensya/internal/core/attendance"
	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/pkg/pagination"
)

// # Test Fixtures

// fakeRepo is a slice-backed Repository for exercising the shift logic
// without Postgres.
type fakeRepo struct {
	records []*attendance.Record
}

func (r *fakeRepo) Create(_ context.Context, record *attendance.Record) error {
	copied := *record
	r.records = append(r.records, &copied)
	return nil
}

func (r *fakeRepo) LatestByType(_ context.Context, employeeID string, recordType attendance.RecordType) (*attendance.Record, error) {
	var latest *attendance.Record
	for _, record := range r.records {
		if record.EmployeeID != employeeID || record.Type != recordType {
			continue
		}
		if latest == nil || record.Timestamp.After(latest.Timestamp) {
			latest = record
		}
	}
	if latest == nil {
		return nil, attendance.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeRepo) ListByEmployee(_ context.Context, employeeID string, filter attendance.ListFilter, _ pagination.Params) ([]*attendance.Record, int, error) {
	var matched []*attendance.Record
	for _, record := range r.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if filter.Type != "" && record.Type != filter.Type {
			continue
		}
		copied := *record
		matched = append(matched, &copied)
	}
	return matched, len(matched), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*attendance.Record, error) {
	for _, record := range r.records {
		if record.ID == id {
			copied := *record
			return &copied, nil
		}
	}
	return nil, attendance.ErrRecordNotFound
}

func (r *fakeRepo) Update(_ context.Context, record *attendance.Record) error {
	for i, existing := range r.records {
		if existing.ID == record.ID {
			copied := *record
			r.records[i] = &copied
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

// seed appends a record directly, bypassing the service.
func (r *fakeRepo) seed(employeeID string, recordType attendance.RecordType, timestamp time.Time, lat, lon float64) *attendance.Record {
	record := &attendance.Record{
		ID:         "rec-" + timestamp.Format("150405"),
		EmployeeID: employeeID,
		Type:       recordType,
		Timestamp:  timestamp,
		Latitude:   lat,
		Longitude:  lon,
		Address:    "seeded",
		CreatedAt:  timestamp,
	}
	r.records = append(r.records, record)
	return record
}

const employeeID = "0191e5c0-0000-7000-8000-0000000000aa"

// Office and field coordinates used across the shift scenarios.
const (
	officeLat = 14.5995
	officeLon = 120.9842
	fieldLat  = 14.6010
	fieldLon  = 120.9850
)

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, status, ae.HTTPStatus)
}

// # Clock In

/*
TestClockIn_OpensShift verifies a first clock-in: a time-in record is
appended and the response carries its location but no shift summary.
*/
func TestClockIn_OpensShift(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)

	result, err := service.ClockIn(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
		Address:    "Manila City Hall",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RecordID)
	assert.Equal(t, attendance.TypeTimeIn, result.Type)
	assert.Equal(t, "Manila City Hall", result.Location.Address)
	assert.Nil(t, result.ShiftSummary)
	assert.Len(t, repo.records, 1)
}

/*
TestClockIn_DefaultAddress verifies that an event submitted without an
address falls back to a fixed-precision coordinate string.
*/
func TestClockIn_DefaultAddress(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)

	result, err := service.ClockIn(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)
	assert.Equal(t, "14.5995, 120.9842", result.Location.Address)
}

/*
TestClockIn_RejectsOpenShift verifies that a second clock-in against an open
shift is refused and appends nothing.
*/
func TestClockIn_RejectsOpenShift(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	repo.seed(employeeID, attendance.TypeTimeIn, time.Now().Add(-time.Hour), officeLat, officeLon)

	_, err := service.ClockIn(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	assertStatus(t, err, http.StatusConflict)
	assert.Len(t, repo.records, 1)
}

/*
TestClockIn_AfterClockOut verifies that a closed shift does not block the
next clock-in, even within the same calendar day.
*/
func TestClockIn_AfterClockOut(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	now := time.Now()
	repo.seed(employeeID, attendance.TypeTimeIn, now.Add(-9*time.Hour), officeLat, officeLon)
	repo.seed(employeeID, attendance.TypeTimeOut, now.Add(-time.Hour), officeLat, officeLon)

	_, err := service.ClockIn(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	assert.NoError(t, err)
}

// # Clock Out

/*
TestClockOut_SummarizesShift closes a 9.5 hour shift that ended at a
different location and checks the computed summary: hours to 2 decimals,
displacement to 3 decimals (about 188 meters here).
*/
func TestClockOut_SummarizesShift(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	timeIn := time.Now().Add(-9*time.Hour - 30*time.Minute)
	repo.seed(employeeID, attendance.TypeTimeIn, timeIn, officeLat, officeLon)

	result, err := service.ClockOut(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   fieldLat,
		Longitude:  fieldLon,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.TypeTimeOut, result.Type)
	require.NotNil(t, result.ShiftSummary)
	assert.True(t, result.ShiftSummary.TimeIn.Equal(timeIn))
	assert.InDelta(t, 9.5, result.ShiftSummary.HoursWorked, 0.01)
	assert.InDelta(t, 0.188, result.ShiftSummary.LocationChangeDistance, 0.0005)
}

/*
TestClockOut_ZeroDisplacement verifies that clocking out from the clock-in
point reports a zero location change.
*/
func TestClockOut_ZeroDisplacement(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	repo.seed(employeeID, attendance.TypeTimeIn, time.Now().Add(-8*time.Hour), officeLat, officeLon)

	result, err := service.ClockOut(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)
	assert.Zero(t, result.ShiftSummary.LocationChangeDistance)
}

func TestClockOut_Failures(t *testing.T) {
	tests := []struct {
		name   string
		seed   func(repo *fakeRepo)
		status int
	}{
		{
			name:   "no_time_in_at_all",
			seed:   func(*fakeRepo) {},
			status: http.StatusBadRequest,
		},
		{
			name: "shift_already_closed",
			seed: func(repo *fakeRepo) {
				now := time.Now()
				repo.seed(employeeID, attendance.TypeTimeIn, now.Add(-10*time.Hour), officeLat, officeLon)
				repo.seed(employeeID, attendance.TypeTimeOut, now.Add(-time.Hour), officeLat, officeLon)
			},
			status: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			service := attendance.NewService(repo)
			tt.seed(repo)
			before := len(repo.records)

			_, err := service.ClockOut(context.Background(), attendance.ClockInput{
				EmployeeID: employeeID,
				Latitude:   officeLat,
				Longitude:  officeLon,
			})
			assertStatus(t, err, tt.status)
			assert.Len(t, repo.records, before)
		})
	}
}

/*
TestClockOut_OvernightShift verifies that ordering is by timestamp, not
calendar day: a clock-out after midnight closes the previous evening's
shift.
*/
func TestClockOut_OvernightShift(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	// Clocked in 8 hours ago, which for a night shift falls on yesterday.
	repo.seed(employeeID, attendance.TypeTimeIn, time.Now().Add(-8*time.Hour), officeLat, officeLon)

	result, err := service.ClockOut(context.Background(), attendance.ClockInput{
		EmployeeID: employeeID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.ShiftSummary.HoursWorked, 0.01)
}

// # Status

func TestGetStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		seed  func(repo *fakeRepo)
		state attendance.ShiftState
	}{
		{
			name:  "no_events",
			seed:  func(*fakeRepo) {},
			state: attendance.StateNotClockedIn,
		},
		{
			name: "open_shift",
			seed: func(repo *fakeRepo) {
				repo.seed(employeeID, attendance.TypeTimeIn, now.Add(-time.Hour), officeLat, officeLon)
			},
			state: attendance.StateClockedIn,
		},
		{
			name: "closed_shift",
			seed: func(repo *fakeRepo) {
				repo.seed(employeeID, attendance.TypeTimeIn, now.Add(-9*time.Hour), officeLat, officeLon)
				repo.seed(employeeID, attendance.TypeTimeOut, now.Add(-time.Hour), officeLat, officeLon)
			},
			state: attendance.StateClockedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			service := attendance.NewService(repo)
			tt.seed(repo)

			status, err := service.GetStatus(context.Background(), employeeID)
			require.NoError(t, err)
			assert.Equal(t, tt.state, status.Status)

			if tt.state == attendance.StateNotClockedIn {
				assert.Nil(t, status.CurrentRecord)
				assert.Nil(t, status.LastStatusChange)
			} else {
				require.NotNil(t, status.CurrentRecord)
				assert.NotNil(t, status.LastStatusChange)
			}

			// The query derives state without writing; asking again gives
			// the same answer.
			again, err := service.GetStatus(context.Background(), employeeID)
			require.NoError(t, err)
			assert.Equal(t, status.Status, again.Status)
		})
	}
}

// # Corrections

/*
TestCorrect_AmendsAndStamps verifies that a correction applies only the
provided fields and stamps the editing administrator.
*/
func TestCorrect_AmendsAndStamps(t *testing.T) {
	repo := &fakeRepo{}
	service := attendance.NewService(repo)
	seeded := repo.seed(employeeID, attendance.TypeTimeIn, time.Now().Add(-2*time.Hour), officeLat, officeLon)

	amendedTime := seeded.Timestamp.Add(-30 * time.Minute)
	remarks := "Forgot to clock in at the gate"
	record, err := service.Correct(context.Background(), attendance.CorrectionInput{
		RecordID:  seeded.ID,
		EditorID:  "admin-1",
		Timestamp: &amendedTime,
		Remarks:   &remarks,
	})
	require.NoError(t, err)

	assert.True(t, record.Timestamp.Equal(amendedTime))
	assert.Equal(t, remarks, record.Remarks)
	assert.Equal(t, "admin-1", record.EditedBy)
	require.NotNil(t, record.EditedAt)

	// Untouched fields keep their stored values.
	assert.Equal(t, seeded.Latitude, record.Latitude)
	assert.Equal(t, seeded.Address, record.Address)

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", stored.EditedBy)
}

func TestCorrect_UnknownRecord(t *testing.T) {
	service := attendance.NewService(&fakeRepo{})

	_, err := service.Correct(context.Background(), attendance.CorrectionInput{
		RecordID: "missing",
		EditorID: "admin-1",
	})
	assertStatus(t, err, http.StatusNotFound)
}
