// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/presensya/internal/platform/middleware"
	requestutil "github.com/taibuivan/presensya/internal/platform/request"
	"github.com/taibuivan/presensya/internal/platform/respond"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/internal/platform/validate"
	"github.com/taibuivan/presensya/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the attendance HTTP endpoints.
type Handler struct {
	attendanceService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{attendanceService: service}
}

// Routes returns a [chi.Router] configured with attendance routes. The whole
// group is mounted behind authentication.
//
// # Endpoints
//   - POST  /time-in              : Records a clock-in event.
//   - POST  /time-out             : Records a clock-out event and shift summary.
//   - GET   /{employeeId}         : Lists the employee's clock events.
//   - GET   /{employeeId}/status  : Resolves the current shift state.
//   - PATCH /records/{recordId}   : Administrative correction of an event.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Post("/time-in", handler.timeIn)
	router.Post("/time-out", handler.timeOut)
	router.Get("/{employeeId}", handler.list)
	router.Get("/{employeeId}/status", handler.status)

	// Corrections are admin-only.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Patch("/records/{recordId}", handler.correct)
	})

	return router
}

// # Request Payloads

type clockRequest struct {
	EmployeeID string   `json:"employeeId"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Address    string   `json:"address"`
	Accuracy   *float64 `json:"accuracy"`
}

type correctionRequest struct {
	Timestamp *time.Time `json:"timestamp"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Address   *string    `json:"address"`
	Remarks   *string    `json:"remarks"`
}

// decodeClock decodes and validates the shared clock-event payload.
func decodeClock(request *http.Request) (ClockInput, error) {
	var input clockRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return ClockInput{}, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, input.EmployeeID).
		UUID(FieldEmployeeID, input.EmployeeID).
		Custom(FieldLatitude, input.Latitude == nil, "latitude is required").
		Custom(FieldLongitude, input.Longitude == nil, "longitude is required")

	if input.Latitude != nil {
		validator.Latitude(FieldLatitude, *input.Latitude)
	}
	if input.Longitude != nil {
		validator.Longitude(FieldLongitude, *input.Longitude)
	}

	if err := validator.Err(); err != nil {
		return ClockInput{}, err
	}

	return ClockInput{
		EmployeeID: input.EmployeeID,
		Latitude:   *input.Latitude,
		Longitude:  *input.Longitude,
		Address:    input.Address,
		Accuracy:   input.Accuracy,
	}, nil
}

/*
TimeIn records a clock-in event.

POST /api/v1/attendance/time-in

Request:
  - Body: clockRequest (EmployeeID, Latitude, Longitude, Address?, Accuracy?)

Response:
  - 201: ClockResult: recordId, timestamp, location
  - 400: ErrInvalidJSON: Missing or malformed coordinates
  - 409: ErrConflict: A shift is already open
*/
func (handler *Handler) timeIn(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeClock(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.attendanceService.ClockIn(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
TimeOut records a clock-out event and summarizes the closed shift.

POST /api/v1/attendance/time-out

Request:
  - Body: clockRequest (EmployeeID, Latitude, Longitude, Address?, Accuracy?)

Response:
  - 201: ClockResult: record plus shiftSummary (hoursWorked, locationChangeDistance)
  - 400: ErrValidation: No time-in exists yet
  - 409: ErrConflict: The latest shift is already closed
*/
func (handler *Handler) timeOut(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeClock(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.attendanceService.ClockOut(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
Status resolves the employee's current shift state.

GET /api/v1/attendance/{employeeId}/status

Response:
  - 200: Status: status, currentRecord, lastStatusChange
*/
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	employeeID := requestutil.Param(request, "employeeId")

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, employeeID).UUID(FieldEmployeeID, employeeID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.attendanceService.GetStatus(request.Context(), employeeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
List returns one page of the employee's clock events, newest first.

GET /api/v1/attendance/{employeeId}?type=&startDate=&endDate=&page=&limit=

Query:
  - type: optional event type filter (time-in, time-out).
  - startDate, endDate: optional bounds, date-only or RFC 3339.

Response:
  - 200: []Record with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	employeeID := requestutil.Param(request, "employeeId")
	query := request.URL.Query()

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, employeeID).UUID(FieldEmployeeID, employeeID)

	filter := ListFilter{}
	if raw := query.Get(FieldType); raw != "" {
		validator.OneOf(FieldType, raw, string(TypeTimeIn), string(TypeTimeOut))
		filter.Type = RecordType(raw)
	}
	if raw := query.Get(FieldStartDate); raw != "" {
		parsed, ok := parseDate(raw, false)
		validator.Custom(FieldStartDate, !ok, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		filter.StartDate = parsed
	}
	if raw := query.Get(FieldEndDate); raw != "" {
		parsed, ok := parseDate(raw, true)
		validator.Custom(FieldEndDate, !ok, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		filter.EndDate = parsed
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	records, meta, err := handler.attendanceService.List(request.Context(), employeeID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, meta)
}

/*
Correct amends a clock event on behalf of an administrator.

PATCH /api/v1/attendance/records/{recordId}

Request:
  - Body: correctionRequest (any subset of timestamp, coordinates, address, remarks)

Response:
  - 200: Record: The amended event with editor audit fields
  - 404: ErrNotFound: Unknown record id
*/
func (handler *Handler) correct(writer http.ResponseWriter, request *http.Request) {
	recordID := requestutil.Param(request, "recordId")

	editorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input correctionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("recordId", recordID).UUID("recordId", recordID)
	if input.Latitude != nil {
		validator.Latitude(FieldLatitude, *input.Latitude)
	}
	if input.Longitude != nil {
		validator.Longitude(FieldLongitude, *input.Longitude)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.attendanceService.Correct(request.Context(), CorrectionInput{
		RecordID:  recordID,
		EditorID:  editorID,
		Timestamp: input.Timestamp,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Address:   input.Address,
		Remarks:   input.Remarks,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// parseDate accepts date-only or RFC 3339 input. Date-only end bounds are
// pushed to the end of that day so the range is inclusive.
func parseDate(raw string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
