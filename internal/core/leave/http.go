// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package leave

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/presensya/internal/platform/middleware"
	requestutil "github.com/taibuivan/presensya/internal/platform/request"
	"github.com/taibuivan/presensya/internal/platform/respond"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/internal/platform/validate"
	"github.com/taibuivan/presensya/pkg/slice"
)

// # Definitions & Constructors

// Handler implements the leave ledger HTTP endpoints.
type Handler struct {
	leaveService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{leaveService: service}
}

// Routes returns a [chi.Router] configured with leave ledger routes.
//
// # Endpoints
//   - GET /{employeeId}  : Lists the employee's ledger years.
//   - PUT /{employeeId}  : Administrative adjustment (admin only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/{employeeId}", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Put("/{employeeId}", handler.adjust)
	})

	return router
}

// # Request Payloads

// # Response Payloads

type bucketResponse struct {
	Allocated int `json:"allocated"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type balanceResponse struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employeeId"`
	FinancialYear string         `json:"financialYear"`
	Annual        bucketResponse `json:"annual"`
	Sick          bucketResponse `json:"sick"`
	Emergency     bucketResponse `json:"emergency"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func toBucketResponse(b Bucket) bucketResponse {
	return bucketResponse{Allocated: b.Allocated, Used: b.Used, Remaining: b.Remaining()}
}

func toBalanceResponse(balance *Balance) balanceResponse {
	return balanceResponse{
		ID:            balance.ID,
		EmployeeID:    balance.EmployeeID,
		FinancialYear: balance.FinancialYear,
		Annual:        toBucketResponse(balance.Annual),
		Sick:          toBucketResponse(balance.Sick),
		Emergency:     toBucketResponse(balance.Emergency),
		UpdatedAt:     balance.UpdatedAt,
	}
}

type adjustRequest struct {
	FinancialYear      string `json:"financialYear"`
	AnnualLeaveUsed    *int   `json:"annualLeaveUsed"`
	SickLeaveUsed      *int   `json:"sickLeaveUsed"`
	EmergencyLeaveUsed *int   `json:"emergencyLeaveUsed"`
	AnnualAllocated    *int   `json:"annualLeaveAllocated"`
	SickAllocated      *int   `json:"sickLeaveAllocated"`
	EmergencyAllocated *int   `json:"emergencyLeaveAllocated"`
}

/*
List returns the employee's ledger years, newest first.

GET /api/v1/leave-balance/{employeeId}

Response:
  - 200: []Balance (empty when no ledger exists yet)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	employeeID := requestutil.Param(request, "employeeId")

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, employeeID).UUID(FieldEmployeeID, employeeID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	balances, err := handler.leaveService.ListForEmployee(request.Context(), employeeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(balances, toBalanceResponse))
}

/*
Adjust amends the employee's ledger for a financial year.

PUT /api/v1/leave-balance/{employeeId}

Description: Opens the ledger year with default allocations when it does not
exist yet, then applies the provided counters.

Request:
  - Body: adjustRequest (any subset of used/allocated counters)

Response:
  - 200: Balance: The ledger after adjustment
  - 400: ErrValidation: Negative counters
*/
func (handler *Handler) adjust(writer http.ResponseWriter, request *http.Request) {
	employeeID := requestutil.Param(request, "employeeId")

	var input adjustRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, employeeID).UUID(FieldEmployeeID, employeeID)

	nonNegative := func(field string, value *int) {
		if value != nil {
			validator.Custom(field, *value < 0, "must not be negative")
		}
	}
	nonNegative(FieldAnnualLeaveUsed, input.AnnualLeaveUsed)
	nonNegative(FieldSickLeaveUsed, input.SickLeaveUsed)
	nonNegative(FieldEmergencyUsed, input.EmergencyLeaveUsed)
	nonNegative(FieldAnnualAllocated, input.AnnualAllocated)
	nonNegative(FieldSickAllocated, input.SickAllocated)
	nonNegative(FieldEmergencyAllotted, input.EmergencyAllocated)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	balance, err := handler.leaveService.Adjust(request.Context(), AdjustInput{
		EmployeeID:         employeeID,
		FinancialYear:      input.FinancialYear,
		AnnualUsed:         input.AnnualLeaveUsed,
		SickUsed:           input.SickLeaveUsed,
		EmergencyUsed:      input.EmergencyLeaveUsed,
		AnnualAllocated:    input.AnnualAllocated,
		SickAllocated:      input.SickAllocated,
		EmergencyAllocated: input.EmergencyAllocated,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toBalanceResponse(balance))
}
