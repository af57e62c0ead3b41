// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

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

// Handler implements the employee-management HTTP endpoints.
type Handler struct {
	employeeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{employeeService: service}
}

// Routes returns a [chi.Router] configured with employee-management routes.
// The whole group requires the admin role.
//
// # Endpoints
//   - POST   /              : Provisions a new account.
//   - GET    /              : Lists accounts with search and filters.
//   - GET    /{employeeId}  : Returns one account by employee code.
//   - PUT    /{employeeId}  : Amends an account's profile.
//   - DELETE /{employeeId}  : Soft-deletes an account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{employeeId}", handler.get)
	router.Put("/{employeeId}", handler.update)
	router.Delete("/{employeeId}", handler.remove)

	return router
}

// # Request Payloads

type createRequest struct {
	EmployeeID  string     `json:"employeeId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Department  string     `json:"department"`
	Designation string     `json:"designation"`
	Password    string     `json:"password"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	JoinDate    *time.Time `json:"joinDate"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Status      *string `json:"status"`
}

/*
Create provisions a new employee account.

POST /api/v1/admin/employees

Request:
  - Body: createRequest (EmployeeID, Name, Email, Password required)

Response:
  - 201: Employee: The created account (no credential material)
  - 400: ErrValidation: Missing fields or weak password
  - 409: ErrConflict: Duplicate employee code or email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmployeeID, input.EmployeeID).
		Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role,
			string(sec.RoleAdmin), string(sec.RoleApprover), string(sec.RoleEmployee))
	}
	if input.Status != "" {
		validator.OneOf(FieldStatus, input.Status, StatusActive, StatusInactive)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.employeeService.Create(request.Context(), CreateInput{
		EmployeeID:  input.EmployeeID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Department:  input.Department,
		Designation: input.Designation,
		Password:    input.Password,
		Role:        sec.UserRole(input.Role),
		Status:      input.Status,
		JoinDate:    input.JoinDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
List returns one page of accounts.

GET /api/v1/admin/employees?search=&department=&status=&page=&limit=

Response:
  - 200: []Employee with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Search:     query.Get(FieldSearch),
		Department: query.Get(FieldDepartment),
		Status:     query.Get(FieldStatus),
	}

	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, StatusActive, StatusInactive)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	params := pagination.FromRequest(request)
	employees, meta, err := handler.employeeService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, employees, meta)
}

/*
Get returns one account by employee code.

GET /api/v1/admin/employees/{employeeId}

Response:
  - 200: Employee
  - 404: ErrNotFound: Unknown or deleted employee code
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	code := requestutil.Param(request, "employeeId")

	account, err := handler.employeeService.Get(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
Update amends an account's profile.

PUT /api/v1/admin/employees/{employeeId}

Request:
  - Body: updateRequest (any subset of profile fields)

Response:
  - 200: Employee: The amended account
  - 404: ErrNotFound
  - 409: ErrConflict: Duplicate email
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	code := requestutil.Param(request, "employeeId")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).Email(FieldEmail, *input.Email)
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, StatusActive, StatusInactive)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.employeeService.Update(request.Context(), code, UpdateInput{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Department:  input.Department,
		Designation: input.Designation,
		Status:      input.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
Remove soft-deletes an account.

DELETE /api/v1/admin/employees/{employeeId}

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	code := requestutil.Param(request, "employeeId")

	if err := handler.employeeService.Delete(request.Context(), code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
