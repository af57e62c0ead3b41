// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package announcement

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/presensya/internal/platform/middleware"
	requestutil "github.com/taibuivan/presensya/internal/platform/request"
	"github.com/taibuivan/presensya/internal/platform/respond"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/internal/platform/validate"
	"github.com/taibuivan/presensya/pkg/convert"
)

// # Definitions & Constructors

// Handler implements the announcement HTTP endpoints.
type Handler struct {
	announcementService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{announcementService: service}
}

// Routes returns a [chi.Router] configured with announcement routes.
//
// # Endpoints
//   - GET    /feed  : The authenticated employee's filtered feed.
//   - GET    /      : Administrative listing (admin only).
//   - POST   /      : Publishes a notice (admin only).
//   - PUT    /{announcementId}    : Amends a notice (admin only).
//   - DELETE /{announcementId}    : Retracts a notice (admin only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/feed", handler.feed)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Put("/{announcementId}", handler.update)
		r.Delete("/{announcementId}", handler.retract)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	AnnouncementDate *time.Time `json:"announcementDate"`
	IsPinned         bool       `json:"isPinned"`
	TargetRole       string     `json:"targetRole"`
	TargetDepartment string     `json:"targetDepartment"`
	ExpiryDate       *time.Time `json:"expiryDate"`
}

type updateRequest struct {
	Title            *string    `json:"title"`
	Content          *string    `json:"content"`
	IsPinned         *bool      `json:"isPinned"`
	TargetRole       *string    `json:"targetRole"`
	TargetDepartment *string    `json:"targetDepartment"`
	ExpiryDate       *time.Time `json:"expiryDate"`
}

/*
Feed returns the caller's visible announcements.

GET /api/v1/announcements/feed

Description: Filters by the caller's own role and department claims; pinned
notices sort first.

Response:
  - 200: []Announcement
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Department is not carried in token claims; the feed filters by role
	// only and untargeted department notices pass for everyone.
	notices, err := handler.announcementService.Feed(request.Context(), claims.Role, "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notices)
}

/*
List returns the administrative view.

GET /api/v1/announcements?active=true

Response:
  - 200: []Announcement (retracted entries included when active=false)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	activeOnly := convert.ToBoolD(request.URL.Query().Get("active"), true)

	notices, err := handler.announcementService.ListAll(request.Context(), activeOnly)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notices)
}

/*
Create publishes a notice.

POST /api/v1/announcements

Request:
  - Body: createRequest (Title, Content required; AnnouncementDate defaults to now)

Response:
  - 201: Announcement
  - 400: ErrValidation
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldContent, input.Content)
	if input.TargetRole != "" {
		validator.OneOf(FieldTargetRole, input.TargetRole,
			string(sec.RoleAdmin), string(sec.RoleApprover), string(sec.RoleEmployee))
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	announcementDate := time.Now()
	if input.AnnouncementDate != nil {
		announcementDate = *input.AnnouncementDate
	}

	notice, err := handler.announcementService.Create(request.Context(), CreateInput{
		Title:            input.Title,
		Content:          input.Content,
		CreatedBy:        authorID,
		AnnouncementDate: announcementDate,
		IsPinned:         input.IsPinned,
		TargetRole:       input.TargetRole,
		TargetDepartment: input.TargetDepartment,
		ExpiryDate:       input.ExpiryDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, notice)
}

/*
Update amends a notice.

PUT /api/v1/announcements/{announcementId}

Response:
  - 200: Announcement
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "announcementId")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("announcementId", id).UUID("announcementId", id)
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	notice, err := handler.announcementService.Update(request.Context(), id, UpdateInput{
		Title:            input.Title,
		Content:          input.Content,
		IsPinned:         input.IsPinned,
		TargetRole:       input.TargetRole,
		TargetDepartment: input.TargetDepartment,
		ExpiryDate:       input.ExpiryDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notice)
}

/*
Retract takes a notice out of the feed.

DELETE /api/v1/announcements/{announcementId}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown or already-retracted notice
*/
func (handler *Handler) retract(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "announcementId")

	if err := handler.announcementService.Retract(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
