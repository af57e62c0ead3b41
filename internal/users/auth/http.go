// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/presensya/internal/platform/request"
	"github.com/taibuivan/presensya/internal/platform/respond"
	"github.com/taibuivan/presensya/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// This handler covers the login entry points only: password check, OTP
// verification, and token refresh. Account management lives in the employee
// module.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login      : Checks the password and issues an OTP challenge.
//   - POST /verify-otp : Completes login and returns session tokens.
//   - POST /refresh    : Exchanges a refresh token for a new token pair.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints: the whole flow happens before a session exists.
	router.Post("/login", handler.login)
	router.Post("/verify-otp", handler.verifyOTP)
	router.Post("/refresh", handler.refresh)

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

/*
Login performs the password step of the two-step login.

POST /api/v1/auth/login

Description: Verifies credentials and, on success, sends a one-time password
to the employee's registered phone. The response carries only the userId and
a masked delivery target; no session is established yet.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: LoginChallenge: userId, masked phone, requiresOTP
  - 401: ErrUnauthorized: Wrong password or inactive account
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	challenge, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, challenge)
}

/*
VerifyOTP completes the login by checking the submitted code.

POST /api/v1/auth/verify-otp

Description: Validates the code against the in-flight session and, on match,
returns the access and refresh tokens together with the account profile.

Request:
  - Body: verifyOTPRequest (UserID, OTP)

Response:
  - 200: SessionTokens: token, refreshToken, expiresIn, user
  - 401: INVALID_OTP / OTP_EXPIRED: Wrong or stale code
  - 404: OTP_NOT_FOUND: No challenge in flight for this user
  - 429: OTP_ATTEMPTS_EXCEEDED: Attempt ceiling reached
*/
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var input verifyOTPRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUserID, input.UserID).
		UUID(FieldUserID, input.UserID).
		Required(FieldOTP, input.OTP).
		MinLen(FieldOTP, input.OTP, 6).
		MaxLen(FieldOTP, input.OTP, 6)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.VerifyOTP(request.Context(), input.UserID, input.OTP)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
Refresh exchanges a refresh token for a new token pair.

POST /api/v1/auth/refresh

Request:
  - Body: refreshRequest (RefreshToken)

Response:
  - 200: SessionTokens: new token pair and profile
  - 401: ErrUnauthorized: Invalid or expired refresh token
  - 403: ErrForbidden: Account no longer active
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, input.RefreshToken)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
