// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/ctxutil"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/pkg/keymutex"
)

// # Token Provider

// TokenProvider mints and verifies session tokens. Satisfied by
// sec.TokenService.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
	AccessTokenTTL() time.Duration
}

// # DTOs

// LoginChallenge is the response to a successful password check: the caller
// must now complete the OTP step.
type LoginChallenge struct {
	UserID      string `json:"userId"`
	Message     string `json:"message"`
	Phone       string `json:"phone"`
	RequiresOTP bool   `json:"requiresOTP"`
}

// SessionTokens is the response to a completed login or refresh.
type SessionTokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         *User  `json:"user"`
}

// # Service

// Service implements the two-step login flow: password check, OTP challenge,
// token issuance, and refresh.
type Service struct {
	users       UserRepository
	sessions    OTPStore
	delivery    DeliveryChannel
	tokens      TokenProvider
	otpTTL      time.Duration
	maxAttempts int

	// verifyLocks serializes OTP verification per user so two concurrent
	// requests cannot both read attempts=N and write attempts=N+1.
	verifyLocks keymutex.KeyMutex
}

/*
NewService creates the auth service.

Parameters:
  - users: account lookup repository.
  - sessions: OTP session store (Redis or in-memory, chosen at startup).
  - delivery: out-of-band code delivery channel.
  - tokens: JWT provider for access and refresh tokens.
  - otpTTL: lifetime of an issued code.
  - maxAttempts: verification attempts allowed per session.
*/
func NewService(users UserRepository, sessions OTPStore, delivery DeliveryChannel, tokens TokenProvider, otpTTL time.Duration, maxAttempts int) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		delivery:    delivery,
		tokens:      tokens,
		otpTTL:      otpTTL,
		maxAttempts: maxAttempts,
	}
}

/*
Login validates the employee's password and, on success, issues a fresh OTP
challenge. Any previous in-flight session for the user is overwritten, which
also resets its attempt counter.

Parameters:
  - ctx: request context.
  - username: account username.
  - password: plaintext password to check against the stored hash.

Returns:
  - *LoginChallenge: userId plus the masked delivery target.
  - error: apperr.NotFound if the account does not exist, apperr.Unauthorized
    for a wrong password or inactive account.
*/
func (s *Service) Login(ctx context.Context, username, password string) (*LoginChallenge, error) {
	// ── 1. Look up the account ───────────────────────────────────────────
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(fmt.Errorf("auth_service_find_user_failed: %w", err))
	}

	if user.Status != StatusActive {
		return nil, apperr.Unauthorized(msgAccountInactive)
	}

	// ── 2. Check the password ────────────────────────────────────────────
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidPassword)
	}

	// ── 3. Issue and deliver the challenge ───────────────────────────────
	code, err := generateCode()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_generate_code_failed: %w", err))
	}

	session := &OTPSession{
		UserID:         user.ID,
		Code:           code,
		ExpiresAt:      time.Now().Add(s.otpTTL),
		Attempts:       0,
		DeliveryTarget: user.Phone,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_store_otp_failed: %w", err))
	}

	if err := s.delivery.Send(ctx, session.DeliveryTarget, code); err != nil {
		// The session is already live; the user can retry login to resend.
		ctxutil.GetLogger(ctx).Error("otp_delivery_failed", "user_id", user.ID, "error", err)
		return nil, apperr.ServiceUnavailable("Could not deliver OTP. Please try again.")
	}

	return &LoginChallenge{
		UserID:      user.ID,
		Message:     msgOTPSent,
		Phone:       maskTarget(user.Phone),
		RequiresOTP: true,
	}, nil
}

/*
VerifyOTP completes the login flow by checking the submitted code against the
user's in-flight session.

Rejection paths are checked in a fixed order and each consumes or preserves
the session deliberately:

 1. no session: not found (nothing to consume).
 2. attempts already exhausted: session deleted, rate limited. This is
    checked before expiry so a locked session never downgrades to "expired".
 3. session expired: session deleted, expired.
 4. code mismatch: attempts incremented and persisted, unauthorized. The
    increment takes effect on the NEXT call; reaching the threshold does not
    retroactively convert this response into a lockout.
 5. match: session deleted, tokens issued.

Parameters:
  - ctx: request context.
  - userID: account id returned by Login.
  - code: six-digit code submitted by the client.

Returns:
  - *SessionTokens: access and refresh tokens plus the account profile.
  - error: apperr per the rejection paths above.
*/
func (s *Service) VerifyOTP(ctx context.Context, userID, code string) (*SessionTokens, error) {
	unlock := s.verifyLocks.Lock(userID)
	defer unlock()

	// ── 1. Load the session ──────────────────────────────────────────────
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.NotFound("OTP session").WithCode(CodeOTPNotFound)
		}
		return nil, apperr.Internal(fmt.Errorf("auth_service_load_otp_failed: %w", err))
	}

	// ── 2. Attempt ceiling, then expiry, then the code itself ────────────
	if session.Attempts >= s.maxAttempts {
		if err := s.sessions.Delete(ctx, userID); err != nil {
			return nil, apperr.Internal(fmt.Errorf("auth_service_delete_otp_failed: %w", err))
		}
		return nil, apperr.RateLimited(msgOTPLocked).WithCode(CodeOTPLocked)
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, userID); err != nil {
			return nil, apperr.Internal(fmt.Errorf("auth_service_delete_otp_failed: %w", err))
		}
		return nil, apperr.Unauthorized(msgOTPExpired).WithCode(CodeOTPExpired)
	}

	if session.Code != code {
		session.Attempts++
		if err := s.sessions.Set(ctx, session); err != nil {
			return nil, apperr.Internal(fmt.Errorf("auth_service_store_otp_failed: %w", err))
		}
		return nil, apperr.Unauthorized(msgOTPInvalid).WithCode(CodeOTPInvalid)
	}

	// ── 3. Consume the session and mint tokens ───────────────────────────
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_delete_otp_failed: %w", err))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(fmt.Errorf("auth_service_find_user_failed: %w", err))
	}
	if user.Status != StatusActive {
		return nil, apperr.Unauthorized(msgAccountInactive)
	}

	return s.issueTokens(user)
}

/*
Refresh exchanges a valid refresh token for a new access/refresh pair. The
account is re-checked so deactivated employees cannot keep sessions alive.

Parameters:
  - ctx: request context.
  - refreshToken: token minted by a prior VerifyOTP or Refresh call.

Returns:
  - *SessionTokens: a fresh token pair.
  - error: apperr.Unauthorized for a bad token, apperr.Forbidden when the
    account is no longer active.
*/
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	claims, err := s.tokens.VerifyToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefresh)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Unauthorized(msgInvalidRefresh)
		}
		return nil, apperr.Internal(fmt.Errorf("auth_service_find_user_failed: %w", err))
	}
	if user.Status != StatusActive {
		return nil, apperr.Forbidden(msgRefreshForbidden)
	}

	return s.issueTokens(user)
}

// issueTokens mints an access/refresh pair for an active account.
func (s *Service) issueTokens(user *User) (*SessionTokens, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_sign_access_failed: %w", err))
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_sign_refresh_failed: %w", err))
	}
	return &SessionTokens{
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
		User:         user,
	}, nil
}

// generateCode draws a uniform six-digit code from crypto/rand.
func generateCode() (string, error) {
	span := big.NewInt(otpCodeMax - otpCodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpCodeMin, 10), nil
}
