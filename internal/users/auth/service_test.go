// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/internal/users/auth"
)

// # Test Fixtures

type fakeUserRepo struct {
	users map[string]*auth.User
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeDelivery struct {
	lastTarget string
	lastCode   string
	sendErr    error
}

func (d *fakeDelivery) Send(_ context.Context, target, code string) error {
	if d.sendErr != nil {
		return d.sendErr
	}
	d.lastTarget = target
	d.lastCode = code
	return nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepo
	sessions *auth.MemoryOTPStore
	delivery *fakeDelivery
	tokens   *sec.TokenService
}

const (
	testUserID   = "0191e5c0-0000-7000-8000-000000000001"
	testPassword = "Sup3r$ecret"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*auth.User{
		testUserID: {
			ID:           testUserID,
			EmployeeID:   "EMP-0001",
			Username:     "jdelacruz",
			Email:        "jdelacruz@presensya.app",
			Phone:        "09171234567",
			PasswordHash: hash,
			FirstName:    "Juan",
			Role:         sec.RoleEmployee,
			Status:       auth.StatusActive,
		},
	}}

	sessions := auth.NewMemoryOTPStore()
	t.Cleanup(sessions.Close)

	delivery := &fakeDelivery{}

	tokens, err := sec.NewTokenService("test-signing-secret", "presensya-test", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	return &fixture{
		service:  auth.NewService(users, sessions, delivery, tokens, 10*time.Minute, 3),
		users:    users,
		sessions: sessions,
		delivery: delivery,
		tokens:   tokens,
	}
}

func assertAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, status, ae.HTTPStatus)
	assert.Equal(t, code, ae.Code)
}

// # Login

/*
TestLogin_IssuesChallenge verifies the password step: a correct password
produces an OTP challenge with a masked delivery target and no tokens.
*/
func TestLogin_IssuesChallenge(t *testing.T) {
	f := newFixture(t)

	challenge, err := f.service.Login(context.Background(), "jdelacruz", testPassword)
	require.NoError(t, err)

	assert.Equal(t, testUserID, challenge.UserID)
	assert.True(t, challenge.RequiresOTP)
	assert.Equal(t, "*******4567", challenge.Phone)

	// The full number went to the delivery channel, never to the client.
	assert.Equal(t, "09171234567", f.delivery.lastTarget)
	assert.Len(t, f.delivery.lastCode, 6)
	assert.GreaterOrEqual(t, f.delivery.lastCode, "100000")
	assert.LessOrEqual(t, f.delivery.lastCode, "999999")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		mutate   func(f *fixture)
		status   int
	}{
		{"unknown_user", "nobody", testPassword, nil, http.StatusNotFound},
		{"wrong_password", "jdelacruz", "WrongPass1!", nil, http.StatusUnauthorized},
		{"inactive_account", "jdelacruz", testPassword, func(f *fixture) {
			f.users.users[testUserID].Status = auth.StatusInactive
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.mutate != nil {
				tt.mutate(f)
			}

			_, err := f.service.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestLogin_DeliveryFailure verifies that an unreachable delivery channel
surfaces as 503 rather than a silent success.
*/
func TestLogin_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.delivery.sendErr = errors.New("gateway down")

	_, err := f.service.Login(context.Background(), "jdelacruz", testPassword)
	assertAppError(t, err, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

/*
TestLogin_OverwritesPriorChallenge verifies that logging in again replaces
the in-flight session: the old code stops working and the new one succeeds
with a fresh attempt budget.
*/
func TestLogin_OverwritesPriorChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)
	firstCode := f.delivery.lastCode

	// Burn two attempts against the first session.
	wrongCode := "000000"
	if firstCode == wrongCode {
		wrongCode = "000001"
	}
	_, err = f.service.VerifyOTP(ctx, testUserID, wrongCode)
	assertAppError(t, err, http.StatusUnauthorized, auth.CodeOTPInvalid)
	_, err = f.service.VerifyOTP(ctx, testUserID, wrongCode)
	assertAppError(t, err, http.StatusUnauthorized, auth.CodeOTPInvalid)

	// Second login resets the counter and replaces the code.
	_, err = f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)
	secondCode := f.delivery.lastCode

	if secondCode != firstCode {
		_, err = f.service.VerifyOTP(ctx, testUserID, firstCode)
		assertAppError(t, err, http.StatusUnauthorized, auth.CodeOTPInvalid)
	}

	tokens, err := f.service.VerifyOTP(ctx, testUserID, secondCode)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
}

// # OTP Verification

/*
TestVerifyOTP_Success verifies the happy path: the correct code consumes the
session and yields a verifiable access/refresh token pair.
*/
func TestVerifyOTP_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)

	tokens, err := f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	require.NoError(t, err)

	claims, err := f.tokens.VerifyToken(tokens.Token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "jdelacruz", claims.Username)
	assert.Equal(t, string(sec.RoleEmployee), claims.Role)

	refreshClaims, err := f.tokens.VerifyToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, testUserID, refreshClaims.UserID)

	assert.Equal(t, int64(3600), tokens.ExpiresIn)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "jdelacruz", tokens.User.Username)
	assert.Equal(t, "EMP-0001", tokens.User.EmployeeID)

	// The session is consumed: replaying the same code fails.
	_, err = f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	assertAppError(t, err, http.StatusNotFound, auth.CodeOTPNotFound)
}

func TestVerifyOTP_NoSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.VerifyOTP(context.Background(), testUserID, "123456")
	assertAppError(t, err, http.StatusNotFound, auth.CodeOTPNotFound)
}

/*
TestVerifyOTP_AttemptExhaustion walks the attempt counter to the ceiling.

The third wrong attempt still reports an invalid code; only the call after
it trips the lockout, which deletes the session so the one after that is a
plain not-found.
*/
func TestVerifyOTP_AttemptExhaustion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)

	wrongCode := "000000"
	if f.delivery.lastCode == wrongCode {
		wrongCode = "000001"
	}

	for i := 0; i < 3; i++ {
		_, err = f.service.VerifyOTP(ctx, testUserID, wrongCode)
		assertAppError(t, err, http.StatusUnauthorized, auth.CodeOTPInvalid)
	}

	// Ceiling reached: even the correct code is refused now.
	_, err = f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	assertAppError(t, err, http.StatusTooManyRequests, auth.CodeOTPLocked)

	// The lockout consumed the session.
	_, err = f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	assertAppError(t, err, http.StatusNotFound, auth.CodeOTPNotFound)
}

/*
TestVerifyOTP_Expired verifies that a stale session is rejected as expired
and consumed in the process.
*/
func TestVerifyOTP_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := &auth.OTPSession{
		UserID:    testUserID,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, f.sessions.Set(ctx, session))

	_, err := f.service.VerifyOTP(ctx, testUserID, "123456")
	assertAppError(t, err, http.StatusUnauthorized, auth.CodeOTPExpired)

	_, err = f.service.VerifyOTP(ctx, testUserID, "123456")
	assertAppError(t, err, http.StatusNotFound, auth.CodeOTPNotFound)
}

/*
TestVerifyOTP_LockoutBeforeExpiry pins the check order: a session that is
both exhausted and expired reports the lockout, not the expiry.
*/
func TestVerifyOTP_LockoutBeforeExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := &auth.OTPSession{
		UserID:    testUserID,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		Attempts:  3,
	}
	require.NoError(t, f.sessions.Set(ctx, session))

	_, err := f.service.VerifyOTP(ctx, testUserID, "123456")
	assertAppError(t, err, http.StatusTooManyRequests, auth.CodeOTPLocked)
}

// # Refresh

func TestRefresh_RotatesTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)
	tokens, err := f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEmpty(t, refreshed.RefreshToken)

	claims, err := f.tokens.VerifyToken(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
}

func TestRefresh_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "jdelacruz", testPassword)
	require.NoError(t, err)
	tokens, err := f.service.VerifyOTP(ctx, testUserID, f.delivery.lastCode)
	require.NoError(t, err)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := f.service.Refresh(ctx, "not-a-token")
		assertAppError(t, err, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("deactivated_account", func(t *testing.T) {
		f.users.users[testUserID].Status = auth.StatusInactive
		defer func() { f.users.users[testUserID].Status = auth.StatusActive }()

		_, err := f.service.Refresh(ctx, tokens.RefreshToken)
		assertAppError(t, err, http.StatusForbidden, "FORBIDDEN")
	})
}
