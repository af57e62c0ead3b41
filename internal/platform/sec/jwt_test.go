// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/presensya/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

func newTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "presensya-test", accessTTL, refreshTTL)
	require.NoError(t, err)
	return service
}

func TestNewTokenService_RejectsEmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "presensya-test", time.Hour, time.Hour)
	assert.Error(t, err)
}

/*
TestAccessToken_RoundTrip verifies that a signed access token carries the
identity and role claims back through verification.
*/
func TestAccessToken_RoundTrip(t *testing.T) {
	service := newTokenService(t, time.Hour, 24*time.Hour)

	token, err := service.GenerateAccessToken("user-1", "jdelacruz", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jdelacruz", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "presensya-test", claims.Issuer)
}

/*
TestRefreshToken_CarriesIdentityOnly verifies the refresh token holds the
user id but neither username nor role.
*/
func TestRefreshToken_CarriesIdentityOnly(t *testing.T) {
	service := newTokenService(t, time.Hour, 24*time.Hour)

	token, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Role)
}

func TestVerifyToken_Failures(t *testing.T) {
	service := newTokenService(t, time.Hour, 24*time.Hour)

	t.Run("garbage_string", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("a-different-secret", "presensya-test", time.Hour, time.Hour)
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-1", "jdelacruz", "employee")
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired_token", func(t *testing.T) {
		shortLived := newTokenService(t, -time.Minute, -time.Minute)

		token, err := shortLived.GenerateAccessToken("user-1", "jdelacruz", "employee")
		require.NoError(t, err)

		_, err = shortLived.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("tampered_payload", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-1", "jdelacruz", "employee")
		require.NoError(t, err)

		_, err = service.VerifyToken(token + "x")
		assert.Error(t, err)
	})
}

func TestAccessTokenTTL(t *testing.T) {
	service := newTokenService(t, 45*time.Minute, 24*time.Hour)
	assert.Equal(t, 45*time.Minute, service.AccessTokenTTL())
}
