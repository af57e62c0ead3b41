// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth service's TokenProvider interface.
package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, and Role directly inside the JWT,
// the [middleware.Authenticate] can reconstruct the active user context
// WITHOUT querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm,omitempty"`
	Role     string `json:"rol,omitempty"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Access vs Refresh
//
// Both token variants are signed with the same shared secret and carry the
// same claim shape. They differ only in TTL and intended use: the short-lived
// access token authorizes API calls, while the long-lived refresh token can
// only be exchanged for a new pair at the /auth/refresh endpoint.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService signing with the given shared secret.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTokenTTL returns the configured lifetime of access tokens.
func (service *TokenService) AccessTokenTTL() time.Duration {
	return service.accessTTL
}

// GenerateAccessToken creates a short-lived JWT carrying identity and role claims.
func (service *TokenService) GenerateAccessToken(userID, username, role string) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registered(userID, service.accessTTL),
		UserID:           userID,
		Username:         username,
		Role:             role,
	})
}

// GenerateRefreshToken creates a long-lived JWT carrying only the user identity.
func (service *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registered(userID, service.refreshTTL),
		UserID:           userID,
	})
}

// VerifyToken checks the signature and validity of a JWT string.
//
// # Fails Closed
//
// Any parsing, signature, or expiry problem is returned as an error. The
// function never panics and never returns partially-validated claims.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("sec: unexpected signing method")
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, errors.Join(errors.New("sec: invalid token"), err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// registered builds the standard claim set for a token with the given lifetime.
func (service *TokenService) registered(userID string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

// sign serializes and signs the claim set with the shared secret.
func (service *TokenService) sign(claims AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", errors.Join(errors.New("sec: failed to sign token"), err)
	}
	return signedToken, nil
}
