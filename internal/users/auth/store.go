// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
)

// # Store Errors

var (
	// ErrUserNotFound is returned when no account matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when no OTP session exists for a user.
	ErrSessionNotFound = errors.New("otp session not found")
)

// # Repository Interfaces

// UserRepository provides read access to employee accounts for
// authentication. Account writes live in the employee module.
type UserRepository interface {
	// FindByUsername returns the account with the given username, or
	// ErrUserNotFound. Soft-deleted accounts are never returned.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns the account with the given id, or ErrUserNotFound.
	// Soft-deleted accounts are never returned.
	FindByID(ctx context.Context, id string) (*User, error)
}

// OTPStore persists in-flight OTP challenges keyed by user id.
//
// Implementations must expire entries no later than the session's ExpiresAt,
// but the verifier does not rely on that: it re-checks the deadline itself so
// memory- and Redis-backed stores reject an expired code identically.
type OTPStore interface {
	// Set stores the session, replacing any existing session for the same
	// user. The entry's storage TTL is derived from session.ExpiresAt.
	Set(ctx context.Context, session *OTPSession) error

	// Get returns the live session for the user, or ErrSessionNotFound.
	Get(ctx context.Context, userID string) (*OTPSession, error)

	// Delete removes the session for the user. Deleting a missing session
	// is not an error.
	Delete(ctx context.Context, userID string) error
}
