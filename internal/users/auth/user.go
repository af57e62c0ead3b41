// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the two-step login flow for employee accounts.

It defines the core domain entities (User, OTPSession) and the logic for
password verification, one-time-password challenges, and session token
issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to employee identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/presensya/internal/platform/sec"
)

// # Domain Entities

// UserStatus represents the lifecycle state of an employee account.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
	StatusDeleted  UserStatus = "deleted"
)

// User represents an employee account.
//
// Account lifecycle (creation, profile edits, deactivation) is owned by the
// admin employee module; this package only reads accounts to authenticate them.
type User struct {
	ID           string       `json:"id"`
	EmployeeID   string       `json:"employeeId"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName,omitempty"`
	Department   string       `json:"department,omitempty"`
	Designation  string       `json:"designation,omitempty"`
	Role         sec.UserRole `json:"role"`
	Status       UserStatus   `json:"status"`
	JoinDate     *time.Time   `json:"joinDate,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// OTPSession is an in-flight one-time-password challenge.
//
// # Invariants
//
//   - At most one live session exists per user: issuing a new one overwrites
//     the prior session unconditionally.
//   - Attempts only ever increases; once it reaches the configured maximum the
//     session is deleted and verification is rejected even for a correct code.
//   - The session is deleted on successful verification, on expiry detection,
//     and on attempt exhaustion. It never outlives ExpiresAt in the store.
type OTPSession struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
	// ExpiresAt is the absolute deadline. It is authoritative: the durable
	// store's native TTL is derived from it, never the other way around.
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
	// DeliveryTarget snapshots the phone/email the code was sent to, so a
	// concurrent profile update cannot redirect an in-flight challenge.
	DeliveryTarget string `json:"deliveryTarget"`
}

// Expired reports whether the session's deadline has passed.
func (s *OTPSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// # Field Identifiers

// Wire field names for validation and identity mapping in the auth domain.
// The API keeps the camelCase contract of the original ESS clients.
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldUserID       = "userId"
	FieldOTP          = "otp"
	FieldRefreshToken = "refreshToken"
	FieldToken        = "token"
	FieldExpiresIn    = "expiresIn"
	FieldMessage      = "message"
)
