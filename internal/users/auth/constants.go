// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # OTP Policy

// One-time-password generation bounds. Codes are always six decimal digits
// with no leading zero, so clients can validate length before submitting.
const (
	otpCodeMin = 100000
	otpCodeMax = 999999
)

// maskVisibleDigits is how many trailing digits of the delivery target remain
// visible in login responses.
const maskVisibleDigits = 4

// # Response Messages

const (
	msgOTPSent          = "OTP sent to registered phone number"
	msgInvalidPassword  = "Invalid password"
	msgAccountInactive  = "Account is inactive"
	msgOTPNotFound      = "OTP not found. Please log in again."
	msgOTPExpired       = "OTP has expired. Please log in again."
	msgOTPInvalid       = "Invalid OTP"
	msgOTPLocked        = "Maximum OTP attempts exceeded. Please log in again."
	msgInvalidRefresh   = "Invalid or expired refresh token"
	msgRefreshForbidden = "Account is no longer active"
)

// # Error Codes

// Distinct machine-readable codes per OTP rejection path, so clients can
// branch without parsing human messages.
const (
	CodeOTPNotFound = "OTP_NOT_FOUND"
	CodeOTPExpired  = "OTP_EXPIRED"
	CodeOTPInvalid  = "INVALID_OTP"
	CodeOTPLocked   = "OTP_ATTEMPTS_EXCEEDED"
)
