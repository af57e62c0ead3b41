// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/presensya/internal/platform/constants"
)

// # Redis OTP Store

// RedisOTPStore implements OTPStore using Redis. Sessions are stored as JSON
// under a per-user key with a TTL derived from the session deadline, so Redis
// garbage-collects abandoned challenges on its own.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates a new Redis-backed OTPStore.
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

/*
Set stores the session, replacing any prior session for the same user.

Description: The key TTL is time-until-ExpiresAt, so re-persisting a session
after a failed attempt does not extend its lifetime.

Parameters:
  - context: context.Context
  - session: *OTPSession

Returns:
  - error: Marshalling or execution errors
*/
func (store *RedisOTPStore) Set(context context.Context, session *OTPSession) error {
	key := otpKey(session.UserID)

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_otp_store_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Already past the deadline; a minimal TTL still lets the verifier
		// observe and report the expiry instead of a bare not-found.
		ttl = time.Second
	}

	if err := store.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_store_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the live session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *OTPSession: Hydrated session
  - error: ErrSessionNotFound when absent or evicted, or connectivity errors
*/
func (store *RedisOTPStore) Get(context context.Context, userID string) (*OTPSession, error) {
	payload, err := store.client.Get(context, otpKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis_otp_store_get_failed: %w", err)
	}

	session := &OTPSession{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_otp_store_unmarshal_failed: %w", err)
	}

	return session, nil
}

/*
Delete removes the session for a user. Missing keys are not an error.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisOTPStore) Delete(context context.Context, userID string) error {
	if err := store.client.Del(context, otpKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_otp_store_delete_failed: %w", err)
	}
	return nil
}

// otpKey builds the Redis key for a user's OTP session.
func otpKey(userID string) string {
	return constants.RedisPrefixOTP + userID
}
