// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// janitorInterval is how often the in-memory store sweeps expired sessions.
const janitorInterval = time.Minute

// # Memory OTP Store

// MemoryOTPStore implements OTPStore with a mutex-guarded map. It is the
// single-instance fallback for deployments without Redis; sessions do not
// survive a restart.
//
// A background janitor sweeps entries past their deadline so the map does not
// accumulate abandoned challenges. The sweep is a hygiene measure only: the
// verifier checks ExpiresAt itself, so a not-yet-swept expired session is
// still rejected as expired, matching the Redis store's behavior.
type MemoryOTPStore struct {
	mu       sync.RWMutex
	sessions map[string]*OTPSession
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryOTPStore creates the store and starts its cleanup goroutine.
func NewMemoryOTPStore() *MemoryOTPStore {
	store := &MemoryOTPStore{
		sessions: make(map[string]*OTPSession),
		stop:     make(chan struct{}),
	}
	go store.janitor()
	return store
}

// Set stores the session, replacing any prior session for the same user.
func (store *MemoryOTPStore) Set(_ context.Context, session *OTPSession) error {
	copied := *session
	store.mu.Lock()
	store.sessions[session.UserID] = &copied
	store.mu.Unlock()
	return nil
}

// Get returns a copy of the live session, or ErrSessionNotFound. Expired
// entries that the janitor has not reached yet are still returned; callers
// check the deadline.
func (store *MemoryOTPStore) Get(_ context.Context, userID string) (*OTPSession, error) {
	store.mu.RLock()
	session, ok := store.sessions[userID]
	store.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

// Delete removes the session for a user. Missing entries are not an error.
func (store *MemoryOTPStore) Delete(_ context.Context, userID string) error {
	store.mu.Lock()
	delete(store.sessions, userID)
	store.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (store *MemoryOTPStore) Close() {
	store.stopOnce.Do(func() {
		close(store.stop)
	})
}

// janitor periodically removes sessions past their deadline.
func (store *MemoryOTPStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			store.mu.Lock()
			for userID, session := range store.sessions {
				if session.Expired(now) {
					delete(store.sessions, userID)
				}
			}
			store.mu.Unlock()
		case <-store.stop:
			return
		}
	}
}
