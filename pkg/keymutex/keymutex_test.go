// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package keymutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/presensya/pkg/keymutex"
)

/*
TestKeyMutex_SerializesSameKey hammers one key from many goroutines; the
unsynchronized counter only ends up exact if the lock actually excludes.
*/
func TestKeyMutex_SerializesSameKey(t *testing.T) {
	var km keymutex.KeyMutex
	const workers = 50
	const increments = 100

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				unlock := km.Lock("shared")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*increments, counter)
}

/*
TestKeyMutex_IndependentKeys verifies that holding one key does not block
another.
*/
func TestKeyMutex_IndependentKeys(t *testing.T) {
	var km keymutex.KeyMutex

	unlockA := km.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
}

/*
TestKeyMutex_Reentry verifies a key can be locked again after release.
*/
func TestKeyMutex_Reentry(t *testing.T) {
	var km keymutex.KeyMutex

	unlock := km.Lock("k")
	unlock()
	unlock = km.Lock("k")
	unlock()
}
