package match

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLocksSerializeSameMatch(t *testing.T) {
	ml := newMatchLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := ml.lock(7)
			counter++
			l.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestMatchLocksIndependentAcrossMatches(t *testing.T) {
	ml := newMatchLocks()

	l1 := ml.lock(1)
	defer l1.Unlock()

	// A different match must not block behind match 1.
	done := make(chan struct{})
	go func() {
		l2 := ml.lock(2)
		l2.Unlock()
		close(done)
	}()
	<-done
}

func TestMatchLocksReleaseDropsEntry(t *testing.T) {
	ml := newMatchLocks()

	l := ml.lock(3)
	l.Unlock()
	assert.Len(t, ml.locks, 1)

	ml.release(3)
	assert.Len(t, ml.locks, 0)
}

func TestMatchLocksLockAfterReleaseGetsFreshMutex(t *testing.T) {
	ml := newMatchLocks()

	l1 := ml.lock(4)
	l1.Unlock()
	ml.release(4)

	l2 := ml.lock(4)
	defer l2.Unlock()
	assert.NotSame(t, l1, l2)
	assert.Same(t, ml.locks[4], l2)
}

func TestMatchLocksSerializeAcrossRelease(t *testing.T) {
	ml := newMatchLocks()

	// Each goroutine drops the entry after unlocking, so waiters keep
	// landing on stale mutexes and must retry onto the current one.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := ml.lock(9)
			counter++
			l.Unlock()
			ml.release(9)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
