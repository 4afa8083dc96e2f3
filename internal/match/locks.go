package match

import "sync"

// matchLocks serializes mutating scoring operations per match so a
// double-click or retried request cannot interleave with the original.
// Reads go straight to the database and never take a lock.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock returns the per-match mutex locked. If the entry was released while
// the caller waited, the acquired mutex is stale; retry against the current
// one so no two callers ever hold different mutexes for the same match.
func (ml *matchLocks) lock(matchID uint) *sync.Mutex {
	for {
		ml.mu.Lock()
		l, ok := ml.locks[matchID]
		if !ok {
			l = &sync.Mutex{}
			ml.locks[matchID] = l
		}
		ml.mu.Unlock()

		l.Lock()

		ml.mu.Lock()
		current := ml.locks[matchID]
		ml.mu.Unlock()
		if current == l {
			return l
		}
		l.Unlock()
	}
}

// release drops the per-match entry once a match reaches a terminal state,
// keeping the map from growing without bound. Callers must unlock the mutex
// before releasing it.
func (ml *matchLocks) release(matchID uint) {
	ml.mu.Lock()
	delete(ml.locks, matchID)
	ml.mu.Unlock()
}
