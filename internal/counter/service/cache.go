package service

import "time"

// cacheEntry is the last backend-confirmed value of a key. It never includes
// deltas that were buffered or in flight when it was read.
type cacheEntry struct {
	count     int64
	expiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// sweepExpiredLocked drops stale cache entries and generations no read is waiting on.
func (s *CounterStore) sweepExpiredLocked(now time.Time) int {
	removed := 0
	for key, entry := range s.cache {
		if entry.expired(now) {
			delete(s.cache, key)
			removed++
		}
	}
	for key := range s.gens {
		if s.pendingReads[key] == 0 && s.inflight[key] == 0 {
			delete(s.gens, key)
		}
	}
	return removed
}
