package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// Flush applies every buffered delta to the backend.
func (s *CounterStore) Flush(ctx context.Context) (port.FlushResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return port.FlushResult{}, port.ErrStoreClosed
	}
	s.work.Add(1)
	s.mu.Unlock()
	defer s.work.Done()

	return s.flush(ctx)
}

// flush swaps the live buffer for an empty one and applies the snapshot.
// Increments arriving meanwhile land in the new buffer. A key whose delta
// cannot be applied is added back to the live buffer for the next cycle;
// one failing key never stops the others. Flushes run one at a time, so a
// caller returns only after every delta swapped out before it was settled.
func (s *CounterStore) flush(ctx context.Context) (port.FlushResult, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return port.FlushResult{}, nil
	}
	batch := s.buffer
	s.buffer = make(map[string]int64)
	for key, delta := range batch {
		s.inflight[key] += delta
		s.gens[key]++
	}
	s.mu.Unlock()

	s.flushes.Add(1)
	result := port.FlushResult{Keys: len(batch)}

	var (
		mu       sync.Mutex
		firstErr error
	)
	record := func(key string, delta int64, err error) {
		s.settle(key, delta, err)

		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			result.Applied++
			return
		}
		result.Rebuffered++
		if firstErr == nil {
			firstErr = err
		}
		logger.Debugw("Delta re-buffered", "key", key, "delta", delta, "error", err.Error())
	}

	workerPool := resilience.NewWorkerPool(s.flushWorkers(), len(batch))
	for key, delta := range batch {
		err := workerPool.Submit(ctx, func() {
			record(key, delta, s.apply(ctx, key, delta))
		})
		if err != nil {
			record(key, delta, err)
		}
	}
	workerPool.Drain()

	s.keysFlushed.Add(uint64(result.Applied))
	s.keysRebuffered.Add(uint64(result.Rebuffered))

	if firstErr != nil {
		logger.Warnw("Flush incomplete", "keys", result.Keys, "applied", result.Applied, "rebuffered", result.Rebuffered, "error", firstErr.Error())
		return result, fmt.Errorf("flush re-buffered %d of %d keys: %w", result.Rebuffered, result.Keys, firstErr)
	}
	logger.Debugw("Flush completed", "keys", result.Keys)
	return result, nil
}

// apply sends one delta to the owning node. A panic is returned as an error
// so the delta is re-buffered instead of dropped.
func (s *CounterStore) apply(ctx context.Context, key string, delta int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("incrby %s panicked: %v", key, r)
		}
	}()
	_, _, err = s.router.Increment(ctx, key, delta)
	return err
}

// settle moves a delta out of flight: applied deltas invalidate the cached
// value, failed ones go back into the live buffer.
func (s *CounterStore) settle(key string, delta int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rest := s.inflight[key] - delta; rest != 0 {
		s.inflight[key] = rest
	} else {
		delete(s.inflight, key)
	}

	if err != nil {
		s.buffer[key] += delta
		return
	}
	delete(s.cache, key)
	s.gens[key]++
}
