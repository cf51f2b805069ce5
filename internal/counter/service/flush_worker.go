package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

// Start launches the periodic flush loop. It is a no-op after the first call.
func (s *CounterStore) Start() {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.loopCancel = cancel
		s.loopDone = make(chan struct{})
		go s.runFlushLoop(ctx, s.flushInterval())
	})
}

func (s *CounterStore) runFlushLoop(ctx context.Context, interval time.Duration) {
	defer close(s.loopDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Infow("Periodic flush started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.periodicFlush()
		}
	}
}

func (s *CounterStore) periodicFlush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.work.Add(1)
	s.mu.Unlock()
	defer s.work.Done()

	// A running flush is allowed to finish even when shutdown begins.
	ctx := context.Background()
	if timeout := s.flushTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if _, err := s.flush(ctx); err != nil {
		logger.Warnw("Periodic flush incomplete", "error", err.Error())
	}

	s.mu.Lock()
	removed := s.sweepExpiredLocked(s.now())
	s.mu.Unlock()
	if removed > 0 {
		logger.Debugw("Expired cache entries swept", "count", removed)
	}
}

// Shutdown rejects new calls, stops the periodic flush, waits for it and any
// in-flight flush or cold read, then drains the buffer one last time. It
// reports an error if deltas remain undrained.
func (s *CounterStore) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.shutdownErr = s.shutdown(ctx)
	})
	return s.shutdownErr
}

func (s *CounterStore) shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if s.loopCancel != nil {
		s.loopCancel()
		select {
		case <-s.loopDone:
		case <-ctx.Done():
			return fmt.Errorf("waiting for periodic flush: %w", ctx.Err())
		}
	}

	idle := make(chan struct{})
	go func() {
		s.work.Wait()
		close(idle)
	}()
	select {
	case <-idle:
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight flushes: %w", ctx.Err())
	}

	result, err := s.flush(ctx)
	if err != nil {
		logger.Errorw("Final flush left deltas undrained", "keys", result.Keys, "rebuffered", result.Rebuffered, "error", err.Error())
		return fmt.Errorf("final flush: %w", err)
	}
	logger.Infow("Counter store drained", "keys", result.Keys)
	return nil
}
