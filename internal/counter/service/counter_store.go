package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/config"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	"github.com/anthanhphan/gosdk/logger"
)

// CounterStore buffers increments and caches reads in front of the node router.
//
// All mutable state is guarded by mu. Backend calls are never made while
// holding it.
type CounterStore struct {
	cfg    *config.Config
	router port.NodeRouter
	now    func() time.Time

	// flushMu is held exclusively for a whole flush and shared by cold
	// reads while they read the backend, so a backend read never overlaps
	// deltas that are swapped out but not yet settled.
	flushMu sync.RWMutex

	mu sync.Mutex
	// buffer holds deltas not yet handed to a flush.
	buffer map[string]int64
	// inflight holds deltas swapped out by a flush and not yet settled.
	inflight map[string]int64
	cache    map[string]cacheEntry
	// gens is bumped whenever a flush touches a key; a cold read only caches
	// its backend value if the generation did not move while it was reading.
	gens         map[string]uint64
	pendingReads map[string]int
	closed       bool
	work         sync.WaitGroup

	loopCancel   context.CancelFunc
	loopDone     chan struct{}
	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownErr  error

	cacheHits      atomic.Uint64
	cacheMisses    atomic.Uint64
	flushes        atomic.Uint64
	keysFlushed    atomic.Uint64
	keysRebuffered atomic.Uint64
}

// Ensure CounterStore implements port.CounterService.
var _ port.CounterService = (*CounterStore)(nil)

// NewCounterStore builds the store. Call Start to enable periodic flushing.
func NewCounterStore(cfg *config.Config, router port.NodeRouter) *CounterStore {
	return &CounterStore{
		cfg:          cfg,
		router:       router,
		now:          time.Now,
		buffer:       make(map[string]int64),
		inflight:     make(map[string]int64),
		cache:        make(map[string]cacheEntry),
		gens:         make(map[string]uint64),
		pendingReads: make(map[string]int),
	}
}

// Increment buffers one visit for key.
func (s *CounterStore) Increment(ctx context.Context, key string) error {
	return s.IncrementBy(ctx, key, 1)
}

// IncrementBy buffers amount visits for key. It returns without touching the backend.
func (s *CounterStore) IncrementBy(ctx context.Context, key string, amount int64) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %d", port.ErrInvalidAmount, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return port.ErrStoreClosed
	}
	s.buffer[key] += amount
	return nil
}

// Read returns cached + pending visits when the cache entry is fresh, and
// otherwise flushes everything, reads the owning node and refreshes the cache.
func (s *CounterStore) Read(ctx context.Context, key string) (port.ReadResult, error) {
	if err := validateKey(key); err != nil {
		return port.ReadResult{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return port.ReadResult{}, port.ErrStoreClosed
	}
	if entry, ok := s.cache[key]; ok {
		if !entry.expired(s.now()) {
			visits := entry.count + s.inflight[key] + s.buffer[key]
			s.mu.Unlock()
			s.cacheHits.Add(1)
			return port.ReadResult{Visits: visits, ServedVia: port.ServedInMemory}, nil
		}
		delete(s.cache, key)
	}
	s.work.Add(1)
	s.mu.Unlock()
	defer s.work.Done()

	s.cacheMisses.Add(1)
	if _, err := s.flush(ctx); err != nil {
		logger.Warnw("Flush before cold read incomplete", "key", key, "error", err.Error())
	}

	// Wait out any flush that started after ours; no delta is in flight
	// until the result below is computed.
	s.flushMu.RLock()
	defer s.flushMu.RUnlock()

	s.mu.Lock()
	gen := s.gens[key]
	s.pendingReads[key]++
	s.mu.Unlock()

	value, _, nodeLabel, err := s.router.Get(ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseReadLocked(key)
	if err != nil {
		return port.ReadResult{}, fmt.Errorf("read %s: %w", key, err)
	}

	visits := value + s.buffer[key]
	if s.gens[key] == gen && s.inflight[key] == 0 {
		s.cache[key] = cacheEntry{count: value, expiresAt: s.now().Add(s.cacheTTL())}
	}
	logger.Debugw("Counter read from backend", "key", key, "node", nodeLabel, "value", value)

	return port.ReadResult{Visits: visits, ServedVia: port.ServedBackend}, nil
}

func (s *CounterStore) releaseReadLocked(key string) {
	if s.pendingReads[key] <= 1 {
		delete(s.pendingReads, key)
		return
	}
	s.pendingReads[key]--
}

// AddNode registers a backend node. Existing data is not migrated.
func (s *CounterStore) AddNode(ctx context.Context, node shard.Node) error {
	return s.router.AddNode(ctx, node)
}

// RemoveNode takes a backend node off the ring. Existing data is not migrated.
func (s *CounterStore) RemoveNode(ctx context.Context, nodeID string) error {
	if !s.hasNode(nodeID) {
		return fmt.Errorf("%w: %q", port.ErrNodeNotFound, nodeID)
	}
	s.router.RemoveNode(nodeID)
	return nil
}

func (s *CounterStore) hasNode(nodeID string) bool {
	for _, n := range s.router.Nodes() {
		if n.ID == nodeID {
			return true
		}
	}
	return false
}

func (s *CounterStore) Nodes() []shard.Node {
	return s.router.Nodes()
}

// Health pings every node on the ring.
func (s *CounterStore) Health(ctx context.Context) map[string]error {
	return s.router.Ping(ctx)
}

func (s *CounterStore) Stats() port.CounterStats {
	s.mu.Lock()
	pending := len(s.buffer)
	cached := len(s.cache)
	s.mu.Unlock()

	return port.CounterStats{
		CacheHits:      s.cacheHits.Load(),
		CacheMisses:    s.cacheMisses.Load(),
		Flushes:        s.flushes.Load(),
		KeysFlushed:    s.keysFlushed.Load(),
		KeysRebuffered: s.keysRebuffered.Load(),
		PendingKeys:    pending,
		CachedKeys:     cached,
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", port.ErrInvalidKey)
	}
	return nil
}

// cacheTTL returns the read cache TTL with safe default.
func (s *CounterStore) cacheTTL() time.Duration {
	if s.cfg.Counter.CacheTTLMS > 0 {
		return time.Duration(s.cfg.Counter.CacheTTLMS) * time.Millisecond
	}
	return 5 * time.Second
}

// flushInterval returns the periodic flush interval with safe default.
func (s *CounterStore) flushInterval() time.Duration {
	if s.cfg.Counter.FlushIntervalMS > 0 {
		return time.Duration(s.cfg.Counter.FlushIntervalMS) * time.Millisecond
	}
	return 30 * time.Second
}

// flushWorkers returns the flush fan-out with safe default.
func (s *CounterStore) flushWorkers() int {
	if s.cfg.Counter.FlushWorkers > 0 {
		return s.cfg.Counter.FlushWorkers
	}
	return 4
}

// flushTimeout bounds a periodic flush. Zero means no bound.
func (s *CounterStore) flushTimeout() time.Duration {
	if s.cfg.Counter.FlushTimeoutMS > 0 {
		return time.Duration(s.cfg.Counter.FlushTimeoutMS) * time.Millisecond
	}
	return 0
}
