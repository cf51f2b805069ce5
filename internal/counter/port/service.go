package port

import (
	"context"

	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
)

//go:generate mockgen -destination=../service/mocks/counter_service_mock.go -package=mocks -source=service.go

// ServedVia tells where the base count of a read came from.
type ServedVia string

const (
	ServedInMemory ServedVia = "in_memory"
	ServedBackend  ServedVia = "backend"
)

// ReadResult is the visible value of a counter.
type ReadResult struct {
	Visits    int64     `json:"visits"`
	ServedVia ServedVia `json:"served_via"`
}

// FlushResult summarises one flush cycle.
type FlushResult struct {
	Keys       int `json:"keys"`
	Applied    int `json:"applied"`
	Rebuffered int `json:"rebuffered"`
}

// CounterStats is a snapshot of store activity.
type CounterStats struct {
	CacheHits      uint64 `json:"cache_hits"`
	CacheMisses    uint64 `json:"cache_misses"`
	Flushes        uint64 `json:"flushes"`
	KeysFlushed    uint64 `json:"keys_flushed"`
	KeysRebuffered uint64 `json:"keys_rebuffered"`
	PendingKeys    int    `json:"pending_keys"`
	CachedKeys     int    `json:"cached_keys"`
}

// CounterService defines the counter operations exposed to request handlers.
type CounterService interface {
	// Increment buffers a single visit for key. It never touches the backend.
	Increment(ctx context.Context, key string) error

	// IncrementBy buffers amount visits for key.
	IncrementBy(ctx context.Context, key string, amount int64) error

	// Read returns the visible count of key.
	Read(ctx context.Context, key string) (ReadResult, error)

	// Flush applies every buffered delta to the backend.
	Flush(ctx context.Context) (FlushResult, error)

	AddNode(ctx context.Context, node shard.Node) error
	RemoveNode(ctx context.Context, nodeID string) error
	Nodes() []shard.Node
	Health(ctx context.Context) map[string]error
	Stats() CounterStats
}
