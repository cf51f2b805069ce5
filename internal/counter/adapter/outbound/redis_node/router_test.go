package redis_node

import (
	"context"
	"errors"
	"net"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/resilience"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	values  map[string]int64
	calls   int
	closed  bool
	incrFn  func(call int) error
	getFn   func(call int) error
	pingErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{values: make(map[string]int64)}
}

func (f *fakeBackend) IncrBy(ctx context.Context, key string, amount int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.incrFn != nil {
		if err := f.incrFn(f.calls); err != nil {
			return 0, err
		}
	}
	f.values[key] += amount
	return f.values[key], nil
}

func (f *fakeBackend) Get(ctx context.Context, key string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getFn != nil {
		if err := f.getFn(f.calls); err != nil {
			return 0, false, err
		}
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeBackend) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// replyError mimics a Redis server error reply.
type replyError string

func (e replyError) Error() string { return string(e) }
func (replyError) RedisError()     {}

var connRefused = &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

func testRouter(t *testing.T, backends map[string]*fakeBackend, retry resilience.RetryPolicy) (*Router, *int) {
	t.Helper()

	opened := 0
	factory := func(node shard.Node) (port.NodeBackend, error) {
		opened++
		b, ok := backends[node.ID]
		if !ok {
			return nil, errors.New("no fake for " + node.ID)
		}
		return b, nil
	}

	nodes := make([]shard.Node, 0, len(backends))
	for id := range backends {
		nodes = append(nodes, shard.Node{ID: id, Addr: id, Label: "label-" + id})
	}

	router, err := NewRouter(context.Background(), nodes, RouterConfig{
		VNodesPerNode: 100,
		Retry:         retry,
		Breaker:       resilience.CircuitBreakerConfig{FailureThreshold: 100, OpenTimeout: time.Second},
	}, factory)
	require.NoError(t, err)
	return router, &opened
}

func fastRetry() resilience.RetryPolicy {
	return resilience.RetryPolicy{MaxAttempts: 3, Backoff: 10 * time.Millisecond}
}

func TestRouter_RouteFollowsRing(t *testing.T) {
	router, _ := testRouter(t, map[string]*fakeBackend{
		"a:6379": newFakeBackend(),
		"b:6379": newFakeBackend(),
	}, fastRetry())

	for _, key := range []string{"page-1", "page-2", "page-3", "home"} {
		owner, err := router.Ring().Locate(key)
		require.NoError(t, err)

		_, label, err := router.Route(key)
		require.NoError(t, err)
		assert.Equal(t, "label-"+owner.ID, label)

		_, incLabel, err := router.Increment(context.Background(), key, 1)
		require.NoError(t, err)
		assert.Equal(t, label, incLabel)
	}
}

func TestRouter_IncrementAndGet(t *testing.T) {
	a := newFakeBackend()
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a}, fastRetry())
	ctx := context.Background()

	_, found, label, err := router.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "label-a:6379", label)

	v, _, err := router.Increment(ctx, "page-1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, found, _, err = router.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(5), v)
}

func TestRouter_EmptyRing(t *testing.T) {
	router, _ := testRouter(t, map[string]*fakeBackend{}, fastRetry())

	_, _, err := router.Increment(context.Background(), "page-1", 1)
	assert.ErrorIs(t, err, shard.ErrEmptyRing)

	_, _, _, err = router.Get(context.Background(), "page-1")
	assert.ErrorIs(t, err, shard.ErrEmptyRing)
}

func TestRouter_UnknownNodeNotRetried(t *testing.T) {
	a := newFakeBackend()
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a}, fastRetry())

	router.RemoveNode("a:6379")
	router.Ring().AddNode(shard.Node{ID: "ghost:6379", Addr: "ghost:6379"})

	start := time.Now()
	_, _, err := router.Increment(context.Background(), "page-1", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrUnknownNode)
	assert.Less(t, time.Since(start), 10*time.Millisecond)

	var unknown *port.UnknownNodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ghost:6379", unknown.NodeID)
	assert.Equal(t, 0, a.callCount())
}

func TestRouter_RetriesTransientFailures(t *testing.T) {
	a := newFakeBackend()
	a.incrFn = func(call int) error {
		if call < 3 {
			return connRefused
		}
		return nil
	}
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a}, fastRetry())

	v, label, err := router.Increment(context.Background(), "page-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, "label-a:6379", label)
	assert.Equal(t, 3, a.callCount())
}

func TestRouter_BackendUnavailableAfterDefaultBudget(t *testing.T) {
	a := newFakeBackend()
	a.getFn = func(int) error { return connRefused }
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a}, resilience.DefaultRetryPolicy())

	start := time.Now()
	_, _, label, err := router.Get(context.Background(), "page-1")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrBackendUnavailable)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Equal(t, "label-a:6379", label)
	assert.Equal(t, 3, a.callCount())
	assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)

	var unavailable *port.BackendUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, 3, unavailable.Attempts)
	assert.Equal(t, "label-a:6379", unavailable.Node)
}

func TestRouter_NonTransientErrorAbortsImmediately(t *testing.T) {
	a := newFakeBackend()
	a.incrFn = func(int) error { return replyError("WRONGTYPE Operation against a key holding the wrong kind of value") }
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a}, fastRetry())

	_, _, err := router.Increment(context.Background(), "page-1", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, port.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "WRONGTYPE")
	assert.Equal(t, 1, a.callCount())
}

func TestRouter_OpenCircuitFailsFast(t *testing.T) {
	a := newFakeBackend()
	a.incrFn = func(int) error { return connRefused }

	router, err := NewRouter(context.Background(),
		[]shard.Node{{ID: "a:6379", Addr: "a:6379"}},
		RouterConfig{
			Retry:   fastRetry(),
			Breaker: resilience.CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute},
		},
		func(shard.Node) (port.NodeBackend, error) { return a, nil },
	)
	require.NoError(t, err)

	_, label, err := router.Increment(context.Background(), "page-1", 1)
	assert.ErrorIs(t, err, port.ErrBackendUnavailable)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, "a:6379", label)
	assert.Equal(t, 2, a.callCount())

	_, _, err = router.Increment(context.Background(), "page-1", 1)
	assert.ErrorIs(t, err, port.ErrBackendUnavailable)
	assert.Equal(t, 2, a.callCount())
}

func TestRouter_AddNodeReusesHandle(t *testing.T) {
	a := newFakeBackend()
	b := newFakeBackend()
	router, opened := testRouter(t, map[string]*fakeBackend{"a:6379": a}, fastRetry())
	assert.Equal(t, 1, *opened)

	router.factory = func(node shard.Node) (port.NodeBackend, error) {
		*opened++
		return b, nil
	}

	ctx := context.Background()
	require.NoError(t, router.AddNode(ctx, shard.Node{Addr: "b:6379"}))
	require.NoError(t, router.AddNode(ctx, shard.Node{ID: "b:6379", Addr: "b:6379"}))
	assert.Equal(t, 2, *opened)
	assert.Len(t, router.Nodes(), 2)

	router.RemoveNode("b:6379")
	require.NoError(t, router.AddNode(ctx, shard.Node{ID: "b:6379", Addr: "b:6379"}))
	assert.Equal(t, 2, *opened)
}

func TestRouter_AddNodeFactoryError(t *testing.T) {
	_, err := NewRouter(context.Background(),
		[]shard.Node{{ID: "a:6379", Addr: "a:6379"}},
		RouterConfig{Retry: fastRetry()},
		func(shard.Node) (port.NodeBackend, error) { return nil, errors.New("dial failed") },
	)
	assert.ErrorContains(t, err, "dial failed")
}

func TestRouter_PingAndClose(t *testing.T) {
	a := newFakeBackend()
	b := newFakeBackend()
	b.pingErr = connRefused
	router, _ := testRouter(t, map[string]*fakeBackend{"a:6379": a, "b:6379": b}, fastRetry())

	results := router.Ping(context.Background())
	assert.Len(t, results, 2)
	assert.NoError(t, results["a:6379"])
	assert.ErrorIs(t, results["b:6379"], syscall.ECONNREFUSED)

	require.NoError(t, router.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
