package redis_node

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/resilience"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	"github.com/anthanhphan/gosdk/logger"
)

// RouterConfig tunes routing and the per-node failure handling.
type RouterConfig struct {
	VNodesPerNode int
	Retry         resilience.RetryPolicy
	Breaker       resilience.CircuitBreakerConfig
}

// Router implements port.NodeRouter over a consistent hash ring.
// It owns exactly one connection handle per node, keyed by node ID.
type Router struct {
	ring    *shard.Ring
	factory BackendFactory
	retry   resilience.RetryPolicy
	breaker resilience.CircuitBreakerConfig

	mu       sync.RWMutex
	backends map[string]port.NodeBackend
	breakers map[string]*resilience.CircuitBreaker
}

// Ensure Router implements port.NodeRouter
var _ port.NodeRouter = (*Router)(nil)

// route is the resolved owner of a key.
type route struct {
	node    shard.Node
	backend port.NodeBackend
	breaker *resilience.CircuitBreaker
}

// NewRouter opens a handle for every node and places the nodes on the ring.
func NewRouter(ctx context.Context, nodes []shard.Node, cfg RouterConfig, factory BackendFactory) (*Router, error) {
	if factory == nil {
		return nil, errors.New("backend factory is required")
	}

	retry := cfg.Retry
	retry.Retryable = IsTransient

	breaker := cfg.Breaker
	breaker.IsFailure = IsTransient
	if breaker.OnStateChange == nil {
		breaker.OnStateChange = func(name string, from, to resilience.CircuitBreakerState) {
			logger.Warnw("Node circuit state changed", "node", name, "from", string(from), "to", string(to))
		}
	}

	r := &Router{
		ring:     shard.NewRing(cfg.VNodesPerNode),
		factory:  factory,
		retry:    retry,
		breaker:  breaker,
		backends: make(map[string]port.NodeBackend),
		breakers: make(map[string]*resilience.CircuitBreaker),
	}

	for _, node := range nodes {
		if err := r.AddNode(ctx, node); err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	return r, nil
}

// Ring exposes the routing ring.
func (r *Router) Ring() *shard.Ring {
	return r.ring
}

// AddNode provisions a connection for node and adds it to the ring.
func (r *Router) AddNode(ctx context.Context, node shard.Node) error {
	if node.ID == "" {
		node.ID = node.Addr
	}
	if node.ID == "" {
		return errors.New("node id and address are empty")
	}

	r.mu.Lock()
	if _, ok := r.backends[node.ID]; !ok {
		backend, err := r.factory(node)
		if err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to open connection to %s: %w", node.ID, err)
		}
		cbCfg := r.breaker
		cbCfg.Name = nodeName(node)
		r.backends[node.ID] = backend
		r.breakers[node.ID] = resilience.NewCircuitBreaker(cbCfg)
	}
	r.mu.Unlock()

	r.ring.AddNode(node)
	logger.Infow("Node added to ring", "id", node.ID, "label", node.Label, "vnodes", r.ring.VNodesPerNode())
	return nil
}

// RemoveNode takes a node off the ring. Its handle stays open until Close so
// that calls already routed to it can finish.
func (r *Router) RemoveNode(nodeID string) {
	r.ring.RemoveNode(nodeID)
	logger.Infow("Node removed from ring", "id", nodeID)
}

func (r *Router) Nodes() []shard.Node {
	return r.ring.GetNodes()
}

// Route resolves the backend handle and label of the node owning key.
func (r *Router) Route(key string) (port.NodeBackend, string, error) {
	rt, err := r.route(key)
	if err != nil {
		return nil, "", err
	}
	return rt.backend, nodeName(rt.node), nil
}

func (r *Router) route(key string) (route, error) {
	node, err := r.ring.Locate(key)
	if err != nil {
		return route{}, err
	}

	r.mu.RLock()
	backend, ok := r.backends[node.ID]
	breaker := r.breakers[node.ID]
	r.mu.RUnlock()
	if !ok {
		return route{}, &port.UnknownNodeError{NodeID: node.ID}
	}

	return route{node: node, backend: backend, breaker: breaker}, nil
}

// Increment adds amount to key on its owning node.
func (r *Router) Increment(ctx context.Context, key string, amount int64) (int64, string, error) {
	var value int64
	label, err := r.do(ctx, key, "incrby", func(ctx context.Context, b port.NodeBackend) error {
		v, err := b.IncrBy(ctx, key, amount)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	return value, label, err
}

// Get reads key from its owning node.
func (r *Router) Get(ctx context.Context, key string) (int64, bool, string, error) {
	var (
		value int64
		found bool
	)
	label, err := r.do(ctx, key, "get", func(ctx context.Context, b port.NodeBackend) error {
		v, ok, err := b.Get(ctx, key)
		if err != nil {
			return err
		}
		value, found = v, ok
		return nil
	})
	return value, found, label, err
}

func (r *Router) do(ctx context.Context, key string, op string, fn func(context.Context, port.NodeBackend) error) (string, error) {
	rt, err := r.route(key)
	if err != nil {
		return "", err
	}
	label := nodeName(rt.node)

	policy := r.retry
	policy.OnRetry = func(attempt int, err error) {
		logger.Debugw("Retrying backend call", "op", op, "key", key, "node", label, "attempt", attempt, "error", err.Error())
	}

	err = policy.Do(ctx, func(ctx context.Context) error {
		return rt.breaker.Execute(ctx, func(ctx context.Context) error {
			return fn(ctx, rt.backend)
		})
	})
	if err == nil {
		return label, nil
	}

	var exhausted *resilience.RetryExhaustedError
	if errors.As(err, &exhausted) {
		logger.Warnw("Backend unavailable", "op", op, "key", key, "node", label, "attempts", exhausted.Attempts, "error", exhausted.Err.Error())
		return label, &port.BackendUnavailableError{Node: label, Attempts: exhausted.Attempts, Err: exhausted.Err}
	}
	return label, fmt.Errorf("%s %s on %s: %w", op, key, label, err)
}

// Ping checks every ring member and returns the outcome keyed by node ID.
func (r *Router) Ping(ctx context.Context) map[string]error {
	nodes := r.ring.GetNodes()
	results := make(map[string]error, len(nodes))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, node := range nodes {
		r.mu.RLock()
		backend, ok := r.backends[node.ID]
		r.mu.RUnlock()
		if !ok {
			mu.Lock()
			results[node.ID] = &port.UnknownNodeError{NodeID: node.ID}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(id string, b port.NodeBackend) {
			defer wg.Done()
			err := b.Ping(ctx)
			mu.Lock()
			results[id] = err
			mu.Unlock()
		}(node.ID, backend)
	}
	wg.Wait()

	return results
}

// Close releases every connection handle.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for id, b := range r.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", id, err))
		}
		delete(r.backends, id)
		delete(r.breakers, id)
	}
	return errors.Join(errs...)
}

func nodeName(n shard.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}
