package redis_node

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/resilience"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	"github.com/redis/go-redis/v9"
)

// BackendOptions holds the connection settings shared by every node.
type BackendOptions struct {
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// BackendFactory opens the connection handle for a node.
type BackendFactory func(node shard.Node) (port.NodeBackend, error)

// NewRedisBackendFactory returns a factory dialing one go-redis client per node.
func NewRedisBackendFactory(opts BackendOptions) BackendFactory {
	return func(node shard.Node) (port.NodeBackend, error) {
		if node.Addr == "" {
			return nil, errors.New("node address is empty")
		}
		client := redis.NewClient(&redis.Options{
			Addr:         node.Addr,
			Password:     opts.Password,
			DB:           opts.DB,
			DialTimeout:  opts.DialTimeout,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			PoolSize:     opts.PoolSize,
			// Retries are owned by the router's policy.
			MaxRetries: -1,
		})
		return NewRedisBackend(client), nil
	}
}

// RedisBackend implements port.NodeBackend on a go-redis client.
type RedisBackend struct {
	client *redis.Client
}

// Ensure RedisBackend implements port.NodeBackend
var _ port.NodeBackend = (*RedisBackend)(nil)

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) IncrBy(ctx context.Context, key string, amount int64) (int64, error) {
	return b.client.IncrBy(ctx, key, amount).Result()
}

func (b *RedisBackend) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := b.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// IsTransient reports whether err is a connectivity failure worth retrying.
// Server replies (WRONGTYPE, NOAUTH, ...) and malformed values are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return true
	}

	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return false
	}

	if errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
