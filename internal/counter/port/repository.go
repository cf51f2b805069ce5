package port

import (
	"context"

	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
)

//go:generate mockgen -destination=../service/mocks/node_router_mock.go -package=mocks -source=repository.go

// NodeBackend is the key-value contract consumed from a single backend node.
type NodeBackend interface {
	// IncrBy adds amount to key and returns the new value.
	IncrBy(ctx context.Context, key string, amount int64) (int64, error)

	// Get returns the value of key. Absent keys report found=false and no error.
	Get(ctx context.Context, key string) (value int64, found bool, err error)

	Ping(ctx context.Context) error
	Close() error
}

// NodeRouter routes counter operations to the backend node owning each key.
// Every successful call reports the label of the node that served it.
type NodeRouter interface {
	Increment(ctx context.Context, key string, amount int64) (value int64, nodeLabel string, err error)
	Get(ctx context.Context, key string) (value int64, found bool, nodeLabel string, err error)

	// AddNode provisions a connection for node (reusing an existing one) and places it on the ring.
	AddNode(ctx context.Context, node shard.Node) error

	// RemoveNode takes the node off the ring. Its keys are not migrated.
	RemoveNode(nodeID string)

	Nodes() []shard.Node
	Ping(ctx context.Context) map[string]error
	Close() error
}
