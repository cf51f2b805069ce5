package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
)

// NormalizeAddr turns "redis://host:port[/db]" or "host:port" into "host:port".
func NormalizeAddr(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	for _, scheme := range []string{"redis://", "rediss://"} {
		addr = strings.TrimPrefix(addr, scheme)
	}
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		addr = addr[i+1:]
	}
	if i := strings.Index(addr, "/"); i >= 0 {
		addr = addr[:i]
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid node address %q: %w", raw, err)
	}
	if host == "" {
		return "", fmt.Errorf("invalid node address %q: empty host", raw)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return "", fmt.Errorf("invalid node address %q: bad port %q", raw, port)
	}
	return net.JoinHostPort(host, port), nil
}

// DefaultLabel derives a node label from the port of its address.
func DefaultLabel(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return addr
	}
	return "redis_" + port
}

// ShardNode converts the configured node into a ring member keyed by its address.
func (n NodeConfig) ShardNode() (shard.Node, error) {
	addr, err := NormalizeAddr(n.Addr)
	if err != nil {
		return shard.Node{}, err
	}
	label := strings.TrimSpace(n.Label)
	if label == "" {
		label = DefaultLabel(addr)
	}
	return shard.Node{ID: addr, Addr: addr, Label: label}, nil
}

// ShardNodes converts every configured node, rejecting duplicates.
func (b BackendConfig) ShardNodes() ([]shard.Node, error) {
	nodes := make([]shard.Node, 0, len(b.Nodes))
	seen := make(map[string]struct{}, len(b.Nodes))
	for _, nc := range b.Nodes {
		node, err := nc.ShardNode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[node.ID]; dup {
			return nil, fmt.Errorf("duplicate backend node %s", node.ID)
		}
		seen[node.ID] = struct{}{}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
