package shard

import (
	"errors"
	"sort"
	"sync"
)

const (
	// DefaultVNodesPerNode is the default number of virtual nodes per physical node.
	// A higher number improves distribution balance but increases ring size.
	DefaultVNodesPerNode = 100
)

var ErrEmptyRing = errors.New("hash ring is empty")

// Ring manages the consistent hashing ring.
//
// tokens is kept sorted and unique; every entry has an owner in owners.
type Ring struct {
	mu            sync.RWMutex
	tokens        []Token
	owners        map[Token]string
	nodes         map[string]Node
	vnodesPerNode int
}

// NewRing creates a new consistent hashing ring.
func NewRing(vnodesPerNode int) *Ring {
	if vnodesPerNode <= 0 {
		vnodesPerNode = DefaultVNodesPerNode
	}
	return &Ring{
		tokens:        make([]Token, 0),
		owners:        make(map[Token]string),
		nodes:         make(map[string]Node),
		vnodesPerNode: vnodesPerNode,
	}
}

// VNodesPerNode returns the number of virtual nodes placed for each physical node.
func (r *Ring) VNodesPerNode() int {
	return r.vnodesPerNode
}

// AddNode adds a physical node to the ring.
// Adding a node that is already present only refreshes its metadata.
func (r *Ring) AddNode(node Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[node.ID]; exists {
		r.nodes[node.ID] = node
		return
	}
	r.nodes[node.ID] = node

	for i := 0; i < r.vnodesPerNode; i++ {
		token := HashKey(vnodeKey(node.ID, i))
		if _, taken := r.owners[token]; !taken {
			r.insertTokenLocked(token)
		}
		// A colliding token is taken over by the newer node.
		r.owners[token] = node.ID
	}
}

// RemoveNode removes a physical node and all of its virtual nodes from the ring.
func (r *Ring) RemoveNode(nodeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[nodeID]; !exists {
		return
	}
	delete(r.nodes, nodeID)

	for i := 0; i < r.vnodesPerNode; i++ {
		token := HashKey(vnodeKey(nodeID, i))
		if owner, ok := r.owners[token]; !ok || owner != nodeID {
			continue
		}
		delete(r.owners, token)
		r.removeTokenLocked(token)
	}
}

// Locate finds the node that owns the given key.
func (r *Ring) Locate(key string) (Node, error) {
	return r.LocateToken(HashKey(key))
}

// LocateToken finds the node owning the first ring position >= token,
// wrapping around to the first position past the end of the ring.
func (r *Ring) LocateToken(token Token) (Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.tokens) == 0 {
		return Node{}, ErrEmptyRing
	}

	idx := r.searchLocked(token)
	if idx == len(r.tokens) {
		idx = 0
	}

	return r.nodes[r.owners[r.tokens[idx]]], nil
}

// Node returns the ring member with the given ID.
func (r *Ring) Node(nodeID string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[nodeID]
	return n, ok
}

// GetNodes returns all physical nodes in the ring ordered by ID.
func (r *Ring) GetNodes() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// VNodes returns a snapshot of the ring positions in ascending order.
func (r *Ring) VNodes() []VNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vnodes := make([]VNode, len(r.tokens))
	for i, t := range r.tokens {
		vnodes[i] = VNode{Token: t, NodeID: r.owners[t]}
	}
	return vnodes
}

// searchLocked returns the index of the first token >= target.
func (r *Ring) searchLocked(target Token) int {
	return sort.Search(len(r.tokens), func(i int) bool {
		return !r.tokens[i].Less(target)
	})
}

func (r *Ring) insertTokenLocked(token Token) {
	idx := r.searchLocked(token)
	r.tokens = append(r.tokens, Token{})
	copy(r.tokens[idx+1:], r.tokens[idx:])
	r.tokens[idx] = token
}

func (r *Ring) removeTokenLocked(token Token) {
	idx := r.searchLocked(token)
	if idx == len(r.tokens) || r.tokens[idx] != token {
		return
	}
	r.tokens = append(r.tokens[:idx], r.tokens[idx+1:]...)
}
