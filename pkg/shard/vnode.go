package shard

import (
	"fmt"
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Node represents a physical backend node on the ring.
// ID is the node address and is what virtual node keys are derived from.
type Node struct {
	ID    string `json:"id"`
	Addr  string `json:"addr"`
	Label string `json:"label"`
}

func (n Node) String() string {
	if n.Label == "" {
		return n.ID
	}
	return fmt.Sprintf("%s(%s)", n.Label, n.ID)
}

// Token is a 128-bit position on the ring.
type Token struct {
	Hi uint64
	Lo uint64
}

// Less reports whether t sorts before o.
func (t Token) Less(o Token) bool {
	if t.Hi != o.Hi {
		return t.Hi < o.Hi
	}
	return t.Lo < o.Lo
}

func (t Token) String() string {
	return fmt.Sprintf("%016x%016x", t.Hi, t.Lo)
}

// HashKey places an arbitrary key on the ring.
func HashKey(key string) Token {
	hi, lo := murmur3.Sum128([]byte(key))
	return Token{Hi: hi, Lo: lo}
}

// vnodeKey is the synthetic key hashed for the i-th virtual node of a node.
func vnodeKey(nodeID string, i int) string {
	return nodeID + "_" + strconv.Itoa(i)
}

// VNode represents a virtual node on the ring.
// It points to a physical Node.
type VNode struct {
	Token  Token
	NodeID string
}
