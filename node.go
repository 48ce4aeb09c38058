package etc

import (
	"fmt"
	"sort"
	"time"
)

// Node is an immutable snapshot of a tree element addressed by Key. It
// is either a value node (Dir is false, Value holds text) or a
// directory node (Dir is true, its children are reachable through
// Children). Snapshots are independent of the live tree: once returned
// to a caller they never change, even if the underlying store mutates
// the same key afterward.
type Node struct {
	// Key is the full path of the node.
	Key Key

	// Dir reports whether this node is a directory.
	Dir bool

	// Value holds the node's text. It is meaningless when Dir is true.
	Value string

	// Children holds the snapshots of a directory node, in whatever
	// order the adapter attached them. It is nil for value nodes and
	// for history-form snapshots, which omit children to bound memory
	// (spec §3, "History").
	Children []*Node

	// CreatedIndex is the global index at which the node was created.
	CreatedIndex uint64

	// ModifiedIndex is the global index of the node's last mutation.
	// ModifiedIndex is always >= CreatedIndex.
	ModifiedIndex uint64

	// TTL is the number of seconds the node is valid for, or zero when
	// the node never expires. TTL and Expiration are either both set or
	// both unset.
	TTL int64

	// Expiration is the absolute instant the node expires at. The zero
	// Time means the node is permanent.
	Expiration time.Time
}

// HasTTL reports whether the node carries an expiration.
func (n *Node) HasTTL() bool {
	return n != nil && !n.Expiration.IsZero()
}

// Nodes returns the directory's children. Use SortedNodes for a stable
// lexical-by-key order.
func (n *Node) Nodes() []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}

// SortedNodes returns a copy of the directory's children sorted by full
// key in lexical order.
func (n *Node) SortedNodes() []*Node {
	children := append([]*Node(nil), n.Nodes()...)
	sort.Slice(children, func(i, j int) bool {
		return children[i].Key < children[j].Key
	})
	return children
}

// Values returns the text values of a directory's direct children, in
// the order they are stored. Non-value children contribute the empty
// string; callers working with homogeneous value directories (the
// common append-log pattern) can ignore that case.
func (n *Node) Values() []string {
	children := n.Nodes()
	values := make([]string, len(children))
	for i, c := range children {
		values[i] = c.Value
	}
	return values
}

// String implements fmt.Stringer, following the teacher's convention
// of giving every wire-facing type a compact debug form.
func (n *Node) String() string {
	if n == nil {
		return "<nil node>"
	}
	if n.Dir {
		return fmt.Sprintf("dir %s (modified=%d, children=%d)",
			n.Key, n.ModifiedIndex, len(n.Children))
	}
	return fmt.Sprintf("node %s=%q (modified=%d)", n.Key, n.Value, n.ModifiedIndex)
}

// WithoutChildren returns a shallow copy of n with no children, for
// building the history-form snapshot described in spec §3/§4.3: history
// entries bound memory by never retaining a mutated subtree.
func (n *Node) WithoutChildren() *Node {
	if n == nil || len(n.Children) == 0 {
		return n
	}
	cp := *n
	cp.Children = nil
	return &cp
}
