package mockadapter

import (
	"sort"
	"time"

	etc "github.com/sublee/etc"
)

// treeNode is a live, mutable element of the in-process tree. Nodes
// store parent-to-child edges only (design notes: "cyclic parent↔child
// references" are avoided entirely by walking from the root instead of
// keeping a parent pointer).
type treeNode struct {
	dir      bool
	value    string
	children map[string]*treeNode

	createdIndex  uint64
	modifiedIndex uint64

	ttl        time.Duration
	expiration time.Time
}

func newValueNode(value string, index uint64) *treeNode {
	return &treeNode{value: value, createdIndex: index, modifiedIndex: index}
}

func newDirNode(index uint64) *treeNode {
	return &treeNode{
		dir:           true,
		children:      make(map[string]*treeNode),
		createdIndex:  index,
		modifiedIndex: index,
	}
}

// setTTL applies a ttl/expiration pair computed at mutation time (spec
// §4.3 TTL: "Expiration is computed at mutation time as now + ttl").
func (n *treeNode) setTTL(ttl time.Duration, now time.Time) {
	n.ttl = ttl
	if ttl > 0 {
		n.expiration = now.Add(ttl)
	} else {
		n.expiration = time.Time{}
	}
}

// resolve walks segs from root, returning ErrKeyNotFound (attached to
// the current index) on the first missing segment.
func (a *Adapter) resolve(segs []string) (*treeNode, error) {
	node := a.root
	for _, seg := range segs {
		if !node.dir {
			return nil, etc.NewError(etc.CodeNotDir, notDirMessage(seg), a.index)
		}
		child, ok := node.children[seg]
		if !ok {
			return nil, etc.NewError(etc.CodeKeyNotFound, keyNotFoundMessage(segs), a.index)
		}
		node = child
	}
	return node, nil
}

// resolveParent resolves the parent directory of segs, failing with
// ErrKeyNotFound when any ancestor is missing (spec §4.3 set: "Resolve
// the parent (must exist; else KeyNotFound with no mutation)"), and
// with NotDir when the parent exists but is a value node.
func (a *Adapter) resolveParent(segs []string) (*treeNode, error) {
	if len(segs) == 0 {
		return nil, etc.NewError(etc.CodeRootROnly, "the root is a directory and cannot be replaced", a.index)
	}
	parent, err := a.resolve(segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}
	if !parent.dir {
		return nil, etc.NewError(etc.CodeNotDir, notDirMessage(etc.JoinKey(segs[:len(segs)-1]...).String()), a.index)
	}
	return parent, nil
}

// snapshot converts a live node rooted at key into an immutable
// etc.Node. Non-recursive directory snapshots still include immediate
// children (one level), but those children's own subtrees are not
// expanded — matching the wire store's behavior of showing a
// descendant directory as an empty marker unless the caller asked for
// recursive.
func (a *Adapter) snapshot(n *treeNode, key etc.Key, recursive, sorted bool) *etc.Node {
	return a.snapshotDepth(n, key, recursive, sorted, true)
}

func (a *Adapter) snapshotDepth(n *treeNode, key etc.Key, recursive, sorted, topLevel bool) *etc.Node {
	snap := &etc.Node{
		Key:           key,
		Dir:           n.dir,
		Value:         n.value,
		CreatedIndex:  n.createdIndex,
		ModifiedIndex: n.modifiedIndex,
	}
	if n.ttl > 0 {
		snap.TTL = int64(n.ttl / time.Second)
		snap.Expiration = n.expiration
	}
	if !n.dir {
		return snap
	}
	// A non-recursive Get still lists the directory's immediate
	// children; it simply does not expand grandchildren.
	if !topLevel && !recursive {
		return snap
	}

	segs := make([]string, 0, len(n.children))
	for seg := range n.children {
		segs = append(segs, seg)
	}
	if sorted {
		sort.Strings(segs)
	}

	children := make([]*etc.Node, 0, len(segs))
	for _, seg := range segs {
		childKey := etc.JoinKey(append(append([]string{}, key.Segments()...), seg)...)
		children = append(children, a.snapshotDepth(n.children[seg], childKey, recursive, sorted, false))
	}
	snap.Children = children
	return snap
}

func notDirMessage(seg string) string {
	return "etc: " + seg + " is not a directory"
}

func keyNotFoundMessage(segs []string) string {
	return "etc: key " + etc.JoinKey(segs...).String() + " does not exist"
}
