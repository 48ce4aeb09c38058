// Package mockadapter implements an in-process etc.Adapter: the same
// observable get/set/append/delete semantics as the remote store,
// without any network. It exists so the façade and application code
// can be exercised deterministically, and so tests don't need a live
// store (spec §4.3).
package mockadapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	etc "github.com/sublee/etc"
)

// Config configures an Adapter. The zero Config is a ready-to-use
// in-process store with no active TTL eviction.
type Config struct {
	// Clock overrides time.Now for computing TTL expirations, so tests
	// can advance time deterministically instead of sleeping.
	Clock func() time.Time

	// ActiveExpiration enables the optional extension described in the
	// design notes: a background timer evicts expired nodes and emits
	// Expired results on their own. Without it, a node with a TTL stays
	// in the tree; its ttl and expiration are only recorded.
	ActiveExpiration bool
}

// Adapter is the mutex-guarded in-process tree described in spec §4.3:
// a root directory, a monotonic index, and the history/indices/waiters
// tables that let a Get(wait=true) replay or block.
type Adapter struct {
	mu sync.Mutex

	root  *treeNode
	index uint64

	history map[uint64]*etc.Result
	indices map[string][]historyEntry
	waiters map[waiterKey]*waiter

	clock func() time.Time

	expireHeap  *expireHeap
	expireTimer *refreshTimer
}

// New builds an empty Adapter per config. A nil config is equivalent to
// the zero Config.
func New(config *Config) *Adapter {
	if config == nil {
		config = &Config{}
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	a := &Adapter{
		root:    newDirNode(0),
		history: make(map[uint64]*etc.Result),
		indices: make(map[string][]historyEntry),
		waiters: make(map[waiterKey]*waiter),
		clock:   clock,
	}
	if config.ActiveExpiration {
		a.expireHeap = newExpireHeap(0)
		a.expireTimer = new(refreshTimer)
	}
	return a
}

func (a *Adapter) nextIndex() uint64 {
	a.index++
	return a.index
}

func (a *Adapter) now() time.Time {
	return a.clock()
}

// Get implements etc.Adapter.
func (a *Adapter) Get(ctx context.Context, key etc.Key, opts etc.GetOptions) (*etc.Result, error) {
	segs := key.Segments()

	a.mu.Lock()
	if !opts.Wait {
		node, err := a.resolve(segs)
		if err != nil {
			a.mu.Unlock()
			return nil, err
		}
		snap := a.snapshot(node, key, opts.Recursive, opts.Sorted)
		index := a.index
		a.mu.Unlock()
		return &etc.Result{Action: etc.ActionGet, Node: snap, Index: index}, nil
	}

	if opts.WaitIndex != 0 {
		if res := a.replay(segs, opts.Recursive, opts.WaitIndex); res != nil {
			a.mu.Unlock()
			return res, nil
		}
	}
	w := a.registerWaiter(opts.Recursive, segs)
	a.mu.Unlock()

	// A timed-out or canceled get leaves the shared waiter registered:
	// other callers may still be blocked on it, and only a matching
	// mutation's commit path (fireWaiters) removes it.
	return w.get(ctx, opts.Timeout)
}

// Set implements etc.Adapter.
func (a *Adapter) Set(ctx context.Context, key etc.Key, opts etc.SetOptions) (*etc.Result, error) {
	if err := validateSetOptions(opts); err != nil {
		return nil, err
	}
	segs := key.Segments()

	a.mu.Lock()
	index := a.nextIndex()

	parent, err := a.resolveParent(segs)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	leaf := segs[len(segs)-1]

	existing, exists := parent.children[leaf]
	if !exists {
		if (opts.PrevExist != nil && *opts.PrevExist) || opts.HasCompare() {
			a.mu.Unlock()
			return nil, etc.NewError(etc.CodeKeyNotFound, keyNotFoundMessage(segs), index)
		}
		node := a.buildLeaf(opts, index)
		parent.children[leaf] = node
		a.scheduleExpiration(segs, node)

		res := a.makeResult(etc.ActionSet, key, segs, node, nil, index)
		a.mu.Unlock()
		return res, nil
	}

	if opts.PrevExist != nil && !*opts.PrevExist {
		a.mu.Unlock()
		return nil, etc.NewError(etc.CodeNodeExist, fmt.Sprintf("etc: key %s already exists", key), index)
	}

	compared := opts.HasCompare()
	if compared {
		if err := a.compare(existing, opts.PrevValue, opts.PrevIndex, index); err != nil {
			a.mu.Unlock()
			return nil, err
		}
	}

	prevSnap := a.snapshot(existing, key, true, false)
	a.overwriteLeaf(existing, opts, index)
	a.scheduleExpiration(segs, existing)

	prevExist := opts.PrevExist != nil && *opts.PrevExist
	action := etc.ResultActionForSet(compared, prevExist)
	res := a.makeResult(action, key, segs, existing, prevSnap, index)
	a.mu.Unlock()
	return res, nil
}

// Append implements etc.Adapter: an in-order child key under parent
// (spec §4.3 append).
func (a *Adapter) Append(ctx context.Context, parent etc.Key, opts etc.SetOptions) (*etc.Result, error) {
	if err := validateSetOptions(opts); err != nil {
		return nil, err
	}
	segs := parent.Segments()

	a.mu.Lock()
	index := a.nextIndex()

	parentNode, err := a.resolve(segs)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	if !parentNode.dir {
		a.mu.Unlock()
		return nil, etc.NewError(etc.CodeNotDir, notDirMessage(parent.String()), index)
	}

	n := len(parentNode.children)
	leaf := pad20(n)
	for {
		if _, exists := parentNode.children[leaf]; !exists {
			break
		}
		n++
		leaf = pad20(n)
	}

	node := a.buildLeaf(opts, index)
	parentNode.children[leaf] = node
	childSegs := append(append([]string{}, segs...), leaf)
	a.scheduleExpiration(childSegs, node)

	childKey := etc.JoinKey(childSegs...)
	res := a.makeResult(etc.ActionCreate, childKey, childSegs, node, nil, index)
	a.mu.Unlock()
	return res, nil
}

// Delete implements etc.Adapter.
func (a *Adapter) Delete(ctx context.Context, key etc.Key, opts etc.DeleteOptions) (*etc.Result, error) {
	segs := key.Segments()

	a.mu.Lock()
	index := a.nextIndex()

	if len(segs) == 0 {
		a.mu.Unlock()
		return nil, etc.NewError(etc.CodeRootROnly, "the root is a directory and cannot be replaced", index)
	}

	parent, err := a.resolveParent(segs)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	leaf := segs[len(segs)-1]

	existing, exists := parent.children[leaf]
	if !exists {
		a.mu.Unlock()
		return nil, etc.NewError(etc.CodeKeyNotFound, keyNotFoundMessage(segs), index)
	}

	if existing.dir && len(existing.children) > 0 && !opts.Recursive {
		a.mu.Unlock()
		return nil, etc.NewError(etc.CodeDirNotEmpty, fmt.Sprintf("etc: directory %s is not empty", key), index)
	}

	compared := opts.HasCompare()
	if compared {
		if err := a.compare(existing, opts.PrevValue, opts.PrevIndex, index); err != nil {
			a.mu.Unlock()
			return nil, err
		}
	}

	prevSnap := a.snapshot(existing, key, true, false)
	delete(parent.children, leaf)

	action := etc.ActionDelete
	if compared {
		action = etc.ActionCompareAndDelete
	}
	res := a.makeResult(action, key, segs, nil, prevSnap, index)
	a.mu.Unlock()
	return res, nil
}

// Clear implements etc.Adapter: it stops the active-eviction timer, if
// any. The in-process tree itself is left as-is, mirroring the remote
// adapter's clear only releasing its transport, not the server's data.
func (a *Adapter) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expireTimer != nil && a.expireTimer.timer != nil {
		a.expireTimer.timer.Stop()
	}
	return nil
}

// compare implements spec §4.3's compare: either precondition, if
// given, must match the node's current state.
func (a *Adapter) compare(n *treeNode, prevValue *string, prevIndex uint64, index uint64) error {
	if prevValue != nil && n.value != *prevValue {
		return etc.NewError(etc.CodeTestFailed,
			fmt.Sprintf("etc: compare failed: prevValue %q != %q", *prevValue, n.value), index)
	}
	if prevIndex != 0 && n.modifiedIndex != prevIndex {
		return etc.NewError(etc.CodeTestFailed,
			fmt.Sprintf("etc: compare failed: prevIndex %d != %d", prevIndex, n.modifiedIndex), index)
	}
	return nil
}

// makeResult is the commit & notify step shared by every mutation
// (spec §4.3 make_result). Callers hold a.mu for the duration.
func (a *Adapter) makeResult(action etc.Action, key etc.Key, segs []string, node *treeNode, prevSnap *etc.Node, index uint64) *etc.Result {
	var snap *etc.Node
	if node != nil {
		snap = a.snapshot(node, key, false, false)
	}

	res := &etc.Result{Action: action, Node: snap, PrevNode: prevSnap, Index: index}
	historyRes := &etc.Result{
		Action:   action,
		Node:     snap.WithoutChildren(),
		PrevNode: prevSnap.WithoutChildren(),
		Index:    index,
	}

	a.history[index] = historyRes
	a.recordMutation(segs, index)
	a.fireWaiters(segs, historyRes)

	return res
}

// buildLeaf constructs a brand new node for a set or append.
func (a *Adapter) buildLeaf(opts etc.SetOptions, index uint64) *treeNode {
	var node *treeNode
	if opts.Dir {
		node = newDirNode(index)
	} else {
		value := ""
		if opts.Value != nil {
			value = *opts.Value
		}
		node = newValueNode(value, index)
	}
	node.setTTL(opts.TTL, a.now())
	return node
}

// overwriteLeaf applies opts to an existing node in place, per spec
// §4.3's node storage rule: "Mutating a node in place updates
// modified_index and swaps variant if the update changes it."
func (a *Adapter) overwriteLeaf(n *treeNode, opts etc.SetOptions, index uint64) {
	if opts.Dir {
		if !n.dir {
			n.dir = true
			n.children = make(map[string]*treeNode)
		}
		n.value = ""
	} else {
		n.dir = false
		n.children = nil
		if opts.Value != nil {
			n.value = *opts.Value
		}
	}
	n.modifiedIndex = index
	n.setTTL(opts.TTL, a.now())
}

// validateSetOptions enforces the exactly-one-of(value, dir) rule
// before any lock is taken or index consumed.
func validateSetOptions(opts etc.SetOptions) error {
	if opts.Dir == (opts.Value != nil) {
		return &etc.ValidationError{Message: "exactly one of value or dir must be set"}
	}
	return nil
}

// pad20 renders n zero-padded to 20 decimal digits, the in-order key
// format spec §4.3 append uses.
func pad20(n int) string {
	return fmt.Sprintf("%020d", n)
}
