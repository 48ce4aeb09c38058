package mockadapter

import (
	"container/heap"
	"time"

	etc "github.com/sublee/etc"
	"github.com/sublee/etc/log"
)

// expireHeapElement is one scheduled expiration, adapted from the
// teacher's timeHeapElement to carry a path instead of an opaque
// interface{} payload.
type expireHeapElement struct {
	expiration time.Time
	segs       []string
	node       *treeNode
}

// expireHeap orders scheduled expirations earliest-first. Stale
// entries (a node that was since overwritten, re-armed with a later
// TTL, or deleted) are left in place and discarded lazily by expire,
// which checks node identity before acting — removing them eagerly
// would need a second index from node to heap position.
type expireHeap struct {
	arr []*expireHeapElement
}

func newExpireHeap(capacity int) *expireHeap {
	return &expireHeap{arr: make([]*expireHeapElement, 0, capacity)}
}

func (h *expireHeap) Len() int { return len(h.arr) }

func (h *expireHeap) Less(i, j int) bool {
	return h.arr[i].expiration.Before(h.arr[j].expiration)
}

func (h *expireHeap) Swap(i, j int) { h.arr[i], h.arr[j] = h.arr[j], h.arr[i] }

func (h *expireHeap) Push(v interface{}) { h.arr = append(h.arr, v.(*expireHeapElement)) }

func (h *expireHeap) Pop() interface{} {
	n := len(h.arr)
	el := h.arr[n-1]
	h.arr = h.arr[:n-1]
	return el
}

func (h *expireHeap) Peek() *expireHeapElement {
	if len(h.arr) == 0 {
		return nil
	}
	return h.arr[0]
}

// refreshTimer is a timer that can be re-armed to an earlier point
// without waiting for the current run to fire, carried over from the
// teacher's container/store/time.go almost unchanged.
type refreshTimer struct {
	timer  *time.Timer
	cutoff time.Time
}

// AfterFunc schedules fn to run at t, re-arming the timer only when t
// is earlier than whatever it is currently armed for.
func (rt *refreshTimer) AfterFunc(now, t time.Time, fn func()) {
	if !rt.cutoff.IsZero() && rt.cutoff.Before(t) && now.Before(rt.cutoff) {
		return
	}
	if rt.timer != nil {
		rt.timer.Stop()
	}
	rt.cutoff = t
	rt.timer = time.AfterFunc(t.Sub(now), fn)
}

// scheduleExpiration registers n's current expiration in the active
// eviction heap, a no-op when the extension is disabled or n has no
// TTL. Called while a.mu is held.
func (a *Adapter) scheduleExpiration(segs []string, n *treeNode) {
	if a.expireHeap == nil || n.expiration.IsZero() {
		return
	}
	heap.Push(a.expireHeap, &expireHeapElement{
		expiration: n.expiration,
		segs:       append([]string(nil), segs...),
		node:       n,
	})
	a.armExpireTimer()
}

// armExpireTimer (re-)arms the timer for the heap's earliest entry.
func (a *Adapter) armExpireTimer() {
	top := a.expireHeap.Peek()
	if top == nil {
		return
	}
	a.expireTimer.AfterFunc(a.now(), top.expiration, a.expire)
}

// expire is the active-eviction extension described in SPEC_FULL's
// §4.3 supplement: it pops every heap entry that is due, confirms the
// node at that path is still the one that was scheduled and is still
// expired (a later set/delete may have invalidated it), and for any
// that survive, detaches it and commits an Expired result through the
// same make_result path a manual delete uses.
func (a *Adapter) expire() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	for {
		top := a.expireHeap.Peek()
		if top == nil || top.expiration.After(now) {
			break
		}
		heap.Pop(a.expireHeap)

		if len(top.segs) == 0 {
			continue
		}
		parent, err := a.resolve(top.segs[:len(top.segs)-1])
		if err != nil {
			continue
		}
		leaf := top.segs[len(top.segs)-1]
		current, ok := parent.children[leaf]
		if !ok || current != top.node || current.expiration.IsZero() || current.expiration.After(now) {
			continue
		}

		key := etc.JoinKey(top.segs...)
		prevSnap := a.snapshot(current, key, true, false)
		delete(parent.children, leaf)
		index := a.nextIndex()
		a.makeResult(etc.ActionExpire, key, top.segs, nil, prevSnap, index)
		log.DebugLogf("mockadapter/EXPIRE", "evicted %s at index %d", key, index)
	}
	a.armExpireTimer()
}
