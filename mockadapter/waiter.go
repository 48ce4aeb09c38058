package mockadapter

import (
	"context"
	"time"

	etc "github.com/sublee/etc"
)

// waiter is the one-shot synchronization primitive described in the
// GLOSSARY: one or more threads block in get until another thread
// calls set, or until each one's own bounded timeout elapses. Multiple
// concurrent gets on the same (recursive, key) registration share a
// single waiter (see registerWaiter), so set must wake all of them —
// the original's threading.Event has the same broadcast-to-all-waiters
// semantics. Closing ch broadcasts to every blocked receiver at once;
// result is written before the close, so every receiver's read of it
// is ordered after the write by the channel-close happens-before rule.
type waiter struct {
	ch     chan struct{}
	result *etc.Result
}

func newWaiter() *waiter {
	return &waiter{ch: make(chan struct{})}
}

// set delivers res to every waiter sharing this registration. It is
// only ever called once per waiter, by the thread committing the
// matching mutation, while that thread still holds the store's mutex
// (spec §5: "the thread committing a mutation sets all matching
// waiters while holding the mutex").
func (w *waiter) set(res *etc.Result) {
	w.result = res
	close(w.ch)
}

// get blocks until set is called, ctx is done, or timeout elapses
// (timeout <= 0 means unbounded). The waiting thread holds no store
// lock while blocked here. A timed-out get does not disturb the
// waiter's registration: other threads sharing it may still be
// blocked, and only the eventual matching mutation's commit path
// removes it (see fireWaiters).
func (w *waiter) get(ctx context.Context, timeout time.Duration) (*etc.Result, error) {
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-w.ch:
			return w.result, nil
		case <-timer.C:
			return nil, etc.ErrTimedOut.New("wait exceeded %s", timeout)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	select {
	case <-w.ch:
		return w.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// waiterKey identifies one registered waiter: a recursive watch on a
// key, or a non-recursive (exact) watch on a key. The GLOSSARY's
// "exact vs. recursive match" rule governs which mutations fire which
// keys (see recordMutation and fireWaiters).
type waiterKey struct {
	recursive bool
	key       string
}

// registerWaiter returns the waiter for (recursive, segs), creating
// one if none is registered yet. Concurrent callers on the same key
// join the same waiter (ground truth: "self.waiters.setdefault(
// waiter_key, Waiter())") so a single matching mutation wakes all of
// them; storing a fresh waiter per call would let a mutation's
// fireWaiters find only the most recently registered one and orphan
// the rest to their own timeouts.
func (a *Adapter) registerWaiter(recursive bool, segs []string) *waiter {
	key := waiterKey{recursive: recursive, key: prefixKey(segs)}
	if w, ok := a.waiters[key]; ok {
		return w
	}
	w := newWaiter()
	a.waiters[key] = w
	return w
}

// fireWaiters is step 4 of make_result (spec §4.3): the exact-key
// non-recursive waiter on segs, plus the recursive waiter on every
// prefix of segs including the root, are removed and set to res.
func (a *Adapter) fireWaiters(segs []string, res *etc.Result) {
	if w, ok := a.waiters[waiterKey{recursive: false, key: prefixKey(segs)}]; ok {
		delete(a.waiters, waiterKey{recursive: false, key: prefixKey(segs)})
		w.set(res)
	}
	for i := 0; i <= len(segs); i++ {
		key := waiterKey{recursive: true, key: prefixKey(segs[:i])}
		if w, ok := a.waiters[key]; ok {
			delete(a.waiters, key)
			w.set(res)
		}
	}
}
