package etc

import (
	"context"
	"time"
)

// DefaultEndpoint is the default address of the store (spec §6).
const DefaultEndpoint = "http://127.0.0.1:4001"

// Keyspace is the thin façade translating ergonomic calls into the
// right Adapter option combination (spec §4.4). It owns no state of
// its own beyond the adapter it wraps.
type Keyspace struct {
	adapter Adapter
}

// New wraps an existing Adapter (typically *httpadapter.Adapter or
// *mockadapter.Adapter) in a Keyspace façade.
func New(adapter Adapter) *Keyspace {
	return &Keyspace{adapter: adapter}
}

// Get retrieves the node at key without blocking.
func (k *Keyspace) Get(ctx context.Context, key Key, recursive, sorted, quorum bool, timeout time.Duration) (*Result, error) {
	return k.adapter.Get(ctx, key, GetOptions{
		Recursive: recursive,
		Sorted:    sorted,
		Quorum:    quorum,
		Timeout:   timeout,
	})
}

// Wait blocks until the first mutation at or after index affecting key
// (or, recursively, any of its descendants) is observed, replaying
// history when index is already in the past.
func (k *Keyspace) Wait(ctx context.Context, key Key, index uint64, recursive, sorted, quorum bool, timeout time.Duration) (*Result, error) {
	return k.adapter.Get(ctx, key, GetOptions{
		Recursive: recursive,
		Sorted:    sorted,
		Quorum:    quorum,
		Wait:      true,
		WaitIndex: index,
		Timeout:   timeout,
	})
}

// Set creates or overwrites key.
func (k *Keyspace) Set(ctx context.Context, key Key, value *string, dir bool, ttl time.Duration, prevValue *string, prevIndex uint64, timeout time.Duration) (*Result, error) {
	return k.adapter.Set(ctx, key, SetOptions{
		Value:     value,
		Dir:       dir,
		TTL:       ttl,
		PrevValue: prevValue,
		PrevIndex: prevIndex,
		Timeout:   timeout,
	})
}

// Create sets key, failing if it already exists.
func (k *Keyspace) Create(ctx context.Context, key Key, value *string, dir bool, ttl time.Duration, timeout time.Duration) (*Result, error) {
	return k.adapter.Set(ctx, key, SetOptions{
		Value:     value,
		Dir:       dir,
		TTL:       ttl,
		PrevExist: boolPtr(false),
		Timeout:   timeout,
	})
}

// Update sets key, failing if it does not already exist.
func (k *Keyspace) Update(ctx context.Context, key Key, value *string, dir bool, ttl time.Duration, prevValue *string, prevIndex uint64, timeout time.Duration) (*Result, error) {
	return k.adapter.Set(ctx, key, SetOptions{
		Value:     value,
		Dir:       dir,
		TTL:       ttl,
		PrevValue: prevValue,
		PrevIndex: prevIndex,
		PrevExist: boolPtr(true),
		Timeout:   timeout,
	})
}

// Append creates a new in-order child of the directory at key.
func (k *Keyspace) Append(ctx context.Context, key Key, value *string, dir bool, ttl time.Duration, timeout time.Duration) (*Result, error) {
	return k.adapter.Append(ctx, key, SetOptions{
		Value:   value,
		Dir:     dir,
		TTL:     ttl,
		Timeout: timeout,
	})
}

// Delete removes key.
func (k *Keyspace) Delete(ctx context.Context, key Key, dir, recursive bool, prevValue *string, prevIndex uint64, timeout time.Duration) (*Result, error) {
	return k.adapter.Delete(ctx, key, DeleteOptions{
		Dir:       dir,
		Recursive: recursive,
		PrevValue: prevValue,
		PrevIndex: prevIndex,
		Timeout:   timeout,
	})
}

// Clear releases resources held by the underlying adapter.
func (k *Keyspace) Clear() error {
	return k.adapter.Clear()
}
