package etc

import "context"

// Adapter is the uniform surface both backends implement: a remote
// adapter speaking HTTP/JSON to a real store (package httpadapter) and
// an in-process mock adapter reproducing the same observable semantics
// (package mockadapter). The façade (Keyspace) is the only caller of
// this interface; application code normally goes through it instead.
type Adapter interface {
	// Get resolves key, or watches it when opts.Wait is set.
	Get(ctx context.Context, key Key, opts GetOptions) (*Result, error)

	// Set creates or overwrites key, honoring any compare-and-swap or
	// prevExist precondition in opts.
	Set(ctx context.Context, key Key, opts SetOptions) (*Result, error)

	// Append creates a new uniquely-ordered child of the directory at
	// parent (spec §4.3 append / in-order keys).
	Append(ctx context.Context, parent Key, opts SetOptions) (*Result, error)

	// Delete removes key, honoring any compare-and-delete precondition
	// in opts.
	Delete(ctx context.Context, key Key, opts DeleteOptions) (*Result, error)

	// Clear releases resources owned by the adapter (the remote
	// adapter's pooled HTTP connections; for the mock, its
	// active-expiration timer, if any).
	Clear() error
}
