package etc

import "time"

// GetOptions configures a read or watch of a key (spec §4.3 get).
type GetOptions struct {
	// Recursive includes the full subtree of a directory node, and
	// makes a watch match mutations anywhere under the key, not only
	// mutations of the key itself.
	Recursive bool

	// Sorted requests children in lexical key order.
	Sorted bool

	// Quorum requests the remote store serve the read from a quorum of
	// members rather than the local node. The mock adapter ignores it.
	Quorum bool

	// Wait turns this into a watch: the call blocks until a matching
	// mutation occurs (or WaitIndex replays one from history).
	Wait bool

	// WaitIndex, when non-zero, replays the earliest history entry at
	// or after this index instead of waiting only for new mutations.
	WaitIndex uint64

	// Timeout bounds how long a Wait call may block. The zero value
	// means unbounded.
	Timeout time.Duration
}

// SetOptions configures a write (spec §4.3 set / §4.4 create/update).
type SetOptions struct {
	// Value is the text to store. Exactly one of Value or Dir must be
	// set (spec §4.2's local validation rule).
	Value *string

	// Dir, when true, creates or updates a directory node instead of a
	// value node.
	Dir bool

	// TTL, when positive, sets the node's time to live. The remote
	// adapter sends it in whole seconds.
	TTL time.Duration

	// PrevValue, when set, makes the write a compare-and-swap that only
	// succeeds if the node's current value equals it.
	PrevValue *string

	// PrevIndex, when set, makes the write a compare-and-swap that only
	// succeeds if the node's ModifiedIndex equals it.
	PrevIndex uint64

	// PrevExist, when set, requires the node to (not) already exist:
	// true for update semantics, false for create semantics.
	PrevExist *bool

	// Timeout bounds the remote adapter's round trip. Zero means the
	// adapter's default.
	Timeout time.Duration
}

// HasCompare reports whether any compare-and-swap precondition is set.
func (o *SetOptions) HasCompare() bool {
	return o.PrevValue != nil || o.PrevIndex != 0
}

// DeleteOptions configures a delete (spec §4.3 delete).
type DeleteOptions struct {
	// Dir, when true, allows the remote store to delete an (empty)
	// directory node. The mock adapter does not check it: it deletes an
	// empty directory whether or not Dir is set.
	Dir bool

	// Recursive allows deleting a non-empty directory and its subtree.
	Recursive bool

	// PrevValue, when set, makes the delete a compare-and-delete.
	PrevValue *string

	// PrevIndex, when set, makes the delete a compare-and-delete.
	PrevIndex uint64

	// Timeout bounds the remote adapter's round trip.
	Timeout time.Duration
}

// HasCompare reports whether any compare-and-delete precondition is set.
func (o *DeleteOptions) HasCompare() bool {
	return o.PrevValue != nil || o.PrevIndex != 0
}

// boolPtr is a small helper for building Options literals without
// spelling out a local variable at every call site.
func boolPtr(b bool) *bool { return &b }
