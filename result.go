package etc

import "fmt"

// Action names the kind of operation a Result records. The set is
// closed: dispatch from a wire action string to an Action is total over
// these values, and decoding an unrecognized action fails (§4.1).
type Action string

// The closed set of result actions (spec §4.1).
const (
	ActionGet              Action = "get"
	ActionSet              Action = "set"
	ActionUpdate           Action = "update"
	ActionCreate           Action = "create"
	ActionDelete           Action = "delete"
	ActionExpire           Action = "expire"
	ActionCompareAndSwap   Action = "compareAndSwap"
	ActionCompareAndDelete Action = "compareAndDelete"
)

// actionRegistry is the closed tagged-union dispatch table mapped from
// wire action name to Action, populated once at package init. This is
// the Go rendering of the design notes' "registry-by-tag dispatch":
// the source used metaclass-time registration, here it is a plain map
// literal checked by decodeAction.
var actionRegistry = map[string]Action{
	string(ActionGet):              ActionGet,
	string(ActionSet):              ActionSet,
	string(ActionUpdate):           ActionUpdate,
	string(ActionCreate):           ActionCreate,
	string(ActionDelete):           ActionDelete,
	string(ActionExpire):           ActionExpire,
	string(ActionCompareAndSwap):   ActionCompareAndSwap,
	string(ActionCompareAndDelete): ActionCompareAndDelete,
}

// decodeAction resolves a wire action string to an Action, failing for
// any value outside the closed set.
func decodeAction(s string) (Action, error) {
	a, ok := actionRegistry[s]
	if !ok {
		return "", fmt.Errorf("etc: unrecognized action %q", s)
	}
	return a, nil
}

// DecodeAction is decodeAction exported for package httpadapter, which
// performs the same wire-action dispatch against the remote store's
// JSON responses.
func DecodeAction(s string) (Action, error) {
	return decodeAction(s)
}

// ClusterInfo carries the response headers a remote store attaches to
// every reply (X-Etcd-Index, X-Raft-Index, X-Raft-Term), generalizing
// the teacher client's practice of attaching a Node the caller can
// reach directly (client.Response.Node) — here the side channel is
// "what state did I read", not "who do I talk to next".
type ClusterInfo struct {
	EtcdIndex uint64
	RaftIndex uint64
	RaftTerm  uint64
}

// Result is the immutable outcome of one store operation: the action
// that produced it, the resulting node, the node it replaced (if any),
// and the global index the operation occurred at.
type Result struct {
	Action Action

	// Node is the resulting node snapshot. For a Delete/ComparedThenDeleted
	// result the node no longer exists and this is nil; callers read
	// PrevNode instead.
	Node *Node

	// PrevNode is the snapshot of the node this operation replaced or
	// removed, or nil when there was none.
	PrevNode *Node

	// Index is the global index the operation was committed at (or, for
	// a plain Get, the index observed without advancing the counter).
	Index uint64

	// Cluster carries the optional read-quorum diagnostics a remote
	// adapter attaches from response headers. The mock adapter leaves
	// it zero.
	Cluster ClusterInfo
}

// Key returns the result's node key, falling back to PrevNode's key for
// a Delete result.
func (r *Result) Key() Key {
	if r.Node != nil {
		return r.Node.Key
	}
	if r.PrevNode != nil {
		return r.PrevNode.Key
	}
	return ""
}

// Value forwards to the embedded node's value.
func (r *Result) Value() string {
	if r.Node == nil {
		return ""
	}
	return r.Node.Value
}

// Nodes forwards to the embedded node's children.
func (r *Result) Nodes() []*Node {
	if r.Node == nil {
		return nil
	}
	return r.Node.Nodes()
}

// ModifiedIndex forwards to the embedded node's ModifiedIndex.
func (r *Result) ModifiedIndex() uint64 {
	if r.Node == nil {
		return 0
	}
	return r.Node.ModifiedIndex
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	return fmt.Sprintf("%s index=%d node=%s", r.Action, r.Index, r.Node)
}

// ResultActionForSet picks the result tag for a set operation:
// ComparedThenSwapped if any compare ran, else Updated only when the
// caller explicitly asked for update semantics (prevExist=true), else
// Set. A plain set against an already-existing node with no compare
// and no prevExist is still tagged Set (spec §8 scenario 2; ground
// truth: "Updated if prev_exist or should_test else Set"), not
// Updated — node existence alone does not change the tag. Append's
// result is always tagged ActionCreate directly by the caller; this
// dispatcher is only for the set/create/update path.
func ResultActionForSet(compared, prevExist bool) Action {
	switch {
	case compared:
		return ActionCompareAndSwap
	case prevExist:
		return ActionUpdate
	default:
		return ActionSet
	}
}
