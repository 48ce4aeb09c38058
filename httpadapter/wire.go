package httpadapter

import (
	"net/url"
	"strconv"
	"time"

	etc "github.com/sublee/etc"
)

// wireNode mirrors the JSON node shape in spec §6:
// {"key","value"?,"dir"?,"nodes"?,"modifiedIndex","createdIndex","ttl"?,"expiration"?}.
type wireNode struct {
	Key           string      `json:"key"`
	Value         *string     `json:"value,omitempty"`
	Dir           bool        `json:"dir,omitempty"`
	Nodes         []*wireNode `json:"nodes,omitempty"`
	ModifiedIndex uint64      `json:"modifiedIndex"`
	CreatedIndex  uint64      `json:"createdIndex"`
	TTL           int64       `json:"ttl,omitempty"`
	Expiration    *time.Time  `json:"expiration,omitempty"`
}

// wireResponse mirrors the successful response envelope in spec §6.
type wireResponse struct {
	Action   string    `json:"action"`
	Node     *wireNode `json:"node"`
	PrevNode *wireNode `json:"prevNode,omitempty"`
}

// wireError mirrors the error envelope in spec §6.
type wireError struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Cause     string `json:"cause"`
	Index     uint64 `json:"index"`
}

// nodeFromWire converts a decoded wireNode tree into an etc.Node
// snapshot. A node object with no key is the synthetic root (spec §6).
func nodeFromWire(w *wireNode) *etc.Node {
	if w == nil {
		return nil
	}
	key := etc.Key(w.Key)
	if key == "" {
		key = etc.RootKey
	}
	n := &etc.Node{
		Key:           key,
		Dir:           w.Dir,
		ModifiedIndex: w.ModifiedIndex,
		CreatedIndex:  w.CreatedIndex,
	}
	if w.Value != nil {
		n.Value = *w.Value
	}
	if w.TTL > 0 {
		n.TTL = w.TTL
		if w.Expiration != nil {
			n.Expiration = *w.Expiration
		}
	}
	for _, c := range w.Nodes {
		n.Children = append(n.Children, nodeFromWire(c))
	}
	return n
}

// getParams implements spec §4.2's parameter coercion for get/wait:
// booleans become literal "true" or are omitted, integers are emitted
// verbatim when non-zero, and there is no text parameter.
func getParams(opts etc.GetOptions) url.Values {
	v := url.Values{}
	if opts.Recursive {
		v.Set("recursive", "true")
	}
	if opts.Sorted {
		v.Set("sorted", "true")
	}
	if opts.Quorum {
		v.Set("quorum", "true")
	}
	if opts.Wait {
		v.Set("wait", "true")
	}
	if opts.WaitIndex != 0 {
		v.Set("waitIndex", strconv.FormatUint(opts.WaitIndex, 10))
	}
	return v
}

// setParams implements the coercion rule for set/create/update/append.
func setParams(opts etc.SetOptions) url.Values {
	v := url.Values{}
	if opts.Value != nil {
		v.Set("value", *opts.Value)
	}
	if opts.Dir {
		v.Set("dir", "true")
	}
	if opts.TTL > 0 {
		v.Set("ttl", strconv.FormatInt(int64(opts.TTL/time.Second), 10))
	}
	if opts.PrevValue != nil {
		v.Set("prevValue", *opts.PrevValue)
	}
	if opts.PrevIndex != 0 {
		v.Set("prevIndex", strconv.FormatUint(opts.PrevIndex, 10))
	}
	if opts.PrevExist != nil {
		v.Set("prevExist", strconv.FormatBool(*opts.PrevExist))
	}
	return v
}

// deleteParams implements the coercion rule for delete/CAD.
func deleteParams(opts etc.DeleteOptions) url.Values {
	v := url.Values{}
	if opts.Dir {
		v.Set("dir", "true")
	}
	if opts.Recursive {
		v.Set("recursive", "true")
	}
	if opts.PrevValue != nil {
		v.Set("prevValue", *opts.PrevValue)
	}
	if opts.PrevIndex != 0 {
		v.Set("prevIndex", strconv.FormatUint(opts.PrevIndex, 10))
	}
	return v
}

// validateSetOptions enforces §4.2's local input validation: exactly
// one of value or dir, checked before any I/O.
func validateSetOptions(opts etc.SetOptions) error {
	if opts.Dir == (opts.Value != nil) {
		return &etc.ValidationError{Message: "exactly one of value or dir must be set"}
	}
	return nil
}
