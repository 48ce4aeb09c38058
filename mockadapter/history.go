package mockadapter

import (
	"sort"
	"strings"

	etc "github.com/sublee/etc"
)

// historyEntry is one (index, exact) pair recorded for a key prefix,
// as described in spec §3 "History": exact is true iff the mutation's
// own key equaled this prefix, as opposed to the prefix being a
// strict ancestor of the mutated key.
type historyEntry struct {
	index uint64
	exact bool
}

// prefixKey joins segments into the string used to index the indices
// and waiters maps. Segments never contain "/", so a plain join is an
// unambiguous key.
func prefixKey(segs []string) string {
	return strings.Join(segs, "/")
}

// recordMutation is step 3 of make_result (spec §4.3): for every
// non-empty prefix of segs, append (index, exact) to a.indices[prefix].
func (a *Adapter) recordMutation(segs []string, index uint64) {
	for i := 1; i <= len(segs); i++ {
		prefix := prefixKey(segs[:i])
		exact := i == len(segs)
		a.indices[prefix] = append(a.indices[prefix], historyEntry{index: index, exact: exact})
	}
}

// replay implements the history half of spec §4.3's waiting Get: binary
// search a.indices[key's segments] for the first entry at or after
// waitIndex, then scan forward for the first one that matches the
// recursive/exact rule. It returns nil when no matching entry exists
// yet, meaning the caller must register a live waiter instead.
func (a *Adapter) replay(segs []string, recursive bool, waitIndex uint64) *etc.Result {
	entries := a.indices[prefixKey(segs)]
	start := sort.Search(len(entries), func(i int) bool {
		return entries[i].index >= waitIndex
	})

	for i := start; i < len(entries); i++ {
		e := entries[i]
		if recursive || e.exact {
			if res, ok := a.history[e.index]; ok {
				return res
			}
		}
	}
	return nil
}
