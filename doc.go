// Package etc is a client library for a hierarchical key-value
// coordination store exposing an HTTP/JSON key-space with ordered
// global indices, long-poll watches, TTL-based expiration, and
// compare-and-swap semantics (the v2 API model of etcd).
//
// Two interchangeable backends implement the Adapter interface: the
// httpadapter sub-package speaks the wire protocol to a real server,
// and the mockadapter sub-package reproduces the same observable
// semantics in-process for tests. Callers normally do not use Adapter
// directly; the Keyspace façade in this package translates ergonomic
// calls (Get, Wait, Set, Create, Update, Append, Delete) into the
// right combination of Adapter options.
package etc
