// Package dial builds a Keyspace backed by either adapter, selected by
// a single flag (spec §6: "A factory function selects remote or mock
// by a mock flag"). It exists as its own package, rather than a
// function on etc.Keyspace, because both backends already import
// package etc to implement etc.Adapter; etc importing them back would
// cycle.
package dial

import (
	etc "github.com/sublee/etc"
	"github.com/sublee/etc/httpadapter"
	"github.com/sublee/etc/mockadapter"
)

// New builds a Keyspace. When mock is true it is backed by an
// in-process mockadapter.Adapter and config is ignored; otherwise it
// dials config.Endpoint (etc.DefaultEndpoint when config is nil or
// config.Endpoint is empty) over HTTP.
func New(mock bool, config *httpadapter.Config) *etc.Keyspace {
	if mock {
		return etc.New(mockadapter.New(nil))
	}
	return etc.New(httpadapter.New(config))
}
