// Package httpadapter implements etc.Adapter against a remote store
// speaking the etcd v2-style /v2/keys/ HTTP/JSON protocol (spec §4.2,
// §6). It is the network sibling of package mockadapter.
package httpadapter

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	etc "github.com/sublee/etc"
)

// DefaultTransport is the pooled transport used when Config.Transport
// is nil, carried over from the teacher's client.DefaultTransport.
var DefaultTransport http.RoundTripper = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		DualStack: true,
	}).DialContext,
	MaxIdleConns:          100,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// Config configures an Adapter.
type Config struct {
	// Endpoint is the base URL of the store, e.g. "http://127.0.0.1:4001"
	// (etc.DefaultEndpoint). A trailing slash is tolerated.
	Endpoint string

	// Transport is the http.RoundTripper backing the client. Nil uses
	// DefaultTransport.
	Transport http.RoundTripper

	// TLSConfig, when set, is applied to DefaultTransport's clone; it
	// is ignored when Transport is also set.
	TLSConfig *tls.Config
}

func (cfg *Config) transport() http.RoundTripper {
	if cfg.Transport != nil {
		return cfg.Transport
	}
	if cfg.TLSConfig == nil {
		return DefaultTransport
	}
	t := DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = cfg.TLSConfig
	return t
}

func (cfg *Config) endpoint() string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return etc.DefaultEndpoint
}
