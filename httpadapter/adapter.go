package httpadapter

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	etc "github.com/sublee/etc"
	"github.com/sublee/etc/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Adapter implements etc.Adapter against a remote store over HTTP,
// following the wire protocol in spec §6 and the retry policy in §4.2.
type Adapter struct {
	endpoint   string
	httpClient *http.Client
}

// New builds an Adapter talking to config.Endpoint (etc.DefaultEndpoint
// if unset). A nil config is equivalent to the zero Config.
func New(config *Config) *Adapter {
	if config == nil {
		config = &Config{}
	}
	return &Adapter{
		endpoint:   strings.TrimRight(config.endpoint(), "/"),
		httpClient: &http.Client{Transport: config.transport()},
	}
}

func (a *Adapter) urlFor(key etc.Key) *url.URL {
	u, err := url.Parse(a.endpoint + "/v2/keys" + string(key))
	if err != nil {
		// New does not validate the endpoint. When the URL does not
		// parse, fall back to a bare path; the request then fails in
		// the transport for lack of a scheme and host.
		return &url.URL{Path: "/v2/keys" + string(key)}
	}
	return u
}

// Get implements etc.Adapter, including the unbounded long-poll retry
// policy from spec §4.2.
func (a *Adapter) Get(ctx context.Context, key etc.Key, opts etc.GetOptions) (*etc.Result, error) {
	params := getParams(opts)

	if !opts.Wait || opts.Timeout > 0 {
		return a.request(ctx, http.MethodGet, key, params, opts.Timeout)
	}

	for {
		res, err := a.request(ctx, http.MethodGet, key, params, 0)
		if err == nil {
			return res, nil
		}
		if !retryable(err) {
			return nil, err
		}
		log.DebugLogf("httpadapter/WAIT", "retrying unbounded wait on %s after %s", key, err)
	}
}

// Set implements etc.Adapter.
func (a *Adapter) Set(ctx context.Context, key etc.Key, opts etc.SetOptions) (*etc.Result, error) {
	if err := validateSetOptions(opts); err != nil {
		return nil, err
	}
	return a.request(ctx, http.MethodPut, key, setParams(opts), opts.Timeout)
}

// Append implements etc.Adapter.
func (a *Adapter) Append(ctx context.Context, parent etc.Key, opts etc.SetOptions) (*etc.Result, error) {
	if err := validateSetOptions(opts); err != nil {
		return nil, err
	}
	return a.request(ctx, http.MethodPost, parent, setParams(opts), opts.Timeout)
}

// Delete implements etc.Adapter.
func (a *Adapter) Delete(ctx context.Context, key etc.Key, opts etc.DeleteOptions) (*etc.Result, error) {
	return a.request(ctx, http.MethodDelete, key, deleteParams(opts), opts.Timeout)
}

// Clear implements etc.Adapter: it releases the pooled connections,
// following the teacher client's practice of treating the transport as
// the only resource worth releasing explicitly.
func (a *Adapter) Clear() error {
	if t, ok := a.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// request performs one HTTP round trip and decodes the response per
// spec §4.2/§6. GET and DELETE carry params as a query string; PUT and
// POST carry them as a form body.
func (a *Adapter) request(ctx context.Context, method string, key etc.Key, params url.Values, timeout time.Duration) (*etc.Result, error) {
	u := a.urlFor(key)

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		u.RawQuery = params.Encode()
	default:
		body = strings.NewReader(params.Encode())
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, etc.ErrTimedOut.New("truncated chunked response: %s", err)
		}
		return nil, classifyTransportErr(err)
	}

	etcdIndex, raftIndex, raftTerm := clusterInfo(resp.Header)

	if resp.StatusCode/100 == 2 {
		var wr wireResponse
		if err := json.Unmarshal(data, &wr); err != nil {
			return nil, &etc.HTTPError{StatusCode: resp.StatusCode}
		}
		action, err := etc.DecodeAction(wr.Action)
		if err != nil {
			return nil, err
		}
		node := nodeFromWire(wr.Node)
		index := etcdIndex
		if index == 0 && node != nil {
			index = node.ModifiedIndex
		}
		return &etc.Result{
			Action:   action,
			Node:     node,
			PrevNode: nodeFromWire(wr.PrevNode),
			Index:    index,
			Cluster:  etc.ClusterInfo{EtcdIndex: etcdIndex, RaftIndex: raftIndex, RaftTerm: raftTerm},
		}, nil
	}

	var we wireError
	if err := json.Unmarshal(data, &we); err != nil || len(data) == 0 {
		return nil, &etc.HTTPError{StatusCode: resp.StatusCode}
	}
	return nil, etc.NewErrorCause(etc.Code(we.ErrorCode), we.Message, we.Cause, we.Index)
}

func clusterInfo(h http.Header) (etcdIndex, raftIndex, raftTerm uint64) {
	etcdIndex, _ = strconv.ParseUint(h.Get("X-Etcd-Index"), 10, 64)
	raftIndex, _ = strconv.ParseUint(h.Get("X-Raft-Index"), 10, 64)
	raftTerm, _ = strconv.ParseUint(h.Get("X-Raft-Term"), 10, 64)
	return
}

// retryable reports whether err is one of the two conditions an
// unbounded long-poll silently retries on (spec §4.2): a timeout, or
// chunked-encoding truncation (surfaced as the same ErrTimedOut class
// by request above).
func retryable(err error) bool {
	return etc.ErrTimedOut.Has(err)
}

// classifyTransportErr maps a raw transport failure to the client-side
// error taxonomy in spec §7.
func classifyTransportErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return etc.ErrTimedOut.New("request timed out: %s", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return etc.ErrTimedOut.New("request timed out: %s", err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return etc.ErrConnectionRefused.New("%s", err)
	}
	return etc.ErrConnection.New("%s", err)
}
