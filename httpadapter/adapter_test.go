package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	etc "github.com/sublee/etc"
)

func newTest(handler http.HandlerFunc) (*httptest.Server, *Adapter) {
	s := httptest.NewServer(handler)
	a := New(&Config{Endpoint: s.URL})
	return s, a
}

func strp(s string) *string { return &s }

func TestAdapterGetDecodesNode(t *testing.T) {
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/keys/foo" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		rw.Header().Set("X-Etcd-Index", "5")
		json.NewEncoder(rw).Encode(wireResponse{
			Action: "get",
			Node:   &wireNode{Key: "/foo", Value: strp("bar"), ModifiedIndex: 5, CreatedIndex: 5},
		})
	})
	defer s.Close()

	res, err := a.Get(context.Background(), "/foo", etc.GetOptions{})
	if err != nil {
		t.Fatalf("Get: %s", err)
	}
	if res.Value() != "bar" {
		t.Fatalf("value = %q, want bar", res.Value())
	}
	if res.Index != 5 {
		t.Fatalf("index = %d, want 5", res.Index)
	}
}

func TestAdapterSetSendsFormBody(t *testing.T) {
	var gotBody string
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("method = %s, want PUT", r.Method)
		}
		r.ParseForm()
		gotBody = r.PostForm.Get("value")

		json.NewEncoder(rw).Encode(wireResponse{
			Action: "set",
			Node:   &wireNode{Key: "/foo", Value: strp(gotBody), ModifiedIndex: 1, CreatedIndex: 1},
		})
	})
	defer s.Close()

	res, err := a.Set(context.Background(), "/foo", etc.SetOptions{Value: strp("bar")})
	if err != nil {
		t.Fatalf("Set: %s", err)
	}
	if gotBody != "bar" {
		t.Fatalf("posted value = %q, want bar", gotBody)
	}
	if res.Action != etc.ActionSet {
		t.Fatalf("action = %q, want set", res.Action)
	}
}

func TestAdapterDecodesErrorEnvelope(t *testing.T) {
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
		json.NewEncoder(rw).Encode(wireError{
			ErrorCode: 100,
			Message:   "Key not found",
			Cause:     "/foo",
			Index:     9,
		})
	})
	defer s.Close()

	_, err := a.Get(context.Background(), "/foo", etc.GetOptions{})
	if !etc.IsCode(err, etc.CodeKeyNotFound) {
		t.Fatalf("err = %v, want KeyNotFound", err)
	}
}

func TestAdapterNonJSONErrorBodyBecomesHTTPError(t *testing.T) {
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
		rw.Write([]byte("upstream exploded"))
	})
	defer s.Close()

	_, err := a.Get(context.Background(), "/foo", etc.GetOptions{})
	httpErr, ok := err.(*etc.HTTPError)
	if !ok {
		t.Fatalf("err = %v (%T), want *etc.HTTPError", err, err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", httpErr.StatusCode)
	}
}

func TestAdapterDeleteUsesQueryParams(t *testing.T) {
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method = %s, want DELETE", r.Method)
		}
		if r.URL.Query().Get("prevValue") != "old" {
			t.Fatalf("prevValue = %q, want old", r.URL.Query().Get("prevValue"))
		}
		json.NewEncoder(rw).Encode(wireResponse{
			Action:   "delete",
			PrevNode: &wireNode{Key: "/foo", Value: strp("old"), ModifiedIndex: 1, CreatedIndex: 1},
		})
	})
	defer s.Close()

	res, err := a.Delete(context.Background(), "/foo", etc.DeleteOptions{PrevValue: strp("old")})
	if err != nil {
		t.Fatalf("Delete: %s", err)
	}
	if res.Node != nil {
		t.Fatalf("delete result should carry no Node")
	}
	if res.PrevNode == nil || res.PrevNode.Value != "old" {
		t.Fatalf("PrevNode = %v, want value old", res.PrevNode)
	}
}

func TestAdapterClearClosesIdleConnections(t *testing.T) {
	s, a := newTest(func(rw http.ResponseWriter, r *http.Request) {
		json.NewEncoder(rw).Encode(wireResponse{Action: "get", Node: &wireNode{Key: "/foo"}})
	})
	defer s.Close()

	if _, err := a.Get(context.Background(), "/foo", etc.GetOptions{}); err != nil {
		t.Fatalf("Get: %s", err)
	}
	if err := a.Clear(); err != nil {
		t.Fatalf("Clear: %s", err)
	}
}

func TestAdapterSetRejectsValueAndDirTogether(t *testing.T) {
	a := New(&Config{Endpoint: "http://127.0.0.1:0"})
	_, err := a.Set(context.Background(), "/foo", etc.SetOptions{Value: strp("x"), Dir: true})
	if _, ok := err.(*etc.ValidationError); !ok {
		t.Fatalf("err = %v (%T), want *etc.ValidationError", err, err)
	}
}
