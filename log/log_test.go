package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogfTagsEvent(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	DebugLogf("mock/GET", "key %s resolved at index %d", "/etc", 7)

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	want := "mock/GET: key /etc resolved at index 7"
	if entries[0].Message != want {
		t.Fatalf("message = %q, want %q", entries[0].Message, want)
	}
}

func TestFatalLogfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected FatalLogf to panic")
		}
	}()
	FatalLogf("mock/INIT", "unrecoverable: %s", "boom")
}
