package etc

import (
	"context"
	"testing"
	"time"
)

// recordingAdapter captures the options it was called with, so the
// façade tests can assert on wiring without a real backend.
type recordingAdapter struct {
	getOpts    GetOptions
	setOpts    SetOptions
	appendOpts SetOptions
	deleteOpts DeleteOptions
	cleared    bool
}

func (a *recordingAdapter) Get(_ context.Context, _ Key, opts GetOptions) (*Result, error) {
	a.getOpts = opts
	return &Result{Action: ActionGet}, nil
}

func (a *recordingAdapter) Set(_ context.Context, _ Key, opts SetOptions) (*Result, error) {
	a.setOpts = opts
	return &Result{Action: ActionSet}, nil
}

func (a *recordingAdapter) Append(_ context.Context, _ Key, opts SetOptions) (*Result, error) {
	a.appendOpts = opts
	return &Result{Action: ActionCreate}, nil
}

func (a *recordingAdapter) Delete(_ context.Context, _ Key, opts DeleteOptions) (*Result, error) {
	a.deleteOpts = opts
	return &Result{Action: ActionDelete}, nil
}

func (a *recordingAdapter) Clear() error {
	a.cleared = true
	return nil
}

func TestKeyspaceGetIsNonBlocking(t *testing.T) {
	a := &recordingAdapter{}
	ks := New(a)

	_, err := ks.Get(context.Background(), "/etc", true, true, false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a.getOpts.Wait {
		t.Fatalf("Get must not set Wait")
	}
	if !a.getOpts.Recursive || !a.getOpts.Sorted {
		t.Fatalf("Get must forward Recursive/Sorted")
	}
}

func TestKeyspaceWaitSetsWaitIndex(t *testing.T) {
	a := &recordingAdapter{}
	ks := New(a)

	_, err := ks.Wait(context.Background(), "/etc", 7, true, false, false, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !a.getOpts.Wait || a.getOpts.WaitIndex != 7 {
		t.Fatalf("Wait must set Wait=true and WaitIndex=7, got %+v", a.getOpts)
	}
}

func TestKeyspaceCreateRequiresAbsence(t *testing.T) {
	a := &recordingAdapter{}
	ks := New(a)

	v := "hello"
	_, err := ks.Create(context.Background(), "/etc", &v, false, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a.setOpts.PrevExist == nil || *a.setOpts.PrevExist != false {
		t.Fatalf("Create must set PrevExist=false, got %+v", a.setOpts.PrevExist)
	}
}

func TestKeyspaceUpdateRequiresExistence(t *testing.T) {
	a := &recordingAdapter{}
	ks := New(a)

	v := "hello"
	_, err := ks.Update(context.Background(), "/etc", &v, false, 0, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a.setOpts.PrevExist == nil || *a.setOpts.PrevExist != true {
		t.Fatalf("Update must set PrevExist=true, got %+v", a.setOpts.PrevExist)
	}
}

func TestKeyspaceClearDelegates(t *testing.T) {
	a := &recordingAdapter{}
	ks := New(a)

	if err := ks.Clear(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !a.cleared {
		t.Fatalf("expected Clear to delegate to the adapter")
	}
}
