package etc

import (
	"reflect"
	"testing"
)

func TestKeySegmentsStripsLeadingSlash(t *testing.T) {
	segs := Key("/etc/host/name").Segments()
	want := []string{"etc", "host", "name"}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("segments = %v, want %v", segs, want)
	}
}

func TestRootKeySegmentsEmpty(t *testing.T) {
	if segs := RootKey.Segments(); segs != nil {
		t.Fatalf("root segments = %v, want nil", segs)
	}
	if !RootKey.IsRoot() {
		t.Fatalf("expected RootKey.IsRoot() to be true")
	}
}

func TestJoinKeyRoundTrip(t *testing.T) {
	k := JoinKey("etc", "host", "name")
	if k != "/etc/host/name" {
		t.Fatalf("joined key = %q", k)
	}
	if got := k.Segments(); !reflect.DeepEqual(got, []string{"etc", "host", "name"}) {
		t.Fatalf("round-tripped segments = %v", got)
	}
}

func TestKeyParent(t *testing.T) {
	parent, ok := Key("/etc/host").Parent()
	if !ok || parent != "/etc" {
		t.Fatalf("parent = %q, %v", parent, ok)
	}

	_, ok = RootKey.Parent()
	if ok {
		t.Fatalf("root must have no parent")
	}
}
