package etc

import "testing"

func TestDecodeActionRejectsUnknown(t *testing.T) {
	if _, err := decodeAction("teleport"); err == nil {
		t.Fatalf("expected an error for an unrecognized action")
	}
}

func TestDecodeActionTotalOverClosedSet(t *testing.T) {
	for _, a := range []Action{
		ActionGet, ActionSet, ActionUpdate, ActionCreate, ActionDelete,
		ActionExpire, ActionCompareAndSwap, ActionCompareAndDelete,
	} {
		got, err := decodeAction(string(a))
		if err != nil {
			t.Fatalf("decodeAction(%q) returned error: %s", a, err)
		}
		if got != a {
			t.Fatalf("decodeAction(%q) = %q", a, got)
		}
	}
}

func TestResultActionDispatch(t *testing.T) {
	cases := []struct {
		compared, prevExist bool
		want                Action
	}{
		{true, true, ActionCompareAndSwap},
		{true, false, ActionCompareAndSwap},
		{false, true, ActionUpdate},
		{false, false, ActionSet},
	}
	for _, c := range cases {
		if got := ResultActionForSet(c.compared, c.prevExist); got != c.want {
			t.Fatalf("ResultActionForSet(%v, %v) = %q, want %q", c.compared, c.prevExist, got, c.want)
		}
	}
}

func TestResultDeleteReadsPrevNode(t *testing.T) {
	r := &Result{Action: ActionDelete, PrevNode: &Node{Key: "/etc", Value: "old"}}
	if r.Key() != "/etc" {
		t.Fatalf("Key() = %q, want /etc", r.Key())
	}
}
