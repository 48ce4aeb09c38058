package etc

import (
	"reflect"
	"testing"
)

func TestNodeSortedNodes(t *testing.T) {
	dir := &Node{Key: "/etc", Dir: true, Children: []*Node{
		{Key: "/etc/b", Value: "2"},
		{Key: "/etc/a", Value: "1"},
	}}

	sorted := dir.SortedNodes()
	got := []string{string(sorted[0].Key), string(sorted[1].Key)}
	want := []string{"/etc/a", "/etc/b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted keys = %v, want %v", got, want)
	}
	// SortedNodes must not mutate the original order.
	if dir.Nodes()[0].Key != "/etc/b" {
		t.Fatalf("SortedNodes mutated the directory's own child order")
	}
}

func TestNodeValues(t *testing.T) {
	dir := &Node{Dir: true, Children: []*Node{
		{Value: "one"}, {Value: "two"}, {Value: "three"},
	}}
	got := dir.Values()
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
}

func TestNodeWithoutChildrenCopies(t *testing.T) {
	original := &Node{Key: "/etc", Dir: true, Children: []*Node{{Key: "/etc/a"}}}
	stripped := original.WithoutChildren()

	if len(stripped.Nodes()) != 0 {
		t.Fatalf("expected stripped node to have no children")
	}
	if len(original.Nodes()) != 1 {
		t.Fatalf("WithoutChildren must not mutate the original")
	}
}

func TestNodeHasTTL(t *testing.T) {
	var n *Node
	if n.HasTTL() {
		t.Fatalf("nil node must report HasTTL() == false")
	}
}
