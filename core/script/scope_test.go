package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopeParentChain(t *testing.T) {
	root := NewScope(nil)
	root.Declare("user")
	root.Declare("channel")

	child := NewScope(root)
	child.Declare("msg")
	child.Declare("user") // shadows, no duplicate in Names

	if !child.Has("msg") || !child.Has("channel") {
		t.Error("child should see its own names and ancestors'")
	}
	if root.Has("msg") {
		t.Error("declarations must not leak upward")
	}

	want := []string{"msg", "user", "channel"}
	if diff := cmp.Diff(want, child.Names()); diff != "" {
		t.Errorf("effective names mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeRedeclareIsNoop(t *testing.T) {
	s := NewScope(nil)
	s.Declare("x")
	s.Declare("x")
	s.Declare("")

	if diff := cmp.Diff([]string{"x"}, s.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeSnapshotIsolation(t *testing.T) {
	live := NewScope(nil)
	live.Declare("before")

	snap := live.Snapshot()
	live.Declare("after")

	if snap.Has("after") {
		t.Error("snapshot must not see later declarations")
	}
	if !snap.Has("before") {
		t.Error("snapshot must keep earlier declarations")
	}
}
