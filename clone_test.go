package reel

import (
	"errors"
	"testing"
)

func TestSnapshotClonesStructure(t *testing.T) {
	g := newTestGraph()
	m1 := NewPointMobject("m1", Vec2{X: 1, Y: 1})
	m2 := NewPointMobject("m2", Vec2{X: 2, Y: 2})
	group := NewGroup("group", m1, m2)
	if err := g.Add(group); err != nil {
		t.Fatal(err)
	}

	clone, err := g.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	if len(clone.Active()) != 1 {
		t.Fatalf("clone active = %d entries, want 1", len(clone.Active()))
	}
	cg := clone.Active()[0]
	if cg == group {
		t.Fatal("clone must not share the original pointer")
	}
	if cg.Handle() == group.Handle() {
		t.Error("clone should get a fresh handle")
	}
	if cg.NumChildren() != 2 || cg.Children()[0].Name != "m1" {
		t.Error("clone should preserve child structure and order")
	}

	// Mutating the clone must not touch the original.
	cg.Children()[0].Points[0] = Vec2{X: 9, Y: 9}
	if m1.Points[0] != (Vec2{X: 1, Y: 1}) {
		t.Error("clone points alias the original")
	}
}

func TestSnapshotPreservesAliasing(t *testing.T) {
	g := newTestGraph()
	f := NewPointMobject("f", Vec2{})
	if err := g.AddToForeground(f); err != nil {
		t.Fatal(err)
	}

	clone, err := g.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(clone.Active()) != 1 || len(clone.Foreground()) != 1 {
		t.Fatal("clone lists should each hold one entry")
	}
	// f is the same mobject in both lists; the clone must keep that.
	if clone.Active()[0] != clone.Foreground()[0] {
		t.Error("shared mobject should map to a single clone")
	}
}

func TestSnapshotRemapsUpdaterRefs(t *testing.T) {
	g := newTestGraph()
	leader := NewPointMobject("leader", Vec2{X: 5, Y: 5})
	follower := NewPointMobject("follower", Vec2{})
	follower.AddUpdater(Updater{
		Refs: []Handle{leader.Handle()},
		Fn: func(ctx UpdateContext) {
			if target := ctx.Ref(0); target != nil {
				ctx.Self.Points[0] = target.Points[0]
			}
		},
	})
	if err := g.Add(leader, follower); err != nil {
		t.Fatal(err)
	}

	clone, err := g.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	cloneLeader := clone.Active()[0]
	cloneFollower := clone.Active()[1]
	refs := cloneFollower.Updaters[0].Refs
	if len(refs) != 1 || refs[0] != cloneLeader.Handle() {
		t.Fatalf("refs = %v, want [%d]", refs, cloneLeader.Handle())
	}

	// Running the cloned updater resolves the cloned leader, not the
	// original.
	cloneLeader.Points[0] = Vec2{X: 7, Y: 7}
	u := cloneFollower.Updaters[0]
	u.Fn(UpdateContext{Lookup: clone.Lookup, Self: cloneFollower, DT: 0.1, refs: u.Refs})
	if cloneFollower.Points[0] != (Vec2{X: 7, Y: 7}) {
		t.Errorf("follower = %+v, want cloned leader position", cloneFollower.Points[0])
	}
	if follower.Points[0] != (Vec2{}) {
		t.Error("original follower must be untouched")
	}
}

func TestSnapshotRejectsOutsideRef(t *testing.T) {
	g := newTestGraph()
	outside := NewPointMobject("outside", Vec2{})
	m := NewPointMobject("m", Vec2{})
	m.AddUpdater(Updater{
		Refs: []Handle{outside.Handle()},
		Fn:   func(ctx UpdateContext) {},
	})
	if err := g.Add(m); err != nil {
		t.Fatal(err)
	}

	if _, err := g.Snapshot(); !errors.Is(err, ErrStructuralInconsistency) {
		t.Errorf("err = %v, want ErrStructuralInconsistency", err)
	}
}
