package reel

import "testing"

func addAll(t *testing.T, g *SceneGraph, mobjects ...*Mobject) {
	t.Helper()
	for _, m := range mobjects {
		if err := g.Add(m); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPartitionUpdaterStartsMovingSuffix(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	b := NewPointMobject("b", Vec2{})
	c := NewPointMobject("c", Vec2{})
	d := NewPointMobject("d", Vec2{})
	addAll(t, g, a, b, c, d)

	c.AddUpdater(Updater{Fn: func(ctx UpdateContext) {}})

	moving, static, err := g.MovingAndStaticMembers(nil)
	if err != nil {
		t.Fatal(err)
	}
	// Everything painted after the first dynamic member moves with it.
	assertOrder(t, moving, []*Mobject{c, d})
	assertOrder(t, static, []*Mobject{a, b})
}

func TestPartitionNoDynamicMembers(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	b := NewPointMobject("b", Vec2{})
	addAll(t, g, a, b)

	moving, static, err := g.MovingAndStaticMembers(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(moving) != 0 {
		t.Errorf("moving = %d members, want 0", len(moving))
	}
	assertOrder(t, static, []*Mobject{a, b})
}

func TestPartitionDirectTarget(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	b := NewPointMobject("b", Vec2{})
	c := NewPointMobject("c", Vec2{})
	addAll(t, g, a, b, c)

	moving, static, err := g.MovingAndStaticMembers([]*Animation{Animate(b)})
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, moving, []*Mobject{b, c})
	assertOrder(t, static, []*Mobject{a})
}

func TestPartitionForegroundIsAlwaysMoving(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	f := NewPointMobject("f", Vec2{})
	addAll(t, g, a)
	if err := g.AddToForeground(f); err != nil {
		t.Fatal(err)
	}

	moving, static, err := g.MovingAndStaticMembers(nil)
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, moving, []*Mobject{f})
	assertOrder(t, static, []*Mobject{a})
}

func TestPartitionIntroducerMergedButStatic(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	incoming := NewPointMobject("incoming", Vec2{})
	addAll(t, g, a)

	moving, static, err := g.MovingAndStaticMembers([]*Animation{Introduce(incoming)})
	if err != nil {
		t.Fatal(err)
	}
	// The introducer's target joins the scene but does not by itself force
	// a dynamic classification.
	if !newHandleSet(g.Active()).has(incoming) {
		t.Error("introducer target should be merged into active")
	}
	if len(moving) != 0 {
		t.Errorf("moving = %d members, want 0", len(moving))
	}
	assertOrder(t, static, []*Mobject{a, incoming})
}

func TestPartitionAbsentDirectTargetMergedAndMoving(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	absent := NewPointMobject("absent", Vec2{})
	addAll(t, g, a)

	moving, static, err := g.MovingAndStaticMembers([]*Animation{Animate(absent)})
	if err != nil {
		t.Fatal(err)
	}
	// A direct target the scene has not seen yet is merged before
	// partitioning and classified dynamic, never left in neither set.
	if !newHandleSet(g.Active()).has(absent) {
		t.Error("absent target should be merged into active")
	}
	assertOrder(t, moving, []*Mobject{absent})
	assertOrder(t, static, []*Mobject{a})
}

func TestPartitionGroupTargetMovesWholeFamily(t *testing.T) {
	g := newTestGraph()
	a := NewPointMobject("a", Vec2{})
	m1 := NewPointMobject("m1", Vec2{})
	m2 := NewPointMobject("m2", Vec2{})
	group := NewGroup("group", m1, m2)
	addAll(t, g, a, group)

	moving, static, err := g.MovingAndStaticMembers([]*Animation{Animate(group)})
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, moving, []*Mobject{group, m1, m2})
	assertOrder(t, static, []*Mobject{a})
}
