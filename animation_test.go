package reel

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestMoveToReachesTarget(t *testing.T) {
	dot := NewPointMobject("dot", Vec2{})
	a := MoveTo(dot, Vec2{X: 10, Y: 4}, 1, ease.Linear)

	for i := 0; i < 10; i++ {
		a.Update(0.1)
	}

	if !a.Done {
		t.Error("animation should be done after its full duration")
	}
	if math.Abs(dot.Points[0].X-10) > 1e-3 || math.Abs(dot.Points[0].Y-4) > 1e-3 {
		t.Errorf("point = %+v, want ~(10, 4)", dot.Points[0])
	}
}

func TestShiftMovesFamily(t *testing.T) {
	inner := NewPointMobject("inner", Vec2{X: 1, Y: 1})
	group := NewGroup("group", inner)
	a := Shift(group, Vec2{X: 3, Y: 0}, 0.5, ease.Linear)

	for i := 0; i < 5; i++ {
		a.Update(0.1)
	}
	if math.Abs(inner.Points[0].X-4) > 1e-3 {
		t.Errorf("X = %v, want ~4", inner.Points[0].X)
	}
}

func TestFadeInIsIntroducer(t *testing.T) {
	dot := NewPointMobject("dot", Vec2{})
	a := FadeIn(dot, 1, ease.Linear)

	if !a.Introducer() {
		t.Error("FadeIn should introduce its target")
	}
	a.Start()
	if dot.Opacity != 0 {
		t.Errorf("Opacity after Start = %v, want 0", dot.Opacity)
	}
	a.Update(0.5)
	if dot.Opacity < 0.4 || dot.Opacity > 0.6 {
		t.Errorf("Opacity = %v, want ~0.5 at halfway", dot.Opacity)
	}
	a.Update(0.5)
	if math.Abs(dot.Opacity-1) > 1e-3 {
		t.Errorf("Opacity = %v, want ~1", dot.Opacity)
	}
}

func TestFadeOutToZero(t *testing.T) {
	dot := NewPointMobject("dot", Vec2{})
	a := FadeOut(dot, 0.5, ease.Linear)

	for i := 0; i < 5; i++ {
		a.Update(0.1)
	}
	if math.Abs(dot.Opacity) > 1e-3 {
		t.Errorf("Opacity = %v, want ~0", dot.Opacity)
	}
	if !a.Done {
		t.Error("animation should be done")
	}
}

func TestMarkerAnimationsFinishImmediately(t *testing.T) {
	dot := NewPointMobject("dot", Vec2{})
	for _, a := range []*Animation{Animate(dot), Introduce(dot)} {
		a.Update(0.1)
		if !a.Done {
			t.Error("marker animation should be done after one update")
		}
	}
	if Animate(dot).Duration() != 0 {
		t.Error("marker animation duration should be 0")
	}
}
