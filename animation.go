package reel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is one entry of a play batch: a target mobject plus whether the
// animation introduces it to the scene (rather than mutating something
// already on screen). Property animations drive up to 4 float64 values with
// gween tweens; Update applies them each frame.
//
// There is no animation manager; the render loop calls Update itself.
type Animation struct {
	// Mobject is the animation target.
	Mobject *Mobject

	introducer bool

	tweens   [4]*gween.Tween
	count    int
	duration float32
	prev     [4]float64
	apply    func(m *Mobject, vals, prev [4]float64)
	start    func(m *Mobject)

	Done bool
}

// Introducer reports whether this animation brings its target into the
// scene instead of mutating existing content.
func (a *Animation) Introducer() bool {
	return a.introducer
}

// Duration returns the animation's run time in seconds. Zero for marker
// animations that drive no property.
func (a *Animation) Duration() float32 {
	return a.duration
}

// Start runs the animation's initial-state hook, if any. Called once by the
// render loop before the first frame of a play.
func (a *Animation) Start() {
	if a.start != nil {
		a.start(a.Mobject)
	}
}

// Update advances all tweens by dt seconds and applies the values to the
// target.
func (a *Animation) Update(dt float32) {
	if a.Done || a.count == 0 {
		a.Done = true
		return
	}
	var vals [4]float64
	allDone := true
	for i := 0; i < a.count; i++ {
		v, finished := a.tweens[i].Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	if a.apply != nil {
		a.apply(a.Mobject, vals, a.prev)
	}
	a.prev = vals
	a.Done = allDone
}

// Animate marks an already-displayed mobject as the target of this play
// without driving any property. Useful when updaters do the actual work.
func Animate(m *Mobject) *Animation {
	return &Animation{Mobject: m}
}

// Introduce brings a mobject into the scene at play time with no property
// animation.
func Introduce(m *Mobject) *Animation {
	return &Animation{Mobject: m, introducer: true}
}

// MoveTo animates a mobject's point geometry to be centered at the given
// position over duration seconds.
func MoveTo(m *Mobject, to Vec2, duration float32, fn ease.TweenFunc) *Animation {
	cx, cy := centerOfPoints(m)
	a := &Animation{Mobject: m, count: 2, duration: duration}
	a.tweens[0] = gween.New(float32(cx), float32(to.X), duration, fn)
	a.tweens[1] = gween.New(float32(cy), float32(to.Y), duration, fn)
	a.prev = [4]float64{cx, cy}
	a.apply = func(m *Mobject, vals, prev [4]float64) {
		dx, dy := vals[0]-prev[0], vals[1]-prev[1]
		for _, member := range m.Family() {
			for i := range member.Points {
				member.Points[i].X += dx
				member.Points[i].Y += dy
			}
		}
	}
	return a
}

// Shift animates a mobject's point geometry by the given offset over
// duration seconds.
func Shift(m *Mobject, by Vec2, duration float32, fn ease.TweenFunc) *Animation {
	a := &Animation{Mobject: m, count: 2, duration: duration}
	a.tweens[0] = gween.New(0, float32(by.X), duration, fn)
	a.tweens[1] = gween.New(0, float32(by.Y), duration, fn)
	a.apply = func(m *Mobject, vals, prev [4]float64) {
		dx, dy := vals[0]-prev[0], vals[1]-prev[1]
		for _, member := range m.Family() {
			for i := range member.Points {
				member.Points[i].X += dx
				member.Points[i].Y += dy
			}
		}
	}
	return a
}

// FadeIn introduces a mobject by animating its opacity from 0 to its
// current value over duration seconds.
func FadeIn(m *Mobject, duration float32, fn ease.TweenFunc) *Animation {
	target := m.Opacity
	a := &Animation{Mobject: m, introducer: true, count: 1, duration: duration}
	a.tweens[0] = gween.New(0, float32(target), duration, fn)
	a.start = func(m *Mobject) {
		for _, member := range m.Family() {
			member.Opacity = 0
		}
	}
	a.apply = func(m *Mobject, vals, prev [4]float64) {
		for _, member := range m.Family() {
			member.Opacity = vals[0]
		}
	}
	return a
}

// FadeOut animates a mobject's opacity to 0 over duration seconds. The
// caller removes the mobject after the play if it should leave the scene.
func FadeOut(m *Mobject, duration float32, fn ease.TweenFunc) *Animation {
	a := &Animation{Mobject: m, count: 1, duration: duration}
	a.tweens[0] = gween.New(float32(m.Opacity), 0, duration, fn)
	a.apply = func(m *Mobject, vals, prev [4]float64) {
		for _, member := range m.Family() {
			member.Opacity = vals[0]
		}
	}
	return a
}

// centerOfPoints returns the centroid of all point geometry in m's family.
func centerOfPoints(m *Mobject) (x, y float64) {
	n := 0
	for _, member := range m.Family() {
		for _, p := range member.Points {
			x += p.X
			y += p.Y
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return x / float64(n), y / float64(n)
}
