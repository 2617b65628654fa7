package reel

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a backend writes pixels.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default draw color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default frame background.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D point in frame pixel coordinates. The origin is at the
// top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Handle is the stable integer identity of a Mobject. Handles are assigned
// once at construction and never reused; all membership tests in the scene
// graph are handle comparisons, never value comparisons.
type Handle uint32

// handleCounter is a plain counter (no atomic, reel is single-threaded).
var handleCounter uint32

func nextHandle() Handle {
	handleCounter++
	return Handle(handleCounter)
}

// handleSet is the membership set used by restructuring and partitioning.
type handleSet map[Handle]struct{}

func newHandleSet(mobjects []*Mobject) handleSet {
	s := make(handleSet, len(mobjects))
	for _, m := range mobjects {
		s[m.handle] = struct{}{}
	}
	return s
}

func (s handleSet) has(m *Mobject) bool {
	_, ok := s[m.handle]
	return ok
}

// intersectFamily returns the subset of s that occurs anywhere in m's family.
// Returns nil when the intersection is empty.
func (s handleSet) intersectFamily(m *Mobject) handleSet {
	var out handleSet
	for _, member := range m.Family() {
		if _, ok := s[member.handle]; ok {
			if out == nil {
				out = make(handleSet)
			}
			out[member.handle] = struct{}{}
		}
	}
	return out
}
