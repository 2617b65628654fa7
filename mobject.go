package reel

// Mobject is the fundamental scene element: a node in the containment tree.
// A single flat struct is used for every kind of element; what external
// shape layers hang off it (point geometry, color) travels in exported
// fields. Identity is the node's Handle: two mobjects are the same element
// only if their handles match, regardless of field values.
type Mobject struct {
	// Identity
	handle Handle
	Name   string

	// Hierarchy. children is ordered and owned exclusively by this node.
	Parent   *Mobject
	children []*Mobject

	// Ordering
	ZIndex int

	// Geometry supplied by the external shape layer. A mobject with no
	// points anywhere in its family is structural only and is skipped when
	// extraction filters to drawable members.
	Points  []Vec2
	Color   Color
	Opacity float64

	// Updaters run once per frame while the mobject is in the scene.
	Updaters []Updater
}

// Updater is a per-frame callable attached to a mobject. Updaters must not
// capture live *Mobject pointers: any collaborator they touch is declared in
// Refs and resolved through the UpdateContext at call time, which is what
// lets Snapshot remap them onto cloned graphs.
type Updater struct {
	// Refs declares every mobject the function resolves beyond the one it
	// is attached to.
	Refs []Handle
	Fn   UpdateFunc
}

// UpdateFunc advances one mobject by dt seconds.
type UpdateFunc func(ctx UpdateContext)

// UpdateContext is passed to every UpdateFunc invocation.
type UpdateContext struct {
	// Lookup resolves a handle to the mobject it names in the graph
	// currently being updated. Returns nil for handles outside the graph.
	Lookup func(Handle) *Mobject
	// Self is the mobject the updater is attached to.
	Self *Mobject
	// DT is the frame delta in seconds.
	DT float64

	refs []Handle
}

// Ref resolves the updater's i-th declared ref in the graph being updated.
// Functions address collaborators by position, so a snapshot can remap the
// underlying handles without touching the function.
func (ctx UpdateContext) Ref(i int) *Mobject {
	if ctx.Lookup == nil || i < 0 || i >= len(ctx.refs) {
		return nil
	}
	return ctx.Lookup(ctx.refs[i])
}

// NewMobject creates an empty structural mobject.
func NewMobject(name string) *Mobject {
	return &Mobject{
		handle:  nextHandle(),
		Name:    name,
		Color:   ColorWhite,
		Opacity: 1,
	}
}

// NewGroup creates a mobject containing the given children, in order.
func NewGroup(name string, children ...*Mobject) *Mobject {
	g := NewMobject(name)
	for _, child := range children {
		g.Add(child)
	}
	return g
}

// NewPointMobject creates a mobject with drawable point geometry.
func NewPointMobject(name string, points ...Vec2) *Mobject {
	m := NewMobject(name)
	m.Points = points
	return m
}

// Handle returns the mobject's stable identity.
func (m *Mobject) Handle() Handle {
	return m.handle
}

// --- Tree manipulation ---

// Add appends children to this mobject. A child already parented elsewhere
// is detached from its old parent first. Panics on nil children and on
// cycles; malformed trees are programmer errors, not runtime conditions.
func (m *Mobject) Add(children ...*Mobject) *Mobject {
	for _, child := range children {
		if child == nil {
			panic("reel: cannot add nil mobject")
		}
		if isAncestor(child, m) {
			panic("reel: adding mobject would create a cycle")
		}
		if child.Parent != nil {
			child.Parent.removeChildByHandle(child)
		}
		child.Parent = m
		m.children = append(m.children, child)
	}
	return m
}

// Remove detaches the given children from this mobject. Children not
// present are ignored.
func (m *Mobject) Remove(children ...*Mobject) *Mobject {
	for _, child := range children {
		if child == nil || child.Parent != m {
			continue
		}
		m.removeChildByHandle(child)
		child.Parent = nil
	}
	return m
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (m *Mobject) Children() []*Mobject {
	return m.children
}

// NumChildren returns the number of direct children.
func (m *Mobject) NumChildren() int {
	return len(m.children)
}

// setChildren replaces the child list wholesale, fixing parent links.
// Used by restructuring after it has built a reduced list.
func (m *Mobject) setChildren(children []*Mobject) {
	m.children = children
	for _, child := range children {
		child.Parent = m
	}
}

// --- Family ---

// Family returns this mobject followed by all descendants, depth-first.
// The result is freshly built on every call and never cached.
func (m *Mobject) Family() []*Mobject {
	out := make([]*Mobject, 0, 1+len(m.children))
	return m.appendFamily(out)
}

func (m *Mobject) appendFamily(out []*Mobject) []*Mobject {
	out = append(out, m)
	for _, child := range m.children {
		out = child.appendFamily(out)
	}
	return out
}

// HasPoints reports whether this mobject itself carries drawable geometry.
func (m *Mobject) HasPoints() bool {
	return len(m.Points) > 0
}

// FamilyHasUpdaters reports whether any member of this mobject's family has
// at least one attached updater.
func (m *Mobject) FamilyHasUpdaters() bool {
	for _, member := range m.Family() {
		if len(member.Updaters) > 0 {
			return true
		}
	}
	return false
}

// AddUpdater attaches a per-frame updater to this mobject.
func (m *Mobject) AddUpdater(u Updater) *Mobject {
	m.Updaters = append(m.Updaters, u)
	return m
}

// ClearUpdaters removes all updaters from this mobject's entire family.
func (m *Mobject) ClearUpdaters() *Mobject {
	for _, member := range m.Family() {
		member.Updaters = nil
	}
	return m
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Mobject) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByHandle removes child from m.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (m *Mobject) removeChildByHandle(child *Mobject) {
	for i, c := range m.children {
		if c.handle == child.handle {
			copy(m.children[i:], m.children[i+1:])
			m.children[len(m.children)-1] = nil
			m.children = m.children[:len(m.children)-1]
			return
		}
	}
}
