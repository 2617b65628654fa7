package reel

import "fmt"

// Snapshot deep-clones the scene graph: every tree reachable from the
// active and foreground lists is copied, and updater refs are remapped onto
// the cloned mobjects. A mobject shared between lists (or reachable twice)
// maps to a single clone, preserving the graph's aliasing structure.
//
// Updaters must declare every collaborator in Refs; a ref that names a
// mobject outside the graph fails the whole snapshot with
// ErrStructuralInconsistency, and no partial clone is returned.
func (g *SceneGraph) Snapshot() (*SceneGraph, error) {
	remap := make(map[Handle]*Mobject)

	clone := &SceneGraph{cfg: g.cfg}
	clone.active = cloneList(g.active, remap)
	clone.foreground = cloneList(g.foreground, remap)
	clone.moving = cloneList(g.moving, remap)

	// Remap updater refs after every tree is cloned, so refs across
	// top-level entries resolve regardless of list order.
	for _, m := range remap {
		for ui := range m.Updaters {
			u := &m.Updaters[ui]
			if len(u.Refs) == 0 {
				continue
			}
			refs := make([]Handle, len(u.Refs))
			for ri, ref := range u.Refs {
				target, ok := remap[ref]
				if !ok {
					return nil, fmt.Errorf("snapshot: updater on %q ref %d: %w",
						m.Name, ref, ErrStructuralInconsistency)
				}
				refs[ri] = target.handle
			}
			u.Refs = refs
		}
	}
	return clone, nil
}

// cloneList clones each top-level entry, reusing clones already recorded in
// remap.
func cloneList(list []*Mobject, remap map[Handle]*Mobject) []*Mobject {
	if list == nil {
		return nil
	}
	out := make([]*Mobject, len(list))
	for i, m := range list {
		out[i] = cloneTree(m, remap)
	}
	return out
}

// cloneTree deep-clones one mobject subtree. Clones receive fresh handles;
// remap records old handle -> clone for ref remapping and aliasing.
func cloneTree(m *Mobject, remap map[Handle]*Mobject) *Mobject {
	if existing, ok := remap[m.handle]; ok {
		return existing
	}
	c := &Mobject{
		handle:  nextHandle(),
		Name:    m.Name,
		ZIndex:  m.ZIndex,
		Color:   m.Color,
		Opacity: m.Opacity,
	}
	if len(m.Points) > 0 {
		c.Points = append([]Vec2(nil), m.Points...)
	}
	if len(m.Updaters) > 0 {
		c.Updaters = append([]Updater(nil), m.Updaters...)
		for i := range c.Updaters {
			c.Updaters[i].Refs = append([]Handle(nil), m.Updaters[i].Refs...)
		}
	}
	remap[m.handle] = c
	if len(m.children) > 0 {
		children := make([]*Mobject, len(m.children))
		for i, child := range m.children {
			children[i] = cloneTree(child, remap)
		}
		c.setChildren(children)
	}
	return c
}
