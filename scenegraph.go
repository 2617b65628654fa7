package reel

import "fmt"

// GraphList names one of the scene graph's top-level mobject lists.
type GraphList uint8

const (
	// ActiveList is the list of everything currently on screen.
	ActiveList GraphList = iota
	// ForegroundList holds mobjects guaranteed to render above all others.
	ForegroundList
	// MovingList is the per-play list of mobjects being recomposited each
	// frame. Empty outside a play.
	MovingList
)

// SceneGraph tracks which mobjects are on screen and in what paint order.
// It owns two ordered top-level lists: active (everything displayed, from
// background to foreground) and foreground (mobjects re-appended on every
// Add so they always render topmost). During a play it additionally tracks
// the moving list so newly added content joins the recomposited set.
//
// All operations are frame-synchronous: a mutation runs to completion
// before the next begins, and restructuring commits its rewritten lists
// atomically, so callers never observe a half-applied restructure.
type SceneGraph struct {
	cfg        Config
	active     []*Mobject
	foreground []*Mobject
	moving     []*Mobject
}

// NewSceneGraph creates an empty scene graph using the given configuration.
func NewSceneGraph(cfg Config) *SceneGraph {
	return &SceneGraph{cfg: cfg.withDefaults()}
}

// Active returns the active list. The returned slice MUST NOT be mutated by
// the caller.
func (g *SceneGraph) Active() []*Mobject {
	return g.active
}

// Foreground returns the foreground list. The returned slice MUST NOT be
// mutated by the caller.
func (g *SceneGraph) Foreground() []*Mobject {
	return g.foreground
}

// Lookup resolves a handle to the mobject it names anywhere in the current
// graph, or nil if the handle is not present.
func (g *SceneGraph) Lookup(h Handle) *Mobject {
	for _, top := range listUpdate(g.active, g.foreground) {
		for _, m := range top.Family() {
			if m.handle == h {
				return m
			}
		}
	}
	return nil
}

// Add displays the given mobjects, from background to foreground in call
// order. A mobject already in the scene is moved to the top: its existing
// occurrence is removed by restructuring before the append. Foreground
// mobjects are re-appended after the new content, which is what keeps them
// rendering above everything else.
func (g *SceneGraph) Add(mobjects ...*Mobject) error {
	if err := checkMobjects(mobjects); err != nil {
		return err
	}
	incoming := dedupLastOccurrence(append(append([]*Mobject{}, mobjects...), g.foreground...))
	g.Restructure(incoming, ActiveList, true)
	g.active = append(g.active, incoming...)
	if len(g.moving) > 0 {
		g.Restructure(incoming, MovingList, true)
		g.moving = append(g.moving, incoming...)
	}
	return nil
}

// Remove takes the given mobjects off screen. Families are expanded before
// matching, so removing a container removes its entire subtree; groups that
// lose only some members are rewritten in place with the survivors.
func (g *SceneGraph) Remove(mobjects ...*Mobject) error {
	if err := checkMobjects(mobjects); err != nil {
		return err
	}
	g.Restructure(mobjects, ActiveList, true)
	g.Restructure(mobjects, ForegroundList, true)
	return nil
}

// AddToForeground adds mobjects to the foreground list and to the scene.
// Foreground members render above all other content on every frame.
func (g *SceneGraph) AddToForeground(mobjects ...*Mobject) error {
	if err := checkMobjects(mobjects); err != nil {
		return err
	}
	g.foreground = listUpdate(g.foreground, mobjects)
	return g.Add(mobjects...)
}

// RemoveFromForeground removes mobjects from the foreground list only; they
// remain in the scene with ordinary paint order.
func (g *SceneGraph) RemoveFromForeground(mobjects ...*Mobject) error {
	if err := checkMobjects(mobjects); err != nil {
		return err
	}
	g.Restructure(mobjects, ForegroundList, true)
	return nil
}

// Replace swaps old for new in place, preserving paint order and parent
// structure. The search is breadth-first: each list's top-level entries are
// scanned before any entry's children, and exactly the first match is
// replaced. Returns ErrNotFound if old is in neither the active nor the
// foreground list.
func (g *SceneGraph) Replace(old, new *Mobject) error {
	if old == nil || new == nil {
		return fmt.Errorf("replace: %w", ErrInvalidArgument)
	}
	if replaceInList(g.active, nil, old, new) || replaceInList(g.foreground, nil, old, new) {
		return nil
	}
	return fmt.Errorf("replace %q: %w", old.Name, ErrNotFound)
}

// replaceInList scans every entry of list for old before recursing into any
// entry's children: replace targets are usually top-level, and shallow
// matches must win over deep ones. parent is the mobject owning list, nil
// for the graph's own top-level lists.
func replaceInList(list []*Mobject, parent, old, new *Mobject) bool {
	for i, m := range list {
		if m.handle == old.handle {
			list[i] = new
			if parent != nil {
				new.Parent = parent
				old.Parent = nil
			}
			return true
		}
	}
	for _, m := range list {
		if replaceInList(m.children, m, old, new) {
			return true
		}
	}
	return false
}

// Restructure removes the given mobjects from one of the graph's lists,
// rewriting enclosing groups so surviving siblings keep their position and
// order. With extractFamilies true, each listed mobject's descendants join
// the removal set (removing a container removes its contents); with false
// only the exact identities match.
//
// The rewritten list and any reduced child lists are built fresh and
// committed in one step at the end, so a caller never observes a partially
// restructured graph.
func (g *SceneGraph) Restructure(toRemove []*Mobject, list GraphList, extractFamilies bool) {
	removal := newHandleSet(toRemove)
	if extractFamilies {
		removal = newHandleSet(ExtractFamilyMembers(toRemove, FamilyOptions{
			UseZIndex: g.cfg.UseZIndex,
			Dedup:     DedupFirstOccurrence,
		}))
	}

	var commits []childCommit
	rebuilt := g.restructuredList(g.list(list), removal, &commits)

	// Commit point: apply the reduced child lists, then swap the top list.
	for _, c := range commits {
		c.parent.setChildren(c.children)
	}
	g.setList(list, rebuilt)
}

// childCommit is a deferred child-list replacement recorded while a
// restructure pass builds its result.
type childCommit struct {
	parent   *Mobject
	children []*Mobject
}

// restructuredList builds the restructured form of list against the removal
// set. For each entry: drop it when it is itself in the set; keep it
// untouched when its family is disjoint from the set; otherwise keep it
// with a recursively reduced child list. Containers emptied by the
// reduction are kept or dropped per the configured EmptyGroupPolicy.
func (g *SceneGraph) restructuredList(list []*Mobject, removal handleSet, commits *[]childCommit) []*Mobject {
	kept := make([]*Mobject, 0, len(list))
	for _, m := range list {
		if removal.has(m) {
			continue
		}
		intersect := removal.intersectFamily(m)
		if intersect == nil {
			kept = append(kept, m)
			continue
		}
		children := g.restructuredList(m.children, intersect, commits)
		if len(children) == 0 && len(m.children) > 0 && g.cfg.EmptyGroups == DropEmptyGroups {
			continue
		}
		*commits = append(*commits, childCommit{parent: m, children: children})
		kept = append(kept, m)
	}
	return kept
}

// BringToFront re-adds the given mobjects, pushing them to the top of the
// paint order (below only the foreground list).
func (g *SceneGraph) BringToFront(mobjects ...*Mobject) error {
	return g.Add(mobjects...)
}

// BringToBack restructure-removes the given mobjects from the active list
// and prepends them, making them bottommost: they are drawn first on the
// next frame. Subtree contents and the foreground list are untouched; a
// foreground member brought to back is re-appended topmost on the next Add.
func (g *SceneGraph) BringToBack(mobjects ...*Mobject) error {
	if err := checkMobjects(mobjects); err != nil {
		return err
	}
	g.Restructure(mobjects, ActiveList, true)
	g.active = append(append([]*Mobject{}, mobjects...), g.active...)
	return nil
}

// Clear empties the active, foreground, and moving lists.
func (g *SceneGraph) Clear() {
	g.active = nil
	g.foreground = nil
	g.moving = nil
}

// TopLevelMobjects returns the active entries that are not a descendant of
// any other active entry.
func (g *SceneGraph) TopLevelMobjects() []*Mobject {
	families := make([][]*Mobject, len(g.active))
	for i, m := range g.active {
		families[i] = m.Family()
	}
	var out []*Mobject
	for _, m := range g.active {
		// An entry occurring in exactly one family occurs only in its own.
		count := 0
		for _, fam := range families {
			for _, member := range fam {
				if member.handle == m.handle {
					count++
					break
				}
			}
		}
		if count == 1 {
			out = append(out, m)
		}
	}
	return out
}

// FamilyMembers returns the family members of everything in the scene,
// active and foreground, flattened per the graph's configuration.
func (g *SceneGraph) FamilyMembers() []*Mobject {
	return ExtractFamilyMembers(listUpdate(g.active, g.foreground), FamilyOptions{
		UseZIndex: g.cfg.UseZIndex,
		Dedup:     g.cfg.Dedup,
	})
}

// list returns the named top-level list.
func (g *SceneGraph) list(which GraphList) []*Mobject {
	switch which {
	case ForegroundList:
		return g.foreground
	case MovingList:
		return g.moving
	default:
		return g.active
	}
}

// setList replaces the named top-level list.
func (g *SceneGraph) setList(which GraphList, list []*Mobject) {
	switch which {
	case ForegroundList:
		g.foreground = list
	case MovingList:
		g.moving = list
	default:
		g.active = list
	}
}

// checkMobjects rejects nil entries before any list is touched, keeping
// failed calls free of side effects.
func checkMobjects(mobjects []*Mobject) error {
	for _, m := range mobjects {
		if m == nil {
			return fmt.Errorf("scene graph: %w", ErrInvalidArgument)
		}
	}
	return nil
}

// listUpdate returns the members of l1 not present in l2, followed by l2.
// Used to combine lists while keeping the second list's entries topmost.
func listUpdate(l1, l2 []*Mobject) []*Mobject {
	in2 := newHandleSet(l2)
	out := make([]*Mobject, 0, len(l1)+len(l2))
	for _, m := range l1 {
		if !in2.has(m) {
			out = append(out, m)
		}
	}
	return append(out, l2...)
}

// listDifference returns the members of l1 not present in l2, in order.
func listDifference(l1, l2 []*Mobject) []*Mobject {
	in2 := newHandleSet(l2)
	out := make([]*Mobject, 0, len(l1))
	for _, m := range l1 {
		if !in2.has(m) {
			out = append(out, m)
		}
	}
	return out
}

// dedupLastOccurrence drops all but the final occurrence of each handle,
// preserving the order of the occurrences it keeps. A mobject passed to Add
// that is also in the foreground must end up in the list once, at its
// topmost (foreground) position.
func dedupLastOccurrence(list []*Mobject) []*Mobject {
	counts := make(map[Handle]int, len(list))
	for _, m := range list {
		counts[m.handle]++
	}
	out := make([]*Mobject, 0, len(list))
	for _, m := range list {
		counts[m.handle]--
		if counts[m.handle] == 0 {
			out = append(out, m)
		}
	}
	return out
}
