package reel

// mergeAnimatedMobjects brings animation targets into the scene before a
// play begins. Every target absent from the scene is merged via Add so
// partitioning and compositing see it; targets already present are left
// where they are. Whether the target then counts as dynamic is decided by
// movingMobjects, not here.
func (g *SceneGraph) mergeAnimatedMobjects(batch []*Animation) error {
	current := newHandleSet(g.FamilyMembers())
	for _, anim := range batch {
		if anim.Mobject == nil || current.has(anim.Mobject) {
			continue
		}
		if err := g.Add(anim.Mobject); err != nil {
			return err
		}
		for _, member := range anim.Mobject.Family() {
			current[member.handle] = struct{}{}
		}
	}
	return nil
}

// movingMobjects scans the scene's flattened family sequence in paint order
// and returns the suffix that must be recomposited each frame. A member is
// dynamic when it is the direct target of a non-introducer batch entry, has
// an updater anywhere in its family, or sits in the foreground. Everything
// painted after the first dynamic member belongs to the suffix: once one
// element moves, anything drawn over it would otherwise go stale.
func (g *SceneGraph) movingMobjects(batch []*Animation) []*Mobject {
	targets := make(handleSet, len(batch))
	for _, anim := range batch {
		if anim.introducer || anim.Mobject == nil {
			continue
		}
		targets[anim.Mobject.handle] = struct{}{}
	}

	foreground := newHandleSet(g.foreground)
	members := g.FamilyMembers()
	for i, m := range members {
		if targets.has(m) || m.FamilyHasUpdaters() || foreground.has(m) {
			return members[i:]
		}
	}
	return nil
}

// MovingAndStaticMembers classifies every drawable member of the scene as
// moving (recomposited each frame of the play) or static (renderable once
// into the cached background raster). Batch targets absent from the scene
// are merged first; introducer targets do not themselves force a member
// into the moving set.
func (g *SceneGraph) MovingAndStaticMembers(batch []*Animation) (moving, static []*Mobject, err error) {
	if err := g.mergeAnimatedMobjects(batch); err != nil {
		return nil, nil, err
	}

	all := ExtractFamilyMembers(listUpdate(g.active, g.foreground), FamilyOptions{
		UseZIndex:      g.cfg.UseZIndex,
		OnlyWithPoints: true,
		Dedup:          g.cfg.Dedup,
	})
	moving = ExtractFamilyMembers(g.movingMobjects(batch), FamilyOptions{
		UseZIndex: g.cfg.UseZIndex,
		Dedup:     g.cfg.Dedup,
	})
	static = listDifference(all, moving)
	return moving, static, nil
}

// beginPlay records the moving set for the duration of a play so Add can
// keep it consistent, and endPlay clears it.
func (g *SceneGraph) beginPlay(moving []*Mobject) {
	g.moving = moving
}

func (g *SceneGraph) endPlay() {
	g.moving = nil
}
