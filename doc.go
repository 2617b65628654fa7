// Package reel is a scene-graph and incremental render-partitioning engine
// for procedurally generated animations and diagrams.
//
// Reel tracks which visual elements ("mobjects") are on screen, keeps the
// containment tree consistent as elements are added, removed, and replaced,
// and decides per frame which elements are unchanged (cacheable as a
// static raster) versus which must be recomposited. Shape layout, text,
// and the rasterization details live behind the narrow [Backend] interface.
//
// # Quick start
//
// Build mobjects, hand them to a [Scene], and play animation batches:
//
//	backend, _ := reel.NewSoftwareBackend(cfg)
//	scene := reel.NewScene(backend, sink, cfg)
//	state, err := scene.Run(func(s *reel.Scene) error {
//		dot := reel.NewPointMobject("dot", reel.Vec2{X: 10, Y: 10})
//		if err := s.Add(dot); err != nil {
//			return err
//		}
//		return s.Play(reel.MoveTo(dot, reel.Vec2{X: 40, Y: 20}, 1, ease.Linear))
//	})
//
// Each frame of a play renders only the moving members over a cached raster
// of everything static, and is delivered to the caller's [FrameSink] with a
// monotonically increasing index.
//
// # Scene graph
//
// Every element is a [Mobject]: an identity-distinct node owning an ordered
// child list. The [SceneGraph] keeps two top-level lists, active and
// foreground, and rewrites enclosing groups when members are removed, so
// surviving siblings keep their position and order ("restructuring").
//
// # Control flow
//
// A run finishes with a [RunState]: [Completed], [EndedEarly], or
// [RerunRequested]. Stop and rerun requests ([Scene.EndEarly],
// [Scene.RequestRerun], or a [RerunWatcher] on a source file) are queued
// and applied by the loop between frames; they never propagate below it.
package reel
