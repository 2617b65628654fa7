package reel

import (
	"fmt"
	"os"
)

// RunState is the terminal state of a render run. Control signals reach the
// loop as queued requests and surface here as a plain enum; nothing below
// the loop ever sees them.
type RunState uint8

const (
	// Completed means the construct function ran to the end.
	Completed RunState = iota
	// EndedEarly means an end-scene request stopped the run between frames.
	EndedEarly
	// RerunRequested means a rerun request stopped the run; the graph was
	// cleared so the caller can run the scene again.
	RerunRequested
)

func (s RunState) String() string {
	switch s {
	case EndedEarly:
		return "ended early"
	case RerunRequested:
		return "rerun requested"
	default:
		return "completed"
	}
}

// controlSignal is a request delivered to the render loop between frames.
type controlSignal uint8

const (
	signalEndScene controlSignal = iota
	signalRerun
)

// FrameSink receives each composited frame together with its monotonically
// increasing index. File naming, format, and destination are entirely the
// sink's business.
type FrameSink interface {
	WriteFrame(index int, frame *Raster) error
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(index int, frame *Raster) error

func (f FrameSinkFunc) WriteFrame(index int, frame *Raster) error {
	return f(index, frame)
}

// Scene owns the render loop: it holds the scene graph and the compositor,
// plays animation batches, and emits finished frames to a sink.
//
// Execution is frame-synchronous and single-threaded. Each step (mutate
// graph, partition, composite) runs to completion before the next begins.
// External goroutines (the rerun watcher, a UI) may only enqueue control
// requests; the loop dequeues them exclusively between frames.
type Scene struct {
	cfg        Config
	graph      *SceneGraph
	compositor *Compositor
	sink       FrameSink

	control    chan controlSignal
	pending    RunState
	frameIndex int

	// Teardown runs after construct finishes, ends early, or fails.
	Teardown func(*Scene)
}

// NewScene creates a scene over the given backend. Frames are delivered to
// sink; a nil sink discards them.
func NewScene(backend Backend, sink FrameSink, cfg Config) *Scene {
	cfg = cfg.withDefaults()
	return &Scene{
		cfg:        cfg,
		graph:      NewSceneGraph(cfg),
		compositor: NewCompositor(backend),
		sink:       sink,
		control:    make(chan controlSignal, 16),
	}
}

// Graph returns the scene graph.
func (s *Scene) Graph() *SceneGraph {
	return s.graph
}

// Compositor returns the frame compositor.
func (s *Scene) Compositor() *Compositor {
	return s.compositor
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// FrameIndex returns the index the next emitted frame will carry.
func (s *Scene) FrameIndex() int {
	return s.frameIndex
}

// Add displays mobjects on the scene graph. See SceneGraph.Add.
func (s *Scene) Add(mobjects ...*Mobject) error {
	return s.graph.Add(mobjects...)
}

// Remove takes mobjects off screen. See SceneGraph.Remove.
func (s *Scene) Remove(mobjects ...*Mobject) error {
	return s.graph.Remove(mobjects...)
}

// EndEarly requests a graceful stop. Safe to call from any goroutine; the
// loop honors the request at the next frame boundary and teardown still
// runs.
func (s *Scene) EndEarly() {
	s.enqueue(signalEndScene)
}

// RequestRerun requests that the run stop and report RerunRequested. Safe
// to call from any goroutine; the graph is cleared by the loop, never by
// the caller.
func (s *Scene) RequestRerun() {
	s.enqueue(signalRerun)
}

func (s *Scene) enqueue(sig controlSignal) {
	select {
	case s.control <- sig:
	default:
		// Queue full: an earlier request is already pending, drop this one.
	}
}

// Run executes construct, emitting frames as it plays, and returns the
// terminal state. Teardown always runs, whatever stopped the scene. On
// RerunRequested the graph and static cache are cleared so the caller can
// simply call Run again.
func (s *Scene) Run(construct func(*Scene) error) (RunState, error) {
	if err := s.cfg.validate(); err != nil {
		return Completed, fmt.Errorf("run: %w", err)
	}
	s.pending = Completed

	err := construct(s)
	if s.Teardown != nil {
		s.Teardown(s)
	}
	if err != nil {
		return s.pending, fmt.Errorf("construct: %w", err)
	}

	s.poll()
	state := s.pending
	if state == RerunRequested {
		s.graph.Clear()
		s.compositor.InvalidateStaticFrame()
		s.frameIndex = 0
		s.pending = Completed
	}
	return state, nil
}

// Play renders one animation batch: partitions the scene into moving and
// static members, caches the static raster once, then composites the moving
// members over it for every frame of the batch's duration.
func (s *Scene) Play(batch ...*Animation) error {
	if s.pending != Completed {
		// A stop request arrived; drop further plays without rendering.
		return nil
	}
	for _, anim := range batch {
		if anim == nil || anim.Mobject == nil {
			return fmt.Errorf("play: %w", ErrInvalidArgument)
		}
	}

	moving, static, err := s.graph.MovingAndStaticMembers(batch)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if _, err := s.compositor.SaveStaticFrame(static); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	s.graph.beginPlay(moving)
	defer s.graph.endPlay()

	for _, anim := range batch {
		anim.Start()
	}

	frames := s.frameCount(batch)
	dt := 1.0 / float64(s.cfg.FPS)
	for frame := 0; frame < frames; frame++ {
		if s.poll() {
			return nil
		}
		for _, anim := range batch {
			anim.Update(float32(dt))
		}
		s.runUpdaters(dt)
		if err := s.renderFrame(s.movingFamilies()); err != nil {
			return err
		}
	}
	return nil
}

// Wait holds the current frame contents for the given number of seconds.
// With no updaters attached everything is static: the cached raster is
// computed once and each emitted frame composites nothing over it.
func (s *Scene) Wait(seconds float64) error {
	if s.pending != Completed {
		return nil
	}
	moving, static, err := s.graph.MovingAndStaticMembers(nil)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if _, err := s.compositor.SaveStaticFrame(static); err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	s.graph.beginPlay(moving)
	defer s.graph.endPlay()

	frames := int(seconds * float64(s.cfg.FPS))
	if frames < 1 {
		frames = 1
	}
	dt := 1.0 / float64(s.cfg.FPS)
	for frame := 0; frame < frames; frame++ {
		if s.poll() {
			return nil
		}
		s.runUpdaters(dt)
		if err := s.renderFrame(s.movingFamilies()); err != nil {
			return err
		}
	}
	return nil
}

// movingFamilies expands the current moving list for compositing.
func (s *Scene) movingFamilies() []*Mobject {
	return ExtractFamilyMembers(s.graph.moving, FamilyOptions{
		UseZIndex:      s.cfg.UseZIndex,
		OnlyWithPoints: true,
		Dedup:          s.cfg.Dedup,
	})
}

// runUpdaters advances every updater attached to a moving member.
func (s *Scene) runUpdaters(dt float64) {
	for _, m := range ExtractFamilyMembers(s.graph.moving, FamilyOptions{Dedup: s.cfg.Dedup}) {
		for _, u := range m.Updaters {
			u.Fn(UpdateContext{
				Lookup: s.graph.Lookup,
				Self:   m,
				DT:     dt,
				refs:   u.Refs,
			})
		}
	}
}

// renderFrame composites members over the static cache and emits the result.
func (s *Scene) renderFrame(members []*Mobject) error {
	if err := s.compositor.UpdateFrame(members); err != nil {
		return err
	}
	frame, err := s.compositor.Frame()
	if err != nil {
		return err
	}
	if s.sink != nil {
		if err := s.sink.WriteFrame(s.frameIndex, frame); err != nil {
			return fmt.Errorf("frame %d: %w", s.frameIndex, err)
		}
	}
	s.frameIndex++
	return nil
}

// frameCount sizes a play by its longest animation, minimum one frame.
func (s *Scene) frameCount(batch []*Animation) int {
	var longest float32
	for _, anim := range batch {
		if anim.duration > longest {
			longest = anim.duration
		}
	}
	frames := int(longest * float32(s.cfg.FPS))
	if frames < 1 {
		frames = 1
	}
	return frames
}

// poll drains one pending control request, if any, and reports whether the
// loop should stop. End-scene wins over nothing; a rerun request replaces
// an end-scene request.
func (s *Scene) poll() bool {
	for {
		select {
		case sig := <-s.control:
			switch sig {
			case signalEndScene:
				if s.pending == Completed {
					s.pending = EndedEarly
				}
			case signalRerun:
				s.pending = RerunRequested
			}
		default:
			return s.pending != Completed
		}
	}
}

// logf writes a non-fatal diagnostic to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[reel] "+format+"\n", args...)
}
