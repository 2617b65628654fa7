package reel

import "fmt"

// CaptureOptions controls a single Backend.Capture call.
type CaptureOptions struct {
	// IncludeSubmobjects expands each member's family before drawing.
	// The compositor passes pre-flattened member lists, so it leaves this
	// off; callers handing top-level lists straight to a backend set it.
	IncludeSubmobjects bool
}

// Backend is the narrow rasterization interface the compositor composes
// over. Implementations own the actual pixel work; the compositor only
// decides what gets drawn and what comes from cache.
type Backend interface {
	// Capture renders the given members, in order, over the current frame
	// contents.
	Capture(members []*Mobject, opts CaptureOptions) error
	// CurrentRaster returns the current frame contents. The returned raster
	// may alias backend storage; callers that keep it must clone it.
	CurrentRaster() (*Raster, error)
	// ResetToBackground initializes the frame from the given raster, or
	// from the blank background color when bg is nil.
	ResetToBackground(bg *Raster) error
}

// Compositor caches a raster of the scene's static members and composites
// moving content over it each frame, so unchanged elements are rendered
// once per play instead of once per frame.
//
// The static cache is owned exclusively by the compositor and is
// invalidated wholesale, never patched, whenever the static member set
// changes.
type Compositor struct {
	backend Backend
	static  *Raster
}

// NewCompositor creates a compositor over the given backend.
func NewCompositor(backend Backend) *Compositor {
	return &Compositor{backend: backend}
}

// SaveStaticFrame renders exactly the given members offscreen and stores
// the result as the static cache. An empty member list clears the cache and
// returns nil.
func (c *Compositor) SaveStaticFrame(static []*Mobject) (*Raster, error) {
	c.static = nil
	if len(static) == 0 {
		return nil, nil
	}
	if err := c.UpdateFrame(static); err != nil {
		return nil, err
	}
	frame, err := c.Frame()
	if err != nil {
		return nil, err
	}
	c.static = frame
	return c.static, nil
}

// UpdateFrame composites the given members over the static cache, or over a
// blank background when no cache exists. Cached content is not re-rendered.
func (c *Compositor) UpdateFrame(members []*Mobject) error {
	if c.backend == nil {
		return fmt.Errorf("update frame: %w", ErrUnsupportedRenderer)
	}
	if err := c.backend.ResetToBackground(c.static); err != nil {
		return fmt.Errorf("update frame: %w", err)
	}
	if err := c.backend.Capture(members, CaptureOptions{}); err != nil {
		return fmt.Errorf("update frame: %w", err)
	}
	return nil
}

// Frame returns the most recent composited raster as an independent
// width x height x 4 buffer.
func (c *Compositor) Frame() (*Raster, error) {
	if c.backend == nil {
		return nil, fmt.Errorf("get frame: %w", ErrUnsupportedRenderer)
	}
	raster, err := c.backend.CurrentRaster()
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}
	return raster.Clone(), nil
}

// InvalidateStaticFrame drops the static cache. The next UpdateFrame starts
// from a blank background.
func (c *Compositor) InvalidateStaticFrame() {
	c.static = nil
}

// HasStaticFrame reports whether a static cache is currently held.
func (c *Compositor) HasStaticFrame() bool {
	return c.static != nil
}
