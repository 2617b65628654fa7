package reel

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// SoftwareBackend is a headless CPU backend. It stamps point geometry into
// a supersampled RGBA canvas and downsamples to the output size on read.
// Deterministic and display-free, it is the backend used for headless
// renders and by the compositor tests.
type SoftwareBackend struct {
	cfg    Config
	scale  int
	canvas *Raster // supersampled working buffer
}

// NewSoftwareBackend creates a software backend for the given configuration.
func NewSoftwareBackend(cfg Config) (*SoftwareBackend, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("software backend: %w", err)
	}
	b := &SoftwareBackend{
		cfg:    cfg,
		scale:  cfg.Supersampling,
		canvas: NewRaster(cfg.Width*cfg.Supersampling, cfg.Height*cfg.Supersampling),
	}
	b.canvas.Fill(cfg.Background)
	return b, nil
}

// ResetToBackground initializes the canvas from bg, or from the configured
// background color when bg is nil.
func (b *SoftwareBackend) ResetToBackground(bg *Raster) error {
	if bg == nil {
		b.canvas.Fill(b.cfg.Background)
		return nil
	}
	if bg.Width() != b.cfg.Width || bg.Height() != b.cfg.Height {
		return fmt.Errorf("background %dx%d does not fit frame %dx%d: %w",
			bg.Width(), bg.Height(), b.cfg.Width, b.cfg.Height, ErrUnsupportedRenderer)
	}
	if b.scale == 1 {
		b.canvas.CopyFrom(bg)
		return nil
	}
	// Nearest-neighbor upsample: each cached pixel becomes a scale x scale
	// block, which the box downsample on read reproduces exactly.
	dst := b.canvas.ToImage()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), bg.ToImage(), bg.ToImage().Bounds(), xdraw.Src, nil)
	copy(b.canvas.data, dst.Pix)
	return nil
}

// Capture stamps the point geometry of each member, in order, over the
// current canvas contents.
func (b *SoftwareBackend) Capture(members []*Mobject, opts CaptureOptions) error {
	if opts.IncludeSubmobjects {
		members = ExtractFamilyMembers(members, FamilyOptions{
			UseZIndex:      b.cfg.UseZIndex,
			OnlyWithPoints: true,
			Dedup:          b.cfg.Dedup,
		})
	}
	for _, m := range members {
		if !m.HasPoints() {
			continue
		}
		c := m.Color
		c.A *= m.Opacity
		for _, p := range m.Points {
			b.stamp(p, c)
		}
	}
	return nil
}

// stamp draws one point as a scale x scale block so geometry covers the
// same frame area at every supersampling factor.
func (b *SoftwareBackend) stamp(p Vec2, c Color) {
	x0 := int(p.X) * b.scale
	y0 := int(p.Y) * b.scale
	for dy := 0; dy < b.scale; dy++ {
		for dx := 0; dx < b.scale; dx++ {
			b.blendPixel(x0+dx, y0+dy, c)
		}
	}
}

// blendPixel composites c over the canvas pixel (source-over).
func (b *SoftwareBackend) blendPixel(x, y int, c Color) {
	if c.A >= 1 {
		b.canvas.Set(x, y, c)
		return
	}
	if c.A <= 0 {
		return
	}
	dst := b.canvas.At(x, y)
	a := c.A + dst.A*(1-c.A)
	if a == 0 {
		b.canvas.Set(x, y, Color{})
		return
	}
	b.canvas.Set(x, y, Color{
		R: (c.R*c.A + dst.R*dst.A*(1-c.A)) / a,
		G: (c.G*c.A + dst.G*dst.A*(1-c.A)) / a,
		B: (c.B*c.A + dst.B*dst.A*(1-c.A)) / a,
		A: a,
	})
}

// CurrentRaster downsamples the canvas to the output size and returns it.
func (b *SoftwareBackend) CurrentRaster() (*Raster, error) {
	if b.scale == 1 {
		return b.canvas, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, b.cfg.Width, b.cfg.Height))
	xdraw.BiLinear.Scale(out, out.Bounds(), b.canvas.ToImage(), b.canvas.ToImage().Bounds(), xdraw.Src, nil)
	raster := NewRaster(b.cfg.Width, b.cfg.Height)
	copy(raster.data, out.Pix)
	return raster, nil
}
