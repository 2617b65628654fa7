package reel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBackend rasterizes frames onto a persistent offscreen
// *ebiten.Image. It is the GPU-accelerated backend for interactive
// previews; headless pipelines use SoftwareBackend instead.
type EbitenBackend struct {
	cfg    Config
	target *ebiten.Image
	white  *ebiten.Image
}

// NewEbitenBackend creates an ebiten-backed backend for the given
// configuration.
func NewEbitenBackend(cfg Config) (*EbitenBackend, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ebiten backend: %w", err)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(colorRGBA{255, 255, 255, 255})
	return &EbitenBackend{
		cfg:    cfg,
		target: ebiten.NewImage(cfg.Width, cfg.Height),
		white:  white,
	}, nil
}

// Target returns the offscreen frame image, for callers that draw it to a
// screen each tick.
func (b *EbitenBackend) Target() *ebiten.Image {
	return b.target
}

// ResetToBackground initializes the frame from bg, or fills it with the
// configured background color when bg is nil.
func (b *EbitenBackend) ResetToBackground(bg *Raster) error {
	if b.target == nil {
		return fmt.Errorf("ebiten backend disposed: %w", ErrUnsupportedRenderer)
	}
	if bg == nil {
		b.target.Fill(b.cfg.Background.toRGBA())
		return nil
	}
	if bg.Width() != b.cfg.Width || bg.Height() != b.cfg.Height {
		return fmt.Errorf("background %dx%d does not fit frame %dx%d: %w",
			bg.Width(), bg.Height(), b.cfg.Width, b.cfg.Height, ErrUnsupportedRenderer)
	}
	b.target.WritePixels(premultiply(bg.Data()))
	return nil
}

// Capture draws the point geometry of each member, in order, over the
// current frame contents.
func (b *EbitenBackend) Capture(members []*Mobject, opts CaptureOptions) error {
	if b.target == nil {
		return fmt.Errorf("ebiten backend disposed: %w", ErrUnsupportedRenderer)
	}
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
		alpha := m.Opacity
		for _, p := range m.Points {
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(p.X, p.Y)
			op.ColorScale.Scale(
				float32(m.Color.R*m.Color.A*alpha),
				float32(m.Color.G*m.Color.A*alpha),
				float32(m.Color.B*m.Color.A*alpha),
				float32(m.Color.A*alpha),
			)
			b.target.DrawImage(b.white, &op)
		}
	}
	return nil
}

// CurrentRaster reads the frame pixels back into a Raster, converting
// premultiplied RGBA to straight alpha.
func (b *EbitenBackend) CurrentRaster() (*Raster, error) {
	if b.target == nil {
		return nil, fmt.Errorf("ebiten backend disposed: %w", ErrUnsupportedRenderer)
	}
	raster := NewRaster(b.cfg.Width, b.cfg.Height)
	b.target.ReadPixels(raster.data)
	unpremultiply(raster.data)
	return raster, nil
}

// Dispose deallocates the offscreen images. The backend reports
// ErrUnsupportedRenderer for every operation afterwards.
func (b *EbitenBackend) Dispose() {
	if b.target != nil {
		b.target.Deallocate()
		b.target = nil
	}
	if b.white != nil {
		b.white.Deallocate()
		b.white = nil
	}
}

// premultiply converts straight-alpha RGBA bytes to premultiplied, as
// WritePixels expects.
func premultiply(src []uint8) []uint8 {
	out := make([]uint8, len(src))
	for i := 0; i < len(src); i += 4 {
		a := uint32(src[i+3])
		out[i+0] = uint8(uint32(src[i+0]) * a / 255)
		out[i+1] = uint8(uint32(src[i+1]) * a / 255)
		out[i+2] = uint8(uint32(src[i+2]) * a / 255)
		out[i+3] = src[i+3]
	}
	return out
}

// unpremultiply converts premultiplied RGBA bytes to straight alpha in place.
func unpremultiply(pix []uint8) {
	for i := 0; i < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		pix[i+0] = uint8(min(int(pix[i+0])*255/a, 255))
		pix[i+1] = uint8(min(int(pix[i+1])*255/a, 255))
		pix[i+2] = uint8(min(int(pix[i+2])*255/a, 255))
	}
}

// toRGBA converts a reel Color to a premultiplied color.RGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image fills.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}
