package reel

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Raster is a rectangular RGBA pixel buffer, 4 bytes per pixel, row-major.
// It is the currency between the compositor and its backend: backends fill
// rasters, the compositor caches and hands them out.
type Raster struct {
	width  int
	height int
	data   []uint8
}

// NewRaster creates a transparent raster with the given dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Data returns the raw pixel data. The slice aliases the raster's storage.
func (r *Raster) Data() []uint8 {
	return r.data
}

// Set writes a single pixel. Out-of-bounds coordinates are ignored.
func (r *Raster) Set(x, y int, c Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	i := (y*r.width + x) * 4
	r.data[i+0] = uint8(clamp01(c.R) * 255)
	r.data[i+1] = uint8(clamp01(c.G) * 255)
	r.data[i+2] = uint8(clamp01(c.B) * 255)
	r.data[i+3] = uint8(clamp01(c.A) * 255)
}

// At returns the color of a single pixel. Out-of-bounds reads return zero.
func (r *Raster) At(x, y int) Color {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Color{}
	}
	i := (y*r.width + x) * 4
	return Color{
		R: float64(r.data[i+0]) / 255,
		G: float64(r.data[i+1]) / 255,
		B: float64(r.data[i+2]) / 255,
		A: float64(r.data[i+3]) / 255,
	}
}

// Fill sets every pixel to the given color.
func (r *Raster) Fill(c Color) {
	pr := uint8(clamp01(c.R) * 255)
	pg := uint8(clamp01(c.G) * 255)
	pb := uint8(clamp01(c.B) * 255)
	pa := uint8(clamp01(c.A) * 255)
	for i := 0; i < len(r.data); i += 4 {
		r.data[i+0] = pr
		r.data[i+1] = pg
		r.data[i+2] = pb
		r.data[i+3] = pa
	}
}

// Clone returns an independent copy of the raster.
func (r *Raster) Clone() *Raster {
	out := NewRaster(r.width, r.height)
	copy(out.data, r.data)
	return out
}

// CopyFrom overwrites this raster's pixels with src's. Dimensions must match.
func (r *Raster) CopyFrom(src *Raster) {
	if src.width != r.width || src.height != r.height {
		panic("reel: raster dimensions do not match")
	}
	copy(r.data, src.data)
}

// ToImage converts the raster to an image.RGBA sharing no storage.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}

// EncodePNG writes the raster to a PNG file at the given path. Format and
// destination of saved frames are the caller's responsibility; this is a
// convenience for sinks that want PNG output.
func (r *Raster) EncodePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, r.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
