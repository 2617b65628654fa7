package reel

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRasterSetAtRoundTrip(t *testing.T) {
	r := NewRaster(4, 4)
	r.Set(2, 3, Color{R: 1, G: 0, B: 0, A: 1})

	got := r.At(2, 3)
	if got.R != 1 || got.A != 1 {
		t.Errorf("At(2,3) = %+v, want red", got)
	}
	if got := r.At(0, 0); got != (Color{}) {
		t.Errorf("untouched pixel = %+v, want zero", got)
	}
}

func TestRasterOutOfBoundsIgnored(t *testing.T) {
	r := NewRaster(2, 2)
	r.Set(-1, 0, ColorWhite)
	r.Set(0, 5, ColorWhite)
	if got := r.At(-1, 0); got != (Color{}) {
		t.Errorf("out-of-bounds At = %+v, want zero", got)
	}
}

func TestRasterCloneIndependent(t *testing.T) {
	r := NewRaster(2, 2)
	r.Fill(Color{R: 1, A: 1})
	c := r.Clone()
	c.Fill(Color{B: 1, A: 1})

	if got := r.At(0, 0); got.R != 1 || got.B != 0 {
		t.Errorf("original = %+v, want red", got)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(3, 3)
	r.Fill(Color{G: 1, A: 1})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.EncodePNG(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded size = %v, want 3x3", img.Bounds())
	}
}
