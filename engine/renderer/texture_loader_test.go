package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadImageRGBA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	writeTestPNG(t, path, 8, 4)

	w, h, pixels, err := LoadImageRGBA(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 8 || h != 4 {
		t.Errorf("expected 8x4, got %dx%d", w, h)
	}
	if len(pixels) != 8*4*4 {
		t.Errorf("expected %d bytes, got %d", 8*4*4, len(pixels))
	}
	// Pixel (2,1) was written as R=2, G=1, A=255.
	off := (1*8 + 2) * 4
	if pixels[off] != 2 || pixels[off+1] != 1 || pixels[off+3] != 0xff {
		t.Errorf("unexpected pixel at (2,1): %v", pixels[off:off+4])
	}
}

func TestLoadImageRGBAMissingFile(t *testing.T) {
	if _, _, _, err := LoadImageRGBA(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadImageRGBANotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := LoadImageRGBA(path); err == nil {
		t.Error("undecodable file should fail")
	}
}
