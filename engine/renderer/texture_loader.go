package renderer

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cockroachdb/errors"
	xdraw "golang.org/x/image/draw"
)

// LoadImageRGBA decodes a PNG or JPEG file into tightly-packed RGBA8
// pixels ready for upload.
func LoadImageRGBA(path string) (width, height uint32, pixels []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, errors.Wrapf(err, "failed to open image %q", path)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, errors.Wrapf(err, "failed to decode image %q", path)
	}
	return imageToRGBA(src)
}

func imageToRGBA(src image.Image) (uint32, uint32, []byte, error) {
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0, 0, nil, errors.New("image has a zero-sized dimension")
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)

	// NewRGBA allocates a tightly packed pixel buffer.
	return uint32(bounds.Dx()), uint32(bounds.Dy()), dst.Pix, nil
}
