package compositor

// This file registers sprite archives with the image package, so that
// image.Decode returns the first frame of the first animation.

import (
	"image"
	"io"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/bnsa"
)

func init() {
	// The first byte is the largest tileset hint and can be anything.
	image.RegisterFormat("bnsa", "?\x00\x01", Decode, DecodeConfig)
}

func first(r io.Reader) (*image.Paletted, error) {
	a, err := bnsa.Decode(r)
	if err != nil {
		return nil, err
	}
	if !a.Valid() {
		return nil, errors.Errorf("bnsa: %s", a.Rejection)
	}
	if len(a.Animations) == 0 {
		return nil, errors.New("bnsa: archive has no animations")
	}
	return Frame(a, 0, 0)
}

// Decode returns the first frame of the first animation in an archive.
func Decode(r io.Reader) (image.Image, error) {
	return first(r)
}

// DecodeConfig returns the size and palette of the frame Decode returns. The
// whole archive is read to find it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	img, err := first(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: img.Palette, Width: img.Rect.Dx(), Height: img.Rect.Dy()}, nil
}
