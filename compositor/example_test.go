package compositor

import (
	"bytes"
	"fmt"
	"image"

	"badc0de.net/pkg/go-bnsa/bnsa/bnsatest"
)

// Example_imageDecode decodes an archive through the image package and
// prints the size of its first frame.
func Example_imageDecode() {
	b, _ := bnsatest.SampleArchive().Build()
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		fmt.Printf("failed to decode archive: %v\n", err)
		return
	}
	fmt.Printf("%s image: %dx%d at %v\n", format, img.Bounds().Dx(), img.Bounds().Dy(), img.Bounds().Min)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		fmt.Printf("failed to decode config: %v\n", err)
		return
	}
	fmt.Printf("config: %dx%d\n", cfg.Width, cfg.Height)
	// Output:
	// bnsa image: 16x16 at (-8,-16)
	// config: 16x16
}
