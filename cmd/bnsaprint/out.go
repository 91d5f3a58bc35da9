package main

import (
	"image"
	"os"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-bnsa/imageprint"
)

func out(img image.Image, m imageprint.Mode, name string) {
	img = imageprint.Scale(img, *scale)

	if *downsize {
		if termSize, err := GetTermSize(); err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (m == imageprint.ModeRasTerm || m == imageprint.ModeITerm) {
				// Images printed as images can use the terminal's pixels;
				// everything else is limited by character cells.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
			} else {
				img = imageprint.Fit(img, int(termSize.WSCol), int(termSize.WSRow)-1)
			}
		}
	}

	imageprint.Print(os.Stdout, img, m, *blanks, name)
}
