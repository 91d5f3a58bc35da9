package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-bnsa/ttesting"
)

func twoPixels(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, c)
	return img
}

func TestPrintNoColor(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintNoColor(buf, twoPixels(color.White), false)
	if got, want := buf.String(), "##\x1b[0m  \n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestPrint24bit(t *testing.T) {
	buf := &bytes.Buffer{}
	Print(buf, twoPixels(color.RGBA{R: 255, A: 255}), Mode24bit, true, "")
	if got, want := buf.String(), "\x1b[48;2;255;0;0m  \x1b[0m\x1b[0m  \x1b[0m\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestParseMode(t *testing.T) {
	for name, want := range modeNames {
		got, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", name, err)
		}
		ttesting.AssertEqualInt(t, name, int(got), int(want))
	}
	if _, err := ParseMode("sixel"); err == nil {
		t.Errorf("ParseMode(sixel) should fail")
	}
}

func TestScaleAndFit(t *testing.T) {
	img := Scale(twoPixels(color.White), 3)
	ttesting.AssertEqualInt(t, "scaled width", img.Bounds().Dx(), 6)
	ttesting.AssertEqualInt(t, "scaled height", img.Bounds().Dy(), 3)

	wide := image.NewRGBA(image.Rect(0, 0, 100, 10))
	fit := Fit(wide, 20, 40)
	ttesting.AssertEqualInt(t, "fit width", fit.Bounds().Dx(), 10)
	ttesting.AssertEqualInt(t, "fit height", fit.Bounds().Dy(), 1)

	if Fit(wide, 400, 40) != image.Image(wide) {
		t.Errorf("an image that fits should be returned as is")
	}
}
