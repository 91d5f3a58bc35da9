package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"testing"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/bnsa/bnsatest"
	"badc0de.net/pkg/go-bnsa/oam"
	"badc0de.net/pkg/go-bnsa/tileset"
	"badc0de.net/pkg/go-bnsa/ttesting"
)

func TestMain(m *testing.M) {
	// make -args -v=3 -logtostderr work.
	flagutil.Parse()
	os.Exit(m.Run())
}

func greys() color.Palette {
	p := make(color.Palette, 16)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i * 16)}
	}
	return p
}

func sample(t *testing.T) *bnsa.Archive {
	t.Helper()
	b, _ := bnsatest.SampleArchive().Build()
	a, err := bnsa.DecodeBytes(b)
	if err != nil {
		t.Fatalf("failed to decode sample archive: %v", err)
	}
	return a
}

func TestFrame(t *testing.T) {
	a := sample(t)

	img, err := Frame(a, 0, 0)
	if err != nil {
		t.Fatalf("Frame(0, 0): %v", err)
	}
	if got, want := img.Bounds(), image.Rect(-8, -16, 8, 0); got != want {
		t.Errorf("got bounds %v; want %v", got, want)
	}
	for _, tc := range []struct {
		x, y int
		want uint8
	}{
		{-8, -16, 1},
		{0, -16, 2},
		{-8, -8, 3},
		{7, -1, 4},
	} {
		ttesting.AssertEqualInt(t, image.Pt(tc.x, tc.y).String(), int(img.ColorIndexAt(tc.x, tc.y)), int(tc.want))
	}
}

func TestFrameUsesMiniAnimList(t *testing.T) {
	a := sample(t)

	img, err := Frame(a, 0, 1)
	if err != nil {
		t.Fatalf("Frame(0, 1): %v", err)
	}
	if got, want := img.Bounds(), image.Rect(-16, -8, 8, 8); got != want {
		t.Errorf("got bounds %v; want %v", got, want)
	}
	ttesting.AssertEqualInt(t, "list 0 object", int(img.ColorIndexAt(0, 0)), 1)
	ttesting.AssertEqualInt(t, "list 1 object", int(img.ColorIndexAt(-16, -8)), 0)

	r, g, b, _ := img.At(0, 0).RGBA()
	wr, wg, wb, _ := bnsatest.Color(1, 1).RGBA()
	if r != wr || g != wg || b != wb {
		t.Errorf("got color %d,%d,%d; want %d,%d,%d from palette 1", r, g, b, wr, wg, wb)
	}
	if _, _, _, alpha := img.At(-16, -8).RGBA(); alpha != 0 {
		t.Errorf("undrawn pixel has alpha %d; want 0", alpha)
	}
}

func TestFrameOutOfRange(t *testing.T) {
	a := sample(t)
	if _, err := Frame(a, 2, 0); err == nil {
		t.Errorf("Frame(2, 0) should fail with two animations")
	}
	if _, err := Frame(a, 1, 1); err == nil {
		t.Errorf("Frame(1, 1) should fail with one frame")
	}
}

func TestDrawObjectFlips(t *testing.T) {
	ts := &tileset.Tileset{Data: bnsatest.Tiles(4)}
	for _, tc := range []struct {
		name        string
		flags       uint8
		left, right uint8
	}{
		{"plain", 0x00, 2, 3},
		{"hflip", 0x40, 3, 2},
		{"vflip", 0x80, 2, 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dst := image.NewPaletted(image.Rect(-16, -8, 0, 0), greys())
			DrawObject(dst, ts, oam.Entry{Tile: 1, X: -16, Y: -8, Flags: tc.flags, SizeShape: 0x04})
			ttesting.AssertEqualInt(t, "left", int(dst.ColorIndexAt(-16, -8)), int(tc.left))
			ttesting.AssertEqualInt(t, "right", int(dst.ColorIndexAt(-1, -1)), int(tc.right))
		})
	}
}

func TestDrawObjectClips(t *testing.T) {
	ts := &tileset.Tileset{Data: bnsatest.Tiles(4)}
	dst := image.NewPaletted(image.Rect(0, 0, 4, 4), greys())
	DrawObject(dst, ts, oam.Entry{Tile: 0, X: -6, Y: -6, SizeShape: 0x01})
	ttesting.AssertEqualInt(t, "corner", int(dst.ColorIndexAt(0, 0)), 1)
	ttesting.AssertEqualInt(t, "far corner", int(dst.ColorIndexAt(3, 3)), 4)
}

func TestAnimationGIF(t *testing.T) {
	a := sample(t)

	for _, tc := range []struct {
		name        string
		anim        int
		delays      []int
		loop        int
		w, h        int
		transparent bool
	}{
		{"looping", 0, []int{7, 10}, 0, 24, 24, true},
		{"stopping", 1, []int{3}, -1, 16, 16, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := AnimationGIF(a, tc.anim)
			if err != nil {
				t.Fatalf("AnimationGIF(%d): %v", tc.anim, err)
			}
			ttesting.AssertEqualInt(t, "frames", len(g.Image), len(tc.delays))
			for i, d := range tc.delays {
				ttesting.AssertEqualInt(t, "delay", g.Delay[i], d)
			}
			ttesting.AssertEqualInt(t, "loop count", g.LoopCount, tc.loop)
			ttesting.AssertEqualInt(t, "width", g.Config.Width, tc.w)
			ttesting.AssertEqualInt(t, "height", g.Config.Height, tc.h)

			_, _, _, alpha := g.Image[0].At(0, 0).RGBA()
			if got := alpha == 0; got != tc.transparent {
				t.Errorf("top left of first frame has alpha %d; want transparent %v", alpha, tc.transparent)
			}

			buf := &bytes.Buffer{}
			if err := gif.EncodeAll(buf, g); err != nil {
				t.Fatalf("encoding gif: %v", err)
			}
			if _, err := gif.DecodeAll(buf); err != nil {
				t.Errorf("decoding gif: %v", err)
			}
		})
	}
}

func TestPaletteSwatch(t *testing.T) {
	a := sample(t)
	img := PaletteSwatch(a.Palettes[1], 4)
	if got, want := img.Bounds(), image.Rect(0, 0, 64, 4); got != want {
		t.Fatalf("got bounds %v; want %v", got, want)
	}
	ttesting.AssertEqualInt(t, "cell 3", int(img.ColorIndexAt(13, 2)), 3)
	ttesting.AssertEqualInt(t, "cell 0", int(img.ColorIndexAt(0, 0)), 0)
}
