package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/andybons/gogif"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/palette"
)

// gifDelay converts 1/60 s ticks to the 1/100 s units GIF uses.
func gifDelay(ticks uint8) int {
	return (int(ticks)*100 + 30) / 60
}

// AnimationGIF renders every frame of an animation on the animation's bounds.
// The GIF loops forever when the animation's closing frame loops, and plays
// once otherwise.
func AnimationGIF(a *bnsa.Archive, animIdx int) (*gif.GIF, error) {
	an, err := animation(a, animIdx)
	if err != nil {
		return nil, err
	}
	bounds := canvas(an.Bounds)

	g := &gif.GIF{LoopCount: -1}
	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // Up to 255 colors plus 1 space for transparency.
	for _, f := range an.Frames {
		img, err := drawFrame(a, f, bounds)
		if err != nil {
			return nil, err
		}
		// GIF image blocks cannot have negative coordinates.
		img.Rect = img.Rect.Sub(img.Rect.Min)

		pal := image.NewPaletted(img.Rect, nil)
		quantizer.Quantize(pal, img.Rect, img, image.Point{})

		// Quantize does not know about transparency; put it back as the
		// first color so undrawn pixels default to it.
		palTransparent := image.NewPaletted(img.Rect, append(color.Palette{color.Transparent}, pal.Palette...))
		draw.Draw(palTransparent, img.Rect, img, image.Point{}, draw.Over)

		g.Image = append(g.Image, palTransparent)
		g.Delay = append(g.Delay, gifDelay(f.Delay))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	if n := len(an.Frames); n > 0 && an.Frames[n-1].Loops() {
		g.LoopCount = 0
	}
	g.BackgroundIndex = 0
	g.Config = image.Config{
		ColorModel: g.Image[0].Palette,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}
	return g, nil
}

// PaletteSwatch draws a palette as a row of square cells, one per color.
// Unlike frames, color 0 is shown as stored.
func PaletteSwatch(p *palette.Palette, cell int) *image.Paletted {
	if cell < 1 {
		cell = 1
	}
	cols := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		cols[i] = c
	}
	img := image.NewPaletted(canvas(image.Rect(0, 0, cell*len(cols), cell)), cols)
	for i := range cols {
		draw.Draw(img, image.Rect(i*cell, 0, (i+1)*cell, cell), image.NewUniform(cols[i]), image.Point{}, draw.Src)
	}
	return img
}
