// Package compositor paints animation frames of a decoded sprite archive.
//
// A frame is drawn from one OAM data list: the list shown first by the
// frame's mini-animation group, or list 0 when the frame has none. Objects
// are tiled from the frame's tileset in one-dimensional order and colored
// with the frame's palette; color index 0 is never drawn.
//
// BUG(bnsa): Object priority and affine objects are ignored. Objects earlier
// in a list are drawn on top of later ones, which matches what the hardware
// does for objects of equal priority.
package compositor

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/anim"
	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/oam"
	"badc0de.net/pkg/go-bnsa/tileset"
)

// Frame renders frame frameIdx of animation animIdx on a canvas covering the
// frame's bounds. The sprite origin lies at (0, 0) of the canvas coordinate
// space, so canvas bounds are usually negative at the top left.
func Frame(a *bnsa.Archive, animIdx, frameIdx int) (*image.Paletted, error) {
	f, err := frame(a, animIdx, frameIdx)
	if err != nil {
		return nil, err
	}
	return drawFrame(a, f, f.Bounds)
}

func animation(a *bnsa.Archive, animIdx int) (*anim.Animation, error) {
	if animIdx < 0 || animIdx >= len(a.Animations) {
		return nil, errors.Errorf("no animation %d; archive has %d", animIdx, len(a.Animations))
	}
	return a.Animations[animIdx], nil
}

func frame(a *bnsa.Archive, animIdx, frameIdx int) (*anim.Frame, error) {
	an, err := animation(a, animIdx)
	if err != nil {
		return nil, err
	}
	if frameIdx < 0 || frameIdx >= len(an.Frames) {
		return nil, errors.Errorf("no frame %d in animation %d; it has %d", frameIdx, animIdx, len(an.Frames))
	}
	return an.Frames[frameIdx], nil
}

// List returns the OAM data list a frame shows.
func List(a *bnsa.Archive, f *anim.Frame) *oam.List {
	g := a.OAMGroup(f.OAMGroup)
	if g == nil {
		return nil
	}
	list := 0
	if mg := a.MiniAnimGroup(f.MiniAnimGroup); mg != nil {
		list = mg.FirstOAMList()
	}
	l := g.List(list)
	if l == nil {
		glog.V(1).Infof("oam group %d has no list %d; drawing list 0", f.OAMGroup, list)
		l = g.List(0)
	}
	return l
}

// canvas never returns an empty rectangle; image encoders reject those.
func canvas(r image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rect(0, 0, 1, 1)
	}
	return r
}

func drawFrame(a *bnsa.Archive, f *anim.Frame, bounds image.Rectangle) (*image.Paletted, error) {
	ts := a.Tileset(f.Tileset)
	if ts == nil {
		return nil, errors.Errorf("frame at 0x%06X has no tileset (pointer 0x%X)", f.Offset, f.TilesetPointer)
	}
	pal := a.Palette(f.Palette)
	if pal == nil {
		return nil, errors.Errorf("frame at 0x%06X has no palette (pointer 0x%X)", f.Offset, f.PalettePointer)
	}

	img := image.NewPaletted(canvas(bounds), pal.ColorPalette())
	l := List(a, f)
	if l == nil {
		glog.V(1).Infof("frame at 0x%06X has no oam data; leaving it blank", f.Offset)
		return img, nil
	}
	for i := len(l.Entries) - 1; i >= 0; i-- {
		DrawObject(img, ts, l.Entries[i])
	}
	return img, nil
}

// DrawObject paints one hardware object onto dst at its own position.
// Transparent pixels leave dst untouched.
func DrawObject(dst *image.Paletted, ts *tileset.Tileset, e oam.Entry) {
	size := e.Dimensions()
	tilesPerRow := size.X / tileset.TileWidth
	for y := 0; y < size.Y; y++ {
		sy := y
		if e.VFlip() {
			sy = size.Y - 1 - y
		}
		for x := 0; x < size.X; x++ {
			sx := x
			if e.HFlip() {
				sx = size.X - 1 - x
			}
			tile := int(e.Tile) + (sy/tileset.TileHeight)*tilesPerRow + sx/tileset.TileWidth
			idx := ts.ColorIndex(tile, sx%tileset.TileWidth, sy%tileset.TileHeight)
			if idx == 0 {
				continue
			}
			p := image.Pt(int(e.X)+x, int(e.Y)+y)
			if p.In(dst.Rect) {
				dst.SetColorIndex(p.X, p.Y, idx)
			}
		}
	}
}
