// Package bnsatest builds synthetic sprite archives for tests.
package bnsatest

import (
	"bytes"
	"encoding/binary"

	"badc0de.net/pkg/go-bnsa/anim"
	"badc0de.net/pkg/go-bnsa/palette"
)

// pointerBase mirrors bnsa.PointerBase; bnsa tests import this package.
const pointerBase = 4

// Frame refers to records by index; Build turns them into pointers.
// Palette 0 is addressed through the palette marker, like real archives do.
type Frame struct {
	Tileset, Palette, MiniAnim, OAM int
	Delay, Flags                    uint8
}

// Archive describes a synthetic sprite archive laid out the way real ones
// are: header, animations, tilesets, palettes, mini-anim groups, OAM groups
// and an optional trailer.
type Archive struct {
	Hint      uint8
	Anims     [][]Frame
	Tilesets  [][]byte
	Palettes  int
	MiniAnims [][]byte
	OAMs      [][]byte
	Trailer   []byte
}

// Layout holds the absolute offset of every record Build wrote.
type Layout struct {
	Anims     []int64
	Tilesets  []int64
	Marker    int64
	Palettes  []int64
	MiniAnims []int64
	OAMs      []int64
}

// PadAfter returns how many padding bytes follow a record ending at end:
// at least one, then up to the next multiple of four.
func PadAfter(end int64) int64 {
	n := int64(1)
	for (end+n)%4 != 0 {
		n++
	}
	return n
}

// Color returns color k of synthetic palette pal. Color 0 is white so that
// no palette starts with a multiple of four.
func Color(pal, k int) palette.Color {
	if k == 0 {
		return 0x7FFF
	}
	return palette.Color(k*0x0421 + pal)
}

func (ta *Archive) padOAM(i int) bool {
	return i < len(ta.OAMs)-1 || len(ta.Trailer) > 0
}

func (ta *Archive) Layout() Layout {
	var l Layout
	off := int64(pointerBase + 4*len(ta.Anims))
	for _, fs := range ta.Anims {
		l.Anims = append(l.Anims, off)
		off += int64(anim.FrameSize * len(fs))
	}
	for _, ts := range ta.Tilesets {
		l.Tilesets = append(l.Tilesets, off)
		off += int64(4 + len(ts))
	}
	l.Marker = off
	off += 4
	for i := 0; i < ta.Palettes; i++ {
		l.Palettes = append(l.Palettes, off)
		off += palette.Marker
	}
	for _, g := range ta.MiniAnims {
		l.MiniAnims = append(l.MiniAnims, off)
		off += int64(len(g))
		off += PadAfter(off)
	}
	for i, g := range ta.OAMs {
		l.OAMs = append(l.OAMs, off)
		off += int64(len(g))
		if ta.padOAM(i) {
			off += PadAfter(off)
		}
	}
	return l
}

// Build serializes the archive.
func (ta *Archive) Build() ([]byte, Layout) {
	l := ta.Layout()
	rel := func(abs int64) uint32 { return uint32(abs - pointerBase) }

	b := &bytes.Buffer{}
	w := func(v interface{}) { binary.Write(b, binary.LittleEndian, v) }
	pad := func() { b.Write(make([]byte, PadAfter(int64(b.Len())))) }

	b.Write([]byte{ta.Hint, 0x00, 0x01, byte(len(ta.Anims))})
	for _, off := range l.Anims {
		w(rel(off))
	}
	for _, fs := range ta.Anims {
		for _, f := range fs {
			pal := l.Marker
			if f.Palette > 0 {
				pal = l.Palettes[f.Palette]
			}
			w(rel(l.Tilesets[f.Tileset]))
			w(rel(pal))
			w(rel(l.MiniAnims[f.MiniAnim]))
			w(rel(l.OAMs[f.OAM]))
			b.Write([]byte{f.Delay, 0, f.Flags, 0})
		}
	}
	for _, ts := range ta.Tilesets {
		w(uint32(len(ts)))
		b.Write(ts)
	}
	w(uint32(palette.Marker))
	for i := 0; i < ta.Palettes; i++ {
		for k := 0; k < palette.Colors; k++ {
			w(uint16(Color(i, k)))
		}
	}
	for _, g := range ta.MiniAnims {
		b.Write(g)
		pad()
	}
	for i, g := range ta.OAMs {
		b.Write(g)
		if ta.padOAM(i) {
			pad()
		}
	}
	b.Write(ta.Trailer)
	return b.Bytes(), l
}

var (
	SingleFrameMiniAnim = []byte{0x04, 0, 0, 0, 0x00, 0x01, 0x80}
	TwoAnimMiniAnim     = []byte{
		0x08, 0, 0, 0,
		0x0B, 0, 0, 0,
		0x00, 0x01, 0x80,
		0x01, 0x04, 0x00,
		0x00, 0x04, 0x40,
	}

	// one 16x16 object at (-8,-16) using tiles 0-3.
	OneObjectOAM = []byte{
		0x04, 0, 0, 0,
		0x00, 0xF8, 0xF0, 0x00, 0x01,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	// two lists: an 8x8 object at (0,0), and a horizontally flipped 16x8
	// object at (-16,-8) using tiles 1-2.
	TwoListOAM = []byte{
		0x08, 0, 0, 0,
		0x12, 0, 0, 0,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x01, 0xF0, 0xF8, 0x40, 0x04,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
)

// Tiles returns n solid 4bpp tiles; tile i uses color index i+1.
func Tiles(n int) []byte {
	b := make([]byte, n*32)
	for i := range b {
		c := byte(i/32+1) & 0x0F
		b[i] = c | c<<4
	}
	return b
}

// SampleArchive has two animations, two tilesets, two palettes, two
// mini-anim groups and two OAM groups, closed by an 0xFF filler.
func SampleArchive() *Archive {
	return &Archive{
		Hint: 5,
		Anims: [][]Frame{
			{
				{Tileset: 0, Palette: 0, MiniAnim: 0, OAM: 0, Delay: 4},
				{Tileset: 0, Palette: 1, MiniAnim: 1, OAM: 1, Delay: 6, Flags: anim.FlagLoop},
			},
			{
				{Tileset: 1, Palette: 0, MiniAnim: 0, OAM: 0, Delay: 2, Flags: anim.FlagStop},
			},
		},
		Tilesets:  [][]byte{Tiles(4), Tiles(2)},
		Palettes:  2,
		MiniAnims: [][]byte{SingleFrameMiniAnim, TwoAnimMiniAnim},
		OAMs:      [][]byte{OneObjectOAM, TwoListOAM},
		Trailer:   []byte{0xFF, 0xFF, 0xFF, 0xFF},
	}
}
