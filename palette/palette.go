// Package palette decodes the 16-color palettes of a sprite archive.
//
// The palette region starts with a 32-bit marker holding the byte size of
// one palette (always 0x20 in known archives), followed by palettes of
// little-endian BGR555 colors.
package palette

import (
	"encoding/binary"
	"image/color"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/cursor"
)

const (
	// Marker is the value that opens the palette region.
	Marker = 0x20
	// Colors is the number of entries in a palette of Marker bytes.
	Colors = Marker / 2
)

// Color is a 15-bit BGR color as stored on the handheld. The top bit is
// ignored.
type Color uint16

func (c Color) RGBA() (r, g, b, a uint32) {
	r = (uint32(c>>0&31)*0xFFFF + 15) / 31
	g = (uint32(c>>5&31)*0xFFFF + 15) / 31
	b = (uint32(c>>10&31)*0xFFFF + 15) / 31
	a = 0xFFFF
	return
}

// FromRGB converts an 8-bit-per-channel color to the nearest Color.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r>>3) | uint16(g>>3)<<5 | uint16(b>>3)<<10)
}

type Palette struct {
	// Offset is the absolute position of the first color.
	Offset int64
	// Size is the number of bytes the palette occupies.
	Size int64

	Colors []Color
}

// Decode reads size bytes of colors at the cursor.
func Decode(c *cursor.Cursor, size int) (*Palette, error) {
	p := &Palette{Offset: c.Position()}
	b, err := c.ReadN(size)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read palette of %d bytes", size)
	}
	p.Colors = make([]Color, size/2)
	for i := range p.Colors {
		p.Colors[i] = Color(binary.LittleEndian.Uint16(b[i*2:]))
	}
	p.Size = int64(size)
	return p, nil
}

// Clone returns an independent copy that can be edited without touching the
// archive it came from.
func (p *Palette) Clone() *Palette {
	cp := *p
	cp.Colors = append([]Color(nil), p.Colors...)
	return &cp
}

// ColorPalette converts the palette for use with image.Paletted. Entry 0 is
// replaced with color.Transparent, as the hardware never draws it.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c
	}
	if len(out) > 0 {
		out[0] = color.Transparent
	}
	return out
}

// Raw returns the palette bytes as stored.
func (p *Palette) Raw() []byte {
	out := make([]byte, len(p.Colors)*2)
	for i, c := range p.Colors {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(c))
	}
	return out
}
