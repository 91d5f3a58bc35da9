package palette

import (
	"image/color"
	"testing"

	"badc0de.net/pkg/go-bnsa/cursor"
	"badc0de.net/pkg/go-bnsa/ttesting"
)

func TestColorRGBA(t *testing.T) {
	for _, tc := range []struct {
		name       string
		c          Color
		r, g, b, a uint32
	}{
		{"black", 0x0000, 0, 0, 0, 0xFFFF},
		{"red", 0x001F, 0xFFFF, 0, 0, 0xFFFF},
		{"green", 0x03E0, 0, 0xFFFF, 0, 0xFFFF},
		{"blue", 0x7C00, 0, 0, 0xFFFF, 0xFFFF},
		{"white ignores top bit", 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, a := tc.c.RGBA()
			if r != tc.r || g != tc.g || b != tc.b || a != tc.a {
				t.Errorf("got %d %d %d %d; want %d %d %d %d", r, g, b, a, tc.r, tc.g, tc.b, tc.a)
			}
		})
	}
}

func TestFromRGB(t *testing.T) {
	if got := FromRGB(0xFF, 0, 0); got != 0x001F {
		t.Errorf("got %04x; want 001f", uint16(got))
	}
	if got := FromRGB(0, 0, 0xFF); got != 0x7C00 {
		t.Errorf("got %04x; want 7c00", uint16(got))
	}
}

func TestDecodeAndClone(t *testing.T) {
	b := make([]byte, Marker+2)
	b[2], b[3] = 0x1F, 0x00 // color 1 = red
	c := cursor.New(b)

	p, err := Decode(c, Marker)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ttesting.AssertEqualInt(t, "colors", len(p.Colors), Colors)
	ttesting.AssertEqualOffset(t, "cursor", c.Position(), Marker)
	ttesting.AssertEqualBytes(t, "raw", p.Raw(), b[:Marker])

	cp := p.Clone()
	cp.Colors[1] = FromRGB(0, 0xFF, 0)
	if p.Colors[1] != 0x001F {
		t.Errorf("editing a clone changed the original: got %04x", uint16(p.Colors[1]))
	}

	cpal := p.ColorPalette()
	if cpal[0] != color.Transparent {
		t.Errorf("entry 0 is %v; want transparent", cpal[0])
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode(cursor.New(make([]byte, 10)), Marker)
	ttesting.AssertErrorIs(t, "short palette", err, cursor.ErrUnexpectedEndOfStream)
}
