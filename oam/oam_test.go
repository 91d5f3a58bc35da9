package oam

import (
	"image"
	"testing"

	"badc0de.net/pkg/go-bnsa/cursor"
	"badc0de.net/pkg/go-bnsa/ttesting"
)

var terminator = []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// twoListGroup is a group with two lists of one object each.
func twoListGroup() []byte {
	b := []byte{
		0x08, 0, 0, 0, // list 0 at +8, table size 8
		0x12, 0, 0, 0, // list 1 at +18
		0x00, 0xF0, 0xF0, 0x00, 0x01, // tile 0 at (-16,-16), 16x16
	}
	b = append(b, terminator...)
	b = append(b, 0x04, 0x00, 0x08, 0x40, 0x04) // tile 4 at (0,8), 16x8, hflip
	b = append(b, terminator...)
	return b
}

func TestDecode(t *testing.T) {
	b := append(twoListGroup(), 0xFF, 0x00)
	c := cursor.New(b)

	g, err := Decode(c, 3)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ttesting.AssertEqualInt(t, "index", g.Index, 3)
	ttesting.AssertEqualInt(t, "lists", len(g.Lists), 2)
	ttesting.AssertEqualOffset(t, "size", g.Size, 28)
	ttesting.AssertEqualOffset(t, "cursor", c.Position(), 28)
	ttesting.AssertEqualBytes(t, "raw", g.Raw(), b[:28])

	e := g.List(1).Entries[0]
	if !e.HFlip() || e.VFlip() {
		t.Errorf("got hflip=%v vflip=%v; want true false", e.HFlip(), e.VFlip())
	}
	if got, want := e.Dimensions(), image.Pt(16, 8); got != want {
		t.Errorf("got dimensions %v; want %v", got, want)
	}
	if got, want := g.Bounds(), image.Rect(-16, -16, 16, 16); got != want {
		t.Errorf("got bounds %v; want %v", got, want)
	}
	if g.List(2) != nil {
		t.Errorf("List(2) should be nil")
	}
}

func TestDecodeSharedList(t *testing.T) {
	b := []byte{
		0x08, 0, 0, 0,
		0x08, 0, 0, 0,
		0x01, 0x00, 0x00, 0x00, 0x00,
	}
	b = append(b, terminator...)
	g, err := Decode(cursor.New(b), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Lists[0] != g.Lists[1] {
		t.Errorf("pointers to the same offset should share one list")
	}
	ttesting.AssertEqualOffset(t, "size", g.Size, int64(len(b)))
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		b    []byte
		want error
	}{
		{"zero table", []byte{0, 0, 0, 0}, ErrMalformedGroup},
		{"misaligned table", []byte{6, 0, 0, 0, 0, 0}, ErrMalformedGroup},
		{"missing terminator", []byte{4, 0, 0, 0, 1, 2, 3, 4, 5}, cursor.ErrUnexpectedEndOfStream},
		{"pointer past end", []byte{8, 0, 0, 0, 0x40, 0, 0, 0}, cursor.ErrUnexpectedEndOfStream},
	} {
		_, err := Decode(cursor.New(tc.b), 0)
		ttesting.AssertErrorIs(t, tc.name, err, tc.want)
	}
}

func TestDimensions(t *testing.T) {
	for _, tc := range []struct {
		sizeShape uint8
		want      image.Point
	}{
		{0x00, image.Pt(8, 8)},
		{0x03, image.Pt(64, 64)},
		{0x05, image.Pt(32, 8)},
		{0x0A, image.Pt(16, 32)},
		{0x0C, image.Pt(0, 0)},
	} {
		if got := (Entry{SizeShape: tc.sizeShape}).Dimensions(); got != tc.want {
			t.Errorf("sizeShape %02x: got %v; want %v", tc.sizeShape, got, tc.want)
		}
	}
}
