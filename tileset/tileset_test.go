package tileset

import (
	"testing"

	"badc0de.net/pkg/go-bnsa/cursor"
	"badc0de.net/pkg/go-bnsa/ttesting"
)

func TestDecode(t *testing.T) {
	b := []byte{0x40, 0, 0, 0}
	tiles := make([]byte, 0x40)
	// tile 0: (0,0)=1, (1,0)=2; tile 1: (7,0)=15
	tiles[0] = 0x21
	tiles[TileBytes+3] = 0xF0
	b = append(b, tiles...)
	b = append(b, 0xEE) // next record

	c := cursor.New(b)
	ts, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ttesting.AssertEqualOffset(t, "size", ts.Size, 0x44)
	ttesting.AssertEqualOffset(t, "cursor after record", c.Position(), 0x44)
	ttesting.AssertEqualInt(t, "tile count", ts.TileCount(), 2)
	ttesting.AssertEqualInt(t, "tile 0 pixel 0", int(ts.ColorIndex(0, 0, 0)), 1)
	ttesting.AssertEqualInt(t, "tile 0 pixel 1", int(ts.ColorIndex(0, 1, 0)), 2)
	ttesting.AssertEqualInt(t, "tile 1 pixel 7", int(ts.ColorIndex(1, 7, 0)), 15)
	ttesting.AssertEqualInt(t, "missing tile", int(ts.ColorIndex(2, 0, 0)), 0)
	ttesting.AssertEqualBytes(t, "raw round trip", ts.Raw(), b[:0x44])
}

func TestDecodeTruncated(t *testing.T) {
	c := cursor.New([]byte{0x40, 0, 0, 0, 1, 2, 3})
	_, err := Decode(c)
	ttesting.AssertErrorIs(t, "truncated data", err, cursor.ErrUnexpectedEndOfStream)
}
