// Package tileset decodes the tile graphics blobs of a sprite archive.
//
// A tileset is a 32-bit byte count followed by that many bytes of 4bpp 8x8
// tiles, 32 bytes per tile, left pixel in the low nibble.
package tileset

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/cursor"
)

const (
	TileWidth  = 8
	TileHeight = 8
	TileBytes  = TileWidth * TileHeight / 2
)

type Tileset struct {
	// Offset is the absolute position of the size word.
	Offset int64
	// Size is the number of bytes the record occupies, size word included.
	Size int64

	Data []byte
}

// Decode reads one tileset at the cursor and leaves the cursor right after it.
func Decode(c *cursor.Cursor) (*Tileset, error) {
	ts := &Tileset{Offset: c.Position()}

	n, err := c.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "could not read tileset size")
	}
	if ts.Data, err = c.ReadN(int(n)); err != nil {
		return nil, errors.Wrapf(err, "could not read tileset data of %d bytes", n)
	}
	if n%TileBytes != 0 {
		glog.V(2).Infof("tileset at 0x%06X: size %d is not a whole number of tiles", ts.Offset, n)
	}
	ts.Size = c.Position() - ts.Offset
	return ts, nil
}

// TileCount returns the number of complete tiles in the set.
func (t *Tileset) TileCount() int {
	return len(t.Data) / TileBytes
}

// ColorIndex returns the palette index of pixel (x, y) of tile i, or 0 when
// the tile does not exist.
func (t *Tileset) ColorIndex(i, x, y int) uint8 {
	if i < 0 || i >= t.TileCount() || x < 0 || x >= TileWidth || y < 0 || y >= TileHeight {
		return 0
	}
	b := t.Data[i*TileBytes+(y*TileWidth+x)/2]
	if x%2 == 0 {
		return b & 0x0F
	}
	return b >> 4
}

// Raw returns the record exactly as stored, size word included.
func (t *Tileset) Raw() []byte {
	out := make([]byte, 4, 4+len(t.Data))
	n := uint32(len(t.Data))
	out[0], out[1], out[2], out[3] = byte(n), byte(n>>8), byte(n>>16), byte(n>>24)
	return append(out, t.Data...)
}
