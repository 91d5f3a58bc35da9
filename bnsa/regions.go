package bnsa

import (
	"bytes"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/cursor"
	"badc0de.net/pkg/go-bnsa/minianim"
	"badc0de.net/pkg/go-bnsa/oam"
	"badc0de.net/pkg/go-bnsa/palette"
	"badc0de.net/pkg/go-bnsa/tileset"
)

// readTilesets decodes tilesets until the cursor reaches the lowest palette
// pointer any frame used. That pointer is the only bound; when no frame
// reported one there are no tilesets.
func (a *Archive) readTilesets(c *cursor.Cursor) error {
	a.TilesetStart = c.Position()
	glog.Infof("reading tilesets, starting at 0x%06X", a.TilesetStart)

	if a.ProbablyPaletteStart == unknownOffset {
		return nil
	}
	for c.Position() < a.ProbablyPaletteStart {
		ts, err := tileset.Decode(c)
		if err != nil {
			return errors.Wrapf(err, "tileset %d", len(a.Tilesets))
		}
		a.Tilesets = append(a.Tilesets, ts)
	}
	return nil
}

// boundary is the outcome of looking at the bytes that follow a palette.
type boundary int

const (
	// paletteNext means another palette starts at the cursor.
	paletteNext boundary = iota
	// miniAnimNext means the palette region is over and the first
	// mini-animation group starts at the cursor.
	miniAnimNext
)

func (b boundary) String() string {
	if b == miniAnimNext {
		return "mini-anim"
	}
	return "palette"
}

// singleFrameSignature follows a table size of 4 in a mini-animation group
// holding one single-entry animation: OAM list 0, delay 1, stop.
var singleFrameSignature = []byte{0x00, 0x01, minianim.FlagStop}

// classify decides whether the bytes at the cursor start a palette or the
// mini-animation region. It only reads speculatively: the cursor is always
// back where it started when classify returns.
//
// Palette data rarely begins with a multiple of four, while a mini-animation
// group always begins with its pointer table size. A value that is a
// multiple of four is taken as a table when the pointers that would follow
// it fit in the stream and never decrease.
func classify(c *cursor.Cursor) (boundary, error) {
	start := c.Position()
	v, err := c.ReadUint32()
	if err != nil {
		return paletteNext, err
	}
	verdict := func(b boundary, why string) (boundary, error) {
		glog.V(3).Infof("0x%06X: %s (0x%X: %s)", start, b, v, why)
		return b, c.SeekTo(start)
	}

	if v%4 != 0 {
		return verdict(paletteNext, "not a table size")
	}
	if v == 4 {
		if sig, err := c.Peek(len(singleFrameSignature)); err == nil && bytes.Equal(sig, singleFrameSignature) {
			return verdict(miniAnimNext, "single frame mini-anim")
		}
	}
	if v == 0 || int64(v) > c.Len()-start {
		return verdict(paletteNext, "table would not fit")
	}

	prev := v
	for i := uint32(1); i < v/4; i++ {
		next, err := c.ReadUint32()
		if err != nil {
			_ = c.SeekTo(start)
			return paletteNext, err
		}
		if next < prev {
			return verdict(paletteNext, "pointers decrease")
		}
		prev = next
	}
	return verdict(miniAnimNext, "monotonic pointer table")
}

// readPalettes decodes palettes until classify finds the start of the
// mini-animation region. Without the palette marker no palettes are read;
// the word that should have been the marker stays consumed.
func (a *Archive) readPalettes(c *cursor.Cursor) error {
	a.PaletteStart = c.Position()
	glog.Infof("found start of palettes at 0x%06X", a.PaletteStart)

	size, err := c.ReadUint32()
	if err != nil {
		return errors.Wrap(err, "could not read palette marker")
	}
	if size != palette.Marker {
		glog.V(1).Infof("no palettes at 0x%06X: found 0x%08X instead of 0x%08X", a.PaletteStart, size, palette.Marker)
		return nil
	}

	for {
		b, err := classify(c)
		if err != nil {
			return errors.Wrapf(err, "classifying data at 0x%06X", c.Position())
		}
		if b == miniAnimNext {
			return nil
		}
		glog.V(2).Infof("reading palette at 0x%06X", c.Position())
		p, err := palette.Decode(c, int(size))
		if err != nil {
			return errors.Wrapf(err, "palette %d", len(a.Palettes))
		}
		a.Palettes = append(a.Palettes, p)
	}
}

// alignPad skips one byte, then keeps skipping until the cursor is 4-byte
// aligned. It never moves past the end of the stream. Padding contents are
// not checked.
func alignPad(c *cursor.Cursor) {
	for c.Skip(1) == nil && c.Position()%4 != 0 {
	}
}

// readMiniAnims decodes mini-animation groups until one fails to validate;
// the cursor is left at the start of that attempt, which is where the OAM
// data begins.
func (a *Archive) readMiniAnims(c *cursor.Cursor) {
	a.MiniAnimStart = c.Position()
	glog.Infof("reading mini-anim data at 0x%06X", a.MiniAnimStart)

	for {
		start := c.Position()
		g := minianim.Decode(c)
		if !g.Valid {
			_ = c.SeekTo(start)
			return
		}
		glog.V(2).Infof("mini-anim group %d at 0x%06X: %d anims", len(a.MiniAnimGroups), g.Offset, len(g.Anims))
		a.MiniAnimGroups = append(a.MiniAnimGroups, g)
		alignPad(c)
	}
}

// readOAMGroups decodes OAM data list groups until the end of the stream or
// an 0xFF filler byte.
func (a *Archive) readOAMGroups(c *cursor.Cursor) error {
	a.OAMStart = c.Position()
	glog.Infof("reading oam data at 0x%06X", a.OAMStart)

	for !c.AtEnd() {
		if b, err := c.PeekByte(); err != nil {
			return err
		} else if b == oam.EndOfData {
			break
		}
		g, err := oam.Decode(c, len(a.OAMGroups))
		if err != nil {
			return err
		}
		a.OAMGroups = append(a.OAMGroups, g)
		if !c.AtEnd() {
			alignPad(c)
		}
	}

	a.Consistent = c.Position() == c.Len()
	if !a.Consistent {
		glog.Warningf("stopped reading at 0x%06X, but the archive is 0x%06X bytes long", c.Position(), c.Len())
	}
	return nil
}
