package bnsa

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/anim"
	"badc0de.net/pkg/go-bnsa/cursor"
	"badc0de.net/pkg/go-bnsa/minianim"
	"badc0de.net/pkg/go-bnsa/oam"
	"badc0de.net/pkg/go-bnsa/palette"
	"badc0de.net/pkg/go-bnsa/tileset"
)

// PointerBase is the absolute offset that header and frame pointers are
// relative to: the first byte after the 4-byte header.
const PointerBase = 4

// unknownOffset marks ProbablyPaletteStart before any frame has reported a
// palette pointer.
const unknownOffset = -1

// ErrUnexpectedEndOfStream is returned when the archive ends in the middle of
// a record. No part of the archive should be used after it.
var ErrUnexpectedEndOfStream = cursor.ErrUnexpectedEndOfStream

// Rejection explains why a stream was not accepted as an archive. It is an
// expected outcome, not an error.
type Rejection struct {
	Reason string
	Magic  [2]byte
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s (magic % x)", r.Reason, r.Magic[:])
}

type Archive struct {
	// LargestTilesetHint is the first header byte. It is kept as read and
	// never checked against the tilesets actually present.
	LargestTilesetHint uint8
	AnimationCount     int

	Animations     []*anim.Animation
	Tilesets       []*tileset.Tileset
	Palettes       []*palette.Palette
	MiniAnimGroups []*minianim.Group
	OAMGroups      []*oam.Group

	// Region starts, recorded for diagnostics.
	TilesetStart int64
	PaletteStart int64
	// ProbablyPaletteStart is the lowest palette pointer seen in any frame.
	// It bounds the tileset walk and is -1 when no frame was read.
	ProbablyPaletteStart int64
	MiniAnimStart        int64
	OAMStart             int64

	// Length is the size of the decoded stream.
	Length int64
	// Consistent is false when reading stopped before the end of the
	// stream.
	Consistent bool

	// Rejection is non-nil when the stream is not an archive. Only
	// LargestTilesetHint is meaningful in that case.
	Rejection *Rejection
}

// Valid reports whether the stream was accepted as an archive.
func (a *Archive) Valid() bool {
	return a.Rejection == nil
}

// DecodeFile reads a whole archive file into memory and decodes it.
func DecodeFile(path string) (*Archive, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	a, err := DecodeBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	return a, nil
}

// Decode reads r to the end and decodes the result.
func Decode(r io.Reader) (*Archive, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading archive")
	}
	return DecodeBytes(b)
}

// DecodeBytes decodes an archive held in memory.
//
// A stream with the wrong magic number yields an Archive whose Valid method
// returns false and a nil error. Any error returned is fatal.
func DecodeBytes(b []byte) (*Archive, error) {
	c := cursor.New(b)
	a := &Archive{
		Length:               c.Len(),
		ProbablyPaletteStart: unknownOffset,
	}

	if err := a.readHeader(c); err != nil {
		return nil, errors.Wrap(err, "bad bnsa header")
	}
	if !a.Valid() {
		glog.V(1).Infof("not a sprite archive: %s", a.Rejection)
		return a, nil
	}

	if err := a.readTilesets(c); err != nil {
		return nil, errors.Wrap(err, "bad bnsa tilesets")
	}
	if err := a.readPalettes(c); err != nil {
		return nil, errors.Wrap(err, "bad bnsa palettes")
	}
	a.readMiniAnims(c)
	if err := a.readOAMGroups(c); err != nil {
		return nil, errors.Wrap(err, "bad bnsa oam data")
	}

	a.resolve()
	return a, nil
}

// Tileset returns tileset i, or nil for an unresolved or out of range index.
func (a *Archive) Tileset(i int) *tileset.Tileset {
	if i < 0 || i >= len(a.Tilesets) {
		return nil
	}
	return a.Tilesets[i]
}

// Palette returns palette i, or nil for an unresolved or out of range index.
func (a *Archive) Palette(i int) *palette.Palette {
	if i < 0 || i >= len(a.Palettes) {
		return nil
	}
	return a.Palettes[i]
}

// MiniAnimGroup returns mini-animation group i, or nil.
func (a *Archive) MiniAnimGroup(i int) *minianim.Group {
	if i < 0 || i >= len(a.MiniAnimGroups) {
		return nil
	}
	return a.MiniAnimGroups[i]
}

// OAMGroup returns OAM data list group i, or nil.
func (a *Archive) OAMGroup(i int) *oam.Group {
	if i < 0 || i >= len(a.OAMGroups) {
		return nil
	}
	return a.OAMGroups[i]
}

// OAMGroupBounds returns the area covered by OAM group i.
func (a *Archive) OAMGroupBounds(i int) image.Rectangle {
	if g := a.OAMGroup(i); g != nil {
		return g.Bounds()
	}
	return image.Rectangle{}
}

// EditablePalette returns a copy of palette i that can be modified freely.
func (a *Archive) EditablePalette(i int) (*palette.Palette, error) {
	p := a.Palette(i)
	if p == nil {
		return nil, fmt.Errorf("no palette %d; archive has %d", i, len(a.Palettes))
	}
	return p.Clone(), nil
}
