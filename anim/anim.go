// Package anim decodes the animations listed in a sprite archive's header.
//
// An animation is a run of 20-byte frames. Each frame points at the tileset,
// palette, mini-animation group and OAM data list group it is drawn with;
// those pointers are relative to the archive's pointer base and stay
// unresolved until the whole archive has been read.
package anim

import (
	"encoding/binary"
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/cursor"
)

const (
	FrameSize = 20

	FlagLoop = 0x40
	FlagStop = 0x80

	// Unresolved marks a frame reference that has not been, or could not
	// be, linked to a record.
	Unresolved = -1
)

type rawFrame struct {
	Tileset, Palette, MiniAnim, OAM uint32

	Delay uint8
	_     uint8
	Flags uint8
	_     uint8
}

type Frame struct {
	Offset int64

	TilesetPointer  uint32
	PalettePointer  uint32
	MiniAnimPointer uint32
	OAMPointer      uint32

	// Delay is the frame duration in 1/60 s ticks.
	Delay uint8
	Flags uint8

	// Indices into the archive's record slices, filled by Resolve.
	Tileset       int
	Palette       int
	MiniAnimGroup int
	OAMGroup      int

	Bounds image.Rectangle
}

func (f *Frame) Loops() bool { return f.Flags&FlagLoop != 0 }

func (f *Frame) last() bool { return f.Flags&(FlagLoop|FlagStop) != 0 }

type Animation struct {
	Index  int
	Offset int64
	// Base is the absolute offset frame pointers are relative to.
	Base int64

	Frames []*Frame
	Bounds image.Rectangle
}

// Decode reads the frames of one animation starting at the cursor. The
// cursor is left after the closing frame.
func Decode(c *cursor.Cursor, index int, base int64) (*Animation, error) {
	a := &Animation{Index: index, Offset: c.Position(), Base: base}
	for {
		off := c.Position()
		var rf rawFrame
		if err := binary.Read(c, binary.LittleEndian, &rf); err != nil {
			return nil, errors.Wrapf(err, "could not read animation %d frame %d", index, len(a.Frames))
		}
		f := &Frame{
			Offset:          off,
			TilesetPointer:  rf.Tileset,
			PalettePointer:  rf.Palette,
			MiniAnimPointer: rf.MiniAnim,
			OAMPointer:      rf.OAM,
			Delay:           rf.Delay,
			Flags:           rf.Flags,
			Tileset:         Unresolved,
			Palette:         Unresolved,
			MiniAnimGroup:   Unresolved,
			OAMGroup:        Unresolved,
		}
		a.Frames = append(a.Frames, f)
		if f.last() {
			break
		}
	}
	glog.V(2).Infof("animation %d at 0x%06X: %d frames", index, a.Offset, len(a.Frames))
	return a, nil
}

// MinPalettePointer returns the lowest absolute palette offset referenced by
// any frame. ok is false for an animation without frames.
func (a *Animation) MinPalettePointer() (lowest int64, ok bool) {
	for _, f := range a.Frames {
		p := a.Base + int64(f.PalettePointer)
		if !ok || p < lowest {
			lowest, ok = p, true
		}
	}
	return lowest, ok
}

// Index answers which record spans a given absolute offset. Each method
// returns Unresolved when no record does.
type Index interface {
	TilesetAt(off int64) int
	PaletteAt(off int64) int
	MiniAnimGroupAt(off int64) int
	OAMGroupAt(off int64) int
}

// Resolve links every frame pointer to a record index.
func (a *Animation) Resolve(ix Index) {
	for i, f := range a.Frames {
		f.Tileset = ix.TilesetAt(a.Base + int64(f.TilesetPointer))
		f.Palette = ix.PaletteAt(a.Base + int64(f.PalettePointer))
		f.MiniAnimGroup = ix.MiniAnimGroupAt(a.Base + int64(f.MiniAnimPointer))
		f.OAMGroup = ix.OAMGroupAt(a.Base + int64(f.OAMPointer))
		if f.Tileset == Unresolved || f.Palette == Unresolved || f.MiniAnimGroup == Unresolved || f.OAMGroup == Unresolved {
			glog.V(1).Infof("animation %d frame %d: unresolved reference (tileset %d, palette %d, mini-anim %d, oam %d)",
				a.Index, i, f.Tileset, f.Palette, f.MiniAnimGroup, f.OAMGroup)
		}
	}
}

// BoundsSource reports the area covered by an OAM data list group.
type BoundsSource interface {
	OAMGroupBounds(i int) image.Rectangle
}

// ComputeBounds fills the frame and animation bounding boxes. Frames whose
// OAM group is unresolved get an empty rectangle.
func (a *Animation) ComputeBounds(src BoundsSource) {
	a.Bounds = image.Rectangle{}
	for _, f := range a.Frames {
		f.Bounds = image.Rectangle{}
		if f.OAMGroup != Unresolved {
			f.Bounds = src.OAMGroupBounds(f.OAMGroup)
		}
		a.Bounds = a.Bounds.Union(f.Bounds)
	}
}
