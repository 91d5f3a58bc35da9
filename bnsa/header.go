package bnsa

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/anim"
	"badc0de.net/pkg/go-bnsa/cursor"
)

var magic = [2]byte{0x00, 0x01}

// readHeader reads the header and decodes every animation in the pointer
// table. A magic mismatch sets a.Rejection and is not an error.
//
// The table is read sequentially while animation bodies are reached through
// absolute jumps; the cursor returns to the next table slot after each body,
// except after the last one, so it ends up at the first byte following the
// last animation.
func (a *Archive) readHeader(c *cursor.Cursor) error {
	hint, err := c.ReadByte()
	if err != nil {
		return errors.Wrap(err, "could not read largest tileset hint")
	}
	a.LargestTilesetHint = hint

	m, err := c.ReadN(2)
	if err != nil {
		return errors.Wrap(err, "could not read magic number")
	}
	if m[0] != magic[0] || m[1] != magic[1] {
		a.Rejection = &Rejection{Reason: "invalid magic number", Magic: [2]byte{m[0], m[1]}}
		return nil
	}

	count, err := c.ReadByte()
	if err != nil {
		return errors.Wrap(err, "could not read animation count")
	}
	a.AnimationCount = int(count)
	glog.Infof("number of animations: %d", a.AnimationCount)

	for i := 0; i < a.AnimationCount; i++ {
		ptr, err := c.ReadUint32()
		if err != nil {
			return errors.Wrapf(err, "could not read animation pointer %d", i)
		}
		nextSlot := c.Position()

		if err := c.SeekTo(PointerBase + int64(ptr)); err != nil {
			return errors.Wrapf(err, "animation %d points at 0x%X", i, ptr)
		}
		an, err := anim.Decode(c, i, PointerBase)
		if err != nil {
			return err
		}
		a.Animations = append(a.Animations, an)

		if lowest, ok := an.MinPalettePointer(); ok {
			if a.ProbablyPaletteStart == unknownOffset || lowest < a.ProbablyPaletteStart {
				a.ProbablyPaletteStart = lowest
			}
		}

		if i < a.AnimationCount-1 {
			if err := c.SeekTo(nextSlot); err != nil {
				return err
			}
		}
	}
	return nil
}
