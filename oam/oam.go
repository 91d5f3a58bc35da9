// Package oam decodes OAM data-list groups: lists of hardware sprite objects
// that make up one displayed frame.
//
// A group starts with a table of 32-bit pointers relative to the group's
// first byte; the first pointer doubles as the table size. Each pointer leads
// to a list of 5-byte object entries closed by five 0xFF bytes.
package oam

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-bnsa/cursor"
)

const (
	// EndOfData opens the trailing filler after the last group, and fills
	// every byte of a list terminator.
	EndOfData = 0xFF
	EntrySize = 5
)

var ErrMalformedGroup = errors.New("malformed oam data list group")

// objectSizes is indexed by [shape][size]; shape 3 is prohibited on hardware.
var objectSizes = [4][4]image.Point{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},
	{},
}

// Entry is one hardware object.
type Entry struct {
	Tile      uint8
	X, Y      int8
	Flags     uint8
	SizeShape uint8
}

func (e Entry) HFlip() bool { return e.Flags&0x40 != 0 }
func (e Entry) VFlip() bool { return e.Flags&0x80 != 0 }

// Dimensions returns the object size in pixels. It is zero for the
// prohibited shape.
func (e Entry) Dimensions() image.Point {
	return objectSizes[e.SizeShape>>2&3][e.SizeShape&3]
}

// Rect returns the area covered by the object relative to the sprite origin.
func (e Entry) Rect() image.Rectangle {
	origin := image.Pt(int(e.X), int(e.Y))
	return image.Rectangle{Min: origin, Max: origin.Add(e.Dimensions())}
}

type List struct {
	Offset  int64
	Entries []Entry
}

// Bounds returns the union of all object rectangles in the list.
func (l *List) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, e := range l.Entries {
		r = r.Union(e.Rect())
	}
	return r
}

type Group struct {
	// Index is the sequential number of the group within its archive.
	Index  int
	Offset int64
	Size   int64

	Pointers []uint32
	Lists    []*List

	raw []byte
}

// Decode reads the group at the cursor. The cursor is left right after the
// furthest byte any of its lists used.
func Decode(c *cursor.Cursor, index int) (*Group, error) {
	g := &Group{Index: index, Offset: c.Position()}

	first, err := c.ReadUint32()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read oam group %d table size", index)
	}
	if first == 0 || first%4 != 0 {
		return nil, errors.Wrapf(ErrMalformedGroup, "group %d at 0x%06X: table size 0x%X", index, g.Offset, first)
	}
	g.Pointers = append(g.Pointers, first)
	for i := 1; i < int(first/4); i++ {
		p, err := c.ReadUint32()
		if err != nil {
			return nil, errors.Wrapf(err, "could not read oam group %d pointer %d", index, i)
		}
		g.Pointers = append(g.Pointers, p)
	}

	end := c.Position()
	seen := make(map[uint32]*List)
	for i, p := range g.Pointers {
		if l, ok := seen[p]; ok {
			g.Lists = append(g.Lists, l)
			continue
		}
		if err := c.SeekTo(g.Offset + int64(p)); err != nil {
			return nil, errors.Wrapf(err, "oam group %d list %d", index, i)
		}
		l, err := decodeList(c)
		if err != nil {
			return nil, errors.Wrapf(err, "oam group %d list %d", index, i)
		}
		seen[p] = l
		g.Lists = append(g.Lists, l)
		if c.Position() > end {
			end = c.Position()
		}
	}

	if err := c.SeekTo(end); err != nil {
		return nil, err
	}
	g.Size = end - g.Offset
	g.raw = c.Bytes(g.Offset, end)
	glog.V(3).Infof("oam group %d at 0x%06X: %d lists, %d bytes", index, g.Offset, len(g.Lists), g.Size)
	return g, nil
}

func decodeList(c *cursor.Cursor) (*List, error) {
	l := &List{Offset: c.Position()}
	for {
		b, err := c.ReadN(EntrySize)
		if err != nil {
			return nil, errors.Wrap(err, "could not read oam entry")
		}
		if b[0] == EndOfData && b[1] == EndOfData && b[2] == EndOfData && b[3] == EndOfData && b[4] == EndOfData {
			return l, nil
		}
		l.Entries = append(l.Entries, Entry{
			Tile:      b[0],
			X:         int8(b[1]),
			Y:         int8(b[2]),
			Flags:     b[3],
			SizeShape: b[4],
		})
	}
}

// List returns list i, or nil when the group has no such list.
func (g *Group) List(i int) *List {
	if i < 0 || i >= len(g.Lists) {
		return nil
	}
	return g.Lists[i]
}

// Bounds returns the union of the bounds of every list in the group.
func (g *Group) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, l := range g.Lists {
		r = r.Union(l.Bounds())
	}
	return r
}

// Raw returns the bytes the group was decoded from.
func (g *Group) Raw() []byte {
	return g.raw
}
