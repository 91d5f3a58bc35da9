// Package minianim decodes mini-animation groups.
//
// A group is a table of 32-bit pointers relative to its first byte (the first
// pointer doubles as the table size), each leading to a mini-animation: a run
// of 3-byte entries that select an OAM data list and hold it for a number of
// ticks. The run ends with the first entry flagged as stop or loop.
//
// The archive does not declare where mini-animation groups end and OAM data
// list groups begin, so Decode never fails: it reports whether the bytes at
// the cursor are structurally a mini-animation group instead.
package minianim

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-bnsa/cursor"
)

const (
	EntrySize = 3

	FlagLoop = 0x40
	FlagStop = 0x80

	flagMask = FlagLoop | FlagStop
)

type Entry struct {
	OAMList uint8
	Delay   uint8
	Flags   uint8
}

// Last reports whether this entry closes its mini-animation.
func (e Entry) Last() bool {
	return e.Flags&flagMask != 0
}

type MiniAnim struct {
	Offset  int64
	Entries []Entry
}

type Group struct {
	Offset int64
	Size   int64

	// Valid is false when the bytes at Offset do not form a group. Nothing
	// else in an invalid group is meaningful.
	Valid bool

	Pointers []uint32
	Anims    []*MiniAnim

	raw []byte
}

// Decode attempts to read a group at the cursor. On success the cursor is left
// right after the group; otherwise it is restored and Valid is false.
func Decode(c *cursor.Cursor) *Group {
	g := &Group{Offset: c.Position()}
	if !g.decode(c) {
		_ = c.SeekTo(g.Offset)
		return &Group{Offset: g.Offset}
	}
	g.Valid = true
	return g
}

func (g *Group) decode(c *cursor.Cursor) bool {
	avail := c.Remaining()

	first, err := c.ReadUint32()
	if err != nil {
		return false
	}
	if first == 0 || first%4 != 0 || int64(first) > avail {
		glog.V(3).Infof("no mini-anim group at 0x%06X: table size 0x%X", g.Offset, first)
		return false
	}
	g.Pointers = append(g.Pointers, first)
	for i := 1; i < int(first/4); i++ {
		p, err := c.ReadUint32()
		if err != nil {
			return false
		}
		if p < g.Pointers[i-1] || int64(p)+EntrySize > avail {
			glog.V(3).Infof("no mini-anim group at 0x%06X: pointer %d is 0x%X", g.Offset, i, p)
			return false
		}
		g.Pointers = append(g.Pointers, p)
	}

	end := c.Position()
	var prev *MiniAnim
	for i, p := range g.Pointers {
		if prev != nil && int64(p) == prev.Offset-g.Offset {
			g.Anims = append(g.Anims, prev)
			continue
		}
		if prev != nil && end != g.Offset+int64(p) {
			glog.V(3).Infof("no mini-anim group at 0x%06X: anim %d starts at 0x%06X, previous ended at 0x%06X", g.Offset, i, g.Offset+int64(p), end)
			return false
		}
		if c.SeekTo(g.Offset+int64(p)) != nil {
			return false
		}
		a, ok := decodeAnim(c)
		if !ok {
			glog.V(3).Infof("no mini-anim group at 0x%06X: anim %d is not well formed", g.Offset, i)
			return false
		}
		g.Anims = append(g.Anims, a)
		prev = a
		end = c.Position()
	}

	g.Size = end - g.Offset
	g.raw = c.Bytes(g.Offset, end)
	return true
}

func decodeAnim(c *cursor.Cursor) (*MiniAnim, bool) {
	a := &MiniAnim{Offset: c.Position()}
	for {
		b, err := c.ReadN(EntrySize)
		if err != nil {
			return nil, false
		}
		e := Entry{OAMList: b[0], Delay: b[1], Flags: b[2]}
		if e.Flags&^flagMask != 0 {
			return nil, false
		}
		a.Entries = append(a.Entries, e)
		if e.Last() {
			return a, true
		}
	}
}

// Raw returns the bytes the group was decoded from.
func (g *Group) Raw() []byte {
	return g.raw
}

// FirstOAMList returns the OAM list shown first by the group's first
// mini-animation, or 0 when there is none.
func (g *Group) FirstOAMList() int {
	if len(g.Anims) == 0 || len(g.Anims[0].Entries) == 0 {
		return 0
	}
	return int(g.Anims[0].Entries[0].OAMList)
}
