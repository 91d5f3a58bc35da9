package bnsa

import (
	"github.com/tidwall/btree"

	"badc0de.net/pkg/go-bnsa/anim"
)

// span is the extent of one decoded record.
type span struct {
	off, size int64
	idx       int
}

// spanIndex finds the record covering an offset. Records of one kind never
// overlap, so the covering record, if any, is the one with the greatest
// start offset not above the query.
type spanIndex struct {
	tree *btree.BTreeG[span]
}

func newSpanIndex() *spanIndex {
	return &spanIndex{
		tree: btree.NewBTreeG(func(a, b span) bool { return a.off < b.off }),
	}
}

func (s *spanIndex) add(off, size int64, idx int) {
	s.tree.Set(span{off: off, size: size, idx: idx})
}

func (s *spanIndex) at(off int64) int {
	idx := anim.Unresolved
	s.tree.Descend(span{off: off}, func(sp span) bool {
		if off < sp.off+sp.size {
			idx = sp.idx
		}
		return false
	})
	return idx
}

// archiveIndex links frame pointers to the records of a fully read archive.
type archiveIndex struct {
	paletteStart int64
	havePalettes bool

	tilesets, palettes, miniAnims, oams *spanIndex
}

func newArchiveIndex(a *Archive) *archiveIndex {
	ix := &archiveIndex{
		paletteStart: a.PaletteStart,
		havePalettes: len(a.Palettes) > 0,
		tilesets:     newSpanIndex(),
		palettes:     newSpanIndex(),
		miniAnims:    newSpanIndex(),
		oams:         newSpanIndex(),
	}
	for i, t := range a.Tilesets {
		ix.tilesets.add(t.Offset, t.Size, i)
	}
	for i, p := range a.Palettes {
		ix.palettes.add(p.Offset, p.Size, i)
	}
	for i, g := range a.MiniAnimGroups {
		ix.miniAnims.add(g.Offset, g.Size, i)
	}
	for i, g := range a.OAMGroups {
		ix.oams.add(g.Offset, g.Size, i)
	}
	return ix
}

func (ix *archiveIndex) TilesetAt(off int64) int { return ix.tilesets.at(off) }

// PaletteAt also accepts the palette marker, which frames use to mean the
// first palette.
func (ix *archiveIndex) PaletteAt(off int64) int {
	if off == ix.paletteStart && ix.havePalettes {
		return 0
	}
	return ix.palettes.at(off)
}

func (ix *archiveIndex) MiniAnimGroupAt(off int64) int { return ix.miniAnims.at(off) }
func (ix *archiveIndex) OAMGroupAt(off int64) int      { return ix.oams.at(off) }

// resolve links every animation frame to its records and computes bounding
// boxes. It runs once, after all regions have been read.
func (a *Archive) resolve() {
	ix := newArchiveIndex(a)
	for _, an := range a.Animations {
		an.Resolve(ix)
		an.ComputeBounds(a)
	}
}
