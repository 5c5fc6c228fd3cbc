package encoder

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/internal/intern"
	"github.com/fspk/fspk/pack"
)

// stringTable accumulates the pack's STRING_TABLE body, interning each
// distinct string by content so repeated tag names, resource names, and
// property keys share one copy.
type stringTable struct {
	interned *intern.Table
	buf      []byte
}

func newStringTable() *stringTable {
	return &stringTable{interned: intern.New()}
}

// intern returns the StrRef for s, appending it to the table body on its
// first occurrence.
func (t *stringTable) intern(s string) pack.StrRef {
	data := []byte(s)
	off, _ := t.interned.Intern(data, func() int {
		pos := len(t.buf)
		t.buf = append(t.buf, data...)
		return pos
	})

	return pack.StrRef{Off: uint32(off), Len: uint16(len(s))}
}

// bytes returns the accumulated STRING_TABLE body.
func (t *stringTable) bytes() []byte { return t.buf }

// assetKeyTable accumulates a MESH_KEYS or KEYFRAMES_KEYS body: a flat
// array of StrRef, deduped by key string, indexed by the u16 a
// StateRecord's MeshKey/KeyframesKey field carries.
type assetKeyTable struct {
	interned *intern.Table
	strs     *stringTable
	refs     []pack.StrRef
}

func newAssetKeyTable(strs *stringTable) *assetKeyTable {
	return &assetKeyTable{interned: intern.New(), strs: strs}
}

// intern returns the asset key index for key, or format.NoAssetKey if key
// is empty.
func (a *assetKeyTable) intern(key string) (uint16, error) {
	if key == "" {
		return format.NoAssetKey, nil
	}

	pos, _ := a.interned.Intern([]byte(key), func() int {
		ref := a.strs.intern(key)
		idx := len(a.refs)
		a.refs = append(a.refs, ref)
		return idx
	})

	if pos >= int(format.NoAssetKey) {
		return 0, errOverflowf("asset key table exceeds %d entries", format.NoAssetKey)
	}

	return uint16(pos), nil
}

// bytes returns the accumulated MESH_KEYS/KEYFRAMES_KEYS body.
func (a *assetKeyTable) bytes() []byte {
	buf := make([]byte, len(a.refs)*format.StrRefSize)
	for i, ref := range a.refs {
		ref.WriteTo(buf, i*format.StrRefSize)
	}

	return buf
}

// shapePool accumulates the SHAPES section body. Dedup operates at the
// granularity of a whole window's ordered shape list (the concatenation of
// its 12-byte records), not per-shape: a HitWindow/HurtWindow/PushWindow's
// shapes_off/shapes_len names a contiguous slice, so two different windows
// can only share a range when their entire shape lists are byte-identical
// and in the same order. A shape that happens to match one shape in an
// unrelated list, without the rest of the list matching too, is stored
// again rather than broken out into a non-contiguous reference.
type shapePool struct {
	interned *intern.Table
	shapes   []pack.Shape
}

func newShapePool() *shapePool {
	return &shapePool{interned: intern.New()}
}

// internBlock returns the (offset, count) of shapes within the pool,
// reusing an identical earlier block when one exists.
func (p *shapePool) internBlock(shapes []pack.Shape) (off uint32, count uint16) {
	if len(shapes) == 0 {
		return 0, 0
	}

	blob := make([]byte, 0, len(shapes)*format.ShapeSize)
	for _, s := range shapes {
		b := s.Bytes()
		blob = append(blob, b[:]...)
	}

	pos, _ := p.interned.Intern(blob, func() int {
		idx := len(p.shapes)
		p.shapes = append(p.shapes, shapes...)
		return idx
	})

	return uint32(pos), uint16(len(shapes))
}

// bytes returns the accumulated SHAPES body.
func (p *shapePool) bytes() []byte {
	buf := make([]byte, len(p.shapes)*format.ShapeSize)
	for i, s := range p.shapes {
		s.WriteTo(buf, i*format.ShapeSize)
	}

	return buf
}
