package pack

import (
	"unicode/utf8"

	"github.com/fspk/fspk/format"
)

// StrRef is an interned string reference: (offset, length) into the
// STRING_TABLE section body.
type StrRef struct {
	Off uint32
	Len uint16
}

// Empty reports whether the reference has zero length. StrRef has no
// dedicated "absent" encoding beyond a zero-length reference; the asset-key
// "none" sentinel lives in the StateRecord's index fields, not in a StrRef.
func (r StrRef) Empty() bool { return r.Len == 0 }

// parseStrRef reads one 8-byte StrRef record (off u32, len u16, pad u16)
// at the given byte offset within data.
func parseStrRef(data []byte, off int) StrRef {
	return StrRef{
		Off: readUint32(data, off),
		Len: readUint16(data, off+4),
	}
}

// WriteTo writes the 8-byte wire form of r into data at off (a 2-byte pad
// follows the length field).
func (r StrRef) WriteTo(data []byte, off int) {
	putUint32(data, off, r.Off)
	putUint16(data, off+4, r.Len)
	putUint16(data, off+6, 0)
}

// String resolves a StrRef against the STRING_TABLE section body.
// Returns (value, false) if the reference falls outside the table or its
// bytes are not valid UTF-8.
func (pv *PackView) String(ref StrRef) (string, bool) {
	table, ok := pv.Section(format.SectionStringTable)
	if !ok {
		return "", false
	}

	start := uint64(ref.Off)
	end := start + uint64(ref.Len)
	if end > uint64(len(table)) {
		return "", false
	}

	b := table[start:end]
	if !utf8.Valid(b) {
		return "", false
	}

	return string(b), true
}
