// Package pack implements the FSPK decoder: PackView parses a byte buffer
// into a header plus section directory and exposes typed, allocation-free,
// bounds-checked views over the borrowed bytes.
//
// All parse and access errors are values, never panics: Parse returns one
// of the errs format sentinels describing why the buffer is malformed, and a well-formed
// PackView never returns anything but a clean miss (zero value, false) for
// an out-of-range accessor call.
package pack

import (
	"fmt"

	"github.com/fspk/fspk/endian"
	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
)

func endianEngine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

// PackView is the borrowed-byte view over a parsed pack. It does not copy
// the input; every view it produces shares its lifetime with data.
type PackView struct {
	data     []byte
	header   Header
	sections map[format.SectionKind]sectionEntry
}

// Parse parses data into a PackView without copying data. It checks every
// pair of section bodies for overlap, so parse time grows with the square
// of the section count, and it allocates the section-kind index map, a
// duplicate-kind set, a span list for the overlap check, and the PackView.
func Parse(data []byte) (*PackView, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	if int(header.TotalLength) != len(data) {
		return nil, errs.ErrLengthMismatch
	}

	sections, err := parseDirectory(data, header)
	if err != nil {
		return nil, err
	}

	return &PackView{data: data, header: header, sections: sections}, nil
}

// Version returns the pack's format version.
func (pv *PackView) Version() uint16 { return pv.header.Version }

// Flags returns the pack's header flags.
func (pv *PackView) Flags() uint16 { return pv.header.Flags }

// Section returns the raw bytes of the section with the given kind, or
// (nil, false) if the pack has no such section. Per the forward-
// compatibility rule, callers must treat a miss as an empty collection,
// not an error.
func (pv *PackView) Section(kind format.SectionKind) ([]byte, bool) {
	e, ok := pv.sections[kind]
	if !ok {
		return nil, false
	}

	return pv.data[e.offset : e.offset+e.length], true
}

// HasSection reports whether the pack carries a (possibly empty) section
// of the given kind.
func (pv *PackView) HasSection(kind format.SectionKind) bool {
	_, ok := pv.sections[kind]
	return ok
}

// Describe returns a human-readable dump of the header and section
// directory, for diagnostics (cmd/fspkinfo and tests render it directly).
func (pv *PackView) Describe() string {
	out := fmt.Sprintf("FSPK version=%d flags=0x%04x length=%d sections=%d\n",
		pv.header.Version, pv.header.Flags, pv.header.TotalLength, len(pv.sections))

	for kind, e := range pv.sections {
		out += fmt.Sprintf("  %-24s offset=%-8d length=%-8d align=%d\n", kind, e.offset, e.length, e.alignment)
	}

	return out
}
