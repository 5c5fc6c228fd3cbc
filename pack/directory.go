package pack

import (
	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
)

// sectionEntry is one parsed, validated section directory entry: the
// resolved byte span of the section body within the pack buffer.
type sectionEntry struct {
	kind      format.SectionKind
	offset    uint32
	length    uint32
	alignment uint32
}

// parseDirectory parses header.SectionCount directory entries starting at
// format.HeaderSize, validating each entry's bounds and checking for
// overlaps and duplicate kinds against the rest of the buffer.
//
// Per the forward-compatibility contract, an unrecognized section kind is
// not an error here: the directory is indexed by its raw kind value and
// readers that ask for a kind they don't recognize simply get a miss.
func parseDirectory(data []byte, header Header) (map[format.SectionKind]sectionEntry, error) {
	dirStart := format.HeaderSize
	dirLen := int(header.SectionCount) * format.SectionHeaderSize
	dirEnd := dirStart + dirLen
	if dirEnd > len(data) {
		return nil, errs.ErrTruncatedDirectory
	}

	engine := endianEngine()
	sections := make(map[format.SectionKind]sectionEntry, header.SectionCount)
	seen := make(map[format.SectionKind]struct{}, header.SectionCount)

	for i := 0; i < int(header.SectionCount); i++ {
		off := dirStart + i*format.SectionHeaderSize
		entry := data[off : off+format.SectionHeaderSize]

		kind := format.SectionKind(engine.Uint32(entry[0:4]))
		bodyOffset := engine.Uint32(entry[4:8])
		bodyLength := engine.Uint32(entry[8:12])
		alignment := engine.Uint32(entry[12:16])

		if _, dup := seen[kind]; dup {
			return nil, errs.ErrDuplicateSectionKind
		}
		seen[kind] = struct{}{}

		bodyEnd := uint64(bodyOffset) + uint64(bodyLength)
		if bodyEnd > uint64(len(data)) {
			return nil, errs.ErrSectionOutOfBounds
		}
		if bodyOffset < uint32(dirEnd) {
			return nil, errs.ErrSectionOutOfBounds
		}

		sections[kind] = sectionEntry{
			kind:      kind,
			offset:    bodyOffset,
			length:    bodyLength,
			alignment: alignment,
		}
	}

	if err := checkOverlaps(sections); err != nil {
		return nil, err
	}

	return sections, nil
}

// checkOverlaps reports an error if any two section bodies overlap.
func checkOverlaps(sections map[format.SectionKind]sectionEntry) error {
	type span struct{ start, end uint32 }

	spans := make([]span, 0, len(sections))
	for _, e := range sections {
		if e.length == 0 {
			continue // empty sections never overlap
		}
		spans = append(spans, span{start: e.offset, end: e.offset + e.length})
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				return errs.ErrOverlappingSections
			}
		}
	}

	return nil
}
