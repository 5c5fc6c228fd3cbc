package pack

import (
	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
)

// Header is the fixed 16-byte header at the start of every pack.
type Header struct {
	Version      uint16
	Flags        uint16
	TotalLength  uint32
	SectionCount uint32
}

// parseHeader parses the 16-byte pack header.
//
// Layout: magic (4B) | version (2B) | flags (2B) | total length (4B) |
// section count (4B).
func parseHeader(data []byte) (Header, error) {
	if len(data) < format.HeaderSize {
		return Header{}, errs.ErrTruncatedHeader
	}

	if string(data[0:4]) != format.Magic {
		return Header{}, errs.ErrBadMagic
	}

	engine := endianEngine()
	h := Header{
		Version:      engine.Uint16(data[4:6]),
		Flags:        engine.Uint16(data[6:8]),
		TotalLength:  engine.Uint32(data[8:12]),
		SectionCount: engine.Uint32(data[12:16]),
	}

	if h.Version > format.MaxSupportedVersion {
		return Header{}, errs.ErrUnsupportedVersion
	}

	return h, nil
}
