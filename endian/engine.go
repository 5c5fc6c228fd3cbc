// Package endian provides the byte-order helper used to read and write FSPK
// records.
//
// FSPK is little-endian only (spec Non-goal: "endian portability beyond
// little-endian"). The pack header and section directory, and the
// encoder's header, directory and HIT_WINDOWS stride prefix, are read and
// written through this EndianEngine; pack's record fields use pack's own
// little-endian byte-shift helpers instead. Only the little-endian engine
// is provided; there is no big-endian engine and no native-endianness
// probe.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndianEngine is the engine for all FSPK wire reads and writes.
var LittleEndianEngine EndianEngine = binary.LittleEndian

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return LittleEndianEngine
}
