package pack

import (
	"testing"

	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
	"github.com/stretchr/testify/require"
)

// buildTestPack assembles a minimal well-formed pack with one STATES
// section containing a single record and one STRING_TABLE section holding
// the interned state name. Offsets are hand-computed rather than routed
// through the encoder, to keep pack's own tests independent of it.
func buildTestPack(t *testing.T) []byte {
	t.Helper()

	name := "idle"
	stringTable := []byte(name)

	var state StateRecord
	state.StateID = 0
	state.MeshKey = format.NoAssetKey
	state.KeyframesKey = format.NoAssetKey
	state.Total = 10

	stateBytes := make([]byte, format.StateRecordSize)
	state.WriteTo(stateBytes, 0)

	sections := []struct {
		kind format.SectionKind
		body []byte
	}{
		{format.SectionStringTable, stringTable},
		{format.SectionStates, stateBytes},
	}

	dirLen := len(sections) * format.SectionHeaderSize
	bodyStart := format.HeaderSize + dirLen

	buf := make([]byte, bodyStart)
	offsets := make([]int, len(sections))
	for i, s := range sections {
		offsets[i] = len(buf)
		buf = append(buf, s.body...)
	}

	total := len(buf)
	putUint16(buf, 4, format.Version)
	putUint16(buf, 6, 0)
	putUint32(buf, 8, uint32(total))
	putUint32(buf, 12, uint32(len(sections)))
	copy(buf[0:4], format.Magic)

	for i, s := range sections {
		off := format.HeaderSize + i*format.SectionHeaderSize
		putUint32(buf, off, uint32(s.kind))
		putUint32(buf, off+4, uint32(offsets[i]))
		putUint32(buf, off+8, uint32(len(s.body)))
		putUint32(buf, off+12, 1)
	}

	return buf
}

func TestParse_Valid(t *testing.T) {
	data := buildTestPack(t)

	pv, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, format.Version, pv.Version())
	require.True(t, pv.HasSection(format.SectionStates))
	require.False(t, pv.HasSection(format.SectionHitWindows))

	states := pv.States()
	require.Equal(t, 1, states.Len())

	rec, ok := states.At(0)
	require.True(t, ok)
	require.Equal(t, uint16(10), rec.Total)

	name, ok := pv.String(StrRef{Off: 0, Len: 4})
	require.True(t, ok)
	require.Equal(t, "idle", name)
}

func TestParse_TruncatedHeader(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrTruncatedHeader)
}

func TestParse_BadMagic(t *testing.T) {
	data := buildTestPack(t)
	copy(data[0:4], "NOPE")

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestParse_UnsupportedVersion(t *testing.T) {
	data := buildTestPack(t)
	putUint16(data, 4, format.MaxSupportedVersion+1)

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestParse_LengthMismatch(t *testing.T) {
	data := buildTestPack(t)
	data = append(data, 0, 0, 0)

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestParse_TruncatedDirectory(t *testing.T) {
	data := buildTestPack(t)
	putUint32(data, 12, 99)

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrTruncatedDirectory)
}

func TestParse_DuplicateSectionKind(t *testing.T) {
	data := buildTestPack(t)
	// Second directory entry's kind overwritten to match the first's.
	putUint32(data, format.HeaderSize+format.SectionHeaderSize, uint32(format.SectionStringTable))

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrDuplicateSectionKind)
}

func TestParse_SectionOutOfBounds(t *testing.T) {
	data := buildTestPack(t)
	off := format.HeaderSize // first directory entry (STRING_TABLE)
	putUint32(data, off+8, uint32(len(data))) // absurd length

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrSectionOutOfBounds)
}

func TestPackView_MissingSectionIsCleanMiss(t *testing.T) {
	pv, err := Parse(buildTestPack(t))
	require.NoError(t, err)

	hw := pv.HitWindows()
	require.Equal(t, 0, hw.Len())

	_, ok := hw.At(0)
	require.False(t, ok)

	_, ok = pv.Section(format.SectionCharacterProps)
	require.False(t, ok)
}

func TestPackView_Describe(t *testing.T) {
	pv, err := Parse(buildTestPack(t))
	require.NoError(t, err)

	out := pv.Describe()
	require.Contains(t, out, "FSPK version=1")
	require.Contains(t, out, "STATES")
}
