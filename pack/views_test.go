package pack

import (
	"testing"

	"github.com/fspk/fspk/format"
	"github.com/stretchr/testify/require"
)

// buildHitWindowsSection assembles a HIT_WINDOWS section body with the
// given per-record stride and records, mirroring what the encoder writes:
// a 4-byte stride prefix followed by stride-sized records.
func buildHitWindowsSection(stride int, windows []HitWindow) []byte {
	body := make([]byte, 4+stride*len(windows))
	putUint32(body, 0, uint32(stride))

	for i, w := range windows {
		rec := make([]byte, format.HitWindowCurrentSize)
		w.WriteTo(rec, 0)
		copy(body[4+i*stride:4+(i+1)*stride], rec[:min(stride, format.HitWindowCurrentSize)])
	}

	return body
}

func TestHitWindowsView_CurrentStride(t *testing.T) {
	windows := []HitWindow{
		{StartFrame: 1, EndFrame: 2, Damage: 100, HitPushback: -8, BlockPushback: 4},
		{StartFrame: 3, EndFrame: 4, Damage: 200, HitPushback: -10, BlockPushback: 6},
	}
	body := buildHitWindowsSection(format.HitWindowCurrentSize, windows)

	v := HitWindowsView{data: body[4:], stride: format.HitWindowCurrentSize}
	require.Equal(t, 2, v.Len())

	got0, ok := v.At(0)
	require.True(t, ok)
	require.Equal(t, windows[0], got0)

	got1, ok := v.At(1)
	require.True(t, ok)
	require.Equal(t, windows[1], got1)

	_, ok = v.At(2)
	require.False(t, ok)
}

func TestHitWindowsView_OlderShorterStride(t *testing.T) {
	windows := []HitWindow{{StartFrame: 1, EndFrame: 2, Damage: 100}}
	body := buildHitWindowsSection(format.HitWindowBaseSize, windows)

	v := HitWindowsView{data: body[4:], stride: format.HitWindowBaseSize}
	require.Equal(t, 1, v.Len())

	got, ok := v.At(0)
	require.True(t, ok)
	require.Equal(t, uint8(1), got.StartFrame)
	require.Equal(t, uint16(100), got.Damage)
	require.Equal(t, int16(0), got.HitPushback)
}

func TestHitWindowsView_FutureLongerStrideIgnoresTail(t *testing.T) {
	stride := format.HitWindowCurrentSize + 8
	body := make([]byte, 4+stride)
	putUint32(body, 0, uint32(stride))

	rec := make([]byte, format.HitWindowCurrentSize)
	want := HitWindow{StartFrame: 9, EndFrame: 10, Damage: 50}
	want.WriteTo(rec, 0)
	copy(body[4:4+format.HitWindowCurrentSize], rec)
	// Trailing 8 bytes are a hypothetical future field this decoder ignores.

	v := HitWindowsView{data: body[4:], stride: stride}
	require.Equal(t, 1, v.Len())

	got, ok := v.At(0)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestPackView_HitWindows_MissingSection(t *testing.T) {
	pv, err := Parse(buildTestPack(t))
	require.NoError(t, err)

	v := pv.HitWindows()
	require.Equal(t, 0, v.Len())
}

func TestAssetKeysView_NoAssetKeySentinel(t *testing.T) {
	v := AssetKeysView{}

	_, ok := v.At(format.NoAssetKey)
	require.False(t, ok)
}

func TestStateTagsView_Tags(t *testing.T) {
	// String table: "highlow" laid out as two interned substrings.
	table := []byte("highlow")

	tagRefs := []StrRef{
		{Off: 0, Len: 4}, // "high"
		{Off: 4, Len: 3}, // "low"
	}
	tagBuf := make([]byte, format.StrRefSize*len(tagRefs))
	for i, r := range tagRefs {
		r.WriteTo(tagBuf, i*format.StrRefSize)
	}

	rangeBuf := make([]byte, format.StateTagRangeSize)
	StateTagRange{Off: 0, Count: 2}.WriteTo(rangeBuf, 0)

	sections := []struct {
		kind format.SectionKind
		body []byte
	}{
		{format.SectionStringTable, table},
		{format.SectionStateTagRanges, rangeBuf},
		{format.SectionStateTags, tagBuf},
	}

	dirLen := len(sections) * format.SectionHeaderSize
	bodyStart := format.HeaderSize + dirLen
	buf := make([]byte, bodyStart)
	offsets := make([]int, len(sections))
	for i, s := range sections {
		offsets[i] = len(buf)
		buf = append(buf, s.body...)
	}

	copy(buf[0:4], format.Magic)
	putUint16(buf, 4, format.Version)
	putUint32(buf, 8, uint32(len(buf)))
	putUint32(buf, 12, uint32(len(sections)))
	for i, s := range sections {
		off := format.HeaderSize + i*format.SectionHeaderSize
		putUint32(buf, off, uint32(s.kind))
		putUint32(buf, off+4, uint32(offsets[i]))
		putUint32(buf, off+8, uint32(len(s.body)))
	}

	pv, err := Parse(buf)
	require.NoError(t, err)

	tags := pv.Tags(0)
	require.Equal(t, []string{"high", "low"}, tags)
}
