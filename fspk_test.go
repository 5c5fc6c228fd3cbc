package fspk_test

import (
	"testing"

	"github.com/fspk/fspk"
	"github.com/fspk/fspk/encoder"
	"github.com/stretchr/testify/require"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	data, err := fspk.Encode(encoder.CharacterDescription{
		States: []encoder.StateDescription{{Name: "idle", Total: 60}},
	})
	require.NoError(t, err)

	pv, err := fspk.Parse(data)
	require.NoError(t, err)
	require.Equal(t, 1, pv.States().Len())
}
