// Package fspk provides convenient top-level wrappers around the encoder
// and pack packages: build a character description into bytes, and parse
// bytes back into a PackView. Stepping a CharacterState forward a frame at
// a time is done with the sim package directly, as in the example below.
//
// # Basic usage
//
//	desc := encoder.CharacterDescription{
//	    States: []encoder.StateDescription{{Name: "idle", Total: 60}},
//	}
//	data, err := fspk.Encode(desc)
//
//	pv, err := fspk.Parse(data)
//
//	state := sim.CharacterState{CurrentState: 0}
//	result := sim.NextFrame(state, pv, sim.FrameInput{})
//
// For advanced encoder configuration (alignment, strict tag references),
// construct an encoder.Builder directly via encoder.New.
package fspk

import (
	"github.com/fspk/fspk/encoder"
	"github.com/fspk/fspk/pack"
)

// Encode builds FSPK bytes from desc using a Builder configured with opts
// applied over the default policy (4-byte alignment, lenient tag
// references); with no opts, the default policy is used as is.
func Encode(desc encoder.CharacterDescription, opts ...encoder.Option) ([]byte, error) {
	b, err := encoder.New(opts...)
	if err != nil {
		return nil, err
	}

	return b.Encode(desc)
}

// Parse parses data into a PackView. It is a direct alias for pack.Parse,
// kept here so callers using the top-level package don't need a second
// import for the decode half of a round trip.
func Parse(data []byte) (*pack.PackView, error) {
	return pack.Parse(data)
}
