// Package errs collects the sentinel errors returned by pack and encoder.
//
// Decoder errors surface from pack.Parse only; once a PackView exists, no
// further parse-time error occurs. Encoder errors surface from
// encoder.Encode only; a failed Encode never returns a partial byte slice.
// View accessors never return an error — an out-of-range index yields a
// zero value and false, not a sentinel.
package errs

import "errors"

// Format errors, returned by pack.Parse.
var (
	ErrBadMagic             = errors.New("fspk: bad magic")
	ErrUnsupportedVersion   = errors.New("fspk: unsupported version")
	ErrTruncatedHeader      = errors.New("fspk: truncated header")
	ErrTruncatedDirectory   = errors.New("fspk: truncated section directory")
	ErrLengthMismatch       = errors.New("fspk: total length does not match buffer length")
	ErrSectionOutOfBounds   = errors.New("fspk: section out of bounds")
	ErrOverlappingSections  = errors.New("fspk: overlapping sections")
	ErrDuplicateSectionKind = errors.New("fspk: duplicate section kind")
)

// Encode errors, returned by encoder.Encode.
var (
	ErrTooManyStates        = errors.New("fspk: too many states")
	ErrTooManyWindows       = errors.New("fspk: too many windows")
	ErrTooManyShapes        = errors.New("fspk: too many shapes")
	ErrTooManyTags          = errors.New("fspk: too many tags")
	ErrTooManyRules         = errors.New("fspk: too many cancel rules")
	ErrTooManyResources     = errors.New("fspk: too many resources")
	ErrNumericOverflow      = errors.New("fspk: numeric field overflow")
	ErrUnknownTagReference  = errors.New("fspk: rule references an unknown tag")
	ErrUnknownStateReference = errors.New("fspk: rule references an unknown state")
	ErrDuplicateStateName   = errors.New("fspk: duplicate state name")
	ErrEmptyStateName       = errors.New("fspk: empty state name")
)
