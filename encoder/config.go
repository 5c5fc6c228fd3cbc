package encoder

import "github.com/fspk/fspk/internal/options"

// defaultAlignment is the section body alignment used when no WithAlignment
// option is given; 4 bytes covers every record's largest scalar field.
const defaultAlignment = 4

// Config holds encoder-wide policy knobs, set via functional options
// before Encode runs.
type Config struct {
	alignment          uint32
	strictTagRefs      bool
	hitWindowStride    int
}

// NewConfig creates a Config with default policy: 4-byte section
// alignment, lenient tag-reference checking (an unknown tag name in a rule
// is accepted and simply never matches), and the current HitWindow wire
// stride.
func NewConfig() *Config {
	return &Config{
		alignment:       defaultAlignment,
		strictTagRefs:   false,
		hitWindowStride: hitWindowWireSize,
	}
}

func (c *Config) setAlignment(n uint32) {
	if n == 0 {
		n = 1
	}
	c.alignment = n
}

func (c *Config) setStrictTagRefs(strict bool) {
	c.strictTagRefs = strict
}

// Option is a functional option for configuring a Builder before Encode.
type Option = options.Option[*Config]

// WithAlignment sets the byte alignment every section body is padded to.
// The default is 4.
func WithAlignment(n uint32) Option {
	return options.NoError(func(c *Config) { c.setAlignment(n) })
}

// WithStrictTagReferences makes Encode reject a CancelTagRuleDescription
// whose FromTag/ToTag (other than the AnyTag sentinel) is not carried by
// any authored state, returning errs.ErrUnknownTagReference. The default
// is lenient: an unreferenced tag name simply never matches any state.
func WithStrictTagReferences(strict bool) Option {
	return options.NoError(func(c *Config) { c.setStrictTagRefs(strict) })
}
