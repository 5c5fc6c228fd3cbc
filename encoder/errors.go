package encoder

import (
	"fmt"

	"github.com/fspk/fspk/errs"
)

func errOverflowf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrNumericOverflow}, args...)...)
}
