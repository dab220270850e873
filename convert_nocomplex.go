//go:build !envicomplex

package envi

import (
	"fmt"
	"io"
)

// With complex support compiled out, the dispatch chain skips the complex
// codes, so these paths are unreachable; they exist to keep the dispatch
// switch total.

func encodeComplexSamples[T Sample](_ io.Writer, dt DataType, _ []T) error {
	return fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
}

func decodeComplexSamples[T Sample](_ io.Reader, dt DataType, _ int, _ []T) error {
	return fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
}
