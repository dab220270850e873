package envi

import (
	"encoding/binary"
	"fmt"
	"io"
)

// reachable reports whether the dispatch chain, starting at the first
// encoding and advancing through Next, reaches dt. A data type outside the
// legal enabled set hits the UInt64 sentinel without matching and is reported
// unreachable instead of looping.
func reachable(dt DataType) bool {
	for cur := Char; ; {
		if cur == dt {
			return true
		}

		next := cur.Next()
		if next == cur {
			return false
		}

		cur = next
	}
}

// encodeSamples converts src to the on-disk encoding dt and appends the bytes
// to dst in native byte order.
func encodeSamples[T Sample](dst io.Writer, dt DataType, src []T) error {
	if !reachable(dt) {
		return fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
	}

	switch dt {
	case Char:
		return encodeAs[T, int8](dst, src)
	case Int16:
		return encodeAs[T, int16](dst, src)
	case Int32:
		return encodeAs[T, int32](dst, src)
	case Float32:
		return encodeAs[T, float32](dst, src)
	case Float64:
		return encodeAs[T, float64](dst, src)
	case UInt16:
		return encodeAs[T, uint16](dst, src)
	case UInt32:
		return encodeAs[T, uint32](dst, src)
	case Int64:
		return encodeAs[T, int64](dst, src)
	case UInt64:
		return encodeAs[T, uint64](dst, src)
	default:
		return encodeComplexSamples(dst, dt, src)
	}
}

// decodeSamples reads count samples encoded as dt from src and converts each
// to the caller's element type.
func decodeSamples[T Sample](src io.Reader, dt DataType, count int, dst []T) error {
	if !reachable(dt) {
		return fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
	}

	switch dt {
	case Char:
		return decodeAs[int8](src, count, dst)
	case Int16:
		return decodeAs[int16](src, count, dst)
	case Int32:
		return decodeAs[int32](src, count, dst)
	case Float32:
		return decodeAs[float32](src, count, dst)
	case Float64:
		return decodeAs[float64](src, count, dst)
	case UInt16:
		return decodeAs[uint16](src, count, dst)
	case UInt32:
		return decodeAs[uint32](src, count, dst)
	case Int64:
		return decodeAs[int64](src, count, dst)
	case UInt64:
		return decodeAs[uint64](src, count, dst)
	default:
		return decodeComplexSamples(src, dt, count, dst)
	}
}

// encodeAs converts src element-wise to the on-disk type D and writes the
// result. When the source already holds D values the conversion pass is
// skipped and the slice is written byte-exact.
func encodeAs[T Sample, D Sample](dst io.Writer, src []T) error {
	if same, ok := any(src).([]D); ok {
		return writeRaw(dst, same)
	}

	buf := make([]D, len(src))
	for i, v := range src {
		buf[i] = D(v)
	}

	return writeRaw(dst, buf)
}

// decodeAs reads count on-disk values of type D and converts each to the
// caller's type. When the destination already holds D values the samples are
// read into it byte-exact, with no conversion pass.
func decodeAs[D Sample, T Sample](src io.Reader, count int, dst []T) error {
	if same, ok := any(dst).([]D); ok {
		return readRaw(src, same[:count])
	}

	buf := make([]D, count)
	if err := readRaw(src, buf); err != nil {
		return err
	}

	for i, v := range buf {
		dst[i] = T(v)
	}

	return nil
}

func writeRaw(dst io.Writer, data any) error {
	if err := binary.Write(dst, hostOrder, data); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	return nil
}

func readRaw(src io.Reader, data any) error {
	if err := binary.Read(src, hostOrder, data); err != nil {
		return fmt.Errorf("failed to read samples: %w", err)
	}

	return nil
}
