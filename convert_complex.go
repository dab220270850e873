//go:build envicomplex

package envi

import (
	"fmt"
	"io"
)

// ComplexSample is the set of complex element types usable for channel
// buffers when complex support is compiled in.
type ComplexSample interface {
	complex64 | complex128
}

// encodeComplexSamples widens real source samples to the complex on-disk
// encoding, with a zero imaginary part.
func encodeComplexSamples[T Sample](dst io.Writer, dt DataType, src []T) error {
	switch dt {
	case Float32C:
		buf := make([]complex64, len(src))
		for i, v := range src {
			buf[i] = complex(float32(v), 0)
		}

		return writeRaw(dst, buf)
	case Float64C:
		buf := make([]complex128, len(src))
		for i, v := range src {
			buf[i] = complex(float64(v), 0)
		}

		return writeRaw(dst, buf)
	default:
		return fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
	}
}

// decodeComplexSamples rejects reads of complex-encoded data into real
// destinations; there is no meaningful narrowing.
func decodeComplexSamples[T Sample](_ io.Reader, dt DataType, _ int, _ []T) error {
	return fmt.Errorf("%w: cannot read %s samples into a real destination", ErrUnsupported, dt)
}

// AddChannelComplex appends one complex channel holding exactly lines*samples
// elements. The file's on-disk encoding must be one of the complex types. It
// returns the index of the new channel.
func AddChannelComplex[T ComplexSample](w *Writer, name string, data []T) (int, error) {
	if err := w.writable(); err != nil {
		return 0, err
	}

	if !w.dtype.isComplex() {
		return 0, fmt.Errorf("%w: cannot write complex samples as %s", ErrUnsupported, w.dtype)
	}

	if len(data) != w.pixels {
		return 0, fmt.Errorf("%w in channel %s: got %d, want %d", ErrPixelCount, name, len(data), w.pixels)
	}

	var err error

	switch w.dtype {
	case Float32C:
		err = complexAs[T, complex64](w.data, data)
	default:
		err = complexAs[T, complex128](w.data, data)
	}

	if err != nil {
		w.err = err
		return 0, fmt.Errorf("failed to write channel %s: %w", name, err)
	}

	return w.register(name), nil
}

// ReadChannelComplex decodes channel ch into a complex destination. Real
// on-disk encodings are widened with a zero imaginary part.
func ReadChannelComplex[T ComplexSample](r *Reader, ch int, dst []T) error {
	if ch < 0 || ch >= len(r.names) {
		return fmt.Errorf("%w: %d of %d", ErrChannelRange, ch, len(r.names))
	}

	if len(dst) < r.pixels {
		return fmt.Errorf("%w: channel %d needs %d elements, have %d", ErrBufferSize, ch, r.pixels, len(dst))
	}

	offset := r.dataOffset + int64(ch)*int64(r.pixels)*int64(r.dtype.Size())
	if _, err := r.data.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to channel %d: %w", ch, err)
	}

	switch r.dtype {
	case Float32C:
		return decodeComplexAs[complex64](r.data, r.pixels, dst)
	case Float64C:
		return decodeComplexAs[complex128](r.data, r.pixels, dst)
	default:
		buf := make([]float64, r.pixels)
		if err := decodeSamples(r.data, r.dtype, r.pixels, buf); err != nil {
			return err
		}

		for i, v := range buf {
			dst[i] = T(complex(v, 0))
		}

		return nil
	}
}

func complexAs[T ComplexSample, D ComplexSample](dst io.Writer, src []T) error {
	if same, ok := any(src).([]D); ok {
		return writeRaw(dst, same)
	}

	buf := make([]D, len(src))
	for i, v := range src {
		buf[i] = D(v)
	}

	return writeRaw(dst, buf)
}

func decodeComplexAs[D ComplexSample, T ComplexSample](src io.Reader, count int, dst []T) error {
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
