package envi

import "errors"

var (
	// ErrFormat is returned when the header text is structurally malformed:
	// missing ENVI magic, a record without '=', or an unterminated brace.
	ErrFormat = errors.New("malformed ENVI header")
	// ErrInvalidType is returned for a data type code outside the ENVI set.
	ErrInvalidType = errors.New("invalid ENVI data type")
	// ErrUnsupported is returned for legal ENVI features this package does not
	// implement, such as non-BSQ interleaves or non-native byte order.
	ErrUnsupported = errors.New("unsupported ENVI feature")
	// ErrDuplicateKey is returned when a metadata key is added twice, or when
	// a header declares 'band names' twice.
	ErrDuplicateKey = errors.New("duplicate metadata key")
	// ErrInconsistentBands is returned when the declared band count does not
	// match the number of band names.
	ErrInconsistentBands = errors.New("inconsistent bands and band names")
	// ErrChannelNotFound is returned when a channel name is not in the band
	// directory.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrChannelRange is returned when a channel index is out of range.
	ErrChannelRange = errors.New("channel number too high")
	// ErrStride is returned when a sub-rectangle stride is smaller than the
	// window width plus its column offset.
	ErrStride = errors.New("data stride too small")
	// ErrBufferSize is returned when a source or destination buffer is too
	// small for the requested extent.
	ErrBufferSize = errors.New("buffer too small")
	// ErrPixelCount is returned when a channel buffer does not hold exactly
	// lines*samples elements.
	ErrPixelCount = errors.New("wrong number of pixels")
	// ErrGeometry is returned when lines or samples are not positive.
	ErrGeometry = errors.New("lines and samples must be positive")
	// ErrClosed is returned when writing to an already finalized file.
	ErrClosed = errors.New("file already closed")
)
