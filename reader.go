package envi

import (
	"fmt"
	"io"
	"os"
)

// Reader decodes a multi-band raster from a raw band-sequential data stream
// described by a companion text header. The header is parsed in full at
// construction; channels are decoded lazily, one per ReadChannel call, with
// no caching in between.
type Reader struct {
	data io.ReadSeeker

	// set when the reader owns the data file and must close it
	dataFile *os.File

	desc       string
	lines      int
	samples    int
	pixels     int
	dataOffset int64
	dtype      DataType
	names      []string
	// declared 'bands' count, 0 if the header never declared one
	expectBands int
	meta        Metadata
}

// NewReader returns a Reader over externally supplied streams. The header
// stream is fully consumed before NewReader returns; the data stream is
// borrowed and never closed.
func NewReader(data io.ReadSeeker, hdr io.Reader) (*Reader, error) {
	r := &Reader{data: data}
	if err := r.readHeader(hdr); err != nil {
		return nil, err
	}

	return r, nil
}

// Open opens the data file at path and its companion header, trying the
// derived .hdr name first and <path>.hdr second. The returned Reader owns the
// data file; Close closes it.
func Open(path string) (*Reader, error) {
	hname, err := HeaderName(path)
	if err != nil {
		return nil, err
	}

	dataFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}

	hdrFile, err := os.Open(hname)
	if err != nil {
		hdrFile, err = os.Open(path + ".hdr")
	}

	if err != nil {
		dataFile.Close()
		return nil, fmt.Errorf("failed to open header file: %w", err)
	}

	r, err := NewReader(dataFile, hdrFile)

	hdrFile.Close()

	if err != nil {
		dataFile.Close()
		return nil, err
	}

	r.dataFile = dataFile

	return r, nil
}

// Close closes the data file when the Reader owns it. Readers over borrowed
// streams are unaffected.
func (r *Reader) Close() error {
	if r == nil || r.dataFile == nil {
		return nil
	}

	f := r.dataFile
	r.dataFile = nil

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close data file: %w", err)
	}

	return nil
}

// Extent returns the (lines, samples) geometry.
func (r *Reader) Extent() (lines, samples int) {
	return r.lines, r.samples
}

// Description returns the header description text.
func (r *Reader) Description() string {
	return r.desc
}

// DataType returns the on-disk sample encoding declared by the header.
func (r *Reader) DataType() DataType {
	return r.dtype
}

// NumChannels returns the number of channels in the band directory.
func (r *Reader) NumChannels() int {
	return len(r.names)
}

// ChannelNames returns a copy of the band directory in file order.
func (r *Reader) ChannelNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)

	return names
}

// Metadata returns the metadata parsed from the header, in file order. The
// returned store must be treated as read-only.
func (r *Reader) Metadata() *Metadata {
	return &r.meta
}

// HasMeta reports whether the header carried the metadata key.
func (r *Reader) HasMeta(key string) bool {
	return r.meta.Has(key)
}

// Meta returns the raw metadata value for key, or missing if absent.
func (r *Reader) Meta(key, missing string) string {
	return r.meta.Get(key, missing)
}

// MetaValues returns the comma-separated tokens of the metadata value for
// key, trimmed, in order.
func (r *Reader) MetaValues(key string) []string {
	return r.meta.Values(key)
}

// ScanMeta applies fields positionally to the tokens of the metadata value
// for key. See Metadata.Scan.
func (r *Reader) ScanMeta(key string, fields ...Field) {
	r.meta.Scan(key, fields...)
}

// ChannelIndex returns the index of the named channel in the band directory.
func (r *Reader) ChannelIndex(name string) (int, error) {
	for i, n := range r.names {
		if n == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
}

// ReadChannel decodes channel ch into dst, converting every on-disk sample to
// T. dst must hold at least lines*samples elements. The channel's byte range
// is located from the parsed geometry, seeked to and decoded from scratch on
// every call.
func ReadChannel[T Sample](r *Reader, ch int, dst []T) error {
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

	return decodeSamples(r.data, r.dtype, r.pixels, dst)
}

// ReadChannelName decodes the named channel into dst. The name is looked up
// in the band directory before any seek happens.
func ReadChannelName[T Sample](r *Reader, name string, dst []T) error {
	ch, err := r.ChannelIndex(name)
	if err != nil {
		return err
	}

	return ReadChannel(r, ch, dst)
}
