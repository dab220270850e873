package envi

import (
	"fmt"
	"io"
	"os"
)

// Writer encodes a multi-band raster as a raw band-sequential data stream
// plus a companion text header. Channels are strictly appended; the append
// order is irrevocable and equals the band order declared in the header. The
// header itself is written once, by Close.
type Writer struct {
	data io.Writer
	hdr  io.Writer

	// set when the writer owns the streams and must close them
	dataFile *os.File
	hdrFile  *os.File

	desc    string
	lines   int
	samples int
	pixels  int
	dtype   DataType
	names   []string
	meta    Metadata

	closed bool
	err    error // first data stream failure; finalize is skipped if set
}

// NewWriter returns a Writer over externally supplied data and header
// streams. The streams are borrowed: Close finalizes the header but leaves
// both of them open. Samples are encoded as dt on disk.
func NewWriter(data, hdr io.Writer, dt DataType, desc string, lines, samples int) (*Writer, error) {
	if !ValidType(int(dt)) {
		return nil, fmt.Errorf("%w: code %d", ErrInvalidType, int(dt))
	}

	if dt.isComplex() && !complexEnabled {
		return nil, fmt.Errorf("%w: complex data types require the envicomplex build tag", ErrUnsupported)
	}

	if lines <= 0 || samples <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, lines, samples)
	}

	return &Writer{
		data:    data,
		hdr:     hdr,
		desc:    desc,
		lines:   lines,
		samples: samples,
		pixels:  lines * samples,
		dtype:   dt,
	}, nil
}

// Create creates the data file at path and its .hdr companion, overwriting
// existing files. The returned Writer owns both files; Close finalizes and
// closes them.
func Create(path, desc string, lines, samples int, dt DataType) (*Writer, error) {
	hname, err := HeaderName(path)
	if err != nil {
		return nil, err
	}

	dataFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create data file: %w", err)
	}

	hdrFile, err := os.Create(hname)
	if err != nil {
		dataFile.Close()
		return nil, fmt.Errorf("failed to create header file: %w", err)
	}

	w, err := NewWriter(dataFile, hdrFile, dt, desc, lines, samples)
	if err != nil {
		dataFile.Close()
		hdrFile.Close()

		return nil, err
	}

	w.dataFile = dataFile
	w.hdrFile = hdrFile

	return w, nil
}

// Extent returns the (lines, samples) geometry.
func (w *Writer) Extent() (lines, samples int) {
	return w.lines, w.samples
}

// DataType returns the fixed on-disk sample encoding.
func (w *Writer) DataType() DataType {
	return w.dtype
}

// NumChannels returns the number of channels appended so far.
func (w *Writer) NumChannels() int {
	return len(w.names)
}

// AddMeta adds a single-valued metadata key to be written with the header.
// It fails if the key already exists.
func (w *Writer) AddMeta(key string, value any) error {
	if w.closed {
		return ErrClosed
	}

	return w.meta.Add(key, value)
}

// AddMetaMulti adds a multi-valued metadata key, serialized as one
// brace-delimited comma-separated value. It fails if the key already exists.
func (w *Writer) AddMetaMulti(key string, values ...any) error {
	if w.closed {
		return ErrClosed
	}

	return w.meta.AddMulti(key, values...)
}

// AddChannel appends one channel holding exactly lines*samples elements,
// converted to the file's on-disk encoding, and registers its name. It
// returns the index of the new channel.
func AddChannel[T Sample](w *Writer, name string, data []T) (int, error) {
	if err := w.writable(); err != nil {
		return 0, err
	}

	if len(data) != w.pixels {
		return 0, fmt.Errorf("%w in channel %s: got %d, want %d", ErrPixelCount, name, len(data), w.pixels)
	}

	if err := encodeSamples(w.data, w.dtype, data); err != nil {
		w.err = err
		return 0, fmt.Errorf("failed to write channel %s: %w", name, err)
	}

	return w.register(name), nil
}

// AddChannelRect appends a channel from a lines x samples window of a larger
// row-major buffer whose rows are stride elements apart, starting at (row,
// col). It returns the index of the new channel.
func AddChannelRect[T Sample](w *Writer, name string, data []T, stride, row, col int) (int, error) {
	if err := w.writable(); err != nil {
		return 0, err
	}

	if stride < w.samples+col {
		return 0, fmt.Errorf("%w in channel %s", ErrStride, name)
	}

	if need := (row+w.lines-1)*stride + col + w.samples; need > len(data) {
		return 0, fmt.Errorf("%w for channel %s: need %d elements, have %d", ErrBufferSize, name, need, len(data))
	}

	for l := 0; l < w.lines; l++ {
		start := (row+l)*stride + col
		if err := encodeSamples(w.data, w.dtype, data[start:start+w.samples]); err != nil {
			w.err = err
			return 0, fmt.Errorf("failed to write channel %s: %w", name, err)
		}
	}

	return w.register(name), nil
}

// AddChannelFunc appends a channel whose samples are produced by invoking f
// for every (row, col) position, row-major. It returns the index of the new
// channel.
func AddChannelFunc[T Sample](w *Writer, name string, f func(row, col int) T) (int, error) {
	if err := w.writable(); err != nil {
		return 0, err
	}

	line := make([]T, w.samples)

	for l := 0; l < w.lines; l++ {
		for c := range line {
			line[c] = f(l, c)
		}

		if err := encodeSamples(w.data, w.dtype, line); err != nil {
			w.err = err
			return 0, fmt.Errorf("failed to write channel %s: %w", name, err)
		}
	}

	return w.register(name), nil
}

func (w *Writer) writable() error {
	if w.closed {
		return ErrClosed
	}

	if w.err != nil {
		return w.err
	}

	return nil
}

func (w *Writer) register(name string) int {
	w.names = append(w.names, name)
	return len(w.names) - 1
}

// Close finalizes the file: it serializes the header, syncs owned files and
// closes them. If the data stream previously failed, the header is not
// written and the recorded error is returned; owned files are still closed.
// A second Close is a no-op.
func (w *Writer) Close() error {
	if w == nil || w.closed {
		return nil
	}

	w.closed = true

	if w.err != nil {
		w.closeFiles()
		return w.err
	}

	if err := w.writeHeader(); err != nil {
		w.closeFiles()
		return err
	}

	return w.closeFiles()
}

func (w *Writer) closeFiles() error {
	var first error

	for _, f := range []*os.File{w.dataFile, w.hdrFile} {
		if f == nil {
			continue
		}

		if err := f.Sync(); err != nil && first == nil {
			first = fmt.Errorf("failed to sync %s: %w", f.Name(), err)
		}

		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close %s: %w", f.Name(), err)
		}
	}

	return first
}

// writeHeader emits the header fields in the fixed conventional order, then
// every metadata pair in insertion order.
func (w *Writer) writeHeader() error {
	var sb []byte

	sb = fmt.Appendf(sb, "%s\n", magic)
	sb = fmt.Appendf(sb, "description = { %s }\n", w.desc)
	sb = fmt.Appendf(sb, "samples = %d\n", w.samples)
	sb = fmt.Appendf(sb, "lines = %d\n", w.lines)
	sb = fmt.Appendf(sb, "bands = %d\n", len(w.names))
	sb = fmt.Appendf(sb, "data type = %d\n", int(w.dtype))
	sb = fmt.Appendf(sb, "interleave = bsq\n")
	sb = fmt.Appendf(sb, "header offset = 0\n")
	sb = fmt.Appendf(sb, "byte order = %d\n", hostOrderCode)
	sb = append(sb, w.appendBandNames(nil)...)

	for i := 0; i < w.meta.Len(); i++ {
		sb = fmt.Appendf(sb, "%s = %s\n", w.meta.Key(i), w.meta.Value(i))
	}

	if _, err := w.hdr.Write(sb); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

// appendBandNames writes the band names record: space-wrapped on one line
// when there is at most one band, otherwise one name per line, each but the
// last comma-terminated.
func (w *Writer) appendBandNames(sb []byte) []byte {
	sb = append(sb, "band names = {"...)

	switch len(w.names) {
	case 0:
		sb = append(sb, ' ')
	case 1:
		sb = fmt.Appendf(sb, " %s ", w.names[0])
	default:
		sb = append(sb, '\n')

		for _, name := range w.names[:len(w.names)-1] {
			sb = fmt.Appendf(sb, "%s,\n", name)
		}

		sb = fmt.Appendf(sb, "%s\n", w.names[len(w.names)-1])
	}

	return append(sb, "}\n"...)
}
