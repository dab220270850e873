package envi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHeader = `ENVI
description = { test scene }
samples = 64
lines = 32
bands = 3
data type = 4
interleave = bsq
header offset = 0
byte order = 0
band names = {
red,
green,
blue
}
map info = { UTM, 1, 1, 500000, 4000000, 30, 30, 33, North, WGS-84 }
sensor type = testcam
`

func newTestReader(t *testing.T, hdr string) (*Reader, error) {
	t.Helper()
	return NewReader(bytes.NewReader(nil), strings.NewReader(hdr))
}

func TestReadHeader(t *testing.T) {
	r, err := newTestReader(t, sampleHeader)
	require.NoError(t, err)

	lines, samples := r.Extent()
	require.Equal(t, 32, lines)
	require.Equal(t, 64, samples)
	require.Equal(t, Float32, r.DataType())
	require.Equal(t, "test scene", r.Description())
	require.Equal(t, []string{"red", "green", "blue"}, r.ChannelNames())

	require.True(t, r.HasMeta("map info"))
	require.True(t, r.HasMeta("sensor type"))
	require.Equal(t, "testcam", r.Meta("sensor type", ""))

	// unknown keys keep file order
	meta := r.Metadata()
	require.Equal(t, "map info", meta.Key(0))
	require.Equal(t, "sensor type", meta.Key(1))

	var proj string
	r.ScanMeta("map info", Bind(&proj))
	require.Equal(t, "UTM", proj)
}

func TestReadHeaderBlankLines(t *testing.T) {
	hdr := "\n\nENVI\n\nsamples = 4\n\nlines = 2\ndata type = 2\ninterleave = bsq\nbyte order = 0\nband names = { a }\n\n"

	r, err := newTestReader(t, hdr)
	require.NoError(t, err)

	lines, samples := r.Extent()
	require.Equal(t, 2, lines)
	require.Equal(t, 4, samples)
	require.Equal(t, []string{"a"}, r.ChannelNames())
}

func TestReadHeaderMissingMagic(t *testing.T) {
	_, err := newTestReader(t, "samples = 4\nlines = 2\n")
	require.ErrorIs(t, err, ErrFormat)

	_, err = newTestReader(t, "")
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadHeaderUnterminatedBrace(t *testing.T) {
	hdr := "ENVI\nsamples = 4\nband names = {a,b,c\n"

	_, err := newTestReader(t, hdr)
	require.ErrorIs(t, err, ErrFormat)
	require.Contains(t, err.Error(), "missing '}'")
}

func TestReadHeaderMissingEquals(t *testing.T) {
	_, err := newTestReader(t, "ENVI\nsamples 4\n")
	require.ErrorIs(t, err, ErrFormat)
	require.Contains(t, err.Error(), "missing '='")
}

func TestReadHeaderInvalidDataType(t *testing.T) {
	for _, code := range []string{"7", "8", "10", "11", "16", "0"} {
		_, err := newTestReader(t, "ENVI\ndata type = "+code+"\n")
		require.ErrorIs(t, err, ErrInvalidType, "code %s", code)
	}
}

func TestReadHeaderUnsupportedInterleave(t *testing.T) {
	_, err := newTestReader(t, "ENVI\ninterleave = bip\n")
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = newTestReader(t, "ENVI\ninterleave = bil\n")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestReadHeaderUnsupportedByteOrder(t *testing.T) {
	_, err := newTestReader(t, "ENVI\nbyte order = 1\n")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestReadHeaderBandNamesTwice(t *testing.T) {
	hdr := "ENVI\nband names = { a, b }\nband names = { c, d }\n"

	_, err := newTestReader(t, hdr)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestReadHeaderInconsistentBands(t *testing.T) {
	t.Run("BandsFirst", func(t *testing.T) {
		hdr := "ENVI\nbands = 3\nband names = { a, b }\n"

		_, err := newTestReader(t, hdr)
		require.ErrorIs(t, err, ErrInconsistentBands)
	})

	t.Run("BandNamesFirst", func(t *testing.T) {
		hdr := "ENVI\nband names = { a, b }\nbands = 3\n"

		_, err := newTestReader(t, hdr)
		require.ErrorIs(t, err, ErrInconsistentBands)
	})

	t.Run("MatchingCounts", func(t *testing.T) {
		hdr := "ENVI\nbands = 2\nband names = { a, b }\n"

		_, err := newTestReader(t, hdr)
		require.NoError(t, err)
	})
}

func TestReadHeaderDuplicateMetadataKey(t *testing.T) {
	hdr := "ENVI\nsensor type = one\nsensor type = two\n"

	_, err := newTestReader(t, hdr)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestReadHeaderBadNumericValue(t *testing.T) {
	_, err := newTestReader(t, "ENVI\nsamples = lots\n")
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadHeaderReversedBraces(t *testing.T) {
	// a closing brace before the opening one encloses nothing; the record
	// still parses, with the tail after '{' as its value
	hdr := "ENVI\nsamples = 2\nlines = 1\ndata type = 1\nfoo = } {\nbar = } { tail\nband names = { a }\n"

	r, err := newTestReader(t, hdr)
	require.NoError(t, err)

	require.True(t, r.HasMeta("foo"))
	require.Equal(t, "", r.Meta("foo", "absent"))
	require.Equal(t, "tail", r.Meta("bar", ""))
	require.Equal(t, []string{"a"}, r.ChannelNames())
}

func TestReadHeaderInlineBandNames(t *testing.T) {
	hdr := "ENVI\nband names = { single band }\n"

	r, err := newTestReader(t, hdr)
	require.NoError(t, err)
	require.Equal(t, []string{"single band"}, r.ChannelNames())
}

func TestReadHeaderOffset(t *testing.T) {
	hdr := "ENVI\nsamples = 2\nlines = 2\ndata type = 1\nheader offset = 16\nband names = { a }\n"

	r, err := newTestReader(t, hdr)
	require.NoError(t, err)
	require.Equal(t, int64(16), r.dataOffset)
}
