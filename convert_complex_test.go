//go:build envicomplex

package envi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextTraversalWithComplex(t *testing.T) {
	want := []DataType{Char, Int16, Int32, Float32, Float64, Float32C, Float64C, UInt16, UInt32, Int64, UInt64}

	var got []DataType

	for cur := Char; ; {
		got = append(got, cur)

		next := cur.Next()
		if next == cur {
			break
		}

		cur = next
	}

	require.Equal(t, want, got)
}

func TestComplexRoundTrip(t *testing.T) {
	var data, hdr bytes.Buffer

	w, err := NewWriter(&data, &hdr, Float32C, "complex", 2, 2)
	require.NoError(t, err)

	want := []complex64{complex(1, 2), complex(3, -4), complex(-5, 6), complex(0, 0)}

	_, err = AddChannelComplex(w, "spectrum", want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Contains(t, hdr.String(), "data type = 6\n")

	r, err := NewReader(bytes.NewReader(data.Bytes()), bytes.NewReader(hdr.Bytes()))
	require.NoError(t, err)

	got := make([]complex64, 4)
	require.NoError(t, ReadChannelComplex(r, 0, got))
	require.Equal(t, want, got)

	// widening read into complex128
	wide := make([]complex128, 4)
	require.NoError(t, ReadChannelComplex(r, 0, wide))

	for i, v := range want {
		require.Equal(t, complex128(v), wide[i])
	}
}

func TestComplexFromRealSource(t *testing.T) {
	var data, hdr bytes.Buffer

	w, err := NewWriter(&data, &hdr, Float64C, "widened", 1, 3)
	require.NoError(t, err)

	_, err = AddChannel(w, "real", []float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(data.Bytes()), bytes.NewReader(hdr.Bytes()))
	require.NoError(t, err)

	got := make([]complex128, 3)
	require.NoError(t, ReadChannelComplex(r, 0, got))
	require.Equal(t, []complex128{complex(1, 0), complex(2, 0), complex(3, 0)}, got)
}

func TestComplexIntoRealDestination(t *testing.T) {
	var data, hdr bytes.Buffer

	w, err := NewWriter(&data, &hdr, Float32C, "complex", 1, 1)
	require.NoError(t, err)

	_, err = AddChannelComplex(w, "a", []complex64{complex(1, 1)})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(data.Bytes()), bytes.NewReader(hdr.Bytes()))
	require.NoError(t, err)

	err = ReadChannel(r, 0, make([]float32, 1))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestComplexIntoRealFile(t *testing.T) {
	var data, hdr bytes.Buffer

	w, err := NewWriter(&data, &hdr, Float32, "real file", 1, 1)
	require.NoError(t, err)

	_, err = AddChannelComplex(w, "a", []complex64{complex(1, 1)})
	require.ErrorIs(t, err, ErrUnsupported)
}
