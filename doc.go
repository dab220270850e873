// Package envi reads and writes raw ENVI raster files: a headerless
// band-sequential sample file accompanied by a .hdr text header describing
// geometry, sample encoding, band names and arbitrary ordered metadata.
//
// The package supports the int8, int16, int32, int64, uint16, uint32,
// uint64, float32 and float64 sample encodings; the complex64 and complex128
// encodings are available behind the envicomplex build tag. Samples are
// stored in native byte order with BSQ interleave only.
//
// Channel buffers may use any Sample element type independently of the
// on-disk encoding; values are converted element-wise in either direction:
//
//	w, _ := envi.Create("dem.raw", "elevation", 1024, 1024, envi.Int16)
//	envi.AddChannel(w, "elevation", heights)
//	w.Close()
//
//	r, _ := envi.Open("dem.raw")
//	out := make([]float64, 1024*1024)
//	envi.ReadChannelName(r, "elevation", out)
//	r.Close()
//
// Dump and Undump cover the single-channel one-call cases.
package envi
