package envi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// magic is the first line of every ENVI header file.
const magic = "ENVI"

// headerWhitespace is the character set trimmed around header keys and
// values. Carriage returns are deliberately not included.
const headerWhitespace = " \n\t\v"

// Host byte order, resolved once at startup. ENVI headers carry the byte
// order as 0 (little endian) or 1 (big endian); samples are always read and
// written in native order, no conversion is implemented.
var (
	hostOrder     binary.ByteOrder = binary.LittleEndian
	hostOrderCode                  = 0
)

func init() {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		hostOrder = binary.BigEndian
		hostOrderCode = 1
	}
}

func trim(s string) string {
	return strings.Trim(s, headerWhitespace)
}

// HeaderName derives the companion header filename for a data file: the last
// extension is replaced by .hdr, or .hdr is appended when the name has no
// usable extension.
func HeaderName(fname string) (string, error) {
	if fname == "" {
		return "", errors.New("data filename cannot be empty")
	}

	dot := strings.LastIndexByte(fname, '.')
	if dot == len(fname)-1 {
		return fname + "hdr", nil
	}

	if dot < 2 {
		return fname + ".hdr", nil
	}

	return fname[:dot] + ".hdr", nil
}

// Dump writes data as a single-channel ENVI file at path, encoded as T. The
// channel is named after the description.
func Dump[T Sample](path, desc string, lines, samples int, data []T) error {
	w, err := Create(path, desc, lines, samples, TypeCode[T]())
	if err != nil {
		return err
	}

	if _, err := AddChannel(w, desc, data); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// Undump reads back a single-channel ENVI file written by Dump or any other
// producer. It fails if the file holds more than one channel.
func Undump[T Sample](path string) (lines, samples int, data []T, err error) {
	r, err := Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer r.Close()

	if r.NumChannels() > 1 {
		return 0, 0, nil, fmt.Errorf("file %s has multiple channels, cannot do a simple undump", path)
	}

	lines, samples = r.Extent()
	data = make([]T, r.pixels)

	if err := ReadChannel(r, 0, data); err != nil {
		return 0, 0, nil, err
	}

	return lines, samples, data, nil
}
