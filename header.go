package envi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readHeader drives the line-oriented header state machine: it checks the
// magic line, then feeds every key/value record to processKeyVal until the
// stream ends or a record comes back empty. Geometry-derived state is
// computed afterwards; no cross-field validation happens beyond the
// bands/band-names consistency check.
func (r *Reader) readHeader(hdr io.Reader) error {
	sc := bufio.NewScanner(hdr)

	line, ok := nextLine(sc)
	if !ok || line != magic {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}

		return fmt.Errorf("%w: missing '%s' in header", ErrFormat, magic)
	}

	for {
		key, val, err := readKeyVal(sc)
		if err != nil {
			return err
		}

		if key == "" {
			break
		}

		if err := r.processKeyVal(key, val); err != nil {
			return err
		}
	}

	r.pixels = r.lines * r.samples

	return nil
}

// nextLine returns the next non-empty line, reporting false at stream end.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			return line, true
		}
	}

	return "", false
}

// readKeyVal reads one key/value record. A value line that opens a brace
// without closing it is concatenated with the following raw lines, with no
// inserted separators, until a closing brace appears; running out of input
// first is a format error. An empty key signals the end of the header.
func readKeyVal(sc *bufio.Scanner) (key, val string, err error) {
	keyval, ok := nextLine(sc)
	if !ok {
		if err := sc.Err(); err != nil {
			return "", "", fmt.Errorf("failed to read header: %w", err)
		}

		return "", "", nil
	}

	open := strings.IndexByte(keyval, '{')
	closing := strings.IndexByte(keyval, '}')

	if open >= 0 && closing < 0 {
		for closing < 0 {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return "", "", fmt.Errorf("failed to read header: %w", err)
				}

				return "", "", fmt.Errorf("%w: missing '}'", ErrFormat)
			}

			keyval += sc.Text()
			closing = strings.IndexByte(keyval, '}')
		}
	}

	eq := strings.IndexByte(keyval, '=')
	if eq < 0 || (open >= 0 && eq > open) {
		return "", "", fmt.Errorf("%w: missing '=' in %q", ErrFormat, keyval)
	}

	key = trim(keyval[:eq])

	switch {
	case open >= 0 && closing < open:
		// '}' before '{': nothing is enclosed, the value is the tail
		// after the opening brace
		val = trim(keyval[open+1:])
	case open >= 0:
		val = trim(keyval[open+1 : closing])
	default:
		val = trim(keyval[eq+1:])
	}

	return key, val, nil
}

// processKeyVal intercepts the conventional header keys; anything else is
// ordinary metadata.
func (r *Reader) processKeyVal(key, val string) error {
	switch key {
	case "description":
		r.desc = val
	case "samples":
		n, err := headerUint(key, val)
		if err != nil {
			return err
		}

		r.samples = n
	case "lines":
		n, err := headerUint(key, val)
		if err != nil {
			return err
		}

		r.lines = n
	case "bands":
		n, err := headerUint(key, val)
		if err != nil {
			return err
		}

		if len(r.names) > 0 && n != len(r.names) {
			return fmt.Errorf("%w: %d bands, %d band names", ErrInconsistentBands, n, len(r.names))
		}

		r.expectBands = n
	case "data type":
		code, err := headerUint(key, val)
		if err != nil {
			return err
		}

		if !ValidType(code) {
			return fmt.Errorf("%w: code %d", ErrInvalidType, code)
		}

		r.dtype = DataType(code)
	case "interleave":
		if val != "bsq" {
			return fmt.Errorf("%w: interleave %q", ErrUnsupported, val)
		}
	case "header offset":
		n, err := headerUint(key, val)
		if err != nil {
			return err
		}

		r.dataOffset = int64(n)
	case "byte order":
		n, err := headerUint(key, val)
		if err != nil {
			return err
		}

		if n != 0 {
			return fmt.Errorf("%w: byte order %d", ErrUnsupported, n)
		}
	case "band names":
		if len(r.names) > 0 {
			return fmt.Errorf("%w: 'band names' seen twice", ErrDuplicateKey)
		}

		r.names = splitList(val)

		if r.expectBands > 0 && len(r.names) != r.expectBands {
			return fmt.Errorf("%w: %d bands, %d band names", ErrInconsistentBands, r.expectBands, len(r.names))
		}
	default:
		return r.meta.Add(key, val)
	}

	return nil
}

func headerUint(key, val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad value %q for %q", ErrFormat, val, key)
	}

	return n, nil
}
