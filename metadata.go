package envi

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata is an ordered set of key/value string pairs from an ENVI header.
// Insertion order is preserved and is exactly the order the pairs are written
// to, or were read from, the header. Keys are unique per instance.
type Metadata struct {
	keys   []string
	values []string
}

// Len returns the number of stored pairs.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Key returns the i-th key in insertion order.
func (m *Metadata) Key(i int) string {
	return m.keys[i]
}

// Value returns the i-th raw value in insertion order.
func (m *Metadata) Value(i int) string {
	return m.values[i]
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	return m.index(key) >= 0
}

func (m *Metadata) index(key string) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}

	return -1
}

// Add stores a single-valued key. It fails if the key already exists.
func (m *Metadata) Add(key string, value any) error {
	if i := m.index(key); i >= 0 {
		return fmt.Errorf("%w: key %q already exists with value %q", ErrDuplicateKey, key, m.values[i])
	}

	m.keys = append(m.keys, key)
	m.values = append(m.values, formatValue(value))

	return nil
}

// AddMulti stores a multi-valued key: the values are serialized into one
// brace-delimited, comma-separated string under a single key. It fails if the
// key already exists.
func (m *Metadata) AddMulti(key string, values ...any) error {
	if i := m.index(key); i >= 0 {
		return fmt.Errorf("%w: key %q already exists with value %q", ErrDuplicateKey, key, m.values[i])
	}

	var sb strings.Builder

	sb.WriteString("{ ")

	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(formatValue(v))
	}

	sb.WriteString(" }")

	m.keys = append(m.keys, key)
	m.values = append(m.values, sb.String())

	return nil
}

// Get returns the raw value stored under key, or missing if absent.
func (m *Metadata) Get(key, missing string) string {
	i := m.index(key)
	if i < 0 {
		return missing
	}

	return m.values[i]
}

// Values splits the value stored under key on commas and trims each token.
// Surrounding braces, present when the value was built by AddMulti, are
// stripped first. An absent key yields an empty slice.
func (m *Metadata) Values(key string) []string {
	v := trim(m.Get(key, ""))
	if strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}") {
		v = trim(v[1 : len(v)-1])
	}

	return splitList(v)
}

// splitList splits a comma-separated list, trimming each entry. An empty
// trailing entry after the last comma is dropped.
func splitList(v string) []string {
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = trim(p)
	}

	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}

// Scalar is the set of value types the typed metadata accessors can decode.
type Scalar interface {
	string | bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// GetMeta decodes the value stored under key as T. Decoding is best effort:
// an absent key or a value that fails to parse as T both yield missing. A
// malformed value is therefore indistinguishable from an absent one.
func GetMeta[T Scalar](m *Metadata, key string, missing T) T {
	i := m.index(key)
	if i < 0 {
		return missing
	}

	ret := missing
	parseInto(m.values[i], &ret)

	return ret
}

// Field consumes one positional token of a multi-valued metadata entry.
type Field func(token string)

// Bind returns a Field that decodes its token into dst. Decoding is best
// effort; on parse failure dst is left untouched.
func Bind[T Scalar](dst *T) Field {
	return func(token string) {
		parseInto(token, dst)
	}
}

// Discard consumes a positional token without binding it to anything.
var Discard Field = func(string) {}

// Scan splits the value stored under key into comma-separated tokens and
// applies the fields to them positionally. Extra tokens are discarded; extra
// fields are left untouched.
func (m *Metadata) Scan(key string, fields ...Field) {
	tokens := m.Values(key)

	for i, f := range fields {
		if i >= len(tokens) {
			return
		}

		if f != nil {
			f(tokens[i])
		}
	}
}

// parseInto decodes token into the pointed-to scalar, assigning only on
// success, and reports whether it did.
func parseInto(token string, dst any) bool {
	switch p := dst.(type) {
	case *string:
		*p = token
	case *bool:
		v, err := strconv.ParseBool(token)
		if err != nil {
			return false
		}
		*p = v
	case *int:
		v, err := strconv.ParseInt(token, 10, 0)
		if err != nil {
			return false
		}
		*p = int(v)
	case *int8:
		v, err := strconv.ParseInt(token, 10, 8)
		if err != nil {
			return false
		}
		*p = int8(v)
	case *int16:
		v, err := strconv.ParseInt(token, 10, 16)
		if err != nil {
			return false
		}
		*p = int16(v)
	case *int32:
		v, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return false
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return false
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(token, 10, 0)
		if err != nil {
			return false
		}
		*p = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(token, 10, 8)
		if err != nil {
			return false
		}
		*p = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(token, 10, 16)
		if err != nil {
			return false
		}
		*p = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return false
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return false
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return false
		}
		*p = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return false
		}
		*p = v
	default:
		return false
	}

	return true
}

// formatValue serializes a metadata value the way it will appear in the
// header. Floats keep up to 16 significant digits.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', 16, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', 16, 32)
	default:
		return fmt.Sprint(v)
	}
}
