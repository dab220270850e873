package envi

// DataType is the on-disk numeric encoding of one sample, using the code
// values from the 'data type' header field.
type DataType int

const (
	Char     DataType = 1  // int8
	Int16    DataType = 2  // int16
	Int32    DataType = 3  // int32
	Float32  DataType = 4  // float32
	Float64  DataType = 5  // float64
	Float32C DataType = 6  // complex64, requires the envicomplex build tag
	Float64C DataType = 9  // complex128, requires the envicomplex build tag
	UInt16   DataType = 12 // uint16
	UInt32   DataType = 13 // uint32
	Int64    DataType = 14 // int64
	UInt64   DataType = 15 // uint64
)

// ValidType reports whether code is a legal ENVI data type code. Codes 7, 8,
// 10 and 11 are unassigned in the format and never legal. The complex codes 6
// and 9 are always legal in a header even when complex support is compiled
// out; dispatching on them is what requires the feature.
func ValidType(code int) bool {
	return code >= 1 && code <= 15 &&
		code != 7 &&
		code != 8 &&
		(code <= 9 || code >= 12)
}

// Next returns the successor of d in the fixed traversal order over the legal,
// enabled encodings. The complex codes are skipped when complex support is
// compiled out. UInt64 maps to itself as a terminating sentinel; callers must
// treat a repeated value as end of chain, never advance past it.
func (d DataType) Next() DataType {
	switch {
	case complexEnabled && d == Float32C:
		return Float64C
	case complexEnabled && d == Float64C:
		return UInt16
	case !complexEnabled && d == Float64:
		return UInt16
	case d == UInt64:
		return UInt64
	default:
		return d + 1
	}
}

// Size returns the element size of d in bytes, or 0 for an invalid code.
func (d DataType) Size() int {
	switch d {
	case Char:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64, Float32C, Int64, UInt64:
		return 8
	case Float64C:
		return 16
	default:
		return 0
	}
}

func (d DataType) isComplex() bool {
	return d == Float32C || d == Float64C
}

func (d DataType) String() string {
	switch d {
	case Char:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float32C:
		return "complex64"
	case Float64C:
		return "complex128"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	default:
		return "invalid"
	}
}

// Sample is the set of element types usable for channel buffers. It matches
// the non-complex encodings of DataType; any Sample type can be converted to
// any encoding by ordinary numeric conversion.
type Sample interface {
	int8 | int16 | int32 | int64 | uint16 | uint32 | uint64 | float32 | float64
}

// TypeCode returns the DataType whose on-disk representation is exactly T.
func TypeCode[T Sample]() DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Char
	case int16:
		return Int16
	case int32:
		return Int32
	case float32:
		return Float32
	case float64:
		return Float64
	case uint16:
		return UInt16
	case uint32:
		return UInt32
	case int64:
		return Int64
	default:
		return UInt64
	}
}
