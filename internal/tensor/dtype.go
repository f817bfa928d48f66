// Package tensor provides the array type decoded datasets are handed to.
package tensor

// DataType identifies the element type of a tensor.
type DataType int

// Supported data types.
const (
	Uint8 DataType = iota
	Float32
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Uint8:
		return 1
	case Float32:
		return 4
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}
