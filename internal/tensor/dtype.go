// Package tensor provides the core tensor types and operations for the Manifold ML library.
package tensor

// DType is a constraint for element types a Tensor can be instantiated with.
// It uses Go generics to ensure compile-time type safety.
//
// Float16 is intentionally absent: Go has no native half-precision type, so
// half tensors exist only as RawTensor storage and must be Cast to float32
// before compute.
type DType interface {
	~float32 | ~float64 | ~uint8
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Float16
	Uint8
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Float16:
		return 2
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float16:
		return "float16"
	case Uint8:
		return "uint8"
	default:
		return "unknown"
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case uint8:
		return Uint8
	default:
		panic("unsupported type")
	}
}
