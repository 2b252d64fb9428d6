package cpu

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/parallel"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		mulScalarFloat32(result, x, scalar.(float32), cpu.pool)
	case tensor.Float64:
		mulScalarFloat64(result, x, scalar.(float64), cpu.pool)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("addScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		addScalarFloat32(result, x, scalar.(float32), cpu.pool)
	case tensor.Float64:
		addScalarFloat64(result, x, scalar.(float64), cpu.pool)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// ============================================================================
// Float32 implementations
// ============================================================================

func mulScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	xData := x.AsFloat32()
	resultData := result.AsFloat32()

	parallel.ForRange(len(resultData), func(start, end int) {
		for i := start; i < end; i++ {
			resultData[i] = xData[i] * scalar
		}
	}, cfg)
}

func addScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	xData := x.AsFloat32()
	resultData := result.AsFloat32()

	parallel.ForRange(len(resultData), func(start, end int) {
		for i := start; i < end; i++ {
			resultData[i] = xData[i] + scalar
		}
	}, cfg)
}

// ============================================================================
// Float64 implementations
// ============================================================================

func mulScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	xData := x.AsFloat64()
	resultData := result.AsFloat64()

	parallel.ForRange(len(resultData), func(start, end int) {
		for i := start; i < end; i++ {
			resultData[i] = xData[i] * scalar
		}
	}, cfg)
}

func addScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	xData := x.AsFloat64()
	resultData := result.AsFloat64()

	parallel.ForRange(len(resultData), func(start, end int) {
		for i := start; i < end; i++ {
			resultData[i] = xData[i] + scalar
		}
	}, cfg)
}
