package cpu

import (
	"fmt"
	"math"

	"github.com/manifold-ml/manifold/internal/parallel"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Sigmoid applies the logistic function element-wise: 1 / (1 + exp(-x)).
// Computed branch-wise for numerical stability at large |x|.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sigmoid: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(sigmoid(float64(src[i])))
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = sigmoid(src[i])
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("sigmoid: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// sigmoid avoids overflow in exp for large negative inputs:
// for x >= 0 use 1/(1+exp(-x)), otherwise exp(x)/(1+exp(x)).
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// ReLU applies the rectifier element-wise: max(x, 0).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("relu: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				if src[i] > 0 {
					dst[i] = src[i]
				}
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				if src[i] > 0 {
					dst[i] = src[i]
				}
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("tanh: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(math.Tanh(float64(src[i])))
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Tanh(src[i])
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("tanh: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
