package cpu

import (
	"fmt"
	"math"

	"github.com/manifold-ml/manifold/internal/parallel"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("exp: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(math.Exp(float64(src[i])))
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Exp(src[i])
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("exp: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Log computes element-wise natural logarithm: ln(x).
// IEEE semantics: log(0) = -Inf and log(x<0) = NaN; no input value panics.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("log: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(math.Log(float64(src[i])))
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Log(src[i])
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("log: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Sqrt computes element-wise square root: sqrt(x).
// IEEE semantics: sqrt of a negative input yields NaN.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sqrt: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(math.Sqrt(float64(src[i])))
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Sqrt(src[i])
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Clamp clips every element into [lo, hi].
func (cpu *CPUBackend) Clamp(x *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("clamp: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		lo32, hi32 := float32(lo), float32(hi)
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				v := src[i]
				if v < lo32 {
					v = lo32
				} else if v > hi32 {
					v = hi32
				}
				dst[i] = v
			}
		}, cpu.pool)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				v := src[i]
				if v < lo {
					v = lo
				} else if v > hi {
					v = hi
				}
				dst[i] = v
			}
		}, cpu.pool)
	default:
		panic(fmt.Sprintf("clamp: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
