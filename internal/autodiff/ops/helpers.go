package ops

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target input shape.
// Needed when broadcasting was used in the forward pass: each broadcast
// dimension fanned one input element out to many outputs, so its gradient
// is the sum over those outputs.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone on the no-op path so the caller never hands out a tensor that
	// aliases a gradient still being accumulated.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Broadcasting aligns shapes from the right: collapse the leading
	// dimensions the target never had, then sum where the target is 1.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}
	shape := result.Shape()
	for i := 0; i < len(targetShape); i++ {
		if targetShape[i] == 1 && shape[i] > 1 {
			result = backend.SumDim(result, i, true)
			shape = result.Shape()
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// broadcastTo expands a tensor to the target shape, repeating values along
// size-1 and missing leading dimensions. Used by reduction backward passes,
// where one output element fans back out to every input element it summed.
func broadcastTo(t *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if t.Shape().Equal(targetShape) {
		return t.Clone()
	}

	result, err := tensor.NewRaw(targetShape, t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("broadcastTo: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		broadcastFloat32(t.AsFloat32(), result.AsFloat32(), t.Shape(), targetShape)
	case tensor.Float64:
		broadcastFloat64(t.AsFloat64(), result.AsFloat64(), t.Shape(), targetShape)
	default:
		panic(fmt.Sprintf("broadcastTo: unsupported dtype %s", t.DType()))
	}
	return result
}

func broadcastFloat32(src, dst []float32, srcShape, dstShape tensor.Shape) {
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()
	offset := len(dstShape) - len(srcShape)

	for i := range dst {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]

			srcDim := d - offset
			if srcDim >= 0 {
				if srcShape[srcDim] == 1 {
					coord = 0
				}
				srcIdx += coord * srcStrides[srcDim]
			}
		}
		dst[i] = src[srcIdx]
	}
}

func broadcastFloat64(src, dst []float64, srcShape, dstShape tensor.Shape) {
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()
	offset := len(dstShape) - len(srcShape)

	for i := range dst {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]

			srcDim := d - offset
			if srcDim >= 0 {
				if srcShape[srcDim] == 1 {
					coord = 0
				}
				srcIdx += coord * srcStrides[srcDim]
			}
		}
		dst[i] = src[srcIdx]
	}
}

// scalarOf converts a float64 constant to the scalar type the backend
// expects for tensors of the given dtype.
func scalarOf(dtype tensor.DataType, v float64) any {
	switch dtype {
	case tensor.Float32:
		return float32(v)
	case tensor.Float64:
		return v
	default:
		panic(fmt.Sprintf("ops: no scalar representation for dtype %s", dtype))
	}
}

// negate returns -grad.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.MulScalar(grad, scalarOf(grad.DType(), -1))
}
