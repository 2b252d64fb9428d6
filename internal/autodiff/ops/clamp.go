package ops

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// ClampOp represents the clamp operation: y = min(max(x, lo), hi).
//
// Backward pass: the gradient passes through where the input landed inside
// [lo, hi] and is zero where the input was clipped. Elements exactly on a
// bound count as inside.
type ClampOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	lo, hi float64
}

// NewClampOp creates a new ClampOp.
func NewClampOp(input, output *tensor.RawTensor, lo, hi float64) *ClampOp {
	return &ClampOp{
		input:  input,
		output: output,
		lo:     lo,
		hi:     hi,
	}
}

// Backward computes the input gradient for clamp.
func (op *ClampOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()

	mask := clampMask(op.input, op.lo, op.hi, backend)
	gradInput := backend.Mul(outputGrad, mask)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ClampOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor min(max(x, lo), hi).
func (op *ClampOp) Output() *tensor.RawTensor {
	return op.output
}

// clampMask creates a binary mask: 1 where lo <= input <= hi, 0 elsewhere.
func clampMask(input *tensor.RawTensor, lo, hi float64, backend tensor.Backend) *tensor.RawTensor {
	mask, err := tensor.NewRaw(input.Shape(), input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("clamp: failed to create mask: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		inputData := input.AsFloat32()
		maskData := mask.AsFloat32()
		lo32, hi32 := float32(lo), float32(hi)
		for i, val := range inputData {
			if val >= lo32 && val <= hi32 {
				maskData[i] = 1
			}
		}

	case tensor.Float64:
		inputData := input.AsFloat64()
		maskData := mask.AsFloat64()
		for i, val := range inputData {
			if val >= lo && val <= hi {
				maskData[i] = 1
			}
		}

	default:
		panic(fmt.Sprintf("clamp: unsupported dtype %s", input.DType()))
	}

	return mask
}
