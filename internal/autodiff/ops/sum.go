package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// SumOp represents a full reduction to a scalar: output = sum(x).
//
// Backward pass: every input element contributed exactly once, so the
// scalar output gradient broadcasts back to the input shape.
type SumOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor   // sum(x), scalar
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward computes the input gradient for sum.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradX := broadcastTo(outputGrad, op.inputs[0].Shape(), backend)
	return []*tensor.RawTensor{gradX}
}

// Inputs returns the input tensors [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sum(x).
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
