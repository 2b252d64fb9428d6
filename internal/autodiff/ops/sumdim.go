package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// SumDimOp represents a sum reduction along one dimension: output = sum(x, dim).
//
// Backward pass: each output element is the sum of the input elements along
// dim, so the gradient broadcasts back over that dimension. If keepDim was
// false, the reduced dimension is first restored as size 1.
type SumDimOp struct {
	inputs  []*tensor.RawTensor // [x]
	output  *tensor.RawTensor   // sum(x, dim)
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		inputs:  []*tensor.RawTensor{x},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
	}
}

// Backward computes the input gradient for sum reduction.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]

	grad := outputGrad
	if !op.keepDim {
		grad = unsqueezeDim(grad, op.dim, x.Shape(), backend)
	}
	gradX := broadcastTo(grad, x.Shape(), backend)

	return []*tensor.RawTensor{gradX}
}

// Inputs returns the input tensors [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sum(x, dim).
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}

// unsqueezeDim restores a reduced dimension as size 1, producing the shape
// the keepDim=true reduction would have had.
func unsqueezeDim(grad *tensor.RawTensor, dim int, inputShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if dim < 0 {
		dim += len(inputShape)
	}
	newShape := inputShape.Clone()
	newShape[dim] = 1
	return backend.Reshape(grad, newShape)
}
