package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// MeanDimOp represents a mean reduction along one dimension: output = mean(x, dim).
//
// Backward pass: like SumDimOp, but each broadcast gradient element is
// divided by the size of the reduced dimension.
type MeanDimOp struct {
	inputs  []*tensor.RawTensor // [x]
	output  *tensor.RawTensor   // mean(x, dim)
	dim     int
	keepDim bool
	dimSize int // size of the reduced dimension
}

// NewMeanDimOp creates a new MeanDimOp.
func NewMeanDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	actualDim := dim
	if actualDim < 0 {
		actualDim += len(x.Shape())
	}

	return &MeanDimOp{
		inputs:  []*tensor.RawTensor{x},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
		dimSize: x.Shape()[actualDim],
	}
}

// Backward computes the input gradient for mean reduction.
func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]

	grad := outputGrad
	if !op.keepDim {
		grad = unsqueezeDim(grad, op.dim, x.Shape(), backend)
	}
	gradX := broadcastTo(grad, x.Shape(), backend)
	gradX = backend.MulScalar(gradX, scalarOf(gradX.DType(), 1/float64(op.dimSize)))

	return []*tensor.RawTensor{gradX}
}

// Inputs returns the input tensors [x].
func (op *MeanDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor mean(x, dim).
func (op *MeanDimOp) Output() *tensor.RawTensor {
	return op.output
}
