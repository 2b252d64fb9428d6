package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// TanhOp represents the hyperbolic tangent activation.
//
// Backward pass: d(tanh(x))/dx = 1 - tanh²(x), computed from the forward output.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for tanh.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	output := op.output
	defer outputGrad.ForceNonUnique()()
	defer output.ForceNonUnique()()

	dtype := output.DType()

	// 1 - tanh²(x)
	squared := backend.Mul(output, output)
	derivative := backend.AddScalar(backend.MulScalar(squared, scalarOf(dtype, -1)), scalarOf(dtype, 1))

	gradInput := backend.Mul(outputGrad, derivative)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensors.
func (op *TanhOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.RawTensor {
	return op.output
}
