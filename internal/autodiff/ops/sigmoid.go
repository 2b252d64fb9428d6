package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// SigmoidOp represents the sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
//
// Backward pass: dσ/dx = σ(x) * (1 - σ(x)). Both factors come from the
// forward output, so the input is never re-evaluated.
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for sigmoid.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	output := op.output
	defer outputGrad.ForceNonUnique()()
	defer output.ForceNonUnique()()

	dtype := output.DType()

	// 1 - σ(x)
	oneMinus := backend.AddScalar(backend.MulScalar(output, scalarOf(dtype, -1)), scalarOf(dtype, 1))

	// grad_input = grad_output * σ(x) * (1 - σ(x))
	derivative := backend.Mul(output, oneMinus)
	gradInput := backend.Mul(outputGrad, derivative)

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensors.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor {
	return op.output
}
