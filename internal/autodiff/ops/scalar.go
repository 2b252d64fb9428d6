package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// AddScalarOp represents element-wise addition of a constant: output = x + c.
//
// Backward pass: d(x+c)/dx = 1, so the gradient passes through unchanged.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar any
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor, scalar any) *AddScalarOp {
	return &AddScalarOp{
		input:  x,
		output: output,
		scalar: scalar,
	}
}

// Backward computes the input gradient for scalar addition.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// Inputs returns the input tensor [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x + c.
func (op *AddScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// MulScalarOp represents element-wise multiplication by a constant: output = x * c.
//
// Backward pass: d(x*c)/dx = c, so grad_input = outputGrad * c.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar any
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar any) *MulScalarOp {
	return &MulScalarOp{
		input:  x,
		output: output,
		scalar: scalar,
	}
}

// Backward computes the input gradient for scalar multiplication.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.MulScalar(outputGrad, op.scalar)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x * c.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}
