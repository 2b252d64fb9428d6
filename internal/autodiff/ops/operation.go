// Package ops defines the differentiable operations recorded on the gradient tape.
//
// Each operation captures its input and output tensors during the forward pass
// and knows how to turn an output gradient into input gradients during the
// backward pass:
//   - AddOp/SubOp/MulOp/DivOp: element-wise arithmetic with broadcast reduction
//   - AddScalarOp/MulScalarOp: affine ops against a Go scalar
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - ExpOp/LogOp/SqrtOp/ClampOp: element-wise math
//   - SigmoidOp/ReLUOp/TanhOp: activations
//   - ReshapeOp/TransposeOp: shape movement
//   - SumOp/SumDimOp/MeanDimOp: reductions
package ops

import "github.com/manifold-ml/manifold/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input tensor, in Inputs() order. A nil entry
	// means no gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
