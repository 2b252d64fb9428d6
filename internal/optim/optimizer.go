// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Design inspired by PyTorch's torch.optim but adapted for Go with type safety.
//
// Example usage:
//
//	optimizer := optim.NewAdam(params, optim.DefaultAdamConfig(), backend)
//
//	for step := range steps {
//	    backend.Tape().StartRecording()
//	    loss := forward(batch)
//	    grads, err := autodiff.Grad(loss, backend)
//	    if err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(grads); err != nil {
//	        return err
//	    }
//	    backend.Tape().Clear()
//	}
package optim

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/nn"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters based on computed gradients to
// minimize the loss function during training. Updates write through the
// parameter buffers in place and never touch the recording tape, so a
// Step can run while a consumed tape is still holding the forward graph.
//
// Parameters are owned by the training loop: they must not be shared
// copy-on-write with other tensors while Step runs.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes the gradient map produced by the backward pass and updates
	// parameters in place. Parameters without an entry in the map are
	// skipped (they did not participate in the forward pass). A gradient
	// whose shape does not match its parameter is a configuration error:
	// Step returns it and leaves all parameters untouched.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error

	// ZeroGrad clears the gradients published on the parameters by the
	// previous Step.
	ZeroGrad()

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float32
}

// getGradient safely retrieves the gradient for a parameter.
//
// Returns nil if no gradient is found (parameter wasn't part of the
// computation graph).
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}

// checkGradients validates every present gradient against its parameter
// before any update is applied, so a mismatch never leaves the model
// half-stepped.
func checkGradients[B tensor.Backend](params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	for _, param := range params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		if !grad.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("optim: gradient shape %v does not match parameter %q shape %v",
				grad.Shape(), param.Name(), param.Tensor().Shape())
		}
		if grad.DType() != tensor.Float32 {
			return fmt.Errorf("optim: gradient for parameter %q has dtype %s, want float32",
				param.Name(), grad.DType())
		}
	}
	return nil
}
