package optim

import (
	"github.com/manifold-ml/manifold/internal/nn"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	}, backend)
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter[B]][]float32
	backend    B
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// DefaultSGDConfig returns the default SGD configuration.
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{
		LR:       0.01,
		Momentum: 0.0,
	}
}

// NewSGD creates a new SGD optimizer.
//
// Zero-valued config fields fall back to DefaultSGDConfig.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = DefaultSGDConfig().LR
	}

	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]][]float32),
		backend:    backend,
	}
}

// Step performs a single optimization step.
//
// Applies the gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
//
// Parameters with no gradient (not in the computational graph) are skipped.
// On a shape or dtype mismatch no parameter is modified.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	if err := checkGradients(s.params, grads); err != nil {
		return err
	}

	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		// Publish the gradient so it stays inspectable after the step.
		param.SetGrad(tensor.New[float32, B](grad, s.backend))

		gradData := grad.AsFloat32()
		paramData := param.Tensor().Raw().AsFloat32()

		if s.momentum == 0 {
			for i := range paramData {
				paramData[i] -= s.lr * gradData[i]
			}
			continue
		}

		velocity := s.velocityFor(param)
		for i := range paramData {
			velocity[i] = s.momentum*velocity[i] + gradData[i]
			paramData[i] -= s.lr * velocity[i]
		}
	}

	return nil
}

// velocityFor returns the momentum buffer for a parameter, allocating a
// zeroed one on first use.
func (s *SGD[B]) velocityFor(param *nn.Parameter[B]) []float32 {
	velocity, exists := s.velocities[param]
	if !exists {
		velocity = make([]float32, param.NumElements())
		s.velocities[param] = velocity
	}
	return velocity
}

// ZeroGrad clears the published gradients for all parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}
