package optim

import (
	"math"

	"github.com/manifold-ml/manifold/internal/nn"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(params, optim.DefaultAdamConfig(), backend)
type Adam[B tensor.Backend] struct {
	params  []*nn.Parameter[B]
	lr      float32
	beta1   float32
	beta2   float32
	eps     float32
	t       int // Timestep for bias correction
	m       map[*nn.Parameter[B]][]float32
	v       map[*nn.Parameter[B]][]float32
	backend B
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for the running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// DefaultAdamConfig returns the default Adam configuration.
func DefaultAdamConfig() AdamConfig {
	return AdamConfig{
		LR:    0.001,
		Betas: [2]float32{0.9, 0.999},
		Eps:   1e-8,
	}
}

// NewAdam creates a new Adam optimizer.
//
// Zero-valued config fields fall back to DefaultAdamConfig.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig, backend B) *Adam[B] {
	defaults := DefaultAdamConfig()
	if config.LR == 0 {
		config.LR = defaults.LR
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = defaults.Betas[0]
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = defaults.Betas[1]
	}
	if config.Eps == 0 {
		config.Eps = defaults.Eps
	}

	return &Adam[B]{
		params:  params,
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
		t:       0,
		m:       make(map[*nn.Parameter[B]][]float32),
		v:       make(map[*nn.Parameter[B]][]float32),
		backend: backend,
	}
}

// Step performs a single optimization step using the Adam algorithm.
//
// Parameters with no gradient are skipped. On a shape or dtype mismatch no
// parameter is modified and the timestep does not advance.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	if err := checkGradients(a.params, grads); err != nil {
		return err
	}

	a.t++

	// bias_correction = 1 - beta^t
	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		param.SetGrad(tensor.New[float32, B](grad, a.backend))

		m := a.momentFor(a.m, param)
		v := a.momentFor(a.v, param)

		gradData := grad.AsFloat32()
		paramData := param.Tensor().Raw().AsFloat32()

		for i := range paramData {
			g := gradData[i]

			// m_t = beta1 * m_{t-1} + (1-beta1) * grad
			m[i] = a.beta1*m[i] + (1.0-a.beta1)*g

			// v_t = beta2 * v_{t-1} + (1-beta2) * grad²
			v[i] = a.beta2*v[i] + (1.0-a.beta2)*g*g

			mHat := m[i] / biasCorrection1
			vHat := v[i] / biasCorrection2

			// param = param - lr * m_hat / (sqrt(v_hat) + eps)
			paramData[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	}

	return nil
}

// momentFor returns the moment buffer for a parameter, allocating a zeroed
// one on first use.
func (a *Adam[B]) momentFor(moments map[*nn.Parameter[B]][]float32, param *nn.Parameter[B]) []float32 {
	moment, exists := moments[param]
	if !exists {
		moment = make([]float32, param.NumElements())
		moments[param] = moment
	}
	return moment
}

// ZeroGrad clears the published gradients for all parameters.
func (a *Adam[B]) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam[B]) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (a *Adam[B]) SetLR(lr float32) {
	a.lr = lr
}

// GetTimestep returns the current timestep.
//
// Useful for monitoring optimizer state.
func (a *Adam[B]) GetTimestep() int {
	return a.t
}
