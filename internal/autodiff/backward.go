package autodiff

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// BackwardCapable is satisfied by backends that carry a gradient tape.
// Backend implements it; training code that only needs "a backend I can
// differentiate through" should depend on this interface.
type BackwardCapable interface {
	tensor.Backend
	Tape() *GradientTape
}

// Grad computes gradients of loss with respect to every tensor on the
// tape, seeding the backward pass with ones. This is the standard entry
// point for a scalar loss, where d(loss)/d(loss) = 1.
//
// The tape is consumed; Clear it before the next forward pass.
func Grad[T tensor.DType, B BackwardCapable](loss *tensor.Tensor[T, B], backend B) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	seed, err := tensor.NewRaw(loss.Shape(), loss.DType(), backend.Device())
	if err != nil {
		return nil, fmt.Errorf("autodiff: failed to create seed gradient: %w", err)
	}

	switch loss.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		return nil, fmt.Errorf("autodiff: cannot seed gradients for dtype %s", loss.DType())
	}

	return backend.Tape().Gradient(loss.Raw(), seed, backend)
}
