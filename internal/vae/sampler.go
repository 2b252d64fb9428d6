package vae

import (
	"fmt"
	"math/rand"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// NoiseSource draws the noise used by reparameterized sampling. Fill
// writes one draw per element of dst.
type NoiseSource interface {
	Fill(dst []float32)
}

// GaussianSource draws standard normal noise from a seeded generator.
type GaussianSource struct {
	rng *rand.Rand
}

func NewGaussianSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

func (g *GaussianSource) Fill(dst []float32) {
	tensor.FillNormal(dst, g.rng)
}

// ZeroSource draws all zeros, which turns sampling into the identity on
// the mean. Useful in tests and for deterministic reconstruction.
type ZeroSource struct{}

func (ZeroSource) Fill(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}

// Sampler draws latent codes via the reparameterization trick:
//
//	z = mean + exp(logVar/2) * xi,  xi ~ source
//
// The noise enters the graph as a constant, so gradients flow to mean
// and logVar but never into the source.
type Sampler[B tensor.Backend] struct {
	source  NoiseSource
	backend B
}

func NewSampler[B tensor.Backend](source NoiseSource, backend B) *Sampler[B] {
	return &Sampler[B]{source: source, backend: backend}
}

// Sample draws one latent code per row of mean. Both inputs must have
// shape (batch, latentDim).
func (s *Sampler[B]) Sample(mean, logVar *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	// The noise tensor is materialized directly rather than through
	// backend ops, so nothing about it is recorded.
	raw, err := tensor.NewRaw(mean.Shape().Clone(), tensor.Float32, s.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("sample noise: %v", err))
	}
	s.source.Fill(raw.AsFloat32())
	xi := tensor.New[float32](raw, s.backend)

	std := logVar.MulScalar(0.5).Exp()
	return mean.Add(std.Mul(xi))
}
