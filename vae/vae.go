// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vae

import (
	"math/rand"

	"github.com/manifold-ml/manifold/internal/autodiff"
	"github.com/manifold-ml/manifold/internal/optim"
	"github.com/manifold-ml/manifold/internal/tensor"
	"github.com/manifold-ml/manifold/internal/vae"
)

// Models

// Encoder maps an image batch to the mean and log-variance of a
// diagonal Gaussian over the latent space.
type Encoder[B tensor.Backend] = vae.Encoder[B]

// Decoder maps latent codes back to per-pixel Bernoulli means.
type Decoder[B tensor.Backend] = vae.Decoder[B]

// DenseEncoder is a single-hidden-layer MLP encoder.
type DenseEncoder[B tensor.Backend] = vae.DenseEncoder[B]

// NewDenseEncoder builds an encoder for images of the given per-example
// shape, e.g. tensor.Shape{28, 28, 1} for MNIST.
func NewDenseEncoder[B tensor.Backend](imageShape tensor.Shape, hiddenDim, latentDim int, rng *rand.Rand, backend B) *DenseEncoder[B] {
	return vae.NewDenseEncoder(imageShape, hiddenDim, latentDim, rng, backend)
}

// DenseDecoder is a single-hidden-layer MLP decoder whose output layer
// starts at zero, so a fresh model emits 0.5 for every pixel.
type DenseDecoder[B tensor.Backend] = vae.DenseDecoder[B]

// NewDenseDecoder builds a decoder producing images of the given
// per-example shape from latent codes of size latentDim.
func NewDenseDecoder[B tensor.Backend](latentDim, hiddenDim int, imageShape tensor.Shape, rng *rand.Rand, backend B) *DenseDecoder[B] {
	return vae.NewDenseDecoder(latentDim, hiddenDim, imageShape, rng, backend)
}

// Sampling

// NoiseSource draws the noise used by reparameterized sampling.
type NoiseSource = vae.NoiseSource

// GaussianSource draws standard normal noise from a seeded generator.
type GaussianSource = vae.GaussianSource

// NewGaussianSource creates a Gaussian noise source with the given seed.
func NewGaussianSource(seed int64) *GaussianSource {
	return vae.NewGaussianSource(seed)
}

// ZeroSource draws all zeros, turning sampling into the identity on the
// mean.
type ZeroSource = vae.ZeroSource

// Sampler draws latent codes via the reparameterization trick.
type Sampler[B tensor.Backend] = vae.Sampler[B]

// NewSampler creates a sampler over the given noise source.
func NewSampler[B tensor.Backend](source NoiseSource, backend B) *Sampler[B] {
	return vae.NewSampler(source, backend)
}

// Loss

// Criterion computes the training objective: binary cross-entropy
// reconstruction plus the closed-form KL divergence to the prior.
type Criterion[B tensor.Backend] = vae.Criterion[B]

// NewCriterion creates a loss criterion.
func NewCriterion[B tensor.Backend]() *Criterion[B] {
	return vae.NewCriterion[B]()
}

// Training

// Trainer wires an encoder, decoder, sampler and optimizer into a
// training loop.
type Trainer[B autodiff.BackwardCapable] = vae.Trainer[B]

// TrainerConfig holds the trainer's own settings.
type TrainerConfig = vae.TrainerConfig

// DefaultTrainerConfig returns a config with a 2-dimensional latent
// space.
func DefaultTrainerConfig() TrainerConfig {
	return vae.DefaultTrainerConfig()
}

// NewTrainer creates a trainer from its collaborators. It returns a
// configuration error if any collaborator is missing or the latent
// dimension is invalid.
func NewTrainer[B autodiff.BackwardCapable](encoder Encoder[B], decoder Decoder[B], sampler *Sampler[B], optimizer optim.Optimizer, config TrainerConfig, backend B) (*Trainer[B], error) {
	return vae.NewTrainer(encoder, decoder, sampler, optimizer, config, backend)
}

// StepMetrics carries the loss terms of one training step.
type StepMetrics = vae.StepMetrics

// Dataset supplies training examples as tensors.
type Dataset[B tensor.Backend] = vae.Dataset[B]

// FitConfig holds the settings for one call to Fit.
type FitConfig = vae.FitConfig

// DefaultFitConfig returns the default fit settings.
func DefaultFitConfig() FitConfig {
	return vae.DefaultFitConfig()
}

// EpochCallback observes training progress after each epoch.
type EpochCallback = vae.EpochCallback

// Metrics

// Tracker accumulates named running means.
type Tracker = vae.Tracker

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return vae.NewTracker()
}

// Metric names recorded by the trainer.
const (
	MetricLoss           = vae.MetricLoss
	MetricReconstruction = vae.MetricReconstruction
	MetricKL             = vae.MetricKL
)

// Errors

// ErrDiverged reports that a training step produced a non-finite loss.
var ErrDiverged = vae.ErrDiverged

// ErrConfig is the sentinel wrapped by every configuration error.
var ErrConfig = vae.ErrConfig

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	return vae.IsConfigError(err)
}
