// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vae provides variational autoencoder training for the
// Manifold ML framework.
//
// # Overview
//
// This package contains:
//   - Trainer: the step loop tying encoder, decoder, sampler and
//     optimizer together
//   - DenseEncoder, DenseDecoder: single-hidden-layer MLP models
//   - Sampler: reparameterized latent sampling z = mean + exp(logVar/2)*xi
//   - Criterion: binary cross-entropy plus closed-form KL divergence
//   - Tracker: named running means for epoch metrics
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/manifold-ml/manifold/autodiff"
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	    "github.com/manifold-ml/manifold/optim"
//	    "github.com/manifold-ml/manifold/tensor"
//	    "github.com/manifold-ml/manifold/vae"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    rng := rand.New(rand.NewSource(42))
//
//	    imageShape := tensor.Shape{28, 28, 1}
//	    encoder := vae.NewDenseEncoder(imageShape, 256, 2, rng, backend)
//	    decoder := vae.NewDenseDecoder(2, 256, imageShape, rng, backend)
//	    params := append(encoder.Parameters(), decoder.Parameters()...)
//
//	    trainer, err := vae.NewTrainer(
//	        encoder, decoder,
//	        vae.NewSampler(vae.NewGaussianSource(42), backend),
//	        optim.NewAdam(params, optim.DefaultAdamConfig(), backend),
//	        vae.TrainerConfig{LatentDim: 2},
//	        backend,
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    err = trainer.Fit(dataset, vae.FitConfig{
//	        Epochs:    20,
//	        BatchSize: 128,
//	        Seed:      42,
//	        OnEpoch: func(epoch int, metrics map[string]float64) {
//	            log.Printf("epoch %d: loss %.2f", epoch, metrics[vae.MetricLoss])
//	        },
//	    })
//	}
//
// # Error Handling
//
// Miswired models surface as configuration errors before any parameter
// is modified; match them with IsConfigError. A step whose loss goes
// non-finite returns ErrDiverged without applying an update.
package vae
