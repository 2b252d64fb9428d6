// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks for the Manifold ML
// framework.
//
// # Overview
//
// This package contains:
//   - Module: the interface every layer implements
//   - Linear: fully connected layers with Xavier initialization
//   - ReLU, Sigmoid, Tanh: activation layers
//   - Sequential: ordered composition of modules
//   - Parameter: named trainable tensors
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/manifold-ml/manifold/nn"
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	    "github.com/manifold-ml/manifold/autodiff"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    rng := rand.New(rand.NewSource(42))
//
//	    model := nn.NewSequential(
//	        nn.NewLinear(784, 256, rng, backend),
//	        nn.NewReLU[*autodiff.Backend[*cpu.CPUBackend]](),
//	        nn.NewLinear(256, 10, rng, backend),
//	    )
//
//	    output := model.Forward(input)
//	}
//
// # Reproducibility
//
// Constructors that draw random weights take an explicit *rand.Rand, so
// building the same model from the same seed yields bit-identical
// parameters.
package nn
