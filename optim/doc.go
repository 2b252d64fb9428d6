// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural
// networks.
//
// # Overview
//
// This package contains:
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//   - The Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/manifold-ml/manifold/optim"
//	    "github.com/manifold-ml/manifold/autodiff"
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    optimizer := optim.NewAdam(model.Parameters(), optim.DefaultAdamConfig(), backend)
//
//	    for step := 0; step < numSteps; step++ {
//	        backend.Tape().StartRecording()
//	        loss := forward(model, batch)
//
//	        grads, err := autodiff.Grad(loss, backend)
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        if err := optimizer.Step(grads); err != nil {
//	            log.Fatal(err)
//	        }
//	        backend.Tape().Clear()
//	    }
//	}
//
// # Validation
//
// Step validates every gradient against its parameter before writing
// anything: a shape or dtype mismatch returns an error with all
// parameters untouched, so a failed step never leaves the model
// half-updated.
package optim
