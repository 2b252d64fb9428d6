// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities; recording is off until the tape is started.
//
// Example:
//
//	import (
//	    "github.com/manifold-ml/manifold/autodiff"
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	    "github.com/manifold-ml/manifold/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//
//	    x := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    backend.Tape().StartRecording()
//	    y := x.Mul(x).Sum() // Operations recorded on tape
//
//	    grads, err := autodiff.Grad(y, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = grads[x.Raw()] // dy/dx = 2x
//	    backend.Tape().Clear()
//	}
package autodiff

import (
	"github.com/manifold-ml/manifold/internal/autodiff"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation. A tape
// is single-use: once its graph has been walked it must be cleared
// before recording again.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the constraint for backends that support
// backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Tape lifecycle errors.
var (
	ErrTapeConsumed = autodiff.ErrTapeConsumed
	ErrNotRecorded  = autodiff.ErrNotRecorded
)

// Grad computes gradients of a scalar-valued loss with respect to every
// recorded tensor, seeding the backward pass with ones.
func Grad[T tensor.DType, B BackwardCapable](loss *tensor.Tensor[T, B], backend B) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	return autodiff.Grad(loss, backend)
}
