// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/manifold-ml/manifold/internal/backend/cpu"
	"github.com/manifold-ml/manifold/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of all tensor
// operations, with element-wise kernels chunked across worker
// goroutines and matrix multiplication delegated to gonum's BLAS.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend with parallelism based on CPU count.
//
// Example:
//
//	import (
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	    "github.com/manifold-ml/manifold/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend with worker goroutines disabled.
// Useful for deterministic profiling and debugging.
func NewSequential() *Backend {
	return internalcpu.NewSequential()
}
