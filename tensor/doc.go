// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Manifold ML
// framework.
//
// # Overview
//
// Tensors are the fundamental data structure in Manifold. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Copy-on-write buffers with zero-copy views where possible
//   - A small Backend interface every compute device implements
//
// # Basic Usage
//
//	import (
//	    "github.com/manifold-ml/manifold/tensor"
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.T())
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32, float64 and uint8. Float16 exists
// as a storage format only: RawTensor buffers can hold half-precision
// values (handy for large image datasets), but they must be Cast to
// float32 before compute.
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)   // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)    // (3, 4)
//	c := a.Add(b)                                             // (3, 4)
//
// # Memory Management
//
// Buffers are reference-counted and shared copy-on-write: Clone never
// copies data, and backends copy only when an in-place fast path would
// alias a shared buffer.
//
// # Randomness
//
// Every random creation function takes an explicit *rand.Rand, so the
// caller owns seeding:
//
//	rng := rand.New(rand.NewSource(42))
//	x := tensor.Randn[float32](tensor.Shape{100, 64}, rng, backend)
package tensor
