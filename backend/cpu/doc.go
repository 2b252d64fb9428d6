// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go kernels (no CGO)
//   - Chunked parallel element-wise loops
//   - gonum BLAS GEMM for matrix multiplication
//   - Float32 and Float64 compute, Float16 storage casts
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/manifold-ml/manifold/backend/cpu"
//	    "github.com/manifold-ml/manifold/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Parallelism
//
// Element-wise kernels split their index range into chunks and fan the
// chunks out to worker goroutines, joining before the operation
// returns. Small tensors stay on the calling goroutine. NewSequential
// disables the workers entirely.
package cpu
