// Copyright 2025 Manifold ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/manifold-ml/manifold/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsFloat16(), etc.
//   - Copy-on-write semantics via Clone() and IsUnique()
//   - Reference counting for efficient memory management
//
// Most users should use the high-level Tensor[T, B] type instead. The
// gradient tape keys gradients by RawTensor pointer, so a value's
// identity is its raw tensor.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Type-safe access
//	clone := raw.Clone()     // Shares the buffer via reference counting
type RawTensor = tensor.RawTensor
