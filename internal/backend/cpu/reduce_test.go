package cpu

import (
	"testing"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// TestCPUBackend_Sum tests full reduction to a scalar.
func TestCPUBackend_Sum(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	result := backend.Sum(x)

	if !result.Shape().Equal(tensor.Shape{}) {
		t.Errorf("Sum shape: got %v, want scalar", result.Shape())
	}
	if got := result.AsFloat32()[0]; got != 21 {
		t.Errorf("Sum = %v, want 21", got)
	}
}

// TestCPUBackend_SumDim tests reduction along a single dimension.
func TestCPUBackend_SumDim(t *testing.T) {
	backend := newTestBackend()

	// [[1, 2, 3], [4, 5, 6]]
	x := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	t.Run("Dim0", func(t *testing.T) {
		result := backend.SumDim(x, 0, false)

		if !result.Shape().Equal(tensor.Shape{3}) {
			t.Errorf("shape: got %v, want [3]", result.Shape())
		}
		expected := []float32{5, 7, 9}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("SumDim(0) = %v, want %v", result.AsFloat32(), expected)
		}
	})

	t.Run("Dim1", func(t *testing.T) {
		result := backend.SumDim(x, 1, false)

		if !result.Shape().Equal(tensor.Shape{2}) {
			t.Errorf("shape: got %v, want [2]", result.Shape())
		}
		expected := []float32{6, 15}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("SumDim(1) = %v, want %v", result.AsFloat32(), expected)
		}
	})

	t.Run("KeepDim", func(t *testing.T) {
		result := backend.SumDim(x, 1, true)

		if !result.Shape().Equal(tensor.Shape{2, 1}) {
			t.Errorf("shape: got %v, want [2 1]", result.Shape())
		}
	})

	t.Run("NegativeDim", func(t *testing.T) {
		result := backend.SumDim(x, -1, false)

		expected := []float32{6, 15}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("SumDim(-1) = %v, want %v", result.AsFloat32(), expected)
		}
	})

	t.Run("MiddleDim3D", func(t *testing.T) {
		// Shape [2, 2, 2]: two 2x2 matrices.
		y := newFloat32Tensor(t, tensor.Shape{2, 2, 2}, []float32{1, 2, 3, 4, 5, 6, 7, 8})
		result := backend.SumDim(y, 1, false)

		if !result.Shape().Equal(tensor.Shape{2, 2}) {
			t.Errorf("shape: got %v, want [2 2]", result.Shape())
		}
		expected := []float32{4, 6, 12, 14}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("SumDim(1) = %v, want %v", result.AsFloat32(), expected)
		}
	})
}

// TestCPUBackend_MeanDim tests averaging along a single dimension.
func TestCPUBackend_MeanDim(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	result := backend.MeanDim(x, 0, false)

	expected := []float32{2.5, 3.5, 4.5}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("MeanDim(0) = %v, want %v", result.AsFloat32(), expected)
	}

	t.Run("VectorToScalar", func(t *testing.T) {
		// Averaging a batch of per-sample values down to one number.
		x := newFloat32Tensor(t, tensor.Shape{2}, []float32{4, 6})
		result := backend.MeanDim(x, 0, false)

		if !result.Shape().Equal(tensor.Shape{}) {
			t.Errorf("shape: got %v, want scalar", result.Shape())
		}
		if got := result.AsFloat32()[0]; got != 5 {
			t.Errorf("MeanDim = %v, want 5", got)
		}
	})
}
