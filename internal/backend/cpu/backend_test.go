package cpu

import (
	"testing"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// Helper to create test backend.
func newTestBackend() *CPUBackend {
	return New()
}

// Helper to check float32 slices are equal within epsilon.
func float32SliceEqual(a, b []float32) bool {
	const epsilon = 1e-6
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

// Helper to build a float32 tensor from data.
func newFloat32Tensor(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw(%v) failed: %v", shape, err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}

// TestCPUBackend_Add tests element-wise addition.
func TestCPUBackend_Add(t *testing.T) {
	backend := newTestBackend()

	t.Run("SameShape", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		b := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{10, 11, 12, 13, 14, 15})

		result := backend.Add(a, b)

		expected := []float32{11, 13, 15, 17, 19, 21}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("Broadcast", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		b := newFloat32Tensor(t, tensor.Shape{3}, []float32{10, 20, 30})

		result := backend.Add(a, b)

		if !result.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("broadcast Add shape = %v, want [2 3]", result.Shape())
		}
		expected := []float32{11, 22, 33, 14, 25, 36}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("broadcast Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("BroadcastColumn", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		b := newFloat32Tensor(t, tensor.Shape{2, 1}, []float32{100, 200})

		result := backend.Add(a, b)

		expected := []float32{101, 102, 103, 204, 205, 206}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("column broadcast Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("InplaceWhenUnique", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{3}, []float32{1, 2, 3})
		b := newFloat32Tensor(t, tensor.Shape{3}, []float32{10, 10, 10})

		result := backend.Add(a, b)

		// Unique input with matching shapes is updated in place
		if result != a {
			t.Error("Add should reuse a unique lhs tensor")
		}
		if !float32SliceEqual(a.AsFloat32(), []float32{11, 12, 13}) {
			t.Errorf("inplace Add failed: got %v", a.AsFloat32())
		}
	})

	t.Run("NoInplaceWhenShared", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{3}, []float32{1, 2, 3})
		b := newFloat32Tensor(t, tensor.Shape{3}, []float32{10, 10, 10})

		restore := a.ForceNonUnique()
		defer restore()

		result := backend.Add(a, b)

		if result == a {
			t.Error("Add must not modify a shared tensor in place")
		}
		if !float32SliceEqual(a.AsFloat32(), []float32{1, 2, 3}) {
			t.Errorf("shared input was modified: %v", a.AsFloat32())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{11, 12, 13}) {
			t.Errorf("Add result wrong: %v", result.AsFloat32())
		}
	})

	t.Run("IncompatibleShapes", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, make([]float32, 6))
		b := newFloat32Tensor(t, tensor.Shape{2, 4}, make([]float32, 8))

		defer func() {
			if r := recover(); r == nil {
				t.Error("Add should panic on incompatible shapes")
			}
		}()
		backend.Add(a, b)
	})
}

// TestCPUBackend_Sub tests element-wise subtraction.
func TestCPUBackend_Sub(t *testing.T) {
	backend := newTestBackend()

	a := newFloat32Tensor(t, tensor.Shape{4}, []float32{10, 20, 30, 40})
	b := newFloat32Tensor(t, tensor.Shape{4}, []float32{1, 2, 3, 4})

	restore := a.ForceNonUnique()
	defer restore()

	result := backend.Sub(a, b)

	expected := []float32{9, 18, 27, 36}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Sub failed: got %v, expected %v", result.AsFloat32(), expected)
	}
}

// TestCPUBackend_Mul tests element-wise multiplication.
func TestCPUBackend_Mul(t *testing.T) {
	backend := newTestBackend()

	t.Run("SameShape", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{4}, []float32{1, 2, 3, 4})
		b := newFloat32Tensor(t, tensor.Shape{4}, []float32{2, 3, 4, 5})

		restore := a.ForceNonUnique()
		defer restore()

		result := backend.Mul(a, b)

		expected := []float32{2, 6, 12, 20}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Mul failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("BroadcastScalar", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
		b := newFloat32Tensor(t, tensor.Shape{}, []float32{10})

		result := backend.Mul(a, b)

		expected := []float32{10, 20, 30, 40}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("scalar broadcast Mul failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})
}

// TestCPUBackend_Div tests element-wise division.
func TestCPUBackend_Div(t *testing.T) {
	backend := newTestBackend()

	a := newFloat32Tensor(t, tensor.Shape{3}, []float32{10, 20, 30})
	b := newFloat32Tensor(t, tensor.Shape{3}, []float32{2, 4, 5})

	restore := a.ForceNonUnique()
	defer restore()

	result := backend.Div(a, b)

	expected := []float32{5, 5, 6}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Div failed: got %v, expected %v", result.AsFloat32(), expected)
	}
}

// TestCPUBackend_Float64 tests that float64 kernels work end to end.
func TestCPUBackend_Float64(t *testing.T) {
	backend := newTestBackend()

	a, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float64, tensor.CPU)
	copy(a.AsFloat64(), []float64{1, 2, 3})
	copy(b.AsFloat64(), []float64{0.5, 0.25, 0.125})

	restore := a.ForceNonUnique()
	defer restore()

	sum := backend.Add(a, b).AsFloat64()
	want := []float64{1.5, 2.25, 3.125}
	for i := range want {
		if sum[i] != want[i] {
			t.Errorf("float64 Add[%d] = %v, want %v", i, sum[i], want[i])
		}
	}
}

// TestCPUBackend_Reshape tests shape changes.
func TestCPUBackend_Reshape(t *testing.T) {
	backend := newTestBackend()

	a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	result := backend.Reshape(a, tensor.Shape{3, 2})

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("Reshape shape = %v, want [3 2]", result.Shape())
	}
	if !float32SliceEqual(result.AsFloat32(), a.AsFloat32()) {
		t.Error("Reshape should preserve data order")
	}

	t.Run("IncompatibleSize", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Reshape should panic when element counts differ")
			}
		}()
		backend.Reshape(a, tensor.Shape{4, 2})
	})
}

// TestCPUBackend_Transpose tests dimension permutation.
func TestCPUBackend_Transpose(t *testing.T) {
	backend := newTestBackend()

	t.Run("Default2D", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

		result := backend.Transpose(a)

		if !result.Shape().Equal(tensor.Shape{3, 2}) {
			t.Fatalf("Transpose shape = %v, want [3 2]", result.Shape())
		}
		expected := []float32{1, 4, 2, 5, 3, 6}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Transpose failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("ExplicitAxes3D", func(t *testing.T) {
		// shape [2, 1, 3] with axes [1, 0, 2] -> [1, 2, 3]
		a := newFloat32Tensor(t, tensor.Shape{2, 1, 3}, []float32{1, 2, 3, 4, 5, 6})

		result := backend.Transpose(a, 1, 0, 2)

		if !result.Shape().Equal(tensor.Shape{1, 2, 3}) {
			t.Fatalf("Transpose shape = %v, want [1 2 3]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{1, 2, 3, 4, 5, 6}) {
			t.Errorf("Transpose values wrong: %v", result.AsFloat32())
		}
	})

	t.Run("DuplicateAxis", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, make([]float32, 6))

		defer func() {
			if r := recover(); r == nil {
				t.Error("Transpose should panic on duplicate axes")
			}
		}()
		backend.Transpose(a, 0, 0)
	})
}
