package cpu

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/tensor"
)

// TestCPUBackend_MatMul tests matrix multiplication.
func TestCPUBackend_MatMul(t *testing.T) {
	backend := newTestBackend()

	t.Run("KnownValues", func(t *testing.T) {
		// (2, 3) @ (3, 2) -> (2, 2)
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		b := newFloat32Tensor(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})

		result := backend.MatMul(a, b)

		if !result.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("MatMul shape = %v, want [2 2]", result.Shape())
		}
		expected := []float32{58, 64, 139, 154}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("MatMul failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("Identity", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
		eye := newFloat32Tensor(t, tensor.Shape{2, 2}, []float32{1, 0, 0, 1})

		result := backend.MatMul(a, eye)

		if !float32SliceEqual(result.AsFloat32(), a.AsFloat32()) {
			t.Errorf("A @ I != A: got %v", result.AsFloat32())
		}
	})

	t.Run("VectorShapes", func(t *testing.T) {
		// (1, 4) @ (4, 1) -> (1, 1)
		a := newFloat32Tensor(t, tensor.Shape{1, 4}, []float32{1, 2, 3, 4})
		b := newFloat32Tensor(t, tensor.Shape{4, 1}, []float32{1, 1, 1, 1})

		result := backend.MatMul(a, b)

		if !result.Shape().Equal(tensor.Shape{1, 1}) {
			t.Fatalf("MatMul shape = %v, want [1 1]", result.Shape())
		}
		if result.AsFloat32()[0] != 10 {
			t.Errorf("dot product = %v, want 10", result.AsFloat32()[0])
		}
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3}, make([]float32, 6))
		b := newFloat32Tensor(t, tensor.Shape{2, 3}, make([]float32, 6))

		defer func() {
			if r := recover(); r == nil {
				t.Error("MatMul should panic on inner dimension mismatch")
			}
		}()
		backend.MatMul(a, b)
	})

	t.Run("Non2D", func(t *testing.T) {
		a := newFloat32Tensor(t, tensor.Shape{2, 3, 4}, make([]float32, 24))
		b := newFloat32Tensor(t, tensor.Shape{4, 2}, make([]float32, 8))

		defer func() {
			if r := recover(); r == nil {
				t.Error("MatMul should panic on non-2D input")
			}
		}()
		backend.MatMul(a, b)
	})
}

// TestCPUBackend_MatMulAgainstDense cross-checks random float64 products
// against gonum's mat.Dense.
func TestCPUBackend_MatMulAgainstDense(t *testing.T) {
	backend := newTestBackend()
	rng := rand.New(rand.NewSource(11))

	const m, k, n = 7, 5, 9

	aData := make([]float64, m*k)
	bData := make([]float64, k*n)
	for i := range aData {
		aData[i] = rng.NormFloat64()
	}
	for i := range bData {
		bData[i] = rng.NormFloat64()
	}

	a, _ := tensor.NewRaw(tensor.Shape{m, k}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{k, n}, tensor.Float64, tensor.CPU)
	copy(a.AsFloat64(), aData)
	copy(b.AsFloat64(), bData)

	result := backend.MatMul(a, b)

	var want mat.Dense
	want.Mul(mat.NewDense(m, k, aData), mat.NewDense(k, n, bData))

	got := result.AsFloat64()
	if !floats.EqualApprox(got, want.RawMatrix().Data, 1e-12) {
		t.Fatalf("MatMul disagrees with dense oracle:\n got %v\nwant %v", got, want.RawMatrix().Data)
	}
}

func BenchmarkMatMul(b *testing.B) {
	backend := New()
	rng := rand.New(rand.NewSource(1))

	const size = 128
	a, _ := tensor.NewRaw(tensor.Shape{size, size}, tensor.Float32, tensor.CPU)
	x, _ := tensor.NewRaw(tensor.Shape{size, size}, tensor.Float32, tensor.CPU)
	aData := a.AsFloat32()
	xData := x.AsFloat32()
	for i := range aData {
		aData[i] = rng.Float32()
		xData[i] = rng.Float32()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = backend.MatMul(a, x)
	}
}
