package tensor

import (
	"math/rand"
	"testing"
)

func BenchmarkTensorCreation(b *testing.B) {
	backend := NewMockBackend()
	shape := Shape{100, 100}

	b.Run("Zeros", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Zeros[float32](shape, backend)
		}
	})

	b.Run("Ones", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Ones[float32](shape, backend)
		}
	})

	b.Run("Randn", func(b *testing.B) {
		rng := rand.New(rand.NewSource(1))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Randn[float32](shape, rng, backend)
		}
	})
}

func BenchmarkShapeOperations(b *testing.B) {
	shape1 := Shape{100, 100}
	shape2 := Shape{100, 100}

	b.Run("NumElements", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = shape1.NumElements()
		}
	})

	b.Run("ComputeStrides", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = shape1.ComputeStrides()
		}
	})

	b.Run("BroadcastShapes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _, _ = BroadcastShapes(shape1, shape2)
		}
	})
}

func BenchmarkCopyOnWrite(b *testing.B) {
	raw, _ := NewRaw(Shape{256, 256}, Float32, CPU)

	b.Run("Clone", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			c := raw.Clone()
			c.Release()
		}
	})

	b.Run("IsUnique", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = raw.IsUnique()
		}
	})
}
