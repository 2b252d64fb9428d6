package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from a standard normal
// distribution using the Box-Muller transform.
// The rng is explicit so callers control seeding and reproducibility.
// Only works with float types.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.Randn[float32](Shape{100, 100}, rng, backend)
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	switch any(T(0)).(type) {
	case float32:
		dataF32 := any(data).([]float32)
		fillNormalFloat32(dataF32, rng)
	case float64:
		dataF64 := any(data).([]float64)
		fillNormalFloat64(dataF64, rng)
	default:
		panic("Randn only supports float32 and float64 types")
	}
	return t
}

// FillNormal fills dst with i.i.d. standard normal draws from rng.
// Shared by Randn and the reparameterized sampler's noise source.
func FillNormal(dst []float32, rng *rand.Rand) {
	fillNormalFloat32(dst, rng)
}

func fillNormalFloat32(data []float32, rng *rand.Rand) {
	for i := 0; i < len(data); i += 2 {
		z0, z1 := boxMuller(rng)
		data[i] = float32(z0)
		if i+1 < len(data) {
			data[i+1] = float32(z1)
		}
	}
}

func fillNormalFloat64(data []float64, rng *rand.Rand) {
	for i := 0; i < len(data); i += 2 {
		z0, z1 := boxMuller(rng)
		data[i] = z0
		if i+1 < len(data) {
			data[i+1] = z1
		}
	}
}

// boxMuller converts two uniform draws into two independent standard
// normal draws.
func boxMuller(rng *rand.Rand) (float64, float64) {
	u1 := rng.Float64()
	for u1 == 0 { // log(0) guard
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	r := math.Sqrt(-2.0 * math.Log(u1))
	return r * math.Cos(2.0*math.Pi*u2), r * math.Sin(2.0*math.Pi*u2)
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Only works with float types.
func Rand[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	switch any(T(0)).(type) {
	case float32:
		dataF32 := any(data).([]float32)
		for i := range dataF32 {
			dataF32[i] = float32(rng.Float64())
		}
	case float64:
		dataF64 := any(data).([]float64)
		for i := range dataF64 {
			dataF64[i] = rng.Float64()
		}
	default:
		panic("Rand only supports float32 and float64 types")
	}
	return t
}

// Linspace creates a 1D tensor with num evenly spaced values from start to
// stop, inclusive on both ends. Used to lay out latent-space grids.
//
// Example:
//
//	t := tensor.Linspace[float32](-2, 2, 5, backend) // [-2, -1, 0, 1, 2]
func Linspace[T DType, B Backend](start, stop T, num int, b B) *Tensor[T, B] {
	if num < 2 {
		panic("Linspace requires at least 2 points")
	}

	t := Zeros[T, B](Shape{num}, b)
	data := t.Data()

	switch any(T(0)).(type) {
	case float32:
		dataF32 := any(data).([]float32)
		startF, stopF := float64(any(start).(float32)), float64(any(stop).(float32))
		step := (stopF - startF) / float64(num-1)
		for i := range dataF32 {
			dataF32[i] = float32(startF + float64(i)*step)
		}
	case float64:
		dataF64 := any(data).([]float64)
		startF, stopF := any(start).(float64), any(stop).(float64)
		step := (stopF - startF) / float64(num-1)
		for i := range dataF64 {
			dataF64[i] = startF + float64(i)*step
		}
	default:
		panic("Linspace only supports float32 and float64 types")
	}
	return t
}
