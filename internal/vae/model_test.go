package vae

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/autodiff"
	"github.com/manifold-ml/manifold/internal/backend/cpu"
	"github.com/manifold-ml/manifold/internal/tensor"
)

func TestDenseEncoderShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(11))

	encoder := NewDenseEncoder(tensor.Shape{28, 28, 1}, 64, 2, rng, backend)
	input := tensor.Randn[float32](tensor.Shape{4, 28, 28, 1}, rng, backend)

	mean, logVar := encoder.Encode(input)

	assert.Equal(t, []int{4, 2}, []int(mean.Shape()))
	assert.Equal(t, []int{4, 2}, []int(logVar.Shape()))
	assert.Equal(t, 2, encoder.LatentDim())

	// Hidden layer plus two heads, each with weight and bias.
	require.Len(t, encoder.Parameters(), 6)
}

func TestDenseEncoderHeadsAreIndependent(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(3))

	encoder := NewDenseEncoder(tensor.Shape{4, 4, 1}, 8, 3, rng, backend)
	input := tensor.Rand[float32](tensor.Shape{2, 4, 4, 1}, rng, backend)

	mean, logVar := encoder.Encode(input)
	assert.NotEqual(t, mean.Data(), logVar.Data(), "heads share weights")
}

func TestDenseDecoderShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(21))

	decoder := NewDenseDecoder(2, 64, tensor.Shape{28, 28, 1}, rng, backend)
	z := tensor.Randn[float32](tensor.Shape{4, 2}, rng, backend)

	output := decoder.Decode(z)

	assert.Equal(t, []int{4, 28, 28, 1}, []int(output.Shape()))
	assert.Equal(t, 2, decoder.LatentDim())
	require.Len(t, decoder.Parameters(), 4)
}

func TestDenseDecoderFreshEmitsHalf(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(5))

	decoder := NewDenseDecoder(3, 16, tensor.Shape{6, 6, 1}, rng, backend)
	z := tensor.Randn[float32](tensor.Shape{5, 3}, rng, backend)

	output := decoder.Decode(z)

	// The zero output layer puts every logit at 0 regardless of z.
	for i, v := range output.Data() {
		require.Equal(t, float32(0.5), v, "pixel %d", i)
	}
}

func TestEncodeDecodeRoundTripShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(17))

	imageShape := tensor.Shape{8, 8, 1}
	encoder := NewDenseEncoder(imageShape, 16, 4, rng, backend)
	decoder := NewDenseDecoder(4, 16, imageShape, rng, backend)
	sampler := NewSampler(NewGaussianSource(2), backend)

	input := tensor.Rand[float32](tensor.Shape{3, 8, 8, 1}, rng, backend)

	mean, logVar := encoder.Encode(input)
	z := sampler.Sample(mean, logVar)
	output := decoder.Decode(z)

	assert.Equal(t, []int(input.Shape()), []int(output.Shape()))
	for i, v := range output.Data() {
		require.Greater(t, v, float32(0), "pixel %d", i)
		require.Less(t, v, float32(1), "pixel %d", i)
	}
}
