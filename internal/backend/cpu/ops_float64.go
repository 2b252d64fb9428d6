package cpu

import (
	"github.com/manifold-ml/manifold/internal/parallel"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Float64 operations follow the same pattern as float32

func addInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] += b[i]
		}
	}, cfg)
}

func subInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] -= b[i]
		}
	}, cfg)
}

func mulInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] *= b[i]
		}
	}, cfg)
}

func divInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] /= b[i]
		}
	}, cfg)
}

func addVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] + b[i]
		}
	}, cfg)
}

func subVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] - b[i]
		}
	}, cfg)
}

func mulVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] * b[i]
		}
	}, cfg)
}

func divVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] / b[i]
		}
	}, cfg)
}

func addBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = a[aIdx] + b[bIdx]
	}
}

func subBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = a[aIdx] - b[bIdx]
	}
}

func mulBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = a[aIdx] * b[bIdx]
	}
}

func divBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = a[aIdx] / b[bIdx]
	}
}

// Transpose float64.
func transposeFloat64(dst, src []float64, shape tensor.Shape, axes []int) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	n := shape.NumElements()
	for i := 0; i < n; i++ {
		coords := make([]int, ndim)
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		permutedCoords := make([]int, ndim)
		for dstDim, srcDim := range axes {
			permutedCoords[dstDim] = coords[srcDim]
		}

		dstIdx := 0
		for dim := 0; dim < ndim; dim++ {
			dstIdx += permutedCoords[dim] * dstStrides[dim]
		}

		dst[dstIdx] = src[i]
	}
}
