package ops_test

import (
	"testing"

	"github.com/manifold-ml/manifold/internal/autodiff/ops"
	"github.com/manifold-ml/manifold/internal/backend/cpu"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// TestSumOp_Backward tests that a scalar gradient fans out to every element.
func TestSumOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	result := backend.Sum(x)

	op := ops.NewSumOp(x, result)

	outputGrad, err := tensor.NewRaw(tensor.Shape{}, tensor.Float32, backend.Device())
	if err != nil {
		t.Fatalf("failed to create gradient: %v", err)
	}
	outputGrad.AsFloat32()[0] = 2.5

	inputGrads := op.Backward(outputGrad, backend)

	if !inputGrads[0].Shape().Equal(tensor.Shape{2, 2}) {
		t.Errorf("grad shape = %v, want [2 2]", inputGrads[0].Shape())
	}
	if !float32Equal(inputGrads[0].AsFloat32(), []float32{2.5, 2.5, 2.5, 2.5}, 1e-6) {
		t.Errorf("grad = %v, want all 2.5", inputGrads[0].AsFloat32())
	}
}

// TestSumDimOp_Backward tests gradient broadcast over the reduced dimension.
func TestSumDimOp_Backward(t *testing.T) {
	backend := cpu.New()

	// [[1, 2, 3], [4, 5, 6]] summed along dim 1 -> [6, 15]
	x := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	t.Run("DroppedDim", func(t *testing.T) {
		result := backend.SumDim(x, 1, false)
		op := ops.NewSumDimOp(x, result, 1, false)

		outputGrad := rawFromSlice(t, []float32{10, 20}, tensor.Shape{2}, backend)
		inputGrads := op.Backward(outputGrad, backend)

		if !inputGrads[0].Shape().Equal(tensor.Shape{2, 3}) {
			t.Errorf("grad shape = %v, want [2 3]", inputGrads[0].Shape())
		}
		expected := []float32{10, 10, 10, 20, 20, 20}
		if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
			t.Errorf("grad = %v, want %v", inputGrads[0].AsFloat32(), expected)
		}
	})

	t.Run("KeepDim", func(t *testing.T) {
		result := backend.SumDim(x, 1, true)
		op := ops.NewSumDimOp(x, result, 1, true)

		outputGrad := rawFromSlice(t, []float32{10, 20}, tensor.Shape{2, 1}, backend)
		inputGrads := op.Backward(outputGrad, backend)

		expected := []float32{10, 10, 10, 20, 20, 20}
		if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
			t.Errorf("grad = %v, want %v", inputGrads[0].AsFloat32(), expected)
		}
	})

	t.Run("NegativeDim", func(t *testing.T) {
		result := backend.SumDim(x, -1, false)
		op := ops.NewSumDimOp(x, result, -1, false)

		outputGrad := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2}, backend)
		inputGrads := op.Backward(outputGrad, backend)

		expected := []float32{1, 1, 1, 2, 2, 2}
		if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
			t.Errorf("grad = %v, want %v", inputGrads[0].AsFloat32(), expected)
		}
	})

	t.Run("Dim0", func(t *testing.T) {
		result := backend.SumDim(x, 0, false)
		op := ops.NewSumDimOp(x, result, 0, false)

		outputGrad := rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3}, backend)
		inputGrads := op.Backward(outputGrad, backend)

		expected := []float32{1, 2, 3, 1, 2, 3}
		if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
			t.Errorf("grad = %v, want %v", inputGrads[0].AsFloat32(), expected)
		}
	})
}

// TestMeanDimOp_Backward tests the 1/n scaling on the broadcast gradient.
func TestMeanDimOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
	result := backend.MeanDim(x, 0, false)

	op := ops.NewMeanDimOp(x, result, 0, false)

	outputGrad, err := tensor.NewRaw(tensor.Shape{}, tensor.Float32, backend.Device())
	if err != nil {
		t.Fatalf("failed to create gradient: %v", err)
	}
	outputGrad.AsFloat32()[0] = 1

	inputGrads := op.Backward(outputGrad, backend)

	if !float32Equal(inputGrads[0].AsFloat32(), []float32{0.25, 0.25, 0.25, 0.25}, 1e-6) {
		t.Errorf("grad = %v, want all 0.25", inputGrads[0].AsFloat32())
	}
}

// TestMeanDimOp_BackwardBatch tests mean over the batch dimension of a matrix.
func TestMeanDimOp_BackwardBatch(t *testing.T) {
	backend := cpu.New()

	x := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	result := backend.MeanDim(x, 0, false)

	op := ops.NewMeanDimOp(x, result, 0, false)
	outputGrad := rawFromSlice(t, []float32{2, 4, 6}, tensor.Shape{3}, backend)

	inputGrads := op.Backward(outputGrad, backend)

	// Each of the 2 rows receives outputGrad / 2.
	expected := []float32{1, 2, 3, 1, 2, 3}
	if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
		t.Errorf("grad = %v, want %v", inputGrads[0].AsFloat32(), expected)
	}
}
