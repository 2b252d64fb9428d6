package autodiff_test

import (
	"errors"
	"testing"

	"github.com/manifold-ml/manifold/internal/autodiff"
	"github.com/manifold-ml/manifold/internal/backend/cpu"
	"github.com/manifold-ml/manifold/internal/tensor"
)

func float32Close(a, b []float32, epsilon float32) bool {
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

// TestBackend_Name tests the decorated backend name.
func TestBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name() = %s, want Autodiff(CPU)", backend.Name())
	}
}

// TestBackend_Device tests device passthrough.
func TestBackend_Device(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want %v", backend.Device(), tensor.CPU)
	}
}

// TestTape_Recording tests the recording toggle.
func TestTape_Recording(t *testing.T) {
	tape := autodiff.New(cpu.New()).Tape()

	if tape.IsRecording() {
		t.Error("tape should not be recording initially")
	}
	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("tape should be recording after StartRecording")
	}
	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("tape should not be recording after StopRecording")
	}
}

// TestTape_RecordsOnlyWhileRecording tests that operations outside a
// recording window leave no trace.
func TestTape_RecordsOnlyWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)

	result := backend.Add(a.Raw(), b.Raw())
	if !float32Close(result.AsFloat32(), []float32{4, 6}, 1e-6) {
		t.Errorf("Add = %v, want [4 6]", result.AsFloat32())
	}
	if tape.NumOps() != 0 {
		t.Errorf("NumOps = %d before StartRecording, want 0", tape.NumOps())
	}

	tape.StartRecording()
	backend.Add(a.Raw(), b.Raw())
	if tape.NumOps() != 1 {
		t.Errorf("NumOps = %d after recorded Add, want 1", tape.NumOps())
	}
}

// TestTape_Clear tests that Clear drops operations but keeps recording on.
func TestTape_Clear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), b.Raw())

	if tape.NumOps() == 0 {
		t.Fatal("tape should have recorded operations")
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("NumOps = %d after Clear, want 0", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Clear should preserve recording state")
	}
}

// TestTape_SingleUse tests that a tape cannot be walked twice.
func TestTape_SingleUse(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
	y := x.Mul(x)

	if _, err := autodiff.Grad(y, backend); err != nil {
		t.Fatalf("first Grad failed: %v", err)
	}

	_, err := autodiff.Grad(y, backend)
	if !errors.Is(err, autodiff.ErrTapeConsumed) {
		t.Errorf("second Grad error = %v, want ErrTapeConsumed", err)
	}

	// Clear re-arms the tape, but the graph is gone.
	tape.Clear()
	_, err = autodiff.Grad(y, backend)
	if !errors.Is(err, autodiff.ErrNotRecorded) {
		t.Errorf("Grad after Clear error = %v, want ErrNotRecorded", err)
	}

	// A fresh forward pass works again.
	z := x.Mul(x)
	grads, err := autodiff.Grad(z, backend)
	if err != nil {
		t.Fatalf("Grad after new forward pass failed: %v", err)
	}
	if !float32Close(grads[x.Raw()].AsFloat32(), []float32{4}, 1e-6) {
		t.Errorf("grad = %v, want [4]", grads[x.Raw()].AsFloat32())
	}
}

// TestTape_GradientSeedValidation tests seed shape/dtype checks.
func TestTape_GradientSeedValidation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y := x.Mul(x)

	badSeed, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, backend.Device())
	if err != nil {
		t.Fatalf("failed to create seed: %v", err)
	}
	if _, err := tape.Gradient(y.Raw(), badSeed, backend); err == nil {
		t.Error("expected error for mismatched seed shape")
	}
}

// TestGrad_Square tests d(x*x)/dx = 2x, exercising gradient accumulation
// for a tensor used twice.
func TestGrad_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2}, backend)
	y := x.Mul(x)

	grads, err := autodiff.Grad(y, backend)
	if err != nil {
		t.Fatalf("Grad failed: %v", err)
	}

	expected := []float32{4, 6}
	if !float32Close(grads[x.Raw()].AsFloat32(), expected, 1e-6) {
		t.Errorf("grad = %v, want %v", grads[x.Raw()].AsFloat32(), expected)
	}
}

// TestGrad_Chain tests z = (x+y)*y, where y receives gradient along two paths.
func TestGrad_Chain(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)

	z := x.Add(y).Mul(y)

	grads, err := autodiff.Grad(z, backend)
	if err != nil {
		t.Fatalf("Grad failed: %v", err)
	}

	// dz/dx = y, dz/dy = x + 2y
	if !float32Close(grads[x.Raw()].AsFloat32(), []float32{3, 4}, 1e-6) {
		t.Errorf("grad x = %v, want [3 4]", grads[x.Raw()].AsFloat32())
	}
	if !float32Close(grads[y.Raw()].AsFloat32(), []float32{7, 10}, 1e-6) {
		t.Errorf("grad y = %v, want [7 10]", grads[y.Raw()].AsFloat32())
	}
}

// TestGrad_BroadcastAdd tests that a broadcast input receives a reduced gradient.
func TestGrad_BroadcastAdd(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	b, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3}, backend)

	loss := a.Add(b).Sum()

	grads, err := autodiff.Grad(loss, backend)
	if err != nil {
		t.Fatalf("Grad failed: %v", err)
	}

	if !float32Close(grads[a.Raw()].AsFloat32(), []float32{1, 1, 1, 1, 1, 1}, 1e-6) {
		t.Errorf("grad a = %v, want ones", grads[a.Raw()].AsFloat32())
	}
	// b was broadcast over the two rows, so its gradient is the row count.
	if !float32Close(grads[b.Raw()].AsFloat32(), []float32{2, 2, 2}, 1e-6) {
		t.Errorf("grad b = %v, want [2 2 2]", grads[b.Raw()].AsFloat32())
	}
}

// TestGrad_MatMul tests gradients through a matrix product.
func TestGrad_MatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)
	w, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)

	loss := x.MatMul(w).Sum()

	grads, err := autodiff.Grad(loss, backend)
	if err != nil {
		t.Fatalf("Grad failed: %v", err)
	}

	// d(sum(x@w))/dx_i = sum of row i of w
	if !float32Close(grads[x.Raw()].AsFloat32(), []float32{3, 7}, 1e-6) {
		t.Errorf("grad x = %v, want [3 7]", grads[x.Raw()].AsFloat32())
	}
	// d(sum(x@w))/dw_ij = x_i
	if !float32Close(grads[w.Raw()].AsFloat32(), []float32{1, 1, 2, 2}, 1e-6) {
		t.Errorf("grad w = %v, want [1 1 2 2]", grads[w.Raw()].AsFloat32())
	}
}

// TestGrad_ForwardValuesSurviveBackward tests that the backward pass leaves
// forward tensors untouched, so losses can be read after Grad.
func TestGrad_ForwardValuesSurviveBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{0.5, -1}, tensor.Shape{2}, backend)
	s := x.Sigmoid()
	loss := s.Sum()

	before := loss.Item()
	sBefore := append([]float32(nil), s.Data()...)

	if _, err := autodiff.Grad(loss, backend); err != nil {
		t.Fatalf("Grad failed: %v", err)
	}

	if loss.Item() != before {
		t.Errorf("loss changed during backward: %v -> %v", before, loss.Item())
	}
	if !float32Close(s.Data(), sBefore, 0) {
		t.Errorf("sigmoid output changed during backward: %v -> %v", sBefore, s.Data())
	}
}

// TestBackend_CastNotRecorded tests that dtype conversion stays off the tape.
func TestBackend_CastNotRecorded(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	backend.Cast(x.Raw(), tensor.Float16)

	if tape.NumOps() != 0 {
		t.Errorf("NumOps = %d after Cast, want 0", tape.NumOps())
	}
}
