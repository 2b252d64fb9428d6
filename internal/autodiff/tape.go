package autodiff

import (
	"errors"
	"fmt"

	"github.com/manifold-ml/manifold/internal/autodiff/ops"
	"github.com/manifold-ml/manifold/internal/tensor"
)

var (
	// ErrTapeConsumed is returned when Gradient is called on a tape whose
	// recorded graph has already been walked. Call Clear to start fresh.
	ErrTapeConsumed = errors.New("autodiff: tape already consumed")

	// ErrNotRecorded is returned when Gradient is called on an empty tape.
	ErrNotRecorded = errors.New("autodiff: no operations recorded")
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
//
// A tape is single-use: after Gradient has walked the recorded graph the
// tape is consumed, and must be cleared before recording a new graph.
// Tensors recorded on the tape are identified by pointer, so reusing a
// stale graph would silently mix gradients from different forward passes.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	grads, err := tape.Gradient(loss, seed, backend)
//	tape.Clear()
type GradientTape struct {
	operations []ops.Operation // recorded operations, in execution order
	recording  bool
	consumed   bool
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape. No-op unless recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape for a new forward pass, dropping all recorded
// operations and the consumed flag.
// Recording state is preserved, call StopRecording explicitly if needed.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
	t.consumed = false
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Gradient computes gradients for all tensors reachable from root by
// walking the tape in reverse, consuming it.
//
// Algorithm:
//  1. Seed the root with the given output gradient
//  2. Walk operations in reverse execution order
//  3. For each operation whose output has a gradient, apply the chain rule
//  4. Accumulate gradients when the same tensor feeds multiple operations
//
// The seed must match the root's shape and dtype; for a scalar loss it is
// typically a scalar one. Returns a map from each reachable tensor to its
// accumulated gradient.
func (t *GradientTape) Gradient(root, seed *tensor.RawTensor, backend tensor.Backend) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	if t.consumed {
		return nil, ErrTapeConsumed
	}
	if len(t.operations) == 0 {
		return nil, ErrNotRecorded
	}
	if !seed.Shape().Equal(root.Shape()) {
		return nil, fmt.Errorf("autodiff: seed shape %v does not match root shape %v", seed.Shape(), root.Shape())
	}
	if seed.DType() != root.DType() {
		return nil, fmt.Errorf("autodiff: seed dtype %s does not match root dtype %s", seed.DType(), root.DType())
	}
	t.consumed = true

	// Gradient math must not append to the tape, and the caller's seed must
	// survive in-place accumulation.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()
	defer seed.ForceNonUnique()()

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[root] = seed

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			// No gradient flows through this operation.
			continue
		}

		inputGrads := op.Backward(outputGrad, backend)
		for j, input := range op.Inputs() {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads, nil
}
