// Package vae trains variational autoencoders on the Manifold tensor
// substrate. A Trainer owns the step loop: it records the forward pass
// on the gradient tape, differentiates the composite objective, and
// applies updates through an optimizer. The encoder, decoder, noise
// source and optimizer are swappable collaborators; the package ships
// dense MLP implementations of the first two.
package vae

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/manifold-ml/manifold/internal/autodiff"
	"github.com/manifold-ml/manifold/internal/optim"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Dataset supplies training examples as tensors. Batch materializes the
// examples at the given indices as a single tensor whose first
// dimension is len(indices).
type Dataset[B tensor.Backend] interface {
	Len() int
	Batch(indices []int) *tensor.Tensor[float32, B]
}

// StepMetrics carries the loss terms of one training step.
type StepMetrics struct {
	Loss           float64
	Reconstruction float64
	KL             float64
}

// TrainerConfig holds the trainer's own settings. Collaborators are
// passed to NewTrainer directly.
type TrainerConfig struct {
	// LatentDim is the expected width of the encoder's outputs. The
	// trainer rejects any step whose mean or log-variance disagrees.
	LatentDim int
}

// DefaultTrainerConfig returns a config with a 2-dimensional latent
// space, small enough to visualize directly.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{LatentDim: 2}
}

// Trainer wires an encoder, decoder, sampler and optimizer into a
// training loop. A step that fails validation returns a configuration
// error before any parameter is touched; a step that produces a
// non-finite loss returns ErrDiverged without applying an update.
type Trainer[B autodiff.BackwardCapable] struct {
	encoder   Encoder[B]
	decoder   Decoder[B]
	sampler   *Sampler[B]
	criterion *Criterion[B]
	optimizer optim.Optimizer
	metrics   *Tracker
	latentDim int
	backend   B
}

func NewTrainer[B autodiff.BackwardCapable](encoder Encoder[B], decoder Decoder[B], sampler *Sampler[B], optimizer optim.Optimizer, config TrainerConfig, backend B) (*Trainer[B], error) {
	if encoder == nil {
		return nil, configErrorf("trainer needs an encoder")
	}
	if decoder == nil {
		return nil, configErrorf("trainer needs a decoder")
	}
	if sampler == nil {
		return nil, configErrorf("trainer needs a sampler")
	}
	if optimizer == nil {
		return nil, configErrorf("trainer needs an optimizer")
	}
	if config.LatentDim <= 0 {
		return nil, configErrorf("latent dimension %d, want > 0", config.LatentDim)
	}
	return &Trainer[B]{
		encoder:   encoder,
		decoder:   decoder,
		sampler:   sampler,
		criterion: NewCriterion[B](),
		optimizer: optimizer,
		metrics:   NewTracker(),
		latentDim: config.LatentDim,
		backend:   backend,
	}, nil
}

// Metrics returns the tracker accumulating this trainer's running
// means. Fit resets it at the start of every epoch.
func (t *Trainer[B]) Metrics() *Tracker {
	return t.metrics
}

// Step runs one training step on a batch: forward, loss, backward,
// update, metrics. The recorded tape lives only for the duration of
// the step.
//
// Shape validation happens after the forward pass and before the loss,
// so a miswired model is reported as a configuration error while the
// parameters and metrics are still untouched.
func (t *Trainer[B]) Step(batch *tensor.Tensor[float32, B]) (StepMetrics, error) {
	tape := t.backend.Tape()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	mean, logVar := t.encoder.Encode(batch)
	z := t.sampler.Sample(mean, logVar)
	reconstruction := t.decoder.Decode(z)

	if err := t.validateShapes(batch, reconstruction, mean, logVar); err != nil {
		return StepMetrics{}, err
	}

	total, rec, kl := t.criterion.Loss(batch, reconstruction, mean, logVar)
	metrics := StepMetrics{
		Loss:           float64(total.Item()),
		Reconstruction: float64(rec.Item()),
		KL:             float64(kl.Item()),
	}
	if math.IsNaN(metrics.Loss) || math.IsInf(metrics.Loss, 0) {
		return StepMetrics{}, errors.Wrapf(ErrDiverged, "loss %v (reconstruction %v, kl %v)", metrics.Loss, metrics.Reconstruction, metrics.KL)
	}

	grads, err := autodiff.Grad(total, t.backend)
	if err != nil {
		return StepMetrics{}, errors.Wrap(err, "backward pass")
	}
	if err := t.optimizer.Step(grads); err != nil {
		return StepMetrics{}, errors.Wrap(err, "apply update")
	}

	t.metrics.Update(MetricLoss, metrics.Loss)
	t.metrics.Update(MetricReconstruction, metrics.Reconstruction)
	t.metrics.Update(MetricKL, metrics.KL)
	return metrics, nil
}

func (t *Trainer[B]) validateShapes(batch, reconstruction, mean, logVar *tensor.Tensor[float32, B]) error {
	if !reconstruction.Shape().Equal(batch.Shape()) {
		return configErrorf("decoder output shape %v does not match target shape %v", reconstruction.Shape(), batch.Shape())
	}
	want := tensor.Shape{batch.Shape()[0], t.latentDim}
	if !mean.Shape().Equal(want) {
		return configErrorf("encoder mean shape %v, want %v", mean.Shape(), want)
	}
	if !logVar.Shape().Equal(want) {
		return configErrorf("encoder log-variance shape %v, want %v", logVar.Shape(), want)
	}
	return nil
}

// EpochCallback observes training progress. It receives the completed
// epoch index and a snapshot of the epoch's metric means.
type EpochCallback func(epoch int, metrics map[string]float64)

// FitConfig holds the settings for one call to Fit.
type FitConfig struct {
	Epochs    int
	BatchSize int
	// Seed drives the per-epoch shuffle of example order.
	Seed    int64
	OnEpoch EpochCallback
}

func DefaultFitConfig() FitConfig {
	return FitConfig{
		Epochs:    10,
		BatchSize: 128,
		Seed:      42,
	}
}

// Fit trains for the configured number of epochs. Each epoch resets the
// metric tracker, reshuffles the example order, and steps through the
// dataset batch by batch. The first failing step aborts training with
// its error.
func (t *Trainer[B]) Fit(dataset Dataset[B], config FitConfig) error {
	if dataset == nil || dataset.Len() == 0 {
		return configErrorf("dataset is empty")
	}
	if config.Epochs <= 0 {
		return configErrorf("epochs %d, want > 0", config.Epochs)
	}
	if config.BatchSize <= 0 {
		return configErrorf("batch size %d, want > 0", config.BatchSize)
	}

	rng := rand.New(rand.NewSource(config.Seed))
	size := dataset.Len()

	for epoch := 0; epoch < config.Epochs; epoch++ {
		t.metrics.Reset()

		order := rng.Perm(size)
		for start := 0; start < size; start += config.BatchSize {
			end := start + config.BatchSize
			if end > size {
				end = size
			}
			batch := dataset.Batch(order[start:end])
			if _, err := t.Step(batch); err != nil {
				return errors.Wrapf(err, "epoch %d", epoch)
			}
		}

		if config.OnEpoch != nil {
			config.OnEpoch(epoch, t.metrics.Results())
		}
	}
	return nil
}
