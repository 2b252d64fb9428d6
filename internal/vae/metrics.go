package vae

// Metric names recorded by the trainer. Each is a running mean over the
// batches seen since the last Reset.
const (
	MetricLoss           = "loss"
	MetricReconstruction = "reconstruction_loss"
	MetricKL             = "kl_loss"
)

// Tracker accumulates named running means. Every Update carries equal
// weight, so with a fixed batch size the result is the per-batch mean
// for the epoch.
type Tracker struct {
	sums   map[string]float64
	counts map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
	}
}

// Update folds one observation into the running mean for name.
func (t *Tracker) Update(name string, value float64) {
	t.sums[name] += value
	t.counts[name]++
}

// Result returns the running mean for name, or 0 if name has never been
// updated.
func (t *Tracker) Result(name string) float64 {
	count := t.counts[name]
	if count == 0 {
		return 0
	}
	return t.sums[name] / float64(count)
}

// Results returns a snapshot of every tracked mean.
func (t *Tracker) Results() map[string]float64 {
	results := make(map[string]float64, len(t.sums))
	for name := range t.sums {
		results[name] = t.Result(name)
	}
	return results
}

// Reset discards all accumulated observations.
func (t *Tracker) Reset() {
	t.sums = make(map[string]float64)
	t.counts = make(map[string]int)
}
