package vae

import (
	"github.com/manifold-ml/manifold/internal/tensor"
)

// clampEpsilon bounds predictions away from {0, 1} before the logs in
// the reconstruction term. 1e-7 is the smallest float32 margin that
// keeps log(eps) finite without visibly biasing the loss.
const clampEpsilon = 1e-7

// Criterion computes the variational lower-bound objective
//
//	L = L_rec + L_KL
//
// where L_rec is binary cross-entropy summed over pixels and L_KL is
// the closed-form divergence between the encoder's Gaussian and the
// standard normal prior. Both terms are summed per example and averaged
// over the batch, so the totals are comparable across batch sizes.
type Criterion[B tensor.Backend] struct{}

func NewCriterion[B tensor.Backend]() *Criterion[B] {
	return &Criterion[B]{}
}

// Loss evaluates the objective. target and yHat must share a shape of
// the form (batch, ...); mean and logVar must be (batch, latentDim).
// All three results are scalars.
func (c *Criterion[B]) Loss(target, yHat, mean, logVar *tensor.Tensor[float32, B]) (total, rec, kl *tensor.Tensor[float32, B]) {
	batch := target.Shape()[0]
	pixels := target.Shape().NumElements() / batch

	flatTarget := target.Reshape(batch, pixels)
	flatPred := yHat.Reshape(batch, pixels).Clamp(clampEpsilon, 1-clampEpsilon)

	// Per-pixel cross-entropy: -(t*log(p) + (1-t)*log(1-p)).
	onesMinusPred := flatPred.MulScalar(-1).AddScalar(1)
	onesMinusTarget := flatTarget.MulScalar(-1).AddScalar(1)
	crossEntropy := flatTarget.Mul(flatPred.Log()).Add(onesMinusTarget.Mul(onesMinusPred.Log()))
	rec = crossEntropy.SumDim(1, false).MulScalar(-1).MeanDim(0, false)

	// 0.5 * sum(exp(logVar) + mean^2 - 1 - logVar) per example.
	divergence := logVar.Exp().Add(mean.Mul(mean)).AddScalar(-1).Sub(logVar)
	kl = divergence.SumDim(1, false).MulScalar(0.5).MeanDim(0, false)

	total = rec.Add(kl)
	return total, rec, kl
}
