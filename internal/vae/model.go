package vae

import (
	"math/rand"

	"github.com/manifold-ml/manifold/internal/nn"
	"github.com/manifold-ml/manifold/internal/tensor"
)

// Encoder maps an image batch to the parameters of a diagonal Gaussian
// over the latent space. Both outputs have shape (batch, latentDim);
// logVar holds the log-variance, not the standard deviation.
type Encoder[B tensor.Backend] interface {
	Encode(x *tensor.Tensor[float32, B]) (mean, logVar *tensor.Tensor[float32, B])
	Parameters() []*nn.Parameter[B]
}

// Decoder maps latent codes of shape (batch, latentDim) back to images.
// Outputs are per-pixel Bernoulli means in (0, 1).
type Decoder[B tensor.Backend] interface {
	Decode(z *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
	Parameters() []*nn.Parameter[B]
}

// DenseEncoder is a single-hidden-layer MLP encoder. The input batch is
// flattened, passed through a ReLU hidden layer, and projected by two
// separate linear heads for the mean and the log-variance.
type DenseEncoder[B tensor.Backend] struct {
	imageShape tensor.Shape
	inFeatures int
	latentDim  int

	hidden     *nn.Linear[B]
	meanHead   *nn.Linear[B]
	logVarHead *nn.Linear[B]
}

// NewDenseEncoder builds an encoder for images of the given per-example
// shape, e.g. (28, 28, 1) for MNIST.
func NewDenseEncoder[B tensor.Backend](imageShape tensor.Shape, hiddenDim, latentDim int, rng *rand.Rand, backend B) *DenseEncoder[B] {
	inFeatures := imageShape.NumElements()
	return &DenseEncoder[B]{
		imageShape: imageShape.Clone(),
		inFeatures: inFeatures,
		latentDim:  latentDim,
		hidden:     nn.NewLinear(inFeatures, hiddenDim, rng, backend),
		meanHead:   nn.NewLinear(hiddenDim, latentDim, rng, backend),
		logVarHead: nn.NewLinear(hiddenDim, latentDim, rng, backend),
	}
}

func (e *DenseEncoder[B]) Encode(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	batch := x.Shape()[0]
	flat := x.Reshape(batch, e.inFeatures)
	h := e.hidden.Forward(flat).ReLU()
	return e.meanHead.Forward(h), e.logVarHead.Forward(h)
}

func (e *DenseEncoder[B]) Parameters() []*nn.Parameter[B] {
	params := e.hidden.Parameters()
	params = append(params, e.meanHead.Parameters()...)
	params = append(params, e.logVarHead.Parameters()...)
	return params
}

// LatentDim returns the dimensionality of the latent space.
func (e *DenseEncoder[B]) LatentDim() int { return e.latentDim }

// DenseDecoder is a single-hidden-layer MLP decoder. The output layer
// starts at zero, so a freshly built decoder emits 0.5 for every pixel
// and the initial reconstruction loss is exactly log 2 per pixel.
type DenseDecoder[B tensor.Backend] struct {
	imageShape  tensor.Shape
	outFeatures int
	latentDim   int

	hidden *nn.Linear[B]
	output *nn.Linear[B]
}

// NewDenseDecoder builds a decoder producing images of the given
// per-example shape from latent codes of size latentDim.
func NewDenseDecoder[B tensor.Backend](latentDim, hiddenDim int, imageShape tensor.Shape, rng *rand.Rand, backend B) *DenseDecoder[B] {
	outFeatures := imageShape.NumElements()
	return &DenseDecoder[B]{
		imageShape:  imageShape.Clone(),
		outFeatures: outFeatures,
		latentDim:   latentDim,
		hidden:      nn.NewLinear(latentDim, hiddenDim, rng, backend),
		output:      nn.NewZeroLinear(hiddenDim, outFeatures, backend),
	}
}

func (d *DenseDecoder[B]) Decode(z *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch := z.Shape()[0]
	h := d.hidden.Forward(z).ReLU()
	probs := d.output.Forward(h).Sigmoid()

	outShape := make([]int, 0, len(d.imageShape)+1)
	outShape = append(outShape, batch)
	outShape = append(outShape, d.imageShape...)
	return probs.Reshape(outShape...)
}

func (d *DenseDecoder[B]) Parameters() []*nn.Parameter[B] {
	params := d.hidden.Parameters()
	params = append(params, d.output.Parameters()...)
	return params
}

// LatentDim returns the dimensionality of the latent space.
func (d *DenseDecoder[B]) LatentDim() int { return d.latentDim }
