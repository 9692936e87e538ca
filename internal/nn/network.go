package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bpnet-ml/bpnet/internal/activation"
)

// Config describes a Network.
//
// Zero values of Activation, Init and Rand select the logistic sigmoid,
// DefaultUniform and an independently seeded generator.
type Config struct {
	InputCount   int
	HiddenCount  int
	OutputCount  int
	LearningRate float64
	Activation   activation.Function
	Init         Uniform
	Rand         *rand.Rand
}

// Validate reports non-positive dimensions, a non-positive learning rate or
// an empty init range.
func (c Config) Validate() error {
	if c.InputCount <= 0 || c.HiddenCount <= 0 || c.OutputCount <= 0 {
		return fmt.Errorf("%w: layer sizes %d-%d-%d must be positive",
			ErrInvalidConfig, c.InputCount, c.HiddenCount, c.OutputCount)
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidConfig, c.LearningRate)
	}
	if c.Init != (Uniform{}) {
		return c.Init.Validate()
	}
	return nil
}

// Network is a fully connected two-layer network trained by backpropagation.
//
// Forward computes
//
//	h[j] = f(Σ_i input[i]·W1[i][j] + θh[j])
//	o[k] = f(Σ_j h[j]·W2[j][k] + θo[k])
//
// and caches input, h and o for the next Backward call, which applies one
// step of gradient descent on the mean square error.
//
// A Network is not safe for concurrent use: Forward and Backward share the
// cached activations. Confine each instance to one goroutine.
//
// Example:
//
//	net, err := nn.NewNetwork[float64](nn.Config{
//	    InputCount:   8000,
//	    HiddenCount:  64,
//	    OutputCount:  15,
//	    LearningRate: 0.3,
//	})
//	out, err := net.Forward(sample)
//	err = net.Backward(oneHot)
type Network[T Sample] struct {
	inputCount   int
	hiddenCount  int
	outputCount  int
	learningRate float64
	act          activation.Function

	inputHidden      [][]float64 // [input][hidden]
	hiddenOutput     [][]float64 // [hidden][output]
	hiddenThresholds []float64
	outputThresholds []float64

	// Cached by Forward for Backward.
	input      []float64
	hidden     []float64
	output     []float64
	hasForward bool

	deltaOutput []float64
	deltaHidden []float64
}

// NewNetwork creates a Network with randomly initialized parameters.
func NewNetwork[T Sample](cfg Config) (*Network[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	initializer := cfg.Init
	if initializer == (Uniform{}) {
		initializer = DefaultUniform()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = newRand()
	}

	n := newNetwork[T](cfg.InputCount, cfg.HiddenCount, cfg.OutputCount, cfg.LearningRate, cfg.Activation)
	initializer.FillMatrix(rng, n.inputHidden)
	initializer.FillMatrix(rng, n.hiddenOutput)
	initializer.Fill(rng, n.hiddenThresholds)
	initializer.Fill(rng, n.outputThresholds)

	return n, nil
}

// newNetwork allocates a zeroed network.
func newNetwork[T Sample](in, hidden, out int, lr float64, act activation.Function) *Network[T] {
	if act == nil {
		act = activation.Sigmoid{}
	}
	return &Network[T]{
		inputCount:       in,
		hiddenCount:      hidden,
		outputCount:      out,
		learningRate:     lr,
		act:              act,
		inputHidden:      newMatrix(in, hidden),
		hiddenOutput:     newMatrix(hidden, out),
		hiddenThresholds: make([]float64, hidden),
		outputThresholds: make([]float64, out),
		input:            make([]float64, in),
		hidden:           make([]float64, hidden),
		output:           make([]float64, out),
		deltaOutput:      make([]float64, out),
		deltaHidden:      make([]float64, hidden),
	}
}

// InputCount returns the number of input units.
func (n *Network[T]) InputCount() int { return n.inputCount }

// HiddenCount returns the number of hidden units.
func (n *Network[T]) HiddenCount() int { return n.hiddenCount }

// OutputCount returns the number of output units.
func (n *Network[T]) OutputCount() int { return n.outputCount }

// LearningRate returns the gradient-descent step size.
func (n *Network[T]) LearningRate() float64 { return n.learningRate }

// Activation returns the shared activation function.
func (n *Network[T]) Activation() activation.Function { return n.act }

// Forward computes the output activations for input.
//
// Every accumulator starts from zero, so the result depends only on the
// current parameters and input. The returned slice is a copy.
func (n *Network[T]) Forward(input []T) ([]float64, error) {
	if len(input) != n.inputCount {
		return nil, fmt.Errorf("%w: Network.Forward: expected input of length %d, got %d",
			ErrDimensionMismatch, n.inputCount, len(input))
	}

	for i, v := range input {
		n.input[i] = float64(v)
	}

	// Input -> activated hidden
	for j := 0; j < n.hiddenCount; j++ {
		var sum float64
		for i := 0; i < n.inputCount; i++ {
			sum += n.input[i] * n.inputHidden[i][j]
		}
		n.hidden[j] = n.act.Activate(sum + n.hiddenThresholds[j])
	}

	// Activated hidden -> activated output
	for k := 0; k < n.outputCount; k++ {
		var sum float64
		for j := 0; j < n.hiddenCount; j++ {
			sum += n.hidden[j] * n.hiddenOutput[j][k]
		}
		n.output[k] = n.act.Activate(sum + n.outputThresholds[k])
	}

	n.hasForward = true

	out := make([]float64, n.outputCount)
	copy(out, n.output)
	return out, nil
}

// Backward applies one gradient-descent step towards groundTruth.
//
// Both error terms are computed from the pre-update weights before any
// parameter changes.
func (n *Network[T]) Backward(groundTruth []float64) error {
	if !n.hasForward {
		return ErrNoForward
	}
	if len(groundTruth) != n.outputCount {
		return fmt.Errorf("%w: Network.Backward: expected ground truth of length %d, got %d",
			ErrDimensionMismatch, n.outputCount, len(groundTruth))
	}

	for k := 0; k < n.outputCount; k++ {
		n.deltaOutput[k] = (groundTruth[k] - n.output[k]) * n.act.Derivative(n.output[k])
	}

	for j := 0; j < n.hiddenCount; j++ {
		var sum float64
		for k := 0; k < n.outputCount; k++ {
			sum += n.deltaOutput[k] * n.hiddenOutput[j][k]
		}
		n.deltaHidden[j] = sum * n.act.Derivative(n.hidden[j])
	}

	lr := n.learningRate
	for k := 0; k < n.outputCount; k++ {
		n.outputThresholds[k] += lr * n.deltaOutput[k]
		for j := 0; j < n.hiddenCount; j++ {
			n.hiddenOutput[j][k] += lr * n.deltaOutput[k] * n.hidden[j]
		}
	}
	for j := 0; j < n.hiddenCount; j++ {
		n.hiddenThresholds[j] += lr * n.deltaHidden[j]
		for i := 0; i < n.inputCount; i++ {
			n.inputHidden[i][j] += lr * n.deltaHidden[j] * n.input[i]
		}
	}

	return nil
}
