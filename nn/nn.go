// Copyright 2026 BPNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"
	"math/rand"

	"github.com/bpnet-ml/bpnet/internal/activation"
	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/bpnet-ml/bpnet/internal/serialization"
)

// Sample is the set of supported input element types.
type Sample = nn.Sample

// Module is a mapping from an input vector to outputs.
type Module[T Sample] = nn.Module[T]

// Learnable is a Module that can take a gradient step after Forward.
type Learnable[T Sample] = nn.Learnable[T]

// Network is the two-layer backpropagation network.
type Network[T Sample] = nn.Network[T]

// Config describes a Network.
type Config = nn.Config

// NewNetwork creates a network with uniformly initialized parameters.
//
// Example:
//
//	net, err := nn.NewNetwork[uint8](nn.Config{
//	    InputCount:   8000,
//	    HiddenCount:  64,
//	    OutputCount:  15,
//	    LearningRate: 0.3,
//	    Rand:         rand.New(rand.NewSource(1)),
//	})
func NewNetwork[T Sample](cfg Config) (*Network[T], error) {
	return nn.NewNetwork[T](cfg)
}

// Compose chains modules so each one's output feeds the next.
type Compose[T Sample] = nn.Compose[T]

// NewCompose creates a composition of at least two modules.
func NewCompose[T Sample](first Module[T], rest ...Module[float64]) (*Compose[T], error) {
	return nn.NewCompose(first, rest...)
}

// Initialization

// Uniform draws parameters from U[Lower, Upper).
type Uniform = nn.Uniform

// DefaultUniform returns the [0, 0.001) initializer.
func DefaultUniform() Uniform {
	return nn.DefaultUniform()
}

// NewRand returns a generator for Config.Rand seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // G404: weight init does not need crypto randomness
}

// Activations

// Activation is an elementwise nonlinearity with its derivative.
type Activation = activation.Function

// Sigmoid is the logistic function.
type Sigmoid = activation.Sigmoid

// Tanh is the hyperbolic tangent.
type Tanh = activation.Tanh

// LookupActivation returns the activation registered under name.
func LookupActivation(name string) (Activation, error) {
	return activation.Lookup(name)
}

// Persistence

// Record is the persisted form of a Network.
type Record = serialization.Record

// Load reads a network saved with Network.Save.
func Load[T Sample](path string) (*Network[T], *Record, error) {
	return nn.Load[T](path)
}

// Decode reads a network written with Network.Encode.
func Decode[T Sample](r io.Reader) (*Network[T], *Record, error) {
	return nn.Decode[T](r)
}

// FromRecord rebuilds a network from a decoded record.
func FromRecord[T Sample](rec *Record) (*Network[T], error) {
	return nn.FromRecord[T](rec)
}

// Errors

var (
	// ErrDimensionMismatch is returned for an input or target of the wrong length.
	ErrDimensionMismatch = nn.ErrDimensionMismatch

	// ErrNoForward is returned by Backward when no Forward preceded it.
	ErrNoForward = nn.ErrNoForward

	// ErrInvalidConfig is returned for an unusable Config.
	ErrInvalidConfig = nn.ErrInvalidConfig

	// ErrArityMismatch is returned by NewCompose for incompatible neighbours.
	ErrArityMismatch = nn.ErrArityMismatch

	// ErrTooFewModules is returned by NewCompose for fewer than two modules.
	ErrTooFewModules = nn.ErrTooFewModules

	// ErrSampleTypeMismatch is returned when loading a record of another sample type.
	ErrSampleTypeMismatch = nn.ErrSampleTypeMismatch
)
