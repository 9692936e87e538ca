// Package nn implements the learnable network modules of bpnet.
//
// This package provides:
//   - Module and Learnable: the forward-only and trainable module contracts
//   - Network: a fully connected input → hidden → output backpropagation network
//   - Compose: a forward-only chain of modules with matching arities
//   - Uniform: the weight initializer
//   - Save / Load: the persisted parameter record
//
// Modules are generic over the element type of their input, so the same
// network consumes raw 8-bit pixels or normalized reals.
package nn

import (
	"reflect"

	"github.com/bpnet-ml/bpnet/internal/serialization"
)

// Sample is the set of input element types a module accepts.
//
// Every element is converted to float64 before it is weighted.
type Sample interface {
	~uint8 | ~float32 | ~float64
}

// Module is the base interface for all network components.
//
// Modules can be composed when their arities chain:
//
//	pipeline, err := nn.NewCompose[uint8](encoder, classifier)
type Module[T Sample] interface {
	// InputCount is the required length of every Forward input.
	InputCount() int

	// OutputCount is the length of every Forward output.
	OutputCount() int

	// Forward computes the module output for one input vector.
	//
	// Returns ErrDimensionMismatch if len(input) != InputCount().
	Forward(input []T) ([]float64, error)
}

// Learnable is a Module whose parameters can be updated from a target.
type Learnable[T Sample] interface {
	Module[T]

	// Backward applies one gradient-descent step using the activations
	// cached by the immediately preceding Forward call.
	Backward(groundTruth []float64) error
}

// SampleType returns the persisted name of T's underlying element type.
func SampleType[T Sample]() string {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		return serialization.SampleUint8
	case reflect.Float32:
		return serialization.SampleFloat32
	default:
		return serialization.SampleFloat64
	}
}
