// Package activation implements the scalar nonlinearities used by the
// network's hidden and output layers.
//
// Every Function is stateless and may be shared by any number of networks
// and goroutines.
package activation

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknown is returned by Lookup for a name no Function is registered under.
var ErrUnknown = errors.New("unknown activation function")

// Function is an element-wise activation.
//
// Derivative is expressed in terms of the already-activated value y = Activate(x),
// not the pre-activation input. Passing the raw input gives wrong gradients.
type Function interface {
	// Name identifies the function in persisted models.
	Name() string

	// Activate applies the function to a weighted sum.
	Activate(x float64) float64

	// Derivative returns f'(x) given y = f(x).
	Derivative(y float64) float64
}

// Sigmoid is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// Its values lie in (0, 1) and its derivative is y·(1−y). In float64 the
// open range holds for x in [-709, 36]; beyond that the result rounds to
// exactly 1 (x ≥ 37) or 0 (x ≤ -710, where exp(-x) overflows), and the
// derivative there is 0.
type Sigmoid struct{}

// Name implements Function.
func (Sigmoid) Name() string { return "sigmoid" }

// Activate implements Function.
func (Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative implements Function.
func (Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// Tanh is the hyperbolic tangent. Values lie in (-1, 1), derivative 1−y².
type Tanh struct{}

// Name implements Function.
func (Tanh) Name() string { return "tanh" }

// Activate implements Function.
func (Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative implements Function.
func (Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

var registry = map[string]Function{
	Sigmoid{}.Name(): Sigmoid{},
	Tanh{}.Name():    Tanh{},
}

// Lookup returns the Function registered under name.
func Lookup(name string) (Function, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknown, name, Names())
	}
	return f, nil
}

// Names returns the registered function names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
