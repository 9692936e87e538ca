package nn

import (
	"fmt"
	"math"
	"math/rand"
)

// Default initialization range: small positive values, far from the
// saturated ends of the logistic function.
const (
	DefaultInitLower = 0.0
	DefaultInitUpper = 0.001
)

// Uniform draws every weight and threshold independently from U[Lower, Upper).
type Uniform struct {
	Lower float64
	Upper float64
}

// DefaultUniform returns the default initializer, U[0, 0.001).
func DefaultUniform() Uniform {
	return Uniform{Lower: DefaultInitLower, Upper: DefaultInitUpper}
}

// Validate reports an empty, inverted or non-finite range. The width
// Upper-Lower must be finite too, or every draw would be NaN or infinite.
func (u Uniform) Validate() error {
	for _, b := range []float64{u.Lower, u.Upper, u.Upper - u.Lower} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: init range [%v, %v) is not finite", ErrInvalidConfig, u.Lower, u.Upper)
		}
	}
	if !(u.Lower < u.Upper) {
		return fmt.Errorf("%w: init range [%v, %v) is empty", ErrInvalidConfig, u.Lower, u.Upper)
	}
	return nil
}

// Fill overwrites values with draws from rng.
func (u Uniform) Fill(rng *rand.Rand, values []float64) {
	width := u.Upper - u.Lower
	for i := range values {
		values[i] = u.Lower + rng.Float64()*width
	}
}

// FillMatrix overwrites every row of m.
func (u Uniform) FillMatrix(rng *rand.Rand, m [][]float64) {
	for _, row := range m {
		u.Fill(rng, row)
	}
}

// newRand returns an independently seeded generator.
//
// The seed comes from the process-wide source, so two networks built in the
// same process never share a seed.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // Weight initialization is not security-critical
}

// newMatrix allocates a rows×cols matrix backed by one slice.
func newMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}
