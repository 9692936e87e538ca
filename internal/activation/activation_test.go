package activation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSigmoid_Values checks known points of the logistic function.
func TestSigmoid_Values(t *testing.T) {
	s := Sigmoid{}

	assert.InDelta(t, 0.5, s.Activate(0), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), s.Activate(2), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(3)), s.Activate(-3), 1e-12)
}

// TestSigmoid_Range verifies outputs stay inside (0, 1) for x in [-709, 36].
func TestSigmoid_Range(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{-709, -300, -30, -5, -1, -1e-9, 0, 1e-9, 1, 5, 30, 36} {
		y := s.Activate(x)
		assert.Greater(t, y, 0.0, "x=%v", x)
		assert.Less(t, y, 1.0, "x=%v", x)
	}
}

// TestSigmoid_Saturation pins the closed-range values past the float64 limits.
func TestSigmoid_Saturation(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{37, 100, 1e6, math.Inf(1)} {
		assert.Equal(t, 1.0, s.Activate(x), "x=%v", x)
	}
	for _, x := range []float64{-710, -1e6, math.Inf(-1)} {
		assert.Equal(t, 0.0, s.Activate(x), "x=%v", x)
	}
	assert.Equal(t, 0.0, s.Derivative(1))
	assert.Equal(t, 0.0, s.Derivative(0))
}

// TestSigmoid_DerivativeUsesActivatedValue compares y(1-y) with a numeric derivative.
func TestSigmoid_DerivativeUsesActivatedValue(t *testing.T) {
	s := Sigmoid{}
	const h = 1e-6

	for _, x := range []float64{-2, -0.5, 0, 0.7, 3} {
		numeric := (s.Activate(x+h) - s.Activate(x-h)) / (2 * h)
		assert.InDelta(t, numeric, s.Derivative(s.Activate(x)), 1e-6, "x=%v", x)
	}
	assert.InDelta(t, 0.25, s.Derivative(0.5), 1e-12)
}

// TestTanh_Derivative compares 1-y² with a numeric derivative.
func TestTanh_Derivative(t *testing.T) {
	f := Tanh{}
	const h = 1e-6

	for _, x := range []float64{-1.5, 0, 0.3, 2} {
		numeric := (f.Activate(x+h) - f.Activate(x-h)) / (2 * h)
		assert.InDelta(t, numeric, f.Derivative(f.Activate(x)), 1e-6, "x=%v", x)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    Function
		wantErr bool
	}{
		{name: "sigmoid", want: Sigmoid{}},
		{name: "tanh", want: Tanh{}},
		{name: "relu", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Lookup(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.name, f.Name())
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"sigmoid", "tanh"}, Names())
}
