package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bpnet-ml/bpnet/internal/activation"
	"github.com/bpnet-ml/bpnet/internal/loss"
	"github.com/bpnet-ml/bpnet/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRecord returns a 2-2-2 network record with hand-picked parameters.
func fixedRecord(sampleType string) *serialization.Record {
	return &serialization.Record{
		FormatVersion:       serialization.FormatVersion,
		ModelType:           serialization.ModelType,
		SampleType:          sampleType,
		InputCount:          2,
		HiddenCount:         2,
		OutputCount:         2,
		LearningRate:        0.5,
		Activation:          "sigmoid",
		InputHiddenWeights:  [][]float64{{0.15, 0.25}, {0.20, 0.30}},
		HiddenOutputWeights: [][]float64{{0.40, 0.50}, {0.45, 0.55}},
		HiddenThresholds:    []float64{0.35, 0.35},
		OutputThresholds:    []float64{0.60, 0.60},
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func newSeeded(t *testing.T, in, hidden, out int, seed int64) *Network[float64] {
	t.Helper()
	n, err := NewNetwork[float64](Config{
		InputCount:   in,
		HiddenCount:  hidden,
		OutputCount:  out,
		LearningRate: 0.3,
		Rand:         rand.New(rand.NewSource(seed)),
	})
	require.NoError(t, err)
	return n
}

func TestNewNetwork_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero inputs", cfg: Config{InputCount: 0, HiddenCount: 2, OutputCount: 2, LearningRate: 0.1}},
		{name: "negative hidden", cfg: Config{InputCount: 2, HiddenCount: -1, OutputCount: 2, LearningRate: 0.1}},
		{name: "zero outputs", cfg: Config{InputCount: 2, HiddenCount: 2, OutputCount: 0, LearningRate: 0.1}},
		{name: "zero learning rate", cfg: Config{InputCount: 2, HiddenCount: 2, OutputCount: 2}},
		{name: "NaN learning rate", cfg: Config{InputCount: 2, HiddenCount: 2, OutputCount: 2, LearningRate: math.NaN()}},
		{name: "inverted init range", cfg: Config{InputCount: 2, HiddenCount: 2, OutputCount: 2, LearningRate: 0.1, Init: Uniform{Lower: 1, Upper: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork[float64](tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewNetwork_Defaults(t *testing.T) {
	n := newSeeded(t, 3, 4, 5, 1)

	assert.Equal(t, 3, n.InputCount())
	assert.Equal(t, 4, n.HiddenCount())
	assert.Equal(t, 5, n.OutputCount())
	assert.Equal(t, 0.3, n.LearningRate())
	assert.Equal(t, activation.Sigmoid{}, n.Activation())
}

// TestForward_MatchesReference compares Forward with a hand-written computation.
func TestForward_MatchesReference(t *testing.T) {
	n, err := FromRecord[float64](fixedRecord(serialization.SampleFloat64))
	require.NoError(t, err)

	input := []float64{0.05, 0.10}
	h0 := sigmoid(0.05*0.15 + 0.10*0.20 + 0.35)
	h1 := sigmoid(0.05*0.25 + 0.10*0.30 + 0.35)
	o0 := sigmoid(h0*0.40 + h1*0.45 + 0.60)
	o1 := sigmoid(h0*0.50 + h1*0.55 + 0.60)

	out, err := n.Forward(input)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, o0, out[0], 1e-12)
	assert.InDelta(t, o1, out[1], 1e-12)
}

// TestBackward_MatchesReference checks every parameter after one update.
func TestBackward_MatchesReference(t *testing.T) {
	n, err := FromRecord[float64](fixedRecord(serialization.SampleFloat64))
	require.NoError(t, err)

	input := []float64{0.05, 0.10}
	target := []float64{0.01, 0.99}
	lr := 0.5
	w1 := [][]float64{{0.15, 0.25}, {0.20, 0.30}}
	w2 := [][]float64{{0.40, 0.50}, {0.45, 0.55}}

	h := []float64{
		sigmoid(input[0]*w1[0][0] + input[1]*w1[1][0] + 0.35),
		sigmoid(input[0]*w1[0][1] + input[1]*w1[1][1] + 0.35),
	}
	o := []float64{
		sigmoid(h[0]*w2[0][0] + h[1]*w2[1][0] + 0.60),
		sigmoid(h[0]*w2[0][1] + h[1]*w2[1][1] + 0.60),
	}
	dOut := []float64{
		(target[0] - o[0]) * o[0] * (1 - o[0]),
		(target[1] - o[1]) * o[1] * (1 - o[1]),
	}
	// Hidden error uses the weights before the output layer update.
	dHid := []float64{
		(dOut[0]*w2[0][0] + dOut[1]*w2[0][1]) * h[0] * (1 - h[0]),
		(dOut[0]*w2[1][0] + dOut[1]*w2[1][1]) * h[1] * (1 - h[1]),
	}

	_, err = n.Forward(input)
	require.NoError(t, err)
	require.NoError(t, n.Backward(target))

	rec := n.Record()
	for k := 0; k < 2; k++ {
		assert.InDelta(t, 0.60+lr*dOut[k], rec.OutputThresholds[k], 1e-12, "output threshold %d", k)
		for j := 0; j < 2; j++ {
			assert.InDelta(t, w2[j][k]+lr*dOut[k]*h[j], rec.HiddenOutputWeights[j][k], 1e-12, "w2[%d][%d]", j, k)
		}
	}
	for j := 0; j < 2; j++ {
		assert.InDelta(t, 0.35+lr*dHid[j], rec.HiddenThresholds[j], 1e-12, "hidden threshold %d", j)
		for i := 0; i < 2; i++ {
			assert.InDelta(t, w1[i][j]+lr*dHid[j]*input[i], rec.InputHiddenWeights[i][j], 1e-12, "w1[%d][%d]", i, j)
		}
	}
}

// TestForward_OutputLengthAndRange checks length and (0,1) range on random networks.
func TestForward_OutputLengthAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, dims := range [][3]int{{1, 1, 1}, {4, 3, 2}, {16, 8, 15}, {64, 2, 10}} {
		n, err := NewNetwork[float64](Config{
			InputCount:   dims[0],
			HiddenCount:  dims[1],
			OutputCount:  dims[2],
			LearningRate: 0.3,
			Init:         Uniform{Lower: -1, Upper: 1},
			Rand:         rng,
		})
		require.NoError(t, err)

		input := make([]float64, dims[0])
		for i := range input {
			input[i] = rng.Float64()*4 - 2
		}

		out, err := n.Forward(input)
		require.NoError(t, err)
		require.Len(t, out, dims[2])
		for k, v := range out {
			assert.Greater(t, v, 0.0, "dims %v output %d", dims, k)
			assert.Less(t, v, 1.0, "dims %v output %d", dims, k)
		}
	}
}

// TestForward_Deterministic verifies accumulators are reset between calls.
func TestForward_Deterministic(t *testing.T) {
	n := newSeeded(t, 5, 4, 3, 11)
	input := []float64{0.1, 0.9, 0.3, 0.0, 1.0}

	first, err := n.Forward(input)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := n.Forward(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestForward_ReturnsCopy ensures callers cannot corrupt the cached output.
func TestForward_ReturnsCopy(t *testing.T) {
	a := newSeeded(t, 2, 2, 2, 3)
	b := newSeeded(t, 2, 2, 2, 3)
	input := []float64{0.5, 0.8}
	target := []float64{1, 0}

	outA, err := a.Forward(input)
	require.NoError(t, err)
	_, err = b.Forward(input)
	require.NoError(t, err)

	outA[0], outA[1] = 42, -42
	require.NoError(t, a.Backward(target))
	require.NoError(t, b.Backward(target))

	assert.Equal(t, b.Record().HiddenOutputWeights, a.Record().HiddenOutputWeights)
}

func TestForward_DimensionMismatch(t *testing.T) {
	n := newSeeded(t, 3, 2, 2, 1)

	for _, input := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3, 4}} {
		_, err := n.Forward(input)
		assert.ErrorIs(t, err, ErrDimensionMismatch, "len %d", len(input))
	}
}

func TestBackward_Errors(t *testing.T) {
	n := newSeeded(t, 2, 2, 2, 1)

	assert.ErrorIs(t, n.Backward([]float64{1, 0}), ErrNoForward)

	_, err := n.Forward([]float64{0.5, 0.8})
	require.NoError(t, err)
	assert.ErrorIs(t, n.Backward([]float64{1}), ErrDimensionMismatch)
	assert.ErrorIs(t, n.Backward([]float64{1, 0, 0}), ErrDimensionMismatch)

	// A failed Backward leaves the parameters untouched.
	before := n.Record()
	assert.ErrorIs(t, n.Backward(nil), ErrDimensionMismatch)
	assert.Equal(t, before, n.Record())
}

// TestBackward_ReducesLoss checks the single-step improvement property.
func TestBackward_ReducesLoss(t *testing.T) {
	mse := loss.MeanSquareError{}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		n, err := NewNetwork[float64](Config{
			InputCount:   6,
			HiddenCount:  4,
			OutputCount:  3,
			LearningRate: 0.3,
			Init:         Uniform{Lower: -0.5, Upper: 0.5},
			Rand:         rng,
		})
		require.NoError(t, err)

		input := make([]float64, 6)
		for i := range input {
			input[i] = rng.Float64()
		}
		target := make([]float64, 3)
		target[rng.Intn(3)] = 1

		before, err := n.Forward(input)
		require.NoError(t, err)
		require.NoError(t, n.Backward(target))
		after, err := n.Forward(input)
		require.NoError(t, err)

		assert.Less(t, mse.Loss(target, after), mse.Loss(target, before), "seed %d", seed)
	}
}

// TestBackward_MovesOutputsTowardTarget is the 2-2-2 end-to-end scenario.
func TestBackward_MovesOutputsTowardTarget(t *testing.T) {
	n := newSeeded(t, 2, 2, 2, 2024)
	input := []float64{0.5, 0.8}
	target := []float64{1.0, 0.0}

	before, err := n.Forward(input)
	require.NoError(t, err)
	require.NoError(t, n.Backward(target))
	after, err := n.Forward(input)
	require.NoError(t, err)

	for k := range target {
		assert.Less(t, math.Abs(target[k]-after[k]), math.Abs(target[k]-before[k]), "output %d", k)
	}
	assert.Greater(t, after[0], before[0])
	assert.Less(t, after[1], before[1])
}

// TestNetwork_ByteAndRealInputsAgree feeds the same values as uint8 and float64.
func TestNetwork_ByteAndRealInputsAgree(t *testing.T) {
	byteNet, err := FromRecord[uint8](fixedRecord(serialization.SampleUint8))
	require.NoError(t, err)
	realNet, err := FromRecord[float64](fixedRecord(serialization.SampleFloat64))
	require.NoError(t, err)

	outB, err := byteNet.Forward([]uint8{3, 1})
	require.NoError(t, err)
	outR, err := realNet.Forward([]float64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, outR, outB)

	require.NoError(t, byteNet.Backward([]float64{0, 1}))
	require.NoError(t, realNet.Backward([]float64{0, 1}))
	assert.Equal(t, realNet.Record().InputHiddenWeights, byteNet.Record().InputHiddenWeights)
}

// TestNetwork_Tanh trains with a non-default activation.
func TestNetwork_Tanh(t *testing.T) {
	n, err := NewNetwork[float32](Config{
		InputCount:   2,
		HiddenCount:  3,
		OutputCount:  1,
		LearningRate: 0.1,
		Activation:   activation.Tanh{},
		Init:         Uniform{Lower: -0.5, Upper: 0.5},
		Rand:         rand.New(rand.NewSource(5)),
	})
	require.NoError(t, err)

	input := []float32{0.25, -0.75}
	target := []float64{0.5}
	mse := loss.MeanSquareError{}

	before, err := n.Forward(input)
	require.NoError(t, err)
	require.NoError(t, n.Backward(target))
	after, err := n.Forward(input)
	require.NoError(t, err)

	assert.Less(t, mse.Loss(target, after), mse.Loss(target, before))
	assert.Equal(t, "float32", n.Record().SampleType)
}

// TestNetwork_ImplementsLearnable is a compile-time style check.
func TestNetwork_ImplementsLearnable(t *testing.T) {
	var m Learnable[uint8] = newByteNetwork(t)
	assert.Equal(t, 2, m.InputCount())
}

func newByteNetwork(t *testing.T) *Network[uint8] {
	t.Helper()
	n, err := FromRecord[uint8](fixedRecord(serialization.SampleUint8))
	require.NoError(t, err)
	return n
}
