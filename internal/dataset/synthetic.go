package dataset

import (
	"math"
	"math/rand"
	"reflect"

	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SyntheticConfig describes a generated dataset.
type SyntheticConfig struct {
	Subjects          int
	SamplesPerSubject int
	SampleLength      int

	// Noise in [0, 1] is the weight of per-sample random pixels mixed into
	// each subject's prototype.
	Noise float64
}

// Synthetic is a generated Batched dataset for running the pipeline without
// image files. Every subject has a random prototype image; its samples are
// noisy copies of it.
type Synthetic[T nn.Sample] struct {
	grid[T]
}

// NewSynthetic generates a dataset from rng.
func NewSynthetic[T nn.Sample](cfg SyntheticConfig, rng *rand.Rand) (*Synthetic[T], error) {
	if cfg.Subjects <= 0 || cfg.SamplesPerSubject <= 0 || cfg.SampleLength <= 0 {
		return nil, errors.Errorf("dataset: invalid synthetic layout %dx%d of length %d",
			cfg.Subjects, cfg.SamplesPerSubject, cfg.SampleLength)
	}
	if cfg.Noise < 0 || cfg.Noise > 1 || math.IsNaN(cfg.Noise) {
		return nil, errors.Errorf("dataset: synthetic noise %v outside [0, 1]", cfg.Noise)
	}

	d := &Synthetic[T]{grid: grid[T]{
		subjects:   cfg.Subjects,
		perSubject: cfg.SamplesPerSubject,
		samples:    make([][]T, cfg.Subjects*cfg.SamplesPerSubject),
	}}

	prototype := make([]float64, cfg.SampleLength)
	noise := make([]float64, cfg.SampleLength)
	pixels := make([]float64, cfg.SampleLength)
	for s := 0; s < cfg.Subjects; s++ {
		for i := range prototype {
			prototype[i] = rng.Float64()
		}
		for j := 0; j < cfg.SamplesPerSubject; j++ {
			for i := range noise {
				noise[i] = rng.Float64()
			}
			// pixels = (1-noise)·prototype + noise·random
			floats.ScaleTo(pixels, 1-cfg.Noise, prototype)
			floats.AddScaled(pixels, cfg.Noise, noise)
			d.samples[s*cfg.SamplesPerSubject+j] = fromUnit[T](pixels)
		}
	}

	return d, nil
}

// fromUnit converts [0, 1] intensities to T, rounding to 0..255 for bytes.
func fromUnit[T nn.Sample](values []float64) []T {
	out := make([]T, len(values))
	if reflect.TypeFor[T]().Kind() == reflect.Uint8 {
		for i, v := range values {
			out[i] = T(math.Round(v * 255))
		}
		return out
	}
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
