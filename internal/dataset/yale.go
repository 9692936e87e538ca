package dataset

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/bpnet-ml/bpnet/internal/bitmap"
	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/bpnet-ml/bpnet/internal/parallel"
	"github.com/pkg/errors"
)

// ErrSampleTooShort is returned when an image holds fewer pixel bytes than
// the configured sample length.
var ErrSampleTooShort = errors.New("image shorter than sample length")

// Yale face database defaults: 15 subjects, 11 images each, 100×80 8-bit
// grayscale. The stored rows carry 2 trailing padding bytes, dropped by
// SampleLength.
const (
	YaleSubjects          = 15
	YaleSamplesPerSubject = 11
	YaleSampleLength      = 8000
	YalePattern           = "subject%02d_%d.bmp"
)

// YaleConfig describes the on-disk layout of a Yale-style face set.
//
// Zero fields take the Yale defaults.
type YaleConfig struct {
	Subjects          int
	SamplesPerSubject int

	// Pattern formats a file name from the 1-based subject and sample.
	Pattern string

	// SampleLength trims every image to its first SampleLength pixel bytes.
	// Negative keeps the full pixel data.
	SampleLength int

	// Parallel bounds the goroutines decoding images. The zero value uses
	// parallel.DefaultConfig.
	Parallel parallel.Config
}

func (c YaleConfig) withDefaults() YaleConfig {
	if c.Subjects == 0 {
		c.Subjects = YaleSubjects
	}
	if c.SamplesPerSubject == 0 {
		c.SamplesPerSubject = YaleSamplesPerSubject
	}
	if c.Pattern == "" {
		c.Pattern = YalePattern
	}
	if c.SampleLength == 0 {
		c.SampleLength = YaleSampleLength
	}
	if c.Parallel == (parallel.Config{}) {
		c.Parallel = parallel.DefaultConfig()
	}
	return c
}

// Yale is a face image set loaded from BMP files.
type Yale[T nn.Sample] struct {
	grid[T]
	dir string
}

// LoadYale reads every image of a Yale-style set from dir, decoding images
// concurrently.
//
// uint8 samples are the raw pixel bytes; floating samples are normalized to
// [0, 1]. A missing image fails with an error matching bitmap.ErrNotFound.
func LoadYale[T nn.Sample](dir string, cfg YaleConfig) (*Yale[T], error) {
	cfg = cfg.withDefaults()
	if cfg.Subjects < 0 || cfg.SamplesPerSubject < 0 {
		return nil, errors.Errorf("dataset: invalid layout %dx%d", cfg.Subjects, cfg.SamplesPerSubject)
	}

	y := &Yale[T]{
		grid: grid[T]{
			subjects:   cfg.Subjects,
			perSubject: cfg.SamplesPerSubject,
			samples:    make([][]T, cfg.Subjects*cfg.SamplesPerSubject),
		},
		dir: dir,
	}

	err := parallel.ForGrid(cfg.Subjects, cfg.SamplesPerSubject, cfg.Parallel, func(s, i int) error {
		path := filepath.Join(dir, fmt.Sprintf(cfg.Pattern, s+1, i+1))
		img, err := bitmap.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "loading subject %d sample %d", s+1, i+1)
		}

		data := img.Data
		if cfg.SampleLength > 0 {
			if len(data) < cfg.SampleLength {
				return errors.Wrapf(ErrSampleTooShort, "%s: %d pixel bytes, need %d", path, len(data), cfg.SampleLength)
			}
			data = data[:cfg.SampleLength]
		}
		y.samples[s*cfg.SamplesPerSubject+i] = Pixels[T](data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return y, nil
}

// Dir returns the directory the images were read from.
func (y *Yale[T]) Dir() string {
	return y.dir
}

// Pixels converts pixel bytes to samples of type T.
//
// Integer types keep the byte value; floating types are scaled to [0, 1].
func Pixels[T nn.Sample](data []byte) []T {
	out := make([]T, len(data))
	if reflect.TypeFor[T]().Kind() == reflect.Uint8 {
		for i, v := range data {
			out[i] = T(v)
		}
		return out
	}
	for i, v := range data {
		out[i] = T(float64(v) / 255.0)
	}
	return out
}
