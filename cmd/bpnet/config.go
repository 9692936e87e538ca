package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/bpnet-ml/bpnet/internal/activation"
	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/bpnet-ml/bpnet/internal/serialization"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the train and eval commands.
// It can be loaded from a YAML file; command line flags take precedence.
type Config struct {
	DataDir         string  `yaml:"data_dir"`
	Synthetic       bool    `yaml:"synthetic"`
	Epochs          int     `yaml:"epochs"`
	LearningRate    float64 `yaml:"learning_rate"`
	Hidden          int     `yaml:"hidden"`
	TrainPerSubject int     `yaml:"train_per_subject"`
	SampleLength    int     `yaml:"sample_length"`
	SampleType      string  `yaml:"sample_type"`
	Seed            int64   `yaml:"seed"`
	InitLower       float64 `yaml:"init_lower"`
	InitUpper       float64 `yaml:"init_upper"`
	Activation      string  `yaml:"activation"`
	Model           string  `yaml:"model"`
	Color           bool    `yaml:"color"`
}

// DefaultConfig returns the settings of the reference Yale run.
func DefaultConfig() Config {
	return Config{
		DataDir:         "./data",
		Epochs:          7,
		LearningRate:    0.3,
		Hidden:          64,
		TrainPerSubject: 5,
		SampleLength:    8000,
		SampleType:      serialization.SampleFloat64,
		InitLower:       nn.DefaultInitLower,
		InitUpper:       nn.DefaultInitUpper,
		Activation:      activation.Sigmoid{}.Name(),
		Model:           "BP.json",
		Color:           true,
	}
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	var errs []error
	if c.Epochs < 0 {
		errs = append(errs, fmt.Errorf("epochs must be non-negative, got %d", c.Epochs))
	}
	if !(c.LearningRate > 0) {
		errs = append(errs, fmt.Errorf("learning rate must be positive, got %v", c.LearningRate))
	}
	if c.Hidden <= 0 {
		errs = append(errs, fmt.Errorf("hidden units must be positive, got %d", c.Hidden))
	}
	if c.TrainPerSubject < 0 {
		errs = append(errs, fmt.Errorf("train samples per subject must be non-negative, got %d", c.TrainPerSubject))
	}
	if c.SampleLength == 0 {
		errs = append(errs, errors.New("sample length must not be zero"))
	}
	switch c.SampleType {
	case serialization.SampleUint8, serialization.SampleFloat32, serialization.SampleFloat64:
	default:
		errs = append(errs, fmt.Errorf("unknown sample type %q", c.SampleType))
	}
	if err := (nn.Uniform{Lower: c.InitLower, Upper: c.InitUpper}).Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := activation.Lookup(c.Activation); err != nil {
		errs = append(errs, err)
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model path must not be empty"))
	}
	return errors.Join(errs...)
}

// newRand returns a generator seeded with Seed, or a randomly seeded one for 0.
func (c Config) newRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Int63() //nolint:gosec // G404: weight init does not need crypto randomness
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // G404: weight init does not need crypto randomness
}

// bindFlags registers one flag per Config field on fs.
func bindFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.DataDir, "data", c.DataDir, "Directory containing subjectNN_M.bmp images")
	fs.BoolVar(&c.Synthetic, "synthetic", c.Synthetic, "Use generated data instead of image files")
	fs.IntVar(&c.Epochs, "epochs", c.Epochs, "Number of training epochs")
	fs.Float64Var(&c.LearningRate, "lr", c.LearningRate, "Learning rate")
	fs.IntVar(&c.Hidden, "hidden", c.Hidden, "Number of hidden units")
	fs.IntVar(&c.TrainPerSubject, "train-per-subject", c.TrainPerSubject, "Samples per subject used for training")
	fs.IntVar(&c.SampleLength, "sample-length", c.SampleLength, "Pixels per sample (-1 = whole image)")
	fs.StringVar(&c.SampleType, "sample-type", c.SampleType, "Input sample type: uint8, float32 or float64")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = random)")
	fs.Float64Var(&c.InitLower, "init-lower", c.InitLower, "Lower bound of the uniform weight init")
	fs.Float64Var(&c.InitUpper, "init-upper", c.InitUpper, "Upper bound of the uniform weight init")
	fs.StringVar(&c.Activation, "activation", c.Activation, "Activation function name")
	fs.StringVar(&c.Model, "model", c.Model, "Model file path")
	fs.BoolVar(&c.Color, "color", c.Color, "Colour status tags")
}

// parseConfig parses args into a Config. When -config names a YAML file its
// values replace the defaults and flags given in args are applied on top.
func parseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	var path string
	fs.StringVar(&path, "config", "", "YAML config file")
	bindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
		// Parse again so explicit flags win over the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadConfigFile decodes the YAML file at path into c. Keys absent from the
// file leave c unchanged.
func loadConfigFile(path string, c *Config) error {
	//nolint:gosec // G304: path is supplied by the user on purpose
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}
