package main

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/bpnet-ml/bpnet/internal/activation"
	"github.com/bpnet-ml/bpnet/internal/console"
	"github.com/bpnet-ml/bpnet/internal/dataset"
	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/bpnet-ml/bpnet/internal/serialization"
	"github.com/bpnet-ml/bpnet/internal/train"
)

// syntheticNoise is the noise level of the generated stand-in dataset.
const syntheticNoise = 0.3

// runTrain trains a network on the train split, saves it and reports its
// accuracy on the test split.
func runTrain(cfg Config, out io.Writer) error {
	switch cfg.SampleType {
	case serialization.SampleUint8:
		return trainAs[uint8](cfg, out)
	case serialization.SampleFloat32:
		return trainAs[float32](cfg, out)
	default:
		return trainAs[float64](cfg, out)
	}
}

// runEval reloads a saved network and reports its accuracy on the test split.
// The sample type comes from the model file.
func runEval(cfg Config, out io.Writer) error {
	rec, err := serialization.ReadFile(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	switch rec.SampleType {
	case serialization.SampleUint8:
		return evalAs[uint8](cfg, rec, out)
	case serialization.SampleFloat32:
		return evalAs[float32](cfg, rec, out)
	default:
		return evalAs[float64](cfg, rec, out)
	}
}

func trainAs[T nn.Sample](cfg Config, out io.Writer) error {
	log := console.New(out, cfg.Color)
	rng := cfg.newRand()

	d, err := loadDataset[T](cfg, cfg.SampleLength, rng)
	if err != nil {
		return err
	}
	trainSet, testSet, err := dataset.Split[T](d, cfg.TrainPerSubject)
	if err != nil {
		return err
	}

	act, err := activation.Lookup(cfg.Activation)
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork[T](nn.Config{
		InputCount:   len(d.Item(0).Sample),
		HiddenCount:  cfg.Hidden,
		OutputCount:  d.SubjectCount(),
		LearningRate: cfg.LearningRate,
		Activation:   act,
		Init:         nn.Uniform{Lower: cfg.InitLower, Upper: cfg.InitUpper},
		Rand:         rng,
	})
	if err != nil {
		return err
	}

	log.Infof("Start training model with hidden %d neurons, learning rate %v", net.HiddenCount(), net.LearningRate())
	if _, err := train.New[T](net, train.Config{Log: log}).Fit(cfg.Epochs, trainSet); err != nil {
		return err
	}

	log.Info("Training finished. Saving model...")
	metadata := map[string]string{
		"epochs":            strconv.Itoa(cfg.Epochs),
		"train_per_subject": strconv.Itoa(cfg.TrainPerSubject),
		"synthetic":         strconv.FormatBool(cfg.Synthetic),
	}
	if cfg.Seed != 0 {
		metadata["seed"] = strconv.FormatInt(cfg.Seed, 10)
	}
	if err := net.Save(cfg.Model, metadata); err != nil {
		return err
	}
	log.Okf("Model saved to %s", cfg.Model)

	return evaluate[T](net, testSet, log)
}

func evalAs[T nn.Sample](cfg Config, rec *serialization.Record, out io.Writer) error {
	log := console.New(out, cfg.Color)

	net, err := nn.FromRecord[T](rec)
	if err != nil {
		return err
	}
	log.Infof("Loaded model %s (%d-%d-%d, %s)", rec.ModelID, net.InputCount(), net.HiddenCount(), net.OutputCount(), rec.Activation)

	d, err := loadDataset[T](cfg, net.InputCount(), cfg.newRand())
	if err != nil {
		return err
	}
	if d.SubjectCount() != net.OutputCount() {
		return fmt.Errorf("%w: dataset has %d subjects, model has %d outputs",
			nn.ErrDimensionMismatch, d.SubjectCount(), net.OutputCount())
	}
	_, testSet, err := dataset.Split[T](d, cfg.TrainPerSubject)
	if err != nil {
		return err
	}

	return evaluate[T](net, testSet, log)
}

func evaluate[T nn.Sample](model nn.Module[T], testSet []dataset.Item[T], log *console.Logger) error {
	if len(testSet) == 0 {
		log.Info("No test samples, skipping evaluation")
		return nil
	}

	log.Info("Start testing model accuracy...")
	ev, err := train.Evaluate(model, testSet, log)
	if err != nil {
		return err
	}
	log.Okf("Testing finished with model accuracy %v", ev.Accuracy)
	return nil
}

// loadDataset returns the Yale images from cfg.DataDir or, with
// cfg.Synthetic, a generated set of the same layout drawn from rng.
func loadDataset[T nn.Sample](cfg Config, sampleLength int, rng *rand.Rand) (dataset.Batched[T], error) {
	if cfg.Synthetic {
		if sampleLength < 0 {
			sampleLength = dataset.YaleSampleLength
		}
		return dataset.NewSynthetic[T](dataset.SyntheticConfig{
			Subjects:          dataset.YaleSubjects,
			SamplesPerSubject: dataset.YaleSamplesPerSubject,
			SampleLength:      sampleLength,
			Noise:             syntheticNoise,
		}, rng)
	}
	return dataset.LoadYale[T](cfg.DataDir, dataset.YaleConfig{SampleLength: sampleLength})
}
