// Package train drives epochs of per-sample backpropagation over a labelled
// dataset and evaluates classification accuracy.
//
// Targets are one-hot encodings of the item label; predictions are the
// arg-max of the network output.
package train

import (
	"errors"
	"fmt"

	"github.com/bpnet-ml/bpnet/internal/console"
	"github.com/bpnet-ml/bpnet/internal/dataset"
	"github.com/bpnet-ml/bpnet/internal/loss"
	"github.com/bpnet-ml/bpnet/internal/nn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLabelOutOfRange is returned for a label with no matching output unit.
var ErrLabelOutOfRange = errors.New("label out of range")

// Config configures a Trainer. Nil fields select MeanSquareError and a
// discarding logger.
type Config struct {
	Loss loss.Function
	Log  *console.Logger
}

// EpochResult summarises one pass over the training set.
type EpochResult struct {
	Epoch    int
	Correct  int
	Total    int
	Accuracy float64 // Correct / Total, measured before each update
	MeanLoss float64 // mean loss of the pre-update outputs
}

// Trainer runs Forward then Backward on a learnable module for every item.
type Trainer[T nn.Sample] struct {
	model nn.Learnable[T]
	loss  loss.Function
	log   *console.Logger
}

// New returns a Trainer for model.
func New[T nn.Sample](model nn.Learnable[T], cfg Config) *Trainer[T] {
	if cfg.Loss == nil {
		cfg.Loss = loss.MeanSquareError{}
	}
	if cfg.Log == nil {
		cfg.Log = console.Discard()
	}
	return &Trainer[T]{model: model, loss: cfg.Loss, log: cfg.Log}
}

// Epoch trains on items once, in order.
func (t *Trainer[T]) Epoch(epoch int, items []dataset.Item[T]) (EpochResult, error) {
	classes := t.model.OutputCount()
	res := EpochResult{Epoch: epoch, Total: len(items)}
	losses := make([]float64, 0, len(items))

	for i, item := range items {
		target, err := OneHot(item.Label, classes)
		if err != nil {
			return res, fmt.Errorf("item %d: %w", i, err)
		}

		output, err := t.model.Forward(item.Sample)
		if err != nil {
			return res, fmt.Errorf("item %d: %w", i, err)
		}
		if ArgMax(output) == item.Label {
			res.Correct++
		}
		losses = append(losses, t.loss.Loss(target, output))

		if err := t.model.Backward(target); err != nil {
			return res, fmt.Errorf("item %d: %w", i, err)
		}
	}

	res.Accuracy = ratio(res.Correct, res.Total)
	if len(losses) > 0 {
		res.MeanLoss = stat.Mean(losses, nil)
	}
	return res, nil
}

// Fit runs epochs passes over items and logs each result.
func (t *Trainer[T]) Fit(epochs int, items []dataset.Item[T]) ([]EpochResult, error) {
	results := make([]EpochResult, 0, epochs)
	for e := 0; e < epochs; e++ {
		res, err := t.Epoch(e, items)
		if err != nil {
			return results, fmt.Errorf("epoch %d: %w", e, err)
		}
		t.log.Okf("Epoch %d training finished with accuracy %v (mean loss %.6f)", e, res.Accuracy, res.MeanLoss)
		results = append(results, res)
	}
	return results, nil
}

// Evaluation is the outcome of classifying a test set.
type Evaluation struct {
	Correct     int
	Total       int
	Accuracy    float64
	Predictions []int // arg-max per item, in item order
}

// Evaluate classifies every item with model and logs a Match or Mismatch
// line per case. Only Forward is called.
func Evaluate[T nn.Sample](model nn.Module[T], items []dataset.Item[T], log *console.Logger) (Evaluation, error) {
	if log == nil {
		log = console.Discard()
	}

	ev := Evaluation{Total: len(items), Predictions: make([]int, 0, len(items))}
	for i, item := range items {
		output, err := model.Forward(item.Sample)
		if err != nil {
			return ev, fmt.Errorf("item %d: %w", i, err)
		}

		got := ArgMax(output)
		ev.Predictions = append(ev.Predictions, got)
		if got == item.Label {
			ev.Correct++
			log.Matchf("Expected %d, got %d", item.Label, got)
		} else {
			log.Mismatchf("Expected %d, got %d", item.Label, got)
		}
	}

	ev.Accuracy = ratio(ev.Correct, ev.Total)
	return ev, nil
}

// ArgMax returns the index of the largest output, the first on ties.
// It panics on an empty slice.
func ArgMax(output []float64) int {
	return floats.MaxIdx(output)
}

// OneHot returns a vector of length categories with 1 at label.
func OneHot(label, categories int) ([]float64, error) {
	if label < 0 || label >= categories {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabelOutOfRange, label, categories)
	}
	v := make([]float64, categories)
	v[label] = 1
	return v, nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
