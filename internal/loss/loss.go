// Package loss implements scoring functions for network outputs.
//
// Losses here are observational: the network derives its mean-square-error
// gradients analytically and never calls them during training.
package loss

import "fmt"

// Function measures the distance between a ground truth and an output vector.
type Function interface {
	// Loss panics if the two vectors differ in length.
	Loss(groundTruth, output []float64) float64
}

// MeanSquareError computes Σ ½(groundTruth[i] − output[i])².
//
// Example:
//
//	mse := loss.MeanSquareError{}
//	l := mse.Loss([]float64{1, 0}, output)
type MeanSquareError struct{}

// Loss implements Function.
func (MeanSquareError) Loss(groundTruth, output []float64) float64 {
	if len(groundTruth) != len(output) {
		panic(fmt.Sprintf("MeanSquareError: ground truth has %d values, output has %d", len(groundTruth), len(output)))
	}

	var sum float64
	for i := range groundTruth {
		d := groundTruth[i] - output[i]
		sum += 0.5 * d * d
	}
	return sum
}
