package nn

import "fmt"

// Compose is a forward-only container that chains modules together.
//
// The first module consumes the pipeline input; every following module
// consumes the previous module's real-valued output:
//
//	pipeline, err := nn.NewCompose[uint8](encoder, classifier)
//	out, err := pipeline.Forward(pixels)
//
// is equivalent to
//
//	h, err := encoder.Forward(pixels)
//	out, err := classifier.Forward(h)
//
// Compose does not own its modules; the same module may appear in several
// pipelines. It has no Backward: train the member modules directly.
type Compose[T Sample] struct {
	first Module[T]
	rest  []Module[float64]
}

// NewCompose creates a pipeline of at least two modules.
//
// Returns ErrTooFewModules when rest is empty and ErrArityMismatch when a
// module's OutputCount differs from the next module's InputCount.
func NewCompose[T Sample](first Module[T], rest ...Module[float64]) (*Compose[T], error) {
	if first == nil || len(rest) == 0 {
		return nil, ErrTooFewModules
	}

	prev := first.OutputCount()
	for i, m := range rest {
		if m == nil {
			return nil, fmt.Errorf("%w: module %d is nil", ErrArityMismatch, i+1)
		}
		if m.InputCount() != prev {
			return nil, fmt.Errorf("%w: module %d outputs %d values, module %d expects %d",
				ErrArityMismatch, i, prev, i+1, m.InputCount())
		}
		prev = m.OutputCount()
	}

	return &Compose[T]{
		first: first,
		rest:  append([]Module[float64](nil), rest...),
	}, nil
}

// InputCount returns the first module's input count.
func (c *Compose[T]) InputCount() int {
	return c.first.InputCount()
}

// OutputCount returns the last module's output count.
func (c *Compose[T]) OutputCount() int {
	return c.rest[len(c.rest)-1].OutputCount()
}

// Forward applies all modules in sequence and returns the last output.
func (c *Compose[T]) Forward(input []T) ([]float64, error) {
	output, err := c.first.Forward(input)
	if err != nil {
		return nil, fmt.Errorf("module 0: %w", err)
	}

	for i, m := range c.rest {
		output, err = m.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i+1, err)
		}
	}

	return output, nil
}

// Len returns the number of modules in the pipeline.
func (c *Compose[T]) Len() int {
	return 1 + len(c.rest)
}

// Module returns the module at index i > 0. The first module has a
// different input type; use First.
//
// Panics if index is out of bounds.
func (c *Compose[T]) Module(i int) Module[float64] {
	if i < 1 || i > len(c.rest) {
		panic("Compose.Module: index out of bounds")
	}
	return c.rest[i-1]
}

// First returns the module consuming the pipeline input.
func (c *Compose[T]) First() Module[T] {
	return c.first
}
