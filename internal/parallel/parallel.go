// Package parallel runs independent per-index work on a bounded number of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution.
type Config struct {
	Workers  int // Maximum goroutines; 1 or less runs sequentially.
	MinItems int // Fewer items than this run sequentially.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinItems: 8,
	}
}

// Sequential runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

// For calls f(i) for every i in [0, n). Every index runs even when some
// fail; the error of the lowest failing index is returned.
//
// f must be safe to call concurrently for distinct indices.
func For(n int, cfg Config, f func(i int) error) error {
	if n <= 0 {
		return nil
	}

	errs := make([]error, n)
	if cfg.Workers <= 1 || n < cfg.MinItems {
		for i := 0; i < n; i++ {
			errs[i] = f(i)
		}
		return first(errs)
	}

	var wg sync.WaitGroup
	chunk := (n + cfg.Workers - 1) / cfg.Workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				errs[i] = f(i)
			}
		}(start, end)
	}
	wg.Wait()

	return first(errs)
}

// ForGrid calls f(row, col) for every cell of a rows×cols grid, in the
// manner of For over the row-major index.
func ForGrid(rows, cols int, cfg Config, f func(row, col int) error) error {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	return For(rows*cols, cfg, func(k int) error {
		return f(k/cols, k%cols)
	})
}

func first(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
