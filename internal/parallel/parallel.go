// Package parallel runs independent optimization starts on a bounded set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count. A single layout start
// runs thousands of graph evaluations, so one start per goroutine is enough
// to amortize scheduling.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}
	chunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || workers == 1 || n <= chunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	// Workers pull indices so a slow start does not hold up a whole chunk.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		next int
	)
	claim := func() (int, int) {
		mu.Lock()
		defer mu.Unlock()
		s := next
		next = min(next+chunk, n)
		return s, next
	}

	for w := 0; w < min(workers, (n+chunk-1)/chunk); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				s, e := claim()
				if s >= e {
					return
				}
				for i := s; i < e; i++ {
					f(i)
				}
			}
		}()
	}
	wg.Wait()
}

// Map calls f for every i in [0, n) and collects the results in index order.
func Map[T any](n int, f func(i int) T, cfg Config) []T {
	out := make([]T, n)
	For(n, func(i int) {
		out[i] = f(i)
	}, cfg)
	return out
}
