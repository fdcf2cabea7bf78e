package score

import (
	"runtime"
	"sync"

	"github.com/careroster/providerdedup/internal/block"
)

const (
	parallelPairFloor = 200
	maxWorkers        = 8
	chunkSize         = 256
)

// Scored pairs a candidate block.Pair with its computed PairScore.
type Scored struct {
	Pair  block.Pair
	Score PairScore
}

// ScoreAll scores every candidate pair. When parallel is true and len(pairs)
// exceeds parallelPairFloor, scoring is dispatched across a worker pool
// sized min(cpu_count-1, maxWorkers) with chunkSize pairs per task; below
// that floor, or when parallel is false, scoring runs serially on the
// calling goroutine. Output order always matches input order regardless of
// worker count, so downstream sorts on accepted pairs stay deterministic.
func (s *Scorer) ScoreAll(pairs []block.Pair, parallel bool) []Scored {
	out := make([]Scored, len(pairs))

	if !parallel || len(pairs) <= parallelPairFloor {
		for i, p := range pairs {
			out[i] = Scored{Pair: p, Score: s.Score(p.I, p.J)}
		}
		return out
	}

	workers := runtime.NumCPU() - 1
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}

	type chunk struct{ start, end int }
	chunks := make(chan chunk)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				for i := c.start; i < c.end; i++ {
					p := pairs[i]
					out[i] = Scored{Pair: p, Score: s.Score(p.I, p.J)}
				}
			}
		}()
	}

	for start := 0; start < len(pairs); start += chunkSize {
		end := start + chunkSize
		if end > len(pairs) {
			end = len(pairs)
		}
		chunks <- chunk{start: start, end: end}
	}
	close(chunks)
	wg.Wait()

	return out
}
