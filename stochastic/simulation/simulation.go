// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package simulation draws independent sample paths and reduces them to
// their running averages.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic/distribution"
	"github.com/c2h5oh/datasize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidShape     = errors.New("number of paths and samples must be positive")
	ErrNilDistribution  = errors.New("distribution is nil")
	ErrAllocation       = errors.New("cannot allocate path matrix")
	errMatrixOverflowed = fmt.Errorf("%w; size overflows", ErrAllocation)
)

// progressSteps is the number of progress reports issued during a simulation.
const progressSteps = 10

type options struct {
	seed        uint64
	workers     int
	memoryLimit datasize.ByteSize
	log         logger.Logger
}

// Option configures a simulation.
type Option func(*options)

// WithSeed sets the seed from which the per-path random streams are derived.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers sets the number of goroutines simulating paths; values below
// two run the simulation sequentially.
func WithWorkers(workers int) Option {
	return func(o *options) { o.workers = workers }
}

// WithMemoryLimit rejects path matrices larger than limit; zero disables the check.
func WithMemoryLimit(limit datasize.ByteSize) Option {
	return func(o *options) { o.memoryLimit = limit }
}

// WithLogger reports the progress of the simulation to log.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// EstimateMemory returns the size of an (m, n) path matrix.
func EstimateMemory(m, n int) (datasize.ByteSize, error) {
	if m <= 0 || n <= 0 {
		return 0, fmt.Errorf("%w; got %d paths and %d samples", ErrInvalidShape, m, n)
	}
	cells := uint64(m) * uint64(n)
	if cells/uint64(m) != uint64(n) || cells > math.MaxInt || cells > math.MaxUint64/8 {
		return 0, errMatrixOverflowed
	}
	return datasize.ByteSize(cells * 8), nil
}

// NewPathRand returns the random generator of path i. Every path owns an
// independent PCG stream, so the result does not depend on the scheduling.
func NewPathRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// Simulate draws m independent paths of n observations from dist and returns
// the (m, n) matrix of running averages; element (i, j) is the mean of the
// first j+1 draws of path i.
func Simulate(dist distribution.Distribution, m, n int, opts ...Option) (*mat.Dense, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if dist == nil {
		return nil, ErrNilDistribution
	}
	size, err := EstimateMemory(m, n)
	if err != nil {
		return nil, err
	}
	if o.memoryLimit > 0 && size > o.memoryLimit {
		return nil, fmt.Errorf("%w; %d paths of %d samples need %v, limit is %v", ErrAllocation, m, n, size.HR(), o.memoryLimit.HR())
	}

	paths := mat.NewDense(m, n, nil)
	counts := sampleCounts(n)
	progress := newProgress(o.log, m)

	if o.workers <= 1 || m == 1 {
		for i := 0; i < m; i++ {
			simulatePath(dist, o.seed, i, paths.RawRowView(i), counts)
			progress.done()
		}
	} else {
		runParallel(dist, o.seed, min(o.workers, m), paths, counts, progress)
	}

	progress.finish()
	return paths, nil
}

// runParallel distributes the paths over numWorkers goroutines. Each path
// writes its own matrix row only.
func runParallel(dist distribution.Distribution, seed uint64, numWorkers int, paths *mat.Dense, counts []float64, progress *progress) {
	m, _ := paths.Dims()
	var next atomic.Int64
	var cachedPanic atomic.Value
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			// channel panics back to the main thread.
			defer func() {
				if r := recover(); r != nil {
					cachedPanic.Store(r)
				}
			}()
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= m || cachedPanic.Load() != nil {
					return
				}
				simulatePath(dist, seed, i, paths.RawRowView(i), counts)
				progress.done()
			}
		}()
	}
	wg.Wait()

	if r := cachedPanic.Load(); r != nil {
		panic(r)
	}
}

// simulatePath draws path i into row and converts the draws into running averages.
func simulatePath(dist distribution.Distribution, seed uint64, i int, row []float64, counts []float64) {
	dist.SampleInto(NewPathRand(seed, i), row)
	runningAverage(row, counts)
}

// RunningAverage replaces the draws in x by their running averages.
func RunningAverage(x []float64) {
	runningAverage(x, sampleCounts(len(x)))
}

// runningAverage computes the cumulative sum of x and divides the prefix sum
// at position j by the sample count counts[j] = j+1.
func runningAverage(x []float64, counts []float64) {
	floats.CumSum(x, x)
	floats.Div(x, counts)
}

// sampleCounts returns the sample sizes 1..n.
func sampleCounts(n int) []float64 {
	counts := make([]float64, n)
	for j := range counts {
		counts[j] = float64(j + 1)
	}
	return counts
}

// progress reports the number of simulated paths in steps of ten percent.
type progress struct {
	log   logger.Logger
	total int
	step  int
	count atomic.Int64
	start time.Time
}

func newProgress(log logger.Logger, total int) *progress {
	return &progress{
		log:   log,
		total: total,
		step:  max(total/progressSteps, 1),
		start: time.Now(),
	}
}

func (p *progress) done() {
	if p.log == nil {
		return
	}
	if c := int(p.count.Add(1)); c%p.step == 0 && c < p.total {
		p.log.Infof("Simulated %d of %d paths (%.0f%%)", c, p.total, 100*float64(c)/float64(p.total))
	}
}

func (p *progress) finish() {
	if p.log == nil {
		return
	}
	p.log.Noticef("Simulated %d paths; elapsed time %v", p.total, logger.FormatElapsed(time.Since(p.start)))
}
