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

// Package statistics reduces a matrix of running averages column by column.
// Column j of the matrix holds the running averages of all paths at sample
// size j+1.
package statistics

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyMatrix    = errors.New("path matrix is empty")
	ErrInvalidEpsilon = errors.New("epsilon must be a non-negative number")
	ErrInvalidColumn  = errors.New("column index out of range")
)

// minBlockWidth is the smallest number of columns reduced by one goroutine.
const minBlockWidth = 256

type options struct {
	workers int
}

// Option configures a reduction.
type Option func(*options)

// WithWorkers splits the columns over the given number of goroutines.
func WithWorkers(workers int) Option {
	return func(o *options) { o.workers = workers }
}

// DeviationProbability returns for each column the fraction of paths whose
// running average differs from mu by more than eps.
func DeviationProbability(paths *mat.Dense, mu, eps float64, opts ...Option) ([]float64, error) {
	m, n, err := dims(paths)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(eps) || eps < 0 {
		return nil, fmt.Errorf("%w; got %v", ErrInvalidEpsilon, eps)
	}

	prob := make([]float64, n)
	forEachBlock(n, newOptions(opts).workers, func(lo, hi int) {
		counts := prob[lo:hi]
		for i := 0; i < m; i++ {
			row := paths.RawRowView(i)[lo:hi]
			for j, x := range row {
				if math.Abs(x-mu) > eps {
					counts[j]++
				}
			}
		}
		// divide rather than scale by 1/m so that all-deviating columns give exactly 1
		for j := range counts {
			counts[j] /= float64(m)
		}
	})
	return prob, nil
}

// EmpiricalVariance returns for each column the population variance (divisor m)
// of the running averages across all paths.
func EmpiricalVariance(paths *mat.Dense, opts ...Option) ([]float64, error) {
	m, n, err := dims(paths)
	if err != nil {
		return nil, err
	}

	variance := make([]float64, n)
	forEachBlock(n, newOptions(opts).workers, func(lo, hi int) {
		mean := make([]float64, hi-lo)
		for i := 0; i < m; i++ {
			floats.Add(mean, paths.RawRowView(i)[lo:hi])
		}
		floats.Scale(1/float64(m), mean)

		acc := variance[lo:hi]
		diff := make([]float64, hi-lo)
		for i := 0; i < m; i++ {
			floats.SubTo(diff, paths.RawRowView(i)[lo:hi], mean)
			floats.Mul(diff, diff)
			floats.Add(acc, diff)
		}
		floats.Scale(1/float64(m), acc)
	})
	return variance, nil
}

// ColumnMeanVariance returns the mean and the population variance of column j.
func ColumnMeanVariance(paths *mat.Dense, j int) (float64, float64, error) {
	m, n, err := dims(paths)
	if err != nil {
		return 0, 0, err
	}
	if j < 0 || j >= n {
		return 0, 0, fmt.Errorf("%w; column %d of %d", ErrInvalidColumn, j, n)
	}
	col := make([]float64, m)
	mat.Col(col, j, paths)
	mean, variance := stat.PopMeanVariance(col, nil)
	return mean, variance, nil
}

// ColumnMean returns the mean running average of all paths at sample size j+1.
func ColumnMean(paths *mat.Dense, j int) (float64, error) {
	mean, _, err := ColumnMeanVariance(paths, j)
	return mean, err
}

// Column returns a copy of column j, i.e., the running averages of all paths at sample size j+1.
func Column(paths *mat.Dense, j int) ([]float64, error) {
	m, n, err := dims(paths)
	if err != nil {
		return nil, err
	}
	if j < 0 || j >= n {
		return nil, fmt.Errorf("%w; column %d of %d", ErrInvalidColumn, j, n)
	}
	col := make([]float64, m)
	mat.Col(col, j, paths)
	return col, nil
}

// Overlay holds the theoretical values at sample size k.
type Overlay struct {
	Variance       float64 // σ²/k
	ChebyshevBound float64 // min(1, σ²/(k·ε²))
}

// OverlayAt returns the variance of the running average and the weak-law upper
// bound of the deviation probability at sample size k.
func OverlayAt(variance float64, k int, eps float64) Overlay {
	v := variance / float64(k)
	return Overlay{
		Variance:       v,
		ChebyshevBound: math.Min(1, v/(eps*eps)),
	}
}

// TheoreticalVariance returns σ²/k for the sample sizes k = 1..n.
func TheoreticalVariance(variance float64, n int) []float64 {
	res := make([]float64, max(n, 0))
	for j := range res {
		res[j] = OverlayAt(variance, j+1, 1).Variance
	}
	return res
}

// ChebyshevBound returns min(1, σ²/(k·ε²)) for the sample sizes k = 1..n.
func ChebyshevBound(variance float64, n int, eps float64) []float64 {
	res := make([]float64, max(n, 0))
	for j := range res {
		res[j] = OverlayAt(variance, j+1, eps).ChebyshevBound
	}
	return res
}

func dims(paths *mat.Dense) (int, int, error) {
	if paths == nil || paths.IsEmpty() {
		return 0, 0, ErrEmptyMatrix
	}
	m, n := paths.Dims()
	return m, n, nil
}

func newOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// forEachBlock partitions the columns [0, n) into contiguous blocks and runs
// reduce for each block, in parallel if more than one worker is requested.
// Blocks are disjoint, so reductions never write the same column.
func forEachBlock(n, workers int, reduce func(lo, hi int)) {
	numBlocks := min(workers, (n+minBlockWidth-1)/minBlockWidth)
	if numBlocks <= 1 {
		reduce(0, n)
		return
	}
	width := (n + numBlocks - 1) / numBlocks
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += width {
		hi := min(lo+width, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			reduce(lo, hi)
		}()
	}
	wg.Wait()
}
