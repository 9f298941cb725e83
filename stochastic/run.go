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

// Package stochastic runs the law-of-large-numbers pipeline: it draws sample
// paths from a distribution, reduces them to running averages and derives the
// deviation probability and the empirical variance per sample size.
package stochastic

import (
	"fmt"
	"time"

	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic/distribution"
	"github.com/Fantom-foundation/lln-explorer/stochastic/simulation"
	"github.com/Fantom-foundation/lln-explorer/stochastic/statistics"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/c2h5oh/datasize"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// LargeMatrixWarning is the path matrix size above which a run logs a warning.
const LargeMatrixWarning = 1 * datasize.GB

// Result bundles the path matrix and its statistics.
type Result struct {
	Distribution         distribution.Distribution
	Paths                *mat.Dense // (M, N) running averages
	DeviationProbability []float64  // fraction of paths with |X̄ₙ - μ| > ε
	EmpiricalVariance    []float64  // population variance of X̄ₙ across paths
	Mean                 float64    // theoretical mean μ
	Variance             float64    // theoretical variance σ²
	Epsilon              float64
	Seed                 uint64
	Elapsed              time.Duration
}

// Run executes the pipeline configured by cfg.
func Run(cfg *utils.Config, log logger.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dist, err := distribution.New(cfg.Distribution, cfg.DistributionParams())
	if err != nil {
		return nil, fmt.Errorf("cannot create distribution; %w", err)
	}

	size, err := simulation.EstimateMemory(cfg.Paths, cfg.Samples)
	if err != nil {
		return nil, err
	}
	if size > LargeMatrixWarning {
		log.Warningf("Path matrix of %d x %d needs %v of memory", cfg.Paths, cfg.Samples, size.HR())
	}

	log.Noticef("Simulating %d paths of %d samples from %v", cfg.Paths, cfg.Samples, dist)
	start := time.Now()

	opts := []simulation.Option{
		simulation.WithSeed(cfg.Seed),
		simulation.WithWorkers(cfg.Workers),
		simulation.WithMemoryLimit(cfg.MemoryLimit),
	}
	if !cfg.Quiet {
		opts = append(opts, simulation.WithLogger(log))
	}
	paths, err := simulation.Simulate(dist, cfg.Paths, cfg.Samples, opts...)
	if err != nil {
		return nil, fmt.Errorf("simulation failed; %w", err)
	}

	res := &Result{
		Distribution: dist,
		Paths:        paths,
		Mean:         dist.Mean(),
		Variance:     dist.Variance(),
		Epsilon:      cfg.Epsilon,
		Seed:         cfg.Seed,
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		res.DeviationProbability, err = statistics.DeviationProbability(paths, res.Mean, cfg.Epsilon, statistics.WithWorkers(cfg.Workers))
		return err
	})
	g.Go(func() (err error) {
		res.EmpiricalVariance, err = statistics.EmpiricalVariance(paths, statistics.WithWorkers(cfg.Workers))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cannot reduce paths; %w", err)
	}

	res.Elapsed = time.Since(start)
	log.Noticef("Pipeline finished; elapsed time %v", logger.FormatElapsed(res.Elapsed))
	return res, nil
}

// Samples returns the number of observations per path.
func (r *Result) Samples() int {
	_, n := r.Paths.Dims()
	return n
}

// NumPaths returns the number of sample paths.
func (r *Result) NumPaths() int {
	m, _ := r.Paths.Dims()
	return m
}
