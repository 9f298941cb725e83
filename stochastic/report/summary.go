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

// Package report summarizes the result of a simulation run for the console
// and for the summary file of the output directory.
package report

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/Fantom-foundation/lln-explorer/stochastic"
	"github.com/Fantom-foundation/lln-explorer/stochastic/statistics"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"gopkg.in/yaml.v3"
)

// SummaryFile is the name of the summary written into the output directory.
const SummaryFile = "summary.yaml"

var ErrNoResult = errors.New("no simulation result")

// Summary describes a simulation run.
type Summary struct {
	RunID        string        `yaml:"run_id"`
	Created      time.Time     `yaml:"created"`
	Commit       string        `yaml:"commit"`
	Distribution string        `yaml:"distribution"`
	Paths        int           `yaml:"paths"`
	Samples      int           `yaml:"samples"`
	Epsilon      float64       `yaml:"epsilon"`
	Seed         uint64        `yaml:"seed"`
	Mean         float64       `yaml:"mean"`
	Variance     float64       `yaml:"variance"`
	Elapsed      time.Duration `yaml:"elapsed"`
	Final        FinalColumn   `yaml:"final"`
	Checkpoints  []Checkpoint  `yaml:"checkpoints"`
}

// FinalColumn describes the running averages of all paths after the last sample.
type FinalColumn struct {
	Mean     float64 `yaml:"mean"`
	StdDev   float64 `yaml:"std_dev"`
	Min      float64 `yaml:"min"`
	Q25      float64 `yaml:"q25"`
	Median   float64 `yaml:"median"`
	Q75      float64 `yaml:"q75"`
	Max      float64 `yaml:"max"`
	AbsError float64 `yaml:"abs_error"` // |mean - μ|
}

// Checkpoint holds the statistics at one sample size.
type Checkpoint struct {
	N                    int     `yaml:"n"`
	Mean                 float64 `yaml:"mean"`
	EmpiricalVariance    float64 `yaml:"empirical_variance"`
	TheoreticalVariance  float64 `yaml:"theoretical_variance"`
	DeviationProbability float64 `yaml:"deviation_probability"`
	ChebyshevBound       float64 `yaml:"chebyshev_bound"`
}

// NewSummary summarizes the result of a run configured by cfg.
func NewSummary(cfg *utils.Config, res *stochastic.Result) (*Summary, error) {
	if res == nil || res.Paths == nil {
		return nil, ErrNoResult
	}
	n := res.Samples()

	final, err := newFinalColumn(res)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		RunID:        uuid.New().String(),
		Created:      time.Now().UTC(),
		Commit:       utils.GitCommit,
		Distribution: res.Distribution.String(),
		Paths:        res.NumPaths(),
		Samples:      n,
		Epsilon:      cfg.Epsilon,
		Seed:         res.Seed,
		Mean:         res.Mean,
		Variance:     res.Variance,
		Elapsed:      res.Elapsed,
		Final:        final,
	}

	for _, k := range CheckpointSizes(n) {
		mean, err := statistics.ColumnMean(res.Paths, k-1)
		if err != nil {
			return nil, err
		}
		overlay := statistics.OverlayAt(res.Variance, k, res.Epsilon)
		s.Checkpoints = append(s.Checkpoints, Checkpoint{
			N:                    k,
			Mean:                 mean,
			EmpiricalVariance:    res.EmpiricalVariance[k-1],
			TheoreticalVariance:  overlay.Variance,
			DeviationProbability: res.DeviationProbability[k-1],
			ChebyshevBound:       overlay.ChebyshevBound,
		})
	}
	return s, nil
}

// CheckpointSizes returns the powers of ten up to n followed by n itself.
func CheckpointSizes(n int) []int {
	var sizes []int
	for k := 1; k < n; k *= 10 {
		sizes = append(sizes, k)
		if k > math.MaxInt/10 {
			break
		}
	}
	if n > 0 {
		sizes = append(sizes, n)
	}
	return sizes
}

func newFinalColumn(res *stochastic.Result) (FinalColumn, error) {
	col, err := statistics.Column(res.Paths, res.Samples()-1)
	if err != nil {
		return FinalColumn{}, err
	}
	data := stats.Float64Data(col)

	var f FinalColumn
	for _, q := range []struct {
		dst *float64
		fn  func() (float64, error)
	}{
		{&f.Mean, data.Mean},
		{&f.StdDev, data.StandardDeviationPopulation},
		{&f.Min, data.Min},
		{&f.Median, data.Median},
		{&f.Max, data.Max},
		{&f.Q25, func() (float64, error) { return data.PercentileNearestRank(25) }},
		{&f.Q75, func() (float64, error) { return data.PercentileNearestRank(75) }},
	} {
		v, err := q.fn()
		if err != nil {
			return FinalColumn{}, fmt.Errorf("cannot summarize final running averages; %w", err)
		}
		*q.dst = v
	}
	f.AbsError = math.Abs(f.Mean - res.Mean)
	return f, nil
}

// WriteSummary stores the summary as YAML file.
func WriteSummary(path string, s *Summary) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode summary; %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("cannot write summary %v; %w", path, err)
	}
	return nil
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read summary %v; %w", path, err)
	}
	s := new(Summary)
	if err := yaml.Unmarshal(in, s); err != nil {
		return nil, fmt.Errorf("cannot decode summary %v; %w", path, err)
	}
	return s, nil
}
