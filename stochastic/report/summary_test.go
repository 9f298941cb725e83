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

package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic"
	"github.com/Fantom-foundation/lln-explorer/stochastic/statistics"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPipeline(t *testing.T, dist string, m, n int) (*utils.Config, *stochastic.Result) {
	t.Helper()
	cfg := utils.NewTestConfig(t, dist, m, n, 42)
	res, err := stochastic.Run(cfg, logger.NewLogger("critical", "test"))
	require.NoError(t, err)
	return cfg, res
}

func TestCheckpointSizes(t *testing.T) {
	tests := map[int][]int{
		0:     nil,
		1:     {1},
		9:     {1, 9},
		10:    {1, 10},
		11:    {1, 10, 11},
		1000:  {1, 10, 100, 1000},
		12345: {1, 10, 100, 1000, 10000, 12345},
	}
	for n, want := range tests {
		assert.Equal(t, want, CheckpointSizes(n), "n=%d", n)
	}
}

func TestNewSummary_DescribesRun(t *testing.T) {
	cfg, res := runPipeline(t, "normal", 30, 1000)
	s, err := NewSummary(cfg, res)
	require.NoError(t, err)

	_, err = uuid.Parse(s.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 30, s.Paths)
	assert.Equal(t, 1000, s.Samples)
	assert.Equal(t, res.Distribution.String(), s.Distribution)
	require.Len(t, s.Checkpoints, 4)

	last := s.Checkpoints[len(s.Checkpoints)-1]
	assert.Equal(t, 1000, last.N)
	assert.Equal(t, res.EmpiricalVariance[999], last.EmpiricalVariance)
	assert.Equal(t, res.DeviationProbability[999], last.DeviationProbability)
	assert.InDelta(t, 0.001, last.TheoreticalVariance, 1e-15)
	assert.InDelta(t, s.Final.Mean, last.Mean, 1e-12)
	assert.Equal(t, 1.0, s.Checkpoints[0].ChebyshevBound)

	// checkpoints and charts share the theoretical overlays
	bound := statistics.ChebyshevBound(res.Variance, 1000, res.Epsilon)
	variance := statistics.TheoreticalVariance(res.Variance, 1000)
	for _, c := range s.Checkpoints {
		assert.Equal(t, bound[c.N-1], c.ChebyshevBound)
		assert.Equal(t, variance[c.N-1], c.TheoreticalVariance)
	}

	f := s.Final
	assert.LessOrEqual(t, f.Min, f.Q25)
	assert.LessOrEqual(t, f.Q25, f.Median)
	assert.LessOrEqual(t, f.Median, f.Q75)
	assert.LessOrEqual(t, f.Q75, f.Max)
	assert.Less(t, f.AbsError, 0.1)
}

func TestNewSummary_HandlesSinglePath(t *testing.T) {
	cfg, res := runPipeline(t, "uniform", 1, 5)
	s, err := NewSummary(cfg, res)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Final.StdDev)
	assert.Equal(t, s.Final.Min, s.Final.Max)
	assert.Equal(t, s.Final.Min, s.Final.Q25)
}

func TestNewSummary_RejectsMissingResult(t *testing.T) {
	_, err := NewSummary(utils.NewTestConfig(t, "normal", 1, 1, 1), nil)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestWriteSummary_CanBeReadBack(t *testing.T) {
	cfg, res := runPipeline(t, "bernoulli", 10, 100)
	s, err := NewSummary(cfg, res)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), SummaryFile)
	require.NoError(t, WriteSummary(path, s))

	got, err := ReadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, s.RunID, got.RunID)
	assert.Equal(t, s.Checkpoints, got.Checkpoints)
	assert.Equal(t, s.Final, got.Final)
	assert.Equal(t, s.Elapsed, got.Elapsed)
	assert.True(t, s.Created.Equal(got.Created))
}

func TestWriteSummary_ReportsMissingDirectory(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing", SummaryFile), &Summary{})
	assert.Error(t, err)
}

func TestPrintSummary_ListsCheckpoints(t *testing.T) {
	cfg, res := runPipeline(t, "exponential", 5, 12345)
	s, err := NewSummary(cfg, res)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, s)
	out := buf.String()

	assert.Contains(t, out, s.RunID)
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "10,000")
	assert.Contains(t, out, "Chebyshev")
	assert.Equal(t, 1, strings.Count(out, "Running averages at n="))
}
