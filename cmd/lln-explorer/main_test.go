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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/lln-explorer/stochastic/report"
	"github.com/Fantom-foundation/lln-explorer/stochastic/simulation"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitInvalidArgs, exitCode(fmt.Errorf("%w: paths", utils.ErrInvalidConfig)))
	assert.Equal(t, exitRuntime, exitCode(simulation.ErrAllocation))
	assert.Equal(t, exitRuntime, exitCode(errors.New("disk full")))
	assert.Equal(t, exitInvalidArgs, exitCode(cli.Exit("No help topic for 'x'", 3)))
}

func TestRun_RejectsUnknownCommands(t *testing.T) {
	tests := map[string][]string{
		"unknown-command": {"lln-explorer", "nosuchcmd"},
		"unknown-help":    {"lln-explorer", "help", "nosuchcmd"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, exitInvalidArgs, run(args))
		})
	}
}

func TestRun_WithoutCommandShowsHelp(t *testing.T) {
	assert.Equal(t, exitSuccess, run([]string{"lln-explorer"}))
}

func TestRun_WritesSummaryAndCharts(t *testing.T) {
	out := t.TempDir()
	code := run([]string{"lln-explorer", "run",
		"--log", "critical",
		"--quiet",
		"--distribution", "bernoulli",
		"--p", "0.7",
		"--paths", "20",
		"--samples", "500",
		"--seed", "1",
		"--output", out,
		"--db", filepath.Join(out, "runs.db"),
	})
	require.Equal(t, exitSuccess, code)
	assert.FileExists(t, filepath.Join(out, "runs.db"))

	s, err := report.ReadSummary(filepath.Join(out, report.SummaryFile))
	require.NoError(t, err)
	assert.Equal(t, 20, s.Paths)
	assert.Equal(t, 500, s.Samples)
	assert.Equal(t, uint64(1), s.Seed)

	for _, name := range []string{"paths.html", "deviation.html", "variance.html", "final.html"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_CreatesMissingOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")
	code := run([]string{"lln-explorer", "run", "--log", "critical", "--quiet", "--paths", "2", "--samples", "10", "--output", out})
	require.Equal(t, exitSuccess, code)
	assert.DirExists(t, out)
}

func TestRun_RejectsInvalidArguments(t *testing.T) {
	tests := map[string][]string{
		"zero-paths":      {"--paths", "0"},
		"negative-sample": {"--samples", "-1"},
		"epsilon":         {"--epsilon", "1.5"},
		"family":          {"--distribution", "gamma"},
		"lambda":          {"--distribution", "exponential", "--lambda", "-2"},
		"malformed-int":   {"--paths", "many"},
		"unknown-flag":    {"--colour", "blue"},
		"log-level":       {"--log", "verbose"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			full := append([]string{"lln-explorer", "run", "--log", "critical", "--output", t.TempDir()}, args...)
			assert.Equal(t, exitInvalidArgs, run(full))
		})
	}
}

func TestRun_ReportsRuntimeErrors(t *testing.T) {
	// output path is an existing file
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	code := run([]string{"lln-explorer", "run", "--log", "critical", "--paths", "2", "--samples", "2", "--output", file})
	assert.Equal(t, exitRuntime, code)

	// path matrix above the memory limit
	code = run([]string{"lln-explorer", "run", "--log", "critical", "--paths", "1000", "--samples", "1000", "--memory-limit", "1KB", "--output", t.TempDir()})
	assert.Equal(t, exitRuntime, code)
}

func TestLoadEnv(t *testing.T) {
	assert.NoError(t, loadEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LLN_TEST_SETTING=42\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("LLN_TEST_SETTING") })
	require.NoError(t, loadEnv(path))
	assert.Equal(t, "42", os.Getenv("LLN_TEST_SETTING"))
}
