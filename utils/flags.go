// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"runtime"
	"strings"

	"github.com/Fantom-foundation/lln-explorer/stochastic/distribution"
	"github.com/urfave/cli/v2"
)

// Command line options for the simulation commands.
var (
	DistributionFlag = cli.StringFlag{
		Name:    "distribution",
		Aliases: []string{"d"},
		Usage:   "distribution of the observations (" + strings.Join(distribution.FamilyNames(), ", ") + ")",
		Value:   string(distribution.NormalFamily),
		EnvVars: []string{"LLN_DISTRIBUTION"},
	}
	PathsFlag = cli.IntFlag{
		Name:    "paths",
		Aliases: []string{"m"},
		Usage:   "number of independent sample paths (M)",
		Value:   200,
		EnvVars: []string{"LLN_PATHS"},
	}
	SamplesFlag = cli.IntFlag{
		Name:    "samples",
		Aliases: []string{"n"},
		Usage:   "number of observations per sample path (N)",
		Value:   10_000,
		EnvVars: []string{"LLN_SAMPLES"},
	}
	EpsilonFlag = cli.Float64Flag{
		Name:    "epsilon",
		Aliases: []string{"eps"},
		Usage:   "deviation threshold for the deviation probability, must be in (0, 1)",
		Value:   0.1,
		EnvVars: []string{"LLN_EPSILON"},
	}
	MuFlag = cli.Float64Flag{
		Name:    "mu",
		Usage:   "mean of the normal distribution",
		Value:   0.0,
		EnvVars: []string{"LLN_MU"},
	}
	SigmaFlag = cli.Float64Flag{
		Name:    "sigma",
		Usage:   "standard deviation of the normal distribution, must be positive",
		Value:   1.0,
		EnvVars: []string{"LLN_SIGMA"},
	}
	ProbabilityFlag = cli.Float64Flag{
		Name:    "p",
		Usage:   "success probability of the bernoulli distribution, must be in (0, 1)",
		Value:   0.5,
		EnvVars: []string{"LLN_P"},
	}
	LowFlag = cli.Float64Flag{
		Name:    "low",
		Usage:   "inclusive lower bound of the uniform distribution",
		Value:   0.0,
		EnvVars: []string{"LLN_LOW"},
	}
	HighFlag = cli.Float64Flag{
		Name:    "high",
		Usage:   "exclusive upper bound of the uniform distribution",
		Value:   1.0,
		EnvVars: []string{"LLN_HIGH"},
	}
	LambdaFlag = cli.Float64Flag{
		Name:    "lambda",
		Usage:   "rate of the exponential distribution, must be positive",
		Value:   1.0,
		EnvVars: []string{"LLN_LAMBDA"},
	}
	SeedFlag = cli.Uint64Flag{
		Name:    "seed",
		Usage:   "seed of the random generator; a time based seed is used if not set",
		EnvVars: []string{"LLN_SEED"},
	}
	WorkersFlag = cli.IntFlag{
		Name:    "workers",
		Usage:   "number of worker threads simulating paths and reducing statistics",
		Value:   runtime.NumCPU(),
		EnvVars: []string{"LLN_WORKERS"},
	}
	MemoryLimitFlag = cli.StringFlag{
		Name:    "memory-limit",
		Usage:   "upper limit for the size of the path matrix, e.g. 512MB or 8GB (0 disables the limit)",
		Value:   "8GB",
		EnvVars: []string{"LLN_MEMORY_LIMIT"},
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output directory for the summary and the charts",
		Value:   "./lln-output",
		EnvVars: []string{"LLN_OUTPUT"},
	}
	DatabaseFlag = cli.PathFlag{
		Name:    "db",
		Usage:   "sqlite3 database collecting the checkpoints of all runs (disabled if empty)",
		EnvVars: []string{"LLN_DB"},
	}
	PlotPathsFlag = cli.IntFlag{
		Name:    "plot-paths",
		Usage:   "number of sample paths drawn in the path chart",
		Value:   20,
		EnvVars: []string{"LLN_PLOT_PATHS"},
	}
	PortFlag = cli.StringFlag{
		Name:    "port",
		Usage:   "enable visualization on `PORT`",
		Value:   "8080",
		EnvVars: []string{"LLN_PORT"},
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable progress report and console summary",
	}
)

// SimulationFlags are the flags shared by all commands running a simulation.
var SimulationFlags = []cli.Flag{
	&DistributionFlag,
	&PathsFlag,
	&SamplesFlag,
	&EpsilonFlag,
	&MuFlag,
	&SigmaFlag,
	&ProbabilityFlag,
	&LowFlag,
	&HighFlag,
	&LambdaFlag,
	&SeedFlag,
	&WorkersFlag,
	&MemoryLimitFlag,
	&PlotPathsFlag,
	&QuietFlag,
}
