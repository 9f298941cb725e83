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
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic/distribution"
	"github.com/c2h5oh/datasize"
	"github.com/urfave/cli/v2"
)

// ErrInvalidConfig is wrapped by all errors reporting an invalid run configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// GitCommit represents the GitHub commit hash the app was built from.
var GitCommit = "0000000000000000000000000000000000000000"

// Config represents the execution configuration of a simulation run.
type Config struct {
	AppName     string
	CommandName string

	Distribution string            // name of the distribution family
	Paths        int               // number of independent sample paths (M)
	Samples      int               // number of observations per path (N)
	Epsilon      float64           // threshold of the deviation probability
	Mu           float64           // mean of the normal distribution
	Sigma        float64           // standard deviation of the normal distribution
	P            float64           // success probability of the bernoulli distribution
	Low          float64           // lower bound of the uniform distribution
	High         float64           // upper bound of the uniform distribution
	Lambda       float64           // rate of the exponential distribution
	Seed         uint64            // seed of the per-path random streams
	Workers      int               // number of worker threads
	MemoryLimit  datasize.ByteSize // maximal size of the path matrix; zero disables the check
	Output       string            // output directory
	Database     string            // sqlite3 database of run checkpoints; empty disables it
	PlotPaths    int               // number of paths drawn in charts
	Port         string            // port of the visualization server
	LogLevel     string            // level of the logging of the app action
	Quiet        bool              // disable progress report
}

// NewTestConfig creates a validated configuration for unit tests.
func NewTestConfig(t *testing.T, dist string, paths, samples int, seed uint64) *Config {
	cfg := &Config{
		AppName:      "lln-test",
		CommandName:  "test",
		Distribution: dist,
		Paths:        paths,
		Samples:      samples,
		Epsilon:      0.1,
		Seed:         seed,
		Workers:      1,
		Output:       t.TempDir(),
		PlotPaths:    PlotPathsFlag.Value,
		LogLevel:     "critical",
		Quiet:        true,
	}
	cfg.SetDistributionParams(distribution.DefaultParams())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test configuration; %v", err)
	}
	return cfg
}

// NewConfig creates and initializes the configuration based on the command line flags.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		AppName:      ctx.App.HelpName,
		CommandName:  ctx.Command.Name,
		Distribution: strings.ToLower(strings.TrimSpace(ctx.String(DistributionFlag.Name))),
		Paths:        ctx.Int(PathsFlag.Name),
		Samples:      ctx.Int(SamplesFlag.Name),
		Epsilon:      ctx.Float64(EpsilonFlag.Name),
		Mu:           ctx.Float64(MuFlag.Name),
		Sigma:        ctx.Float64(SigmaFlag.Name),
		P:            ctx.Float64(ProbabilityFlag.Name),
		Low:          ctx.Float64(LowFlag.Name),
		High:         ctx.Float64(HighFlag.Name),
		Lambda:       ctx.Float64(LambdaFlag.Name),
		Seed:         ctx.Uint64(SeedFlag.Name),
		Workers:      ctx.Int(WorkersFlag.Name),
		Output:       ctx.Path(OutputFlag.Name),
		Database:     ctx.Path(DatabaseFlag.Name),
		PlotPaths:    ctx.Int(PlotPathsFlag.Name),
		Port:         ctx.String(PortFlag.Name),
		LogLevel:     ctx.String(logger.LogLevelFlag.Name),
		Quiet:        ctx.Bool(QuietFlag.Name),
	}

	limit, err := ParseMemoryLimit(ctx.String(MemoryLimitFlag.Name))
	if err != nil {
		return nil, err
	}
	cfg.MemoryLimit = limit

	if !ctx.IsSet(SeedFlag.Name) {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Output == "" {
		cfg.Output = OutputFlag.Value
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.report(logger.NewLogger(cfg.LogLevel, "Config"))
	return cfg, nil
}

// ParseMemoryLimit parses a human readable size such as "512MB"; "0" and "" disable the limit.
func ParseMemoryLimit(s string) (datasize.ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	var limit datasize.ByteSize
	if err := limit.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: cannot parse memory limit %q; %v", ErrInvalidConfig, s, err)
	}
	return limit, nil
}

// Validate checks the ranges of all parameters. Parameters of distribution
// families other than the configured one are not checked.
func (cfg *Config) Validate() error {
	family, err := distribution.ParseFamily(cfg.Distribution)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Paths <= 0 {
		return fmt.Errorf("%w: number of paths must be positive, got %d", ErrInvalidConfig, cfg.Paths)
	}
	if cfg.Samples <= 0 {
		return fmt.Errorf("%w: number of samples must be positive, got %d", ErrInvalidConfig, cfg.Samples)
	}
	if !(cfg.Epsilon > 0 && cfg.Epsilon < 1) {
		return fmt.Errorf("%w: epsilon must be in (0, 1), got %v", ErrInvalidConfig, cfg.Epsilon)
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.PlotPaths < 0 {
		return fmt.Errorf("%w: number of plotted paths must not be negative, got %d", ErrInvalidConfig, cfg.PlotPaths)
	}

	switch family {
	case distribution.NormalFamily:
		if !isFinite(cfg.Mu) {
			return fmt.Errorf("%w: mu must be finite, got %v", ErrInvalidConfig, cfg.Mu)
		}
		if !(cfg.Sigma > 0) || !isFinite(cfg.Sigma) {
			return fmt.Errorf("%w: sigma must be positive, got %v", ErrInvalidConfig, cfg.Sigma)
		}
	case distribution.BernoulliFamily:
		if !(cfg.P > 0 && cfg.P < 1) {
			return fmt.Errorf("%w: p must be in (0, 1), got %v", ErrInvalidConfig, cfg.P)
		}
	case distribution.UniformFamily:
		if !isFinite(cfg.Low) || !isFinite(cfg.High) || !(cfg.Low < cfg.High) {
			return fmt.Errorf("%w: uniform bounds must be finite with low < high, got [%v, %v)", ErrInvalidConfig, cfg.Low, cfg.High)
		}
	case distribution.ExponentialFamily:
		if !(cfg.Lambda > 0) || !isFinite(cfg.Lambda) {
			return fmt.Errorf("%w: lambda must be positive, got %v", ErrInvalidConfig, cfg.Lambda)
		}
	}
	return nil
}

// DistributionParams returns the distribution parameters of the configuration.
func (cfg *Config) DistributionParams() distribution.Params {
	return distribution.Params{
		Mu:     cfg.Mu,
		Sigma:  cfg.Sigma,
		P:      cfg.P,
		Low:    cfg.Low,
		High:   cfg.High,
		Lambda: cfg.Lambda,
	}
}

// SetDistributionParams overwrites the distribution parameters of the configuration.
func (cfg *Config) SetDistributionParams(p distribution.Params) {
	cfg.Mu = p.Mu
	cfg.Sigma = p.Sigma
	cfg.P = p.P
	cfg.Low = p.Low
	cfg.High = p.High
	cfg.Lambda = p.Lambda
}

// report logs the configuration.
func (cfg *Config) report(log logger.Logger) {
	log.Noticef("Run config:")
	log.Infof("App name: %v; command: %v", cfg.AppName, cfg.CommandName)
	log.Infof("Distribution: %v", cfg.Distribution)
	log.Infof("Paths (M): %v; samples (N): %v; epsilon: %v", cfg.Paths, cfg.Samples, cfg.Epsilon)
	log.Infof("Seed: %v; workers: %v", cfg.Seed, cfg.Workers)
	if cfg.MemoryLimit > 0 {
		log.Infof("Memory limit: %v", cfg.MemoryLimit.HR())
	}
	log.Infof("Output directory: %v", cfg.Output)
	if cfg.Database != "" {
		log.Infof("Run database: %v", cfg.Database)
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
