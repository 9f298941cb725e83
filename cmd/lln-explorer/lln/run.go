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

package lln

import (
	"fmt"
	"path/filepath"

	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic"
	"github.com/Fantom-foundation/lln-explorer/stochastic/report"
	"github.com/Fantom-foundation/lln-explorer/stochastic/visualizer"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/urfave/cli/v2"
)

// RunCommand data structure for the run app.
var RunCommand = cli.Command{
	Action:       runAction,
	Name:         "run",
	Usage:        "simulates sample paths and writes a summary and charts of their running averages",
	Flags:        append([]cli.Flag{&utils.OutputFlag, &utils.DatabaseFlag, &logger.LogLevelFlag}, utils.SimulationFlags...),
	OnUsageError: usageError,
	Description: `
The run command draws --paths independent sample paths of --samples observations
from the chosen --distribution and computes for each sample size the probability
that the running average deviates from the mean by more than --epsilon and the
variance of the running averages across paths.

The summary is printed and written with the charts into the --output directory.
If --db is set, the checkpoints of the run are appended to that sqlite3 database.`,
}

// runAction implements the run command.
func runAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "LLN-Run")

	if err := utils.PrepareOutputDirectory(cfg.Output); err != nil {
		return err
	}

	res, err := stochastic.Run(cfg, log)
	if err != nil {
		return err
	}

	summary, err := report.NewSummary(cfg, res)
	if err != nil {
		return err
	}

	summaryFile := filepath.Join(cfg.Output, report.SummaryFile)
	printers, err := report.NewPrinters().
		AddPrintToWriter(cfg.Quiet, ctx.App.Writer, summary).
		AddPrintToFile(summaryFile, summary).
		AddPrintToSqlite3(cfg.Database, summary)
	if err != nil {
		return err
	}
	defer printers.Close()

	log.Noticef("Write summary file %v", summaryFile)
	if err := printers.Print(); err != nil {
		return err
	}

	_, err = writeCharts(cfg, res, log)
	return err
}

// writeCharts renders the charts of a run into the output directory and
// returns the written files.
func writeCharts(cfg *utils.Config, res *stochastic.Result, log logger.Logger) ([]string, error) {
	data, err := visualizer.NewChartData(res, cfg.PlotPaths, visualizer.DefaultPoints)
	if err != nil {
		return nil, err
	}
	charts, err := visualizer.WriteCharts(cfg.Output, data)
	if err != nil {
		return nil, err
	}
	for _, chart := range charts {
		log.Infof("Chart %v", chart)
	}
	log.Noticef("Wrote %d charts into %v", len(charts), cfg.Output)
	return charts, nil
}

// usageError marks flag parsing errors as invalid arguments.
func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %v", utils.ErrInvalidConfig, err)
}
