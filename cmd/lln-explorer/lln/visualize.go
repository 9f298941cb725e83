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
	"github.com/Fantom-foundation/lln-explorer/logger"
	"github.com/Fantom-foundation/lln-explorer/stochastic"
	"github.com/Fantom-foundation/lln-explorer/stochastic/visualizer"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:       visualizeAction,
	Name:         "visualize",
	Usage:        "simulates sample paths and serves charts of their running averages",
	Flags:        append([]cli.Flag{&utils.PortFlag, &logger.LogLevelFlag}, utils.SimulationFlags...),
	OnUsageError: usageError,
	Description: `
The visualize command runs the same simulation as the run command and serves
the charts on http://localhost:<port> until it is cancelled.`,
}

// visualizeAction implements the visualize command.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "LLN-Visualize")

	res, err := stochastic.Run(cfg, log)
	if err != nil {
		return err
	}
	data, err := visualizer.NewChartData(res, cfg.PlotPaths, visualizer.DefaultPoints)
	if err != nil {
		return err
	}

	// fire-up web-server and visualize the run
	port := cfg.Port
	if port == "" {
		port = utils.PortFlag.Value
	}
	log.Noticef("Open web browser with http://localhost:%v", port)
	log.Notice("Cancel visualize with ^C")
	return visualizer.FireUpWeb(data, port)
}
