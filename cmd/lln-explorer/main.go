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

	"github.com/Fantom-foundation/lln-explorer/cmd/lln-explorer/lln"
	"github.com/Fantom-foundation/lln-explorer/utils"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Exit codes of the application.
const (
	exitSuccess     = 0
	exitInvalidArgs = 1
	exitRuntime     = 2
)

// envFile holds optional LLN_* settings loaded before the flags are parsed.
const envFile = ".env"

// initLLNApp initializes a lln-explorer app. This function is
// called by the main function and unit tests.
func initLLNApp() *cli.App {
	return &cli.App{
		Name:      "LLN Explorer",
		HelpName:  "lln-explorer",
		Usage:     "explores the law of large numbers with Monte Carlo simulations",
		Copyright: "(c) 2024 Fantom Foundation",
		Version:   utils.GitCommit,
		Flags:     []cli.Flag{},
		Commands: []*cli.Command{
			&lln.RunCommand,
			&lln.VisualizeCommand,
		},
		Action: rootAction,
		// usage errors of the cli parser are invalid arguments
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %v", utils.ErrInvalidConfig, err)
		},
		// errors are mapped to exit codes by run; cli must not exit the process
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// rootAction runs when no command matches: without arguments it shows the
// help, otherwise the first argument is an unknown command.
func rootAction(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return cli.ShowAppHelp(ctx)
	}
	return fmt.Errorf("%w: unknown command %q", utils.ErrInvalidConfig, ctx.Args().First())
}

// loadEnv loads the environment file if it exists.
func loadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: cannot load %v; %v", utils.ErrInvalidConfig, path, err)
	}
	return nil
}

// exitCode maps the error of a run to the exit code of the process.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, utils.ErrInvalidConfig):
		return exitInvalidArgs
	case errors.As(err, new(cli.ExitCoder)):
		// raised by the cli help for unknown topics
		return exitInvalidArgs
	default:
		return exitRuntime
	}
}

// run executes the app and returns the exit code.
func run(args []string) int {
	err := loadEnv(envFile)
	if err == nil {
		err = initLLNApp().Run(args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return exitCode(err)
}

// main implements "lln-explorer" cli application.
func main() {
	os.Exit(run(os.Args))
}
