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

package logger

//go:generate mockgen -source logger.go -destination logger_mocks.go -package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// Levels lists the accepted values of the log flag, most severe first.
var Levels = []string{"critical", "error", "warning", "notice", "info", "debug"}

// ErrUnknownLevel is returned for log levels not listed in Levels.
var ErrUnknownLevel = errors.New("unknown log level")

var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   fmt.Sprintf("level of the run log (%s)", strings.Join(Levels, ", ")),
	Value:   "info",
	EnvVars: []string{"LLN_LOG"},
}

// logFormat prints the module name, i.e. the command or component of the pipeline.
const logFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{module}%{color:reset}: %{message}"

// Logger is the logging surface of the pipeline components.
// Warning is used for runs that are legal but expensive (large path matrices),
// Notice for pipeline milestones and Info for periodic progress.
type Logger interface {
	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Warning(args ...interface{})
	Warningf(format string, args ...interface{})

	Notice(args ...interface{})
	Noticef(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
}

// ParseLevel converts a log flag value into a go-logging level.
// An empty value selects INFO.
func ParseLevel(level string) (logging.Level, error) {
	if strings.TrimSpace(level) == "" {
		return logging.INFO, nil
	}
	lvl, err := logging.LogLevel(strings.TrimSpace(level))
	if err != nil {
		return logging.INFO, fmt.Errorf("%w %q; expected one of %s", ErrUnknownLevel, level, strings.Join(Levels, ", "))
	}
	return lvl, nil
}

// NewLogger returns a logger for module writing to the standard output.
func NewLogger(level string, module string) *logging.Logger {
	return NewLoggerTo(os.Stdout, level, module)
}

// NewLoggerTo returns a logger for module writing to w.
// Unknown levels fall back to INFO; validated configurations never carry one.
func NewLoggerTo(w io.Writer, level string, module string) *logging.Logger {
	lvl, _ := ParseLevel(level)

	formatted := logging.NewBackendFormatter(
		logging.NewLogBackend(w, "", 0),
		logging.MustStringFormatter(logFormat),
	)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")

	logging.SetBackend(leveled)
	return logging.MustGetLogger(module)
}

// ParseTime splits an elapsed time, rounded to seconds, into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	return total / 3600, total / 60 % 60, total % 60
}

// FormatElapsed renders an elapsed time as h:mm:ss.
func FormatElapsed(elapsed time.Duration) string {
	hours, minutes, seconds := ParseTime(elapsed)
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
