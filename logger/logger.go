// Copyright 2024 Fantom Foundation
// This file is part of prior-plot, the prior sampling and plotting tool.
//
// prior-plot is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// prior-plot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with prior-plot. If not, see <http://www.gnu.org/licenses/>.

// Package logger provides the leveled loggers of the prior commands. Logs go
// to stderr so that tables and data written to stdout stay machine readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// Levels accepted by LogLevelFlag, most severe first.
var Levels = []string{"critical", "error", "warning", "notice", "info", "debug"}

var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   fmt.Sprintf("level of the logging of the command (%v)", strings.Join(Levels, ", ")),
	Value:   "info",
}

const logFormat = "%{time:15:04:05.000} %{color}%{level:-7s}%{color:reset} [%{module}] %{message}"

// Logger reports the progress of a command. Notice marks milestones such as
// a loaded prior or a written figure; Info and Debug carry the details.
type Logger interface {
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

// ParseLevel returns the logging level of a case insensitive level name.
func ParseLevel(level string) (logging.Level, error) {
	lvl, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if err != nil {
		return lvl, fmt.Errorf("unknown log level %q, expected one of %v", level, strings.Join(Levels, ", "))
	}
	return lvl, nil
}

// NewLogger provides a logger for module writing to stderr.
func NewLogger(level string, module string) Logger {
	return NewLoggerTo(os.Stderr, level, module)
}

// NewLoggerTo provides a logger for module writing to w. Unknown levels
// fall back to INFO. Every logger owns its backend, so loggers of different
// commands do not change each other's level or output.
func NewLoggerTo(w io.Writer, level string, module string) Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = logging.INFO
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return log
}

// Elapsed formats a duration as hours, minutes and whole seconds, e.g. "1h 2m 5s".
func Elapsed(d time.Duration) string {
	total := uint64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%dh %dm %ds", total/3600, total%3600/60, total%60)
}
