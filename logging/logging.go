// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package logging

import (
	"candlechart/config"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel      = "CANDLECHART_LOG_LEVEL"
	EnvLogTimeFormat = "CANDLECHART_LOG_TIME_FORMAT"
	EnvLogColored    = "CANDLECHART_LOG_COLORED"
	EnvLogJson       = "CANDLECHART_LOG_JSON"
)

// Setup configures the global zerolog logger and level.
// With jsonFormat, plain json lines are written, otherwise a console writer is used.
func Setup(out io.Writer, level, timeFormat string, colored, jsonFormat bool) error {
	logLevel := zerolog.InfoLevel
	if len(level) > 0 {
		var err error
		logLevel, err = zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	zerolog.SetGlobalLevel(logLevel)

	if jsonFormat {
		if len(timeFormat) > 0 {
			zerolog.TimeFieldFormat = timeFormat
		}
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return nil
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !colored,
		TimeFormat: timeFormat,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

// SetupFromConfig applies the log configuration, with environment variables taking precedence.
func SetupFromConfig(c config.LogConfig, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvLogLevel); ok && len(v) > 0 {
		c.Level = v
	}
	if v, ok := lookup(EnvLogTimeFormat); ok && len(v) > 0 {
		c.TimeFormat = v
	}
	if v, ok := lookup(EnvLogColored); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Colored = b
		}
	}
	if v, ok := lookup(EnvLogJson); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Json = b
		}
	}
	return Setup(os.Stderr, c.Level, c.TimeFormat, c.Colored, c.Json)
}
