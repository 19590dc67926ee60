// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"candlechart/candles"
	"fmt"
	"os"

	"github.com/barkimedes/go-deepcopy"
	"github.com/go-playground/validator/v10"
)

const (
	EnvDataUrl   = "CANDLECHART_DATA_URL"
	EnvSymbol    = "CANDLECHART_SYMBOL"
	EnvTimeframe = "CANDLECHART_TIMEFRAME"
)

type AppConfig struct {
	LightTheme bool `yaml:",omitempty"`
	DataSource DataSourceConfig
	Chart      ChartConfig
	Window     WindowConfig
	Log        LogConfig
}

type DataSourceConfig struct {
	DataUrl            string `yaml:",omitempty" validate:"required,url"`
	DataTimeoutSeconds int    `yaml:",omitempty" validate:"gte=1,lte=300"`
	// Zero means unlimited.
	RateLimitPerSecond int `yaml:",omitempty" validate:"gte=0"`
	// Retries after transport errors or server errors.
	MaxRetries int `validate:"gte=0,lte=10"`
	// How long a cached series stays on disk.
	CacheHours int `validate:"gte=0"`
}

type LogConfig struct {
	Level      string `yaml:",omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	TimeFormat string `yaml:",omitempty"`
	Colored    bool   `yaml:",omitempty"`
	Json       bool   `yaml:",omitempty"`
}

var defaultDataSourceConfig = NewDataSourceConfig()

var validate = validator.New()

func NewAppConfig() AppConfig {
	return AppConfig{
		DataSource: NewDataSourceConfig(),
		Chart:      NewChartConfig(),
		Window:     NewWindowConfig(),
		Log:        NewLogConfig(),
	}
}

func NewDataSourceConfig() DataSourceConfig {
	return DataSourceConfig{
		DataUrl:            "http://127.0.0.1:8000/api/v1",
		DataTimeoutSeconds: 10,
		MaxRetries:         2,
		CacheHours:         12,
	}
}

func NewLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		TimeFormat: "15:04:05",
		Colored:    true,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	a.RestoreDefaults()
	if a.DataSource.DataTimeoutSeconds <= 0 {
		a.DataSource.DataTimeoutSeconds = defaultDataSourceConfig.DataTimeoutSeconds
	}
	if a.DataSource.RateLimitPerSecond < 0 {
		a.DataSource.RateLimitPerSecond = 0
	}
	if a.DataSource.MaxRetries < 0 {
		a.DataSource.MaxRetries = 0
	}
	a.Chart.sanitize()
	a.Window.sanitize()
}

// Validate returns an error describing all invalid settings.
func (a *AppConfig) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings with environment variables, if set.
// Overrides are not meant to be stored.
func (a *AppConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvDataUrl); ok && len(v) > 0 {
		a.DataSource.DataUrl = v
	}
	if v, ok := lookup(EnvSymbol); ok && len(v) > 0 {
		a.Chart.Symbol = v
	}
	if v, ok := lookup(EnvTimeframe); ok && len(v) > 0 {
		tf, err := candles.ParseTimeframe(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeframe, err)
		}
		a.Chart.Timeframe = tf
	}
	a.Chart.sanitize()
	return nil
}

// We do not want to store certain default values in the configuration file,
// in order to avoid having to patch them.
func (a *AppConfig) RemoveDefaults() {
	if a.DataSource.DataUrl == defaultDataSourceConfig.DataUrl {
		a.DataSource.DataUrl = ""
	}
	if a.DataSource.DataTimeoutSeconds == defaultDataSourceConfig.DataTimeoutSeconds {
		a.DataSource.DataTimeoutSeconds = 0
	}
}

// Restore certain default values which are not stored in the configuration file.
func (a *AppConfig) RestoreDefaults() {
	if len(a.DataSource.DataUrl) == 0 {
		a.DataSource.DataUrl = defaultDataSourceConfig.DataUrl
	}
	if a.DataSource.DataTimeoutSeconds == 0 {
		a.DataSource.DataTimeoutSeconds = defaultDataSourceConfig.DataTimeoutSeconds
	}
}
