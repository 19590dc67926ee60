// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package initapp

import (
	"candlechart/brokers/algoresearch"
	"candlechart/cache"
	"candlechart/candles"
	"candlechart/config"
	"candlechart/logging"
	"candlechart/snapshot"
	"candlechart/stockapi"
	"candlechart/stockviz"
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Overrides are taken from the command line. They take precedence over environment
// variables and are not stored.
type Overrides struct {
	Symbol    string
	Timeframe string
	LogLevel  string
}

type InitApp struct {
	overrides   Overrides
	config      config.Config
	requester   stockapi.CandleRequester
	candleCache cache.CandleCache
}

func NewInitApp(c config.Config, lookup func(string) (string, bool), o Overrides) *InitApp {
	overlay := config.NewOverlayConfig(c, func(appConfig *config.AppConfig) error {
		return applyOverrides(appConfig, lookup, o)
	})
	return &InitApp{overrides: o, config: overlay}
}

func applyOverrides(appConfig *config.AppConfig, lookup func(string) (string, bool), o Overrides) error {
	if err := appConfig.ApplyEnv(lookup); err != nil {
		return err
	}
	if len(o.Symbol) > 0 {
		appConfig.Chart.Symbol = o.Symbol
	}
	if len(o.Timeframe) > 0 {
		tf, err := candles.ParseTimeframe(o.Timeframe)
		if err != nil {
			return err
		}
		appConfig.Chart.Timeframe = tf
	}
	if len(o.LogLevel) > 0 {
		appConfig.Log.Level = o.LogLevel
	}
	appConfig.Sanitize()
	return appConfig.Validate()
}

// Initialize reads the configuration, sets up logging and creates the data requester.
func (a *InitApp) Initialize(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	appConfig, err := a.config.Copy(true)
	if err != nil {
		return err
	}
	logLookup := lookup
	if len(a.overrides.LogLevel) > 0 {
		logLookup = func(key string) (string, bool) {
			if key == logging.EnvLogLevel {
				return "", false
			}
			return lookup(key)
		}
	}
	if err = logging.SetupFromConfig(appConfig.Log, logLookup); err != nil {
		return err
	}
	r := algoresearch.NewRequester()
	if err = r.ReadConfig(a.config); err != nil {
		return err
	}
	a.requester = r
	a.candleCache = cache.NewLocalCandleCache(a.config.GetAppName(), time.Duration(appConfig.DataSource.CacheHours)*time.Hour)
	log.Info().
		Str("dataUrl", appConfig.DataSource.DataUrl).
		Str("symbol", appConfig.Chart.Symbol).
		Stringer("timeframe", appConfig.Chart.Timeframe).
		Msg("initialized")
	return nil
}

// Run shows the chart window until it is closed, then terminates the process.
func (a *InitApp) Run(ctx context.Context) {
	s := stockviz.NewStockApp(a.config, a.requester, a.candleCache)
	if err := s.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("app initialization failed")
	}
	s.Run(ctx)

	os.Exit(0)
}

// RunHeadless renders the configured series into a file instead of opening a window.
func (a *InitApp) RunHeadless(ctx context.Context, opts snapshot.HeadlessOptions) error {
	return snapshot.RunHeadless(ctx, a.config, a.requester, a.candleCache, opts)
}
