// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"candlechart/config"
	"candlechart/initapp"
	"candlechart/snapshot"
	"context"
	"flag"
	"os"

	"gioui.org/app"
	"github.com/rs/zerolog/log"
)

func main() {
	snapshotFile := flag.String("snapshot", "", "render a PNG `file` instead of opening a window")
	table := flag.Bool("table", false, "print the candles as table (headless)")
	symbol := flag.String("symbol", "", "symbol to show, e.g. BTC/USDT")
	timeframe := flag.String("timeframe", "", "timeframe to show, e.g. 1d or 4h")
	width := flag.Int("width", 0, "snapshot width in pixels")
	height := flag.Int("height", 0, "snapshot height in pixels")
	logLevel := flag.String("log", "", "log level (trace, debug, info, warn, error)")
	manual := flag.String("manual", "", "fixed snapshot price range `min:max`")
	flag.Parse()

	c := config.NewGlobalConfig()
	a := initapp.NewInitApp(c, os.LookupEnv, initapp.Overrides{
		Symbol:    *symbol,
		Timeframe: *timeframe,
		LogLevel:  *logLevel,
	})
	if err := a.Initialize(os.LookupEnv); err != nil {
		log.Fatal().Err(err).Msg("initialization failed")
	}

	if len(*snapshotFile) > 0 || *table {
		err := a.RunHeadless(context.Background(), snapshot.HeadlessOptions{
			FileName:     *snapshotFile,
			Table:        *table,
			Out:          os.Stdout,
			Width:        *width,
			Height:       *height,
			ManualBounds: *manual,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("snapshot failed")
		}
		return
	}

	go a.Run(context.Background())
	app.Main()
}
