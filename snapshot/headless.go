// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package snapshot

import (
	"candlechart/cache"
	"candlechart/config"
	"candlechart/stockapi"
	"candlechart/stockplot"
	"candlechart/updater"
	"candlechart/widgets"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type HeadlessOptions struct {
	// PNG output file, no image is written if empty.
	FileName string
	// Print the candles as table to Out.
	Table bool
	Out   io.Writer
	// Image size, zero means window size from the configuration.
	Width  int
	Height int
	// Fixed price range "min:max", auto scale if empty.
	ManualBounds string
}

// ParseManualBounds parses a price range like "100:250.5".
func ParseManualBounds(s string) (float64, float64, error) {
	minText, maxText, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, fmt.Errorf("invalid price range %q, expected min:max", s)
	}
	minPrice, err := strconv.ParseFloat(strings.TrimSpace(minText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minimum price: %w", err)
	}
	maxPrice, err := strconv.ParseFloat(strings.TrimSpace(maxText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid maximum price: %w", err)
	}
	if maxPrice <= minPrice {
		return 0, 0, fmt.Errorf("invalid price range %q, maximum needs to be larger than minimum", s)
	}
	return minPrice, maxPrice, nil
}

// RunHeadless fetches the configured series once and renders it without opening a window.
// Fetch errors are shown in the image and returned afterwards.
func RunHeadless(ctx context.Context, c config.Config, requester stockapi.CandleRequester,
	candleCache cache.CandleCache, opts HeadlessOptions) error {
	appConfig, err := c.Copy(false)
	if err != nil {
		return err
	}
	v := stockplot.NewViewport()
	v.SetSeries(appConfig.Chart.Symbol, appConfig.Chart.Timeframe)
	v.SetLogScale(appConfig.Chart.LogScale)
	if len(opts.ManualBounds) > 0 {
		minPrice, maxPrice, err := ParseManualBounds(opts.ManualBounds)
		if err != nil {
			return err
		}
		v.SetManualBounds(minPrice, maxPrice)
	}

	key := stockapi.SeriesKey{Symbol: appConfig.Chart.Symbol, Timeframe: appConfig.Chart.Timeframe}
	data, fetchErr := updater.FetchCandles(ctx, requester, key)
	switch {
	case fetchErr == nil:
		v.LoadCandles(data)
		candleCache.Store(key, data)
	case errors.Is(fetchErr, stockapi.ErrNoData):
		fetchErr = nil
	default:
		v.SetStatus(stockplot.ErrorState("Connection Error: " + fetchErr.Error()))
	}

	if opts.Table && opts.Out != nil {
		WriteTable(opts.Out, v.Candles(), appConfig.Chart.Timeframe, time.Local)
	}
	if len(opts.FileName) > 0 {
		width, height := opts.Width, opts.Height
		if width <= 0 || height <= 0 {
			width, height = appConfig.Window.Size.X, appConfig.Window.Size.Y
		}
		theme := widgets.NewDarkPlotTheme()
		if appConfig.LightTheme {
			theme = widgets.NewLightPlotTheme()
		}
		img := Render(v, theme, width, height)
		if err = WritePNGFile(opts.FileName, img); err != nil {
			return err
		}
		log.Info().Str("file", opts.FileName).Int("candles", len(v.Candles())).Msg("snapshot written")
	}
	return fetchErr
}
