// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package snapshot

import (
	"bytes"
	"candlechart/cache"
	"candlechart/candles"
	"candlechart/config"
	"candlechart/mock"
	"candlechart/stockapi"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var btcKey = stockapi.SeriesKey{Symbol: "BTC/USDT", Timeframe: candles.OneDay}

func TestParseManualBounds(t *testing.T) {
	minPrice, maxPrice, err := ParseManualBounds("100:250.5")
	require.NoError(t, err)
	assert.Equal(t, 100.0, minPrice)
	assert.Equal(t, 250.5, maxPrice)

	minPrice, maxPrice, err = ParseManualBounds(" -1 : 1 ")
	require.NoError(t, err)
	assert.Equal(t, -1.0, minPrice)
	assert.Equal(t, 1.0, maxPrice)

	for _, invalid := range []string{"", "100", "a:1", "1:b", "5:5", "10:1"} {
		_, _, err = ParseManualBounds(invalid)
		assert.Error(t, err, invalid)
	}
}

func newHeadlessConfig(t *testing.T) config.Config {
	c := mock.NewTestConfig()
	appConfig, err := c.Lock()
	require.NoError(t, err)
	appConfig.Window.Size.X = 320
	appConfig.Window.Size.Y = 240
	require.NoError(t, c.Unlock(appConfig, false))
	return c
}

func TestRunHeadless(t *testing.T) {
	r := mock.NewTestRequester()
	r.SetData(btcKey, newThreeCandles())
	candleCache := cache.NewMemoryCandleCache()
	fileName := filepath.Join(t.TempDir(), "chart.png")
	var table bytes.Buffer

	err := RunHeadless(context.Background(), newHeadlessConfig(t), r, candleCache, HeadlessOptions{
		FileName: fileName,
		Table:    true,
		Out:      &table,
	})
	require.NoError(t, err)

	file, err := os.Open(fileName)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)

	assert.Contains(t, table.String(), "TIME")
	assert.Contains(t, table.String(), "11.00")

	cached, ok := candleCache.Load(btcKey)
	require.True(t, ok)
	assert.Len(t, cached, 3)
}

func TestRunHeadlessSize(t *testing.T) {
	r := mock.NewTestRequester()
	r.SetData(btcKey, newThreeCandles())
	fileName := filepath.Join(t.TempDir(), "chart.png")

	err := RunHeadless(context.Background(), newHeadlessConfig(t), r, cache.NewMemoryCandleCache(), HeadlessOptions{
		FileName:     fileName,
		Width:        200,
		Height:       100,
		ManualBounds: "5:20",
	})
	require.NoError(t, err)

	file, err := os.Open(fileName)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestRunHeadlessNoData(t *testing.T) {
	var table bytes.Buffer
	err := RunHeadless(context.Background(), newHeadlessConfig(t), mock.NewTestRequester(), cache.NewMemoryCandleCache(), HeadlessOptions{
		Table: true,
		Out:   &table,
	})
	assert.NoError(t, err)
	assert.Contains(t, table.String(), "TIME")
}

func TestRunHeadlessError(t *testing.T) {
	r := mock.NewTestRequester()
	r.SetError(btcKey, errors.New("connection refused"))
	fileName := filepath.Join(t.TempDir(), "chart.png")

	err := RunHeadless(context.Background(), newHeadlessConfig(t), r, cache.NewMemoryCandleCache(), HeadlessOptions{
		FileName: fileName,
	})
	assert.EqualError(t, err, "connection refused")
	// The error is shown in the image.
	assert.FileExists(t, fileName)
}

func TestRunHeadlessInvalidBounds(t *testing.T) {
	err := RunHeadless(context.Background(), newHeadlessConfig(t), mock.NewTestRequester(), cache.NewMemoryCandleCache(), HeadlessOptions{
		ManualBounds: "x",
	})
	assert.Error(t, err)
}
