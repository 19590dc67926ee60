// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"candlechart/candles"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := NewAppConfig()
	c.Sanitize()
	assert.NoError(t, c.Validate())
	assert.Equal(t, "BTC/USDT", c.Chart.Symbol)
	assert.Equal(t, candles.OneDay, c.Chart.Timeframe)
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	c := NewAppConfig()
	c.DataSource.DataUrl = "not a url"
	assert.Error(t, c.Validate())

	c = NewAppConfig()
	c.Log.Level = "verbose"
	assert.Error(t, c.Validate())

	c = NewAppConfig()
	c.DataSource.MaxRetries = 100
	assert.Error(t, c.Validate())
}

func TestSanitize(t *testing.T) {
	c := NewAppConfig()
	c.Chart.Symbol = " eth/usdt "
	c.Chart.Watchlist = []string{"btc/usdt", "BTC/USDT", "", "spx"}
	c.Chart.Timeframe = candles.Timeframe(100)
	c.Window.Size = image.Point{}
	c.DataSource.DataUrl = ""

	c.Sanitize()

	assert.Equal(t, "ETH/USDT", c.Chart.Symbol)
	assert.Equal(t, []string{"BTC/USDT", "SPX"}, c.Chart.Watchlist)
	assert.Equal(t, candles.OneDay, c.Chart.Timeframe)
	assert.Equal(t, image.Pt(defaultWindowWidth, defaultWindowHeight), c.Window.Size)
	assert.Equal(t, defaultDataSourceConfig.DataUrl, c.DataSource.DataUrl)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataUrl:   "http://localhost:9000/api/v1",
		EnvSymbol:    "sol/usdt",
		EnvTimeframe: "4h",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	c := NewAppConfig()
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, "http://localhost:9000/api/v1", c.DataSource.DataUrl)
	assert.Equal(t, "SOL/USDT", c.Chart.Symbol)
	assert.Equal(t, candles.FourHours, c.Chart.Timeframe)

	env[EnvTimeframe] = "3x"
	assert.Error(t, c.ApplyEnv(lookup))
}

func TestGlobalConfigReadWrite(t *testing.T) {
	dir := t.TempDir()
	g := NewGlobalConfigInDir(dir)

	c, err := g.Lock()
	require.NoError(t, err)
	c.LightTheme = true
	c.Chart.Timeframe = candles.OneMinute
	c.Chart.Watchlist = []string{"AAPL"}
	require.NoError(t, g.Unlock(c, false))

	file, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(file), "fileversion: 1")
	assert.Contains(t, string(file), "timeframe: 1m")
	// Defaults are not stored.
	assert.NotContains(t, string(file), "127.0.0.1")

	reread, err := NewGlobalConfigInDir(dir).Copy(false)
	require.NoError(t, err)
	assert.True(t, reread.LightTheme)
	assert.Equal(t, candles.OneMinute, reread.Chart.Timeframe)
	assert.Equal(t, []string{"AAPL"}, reread.Chart.Watchlist)
	assert.Equal(t, defaultDataSourceConfig.DataUrl, reread.DataSource.DataUrl)
}

func TestGlobalConfigCopyIsIndependent(t *testing.T) {
	g := NewGlobalConfigInDir(t.TempDir())
	c, err := g.Copy(false)
	require.NoError(t, err)
	c.Chart.Watchlist[0] = "changed"

	c2, err := g.Copy(false)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", c2.Chart.Watchlist[0])
}

func TestGlobalConfigNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("fileversion: 99\n"), 0600))
	_, err := NewGlobalConfigInDir(dir).Copy(false)
	assert.Error(t, err)
}

func TestOverlayConfigDoesNotStoreOverrides(t *testing.T) {
	dir := t.TempDir()
	o := NewOverlayConfig(NewGlobalConfigInDir(dir), func(c *AppConfig) error {
		c.DataSource.DataUrl = "http://localhost:9000/api/v1"
		return nil
	})
	assert.Equal(t, AppName, o.GetAppName())

	c, err := o.Copy(false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/v1", c.DataSource.DataUrl)

	stored, err := o.Lock()
	require.NoError(t, err)
	assert.Equal(t, defaultDataSourceConfig.DataUrl, stored.DataSource.DataUrl)
	stored.Chart.Symbol = "ETH/USDT"
	require.NoError(t, o.Unlock(stored, false))

	file, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(file), "ETH/USDT")
	assert.NotContains(t, string(file), "localhost:9000")
}

func TestOverlayConfigError(t *testing.T) {
	o := NewOverlayConfig(NewGlobalConfigInDir(t.TempDir()), func(c *AppConfig) error {
		return c.ApplyEnv(func(key string) (string, bool) {
			return "3x", key == EnvTimeframe
		})
	})
	_, err := o.Copy(false)
	assert.Error(t, err)
}
