// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package cache

import (
	"candlechart/stockapi"
	"candlechart/stockval"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"time"

	"github.com/lotodore/localcache"
	"github.com/rs/zerolog/log"
)

var invalidFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._@-]`)

type cachedSeries struct {
	Symbol    string
	Timeframe string
	Candles   []stockval.Candle
}

// Disk backed cache with an in-memory layer in front.
type localCandleCache struct {
	memory CandleCache
	data   *localcache.Cache
	maxAge time.Duration
}

// NewLocalCandleCache stores series below the user cache directory in appName/candles.
// Files older than maxAge are purged when read. If the cache directory is not available,
// an in-memory cache is returned.
func NewLocalCandleCache(appName string, maxAge time.Duration) CandleCache {
	data, err := localcache.New(filepath.Join(appName, "candles"))
	if err != nil {
		log.Error().Err(err).Msg("error initializing candle cache, using memory only")
		return NewMemoryCandleCache()
	}
	return &localCandleCache{
		memory: NewMemoryCandleCache(),
		data:   data,
		maxAge: maxAge,
	}
}

func cacheFileName(key stockapi.SeriesKey) string {
	return invalidFileNameChars.ReplaceAllString(key.String(), "_") + ".json"
}

func (c *localCandleCache) Load(key stockapi.SeriesKey) ([]stockval.Candle, bool) {
	if data, ok := c.memory.Load(key); ok {
		return data, true
	}
	fileName := cacheFileName(key)
	if c.maxAge > 0 {
		if err := c.data.PurgeKey(fileName, c.maxAge); err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("error purging cache, candle data may be outdated")
		}
	}
	raw, err := c.data.ReadFile(fileName)
	if err != nil {
		return nil, false
	}
	var series cachedSeries
	err = json.Unmarshal(raw, &series)
	if err == nil {
		err = stockval.ValidateCandles(series.Candles)
	}
	if err != nil || series.Symbol != key.Symbol || len(series.Candles) == 0 {
		log.Warn().Err(err).Str("file", fileName).Msg("candle cache contains invalid data")
		if err := c.data.Remove(fileName); err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("error deleting cache, candle data may be invalid")
		}
		return nil, false
	}
	c.memory.Store(key, series.Candles)
	return series.Candles, true
}

func (c *localCandleCache) Store(key stockapi.SeriesKey, data []stockval.Candle) {
	c.memory.Store(key, data)
	if len(data) == 0 {
		if err := c.data.Remove(cacheFileName(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Stringer("series", key).Msg("error deleting candle cache")
		}
		return
	}
	raw, err := json.Marshal(&cachedSeries{
		Symbol:    key.Symbol,
		Timeframe: key.Timeframe.String(),
		Candles:   data,
	})
	if err != nil {
		log.Error().Err(err).Msg("error encoding candle cache")
		return
	}
	if err = c.data.WriteFile(cacheFileName(key), raw); err != nil {
		log.Warn().Err(err).Stringer("series", key).Msg("error writing candle cache")
	}
}
