// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package cache

import (
	"candlechart/stockapi"
	"candlechart/stockval"
	"slices"

	"github.com/zhangyunhao116/skipmap"
)

// CandleCache keeps the last good candles per series. It is safe for concurrent use.
type CandleCache interface {
	Load(key stockapi.SeriesKey) ([]stockval.Candle, bool)
	Store(key stockapi.SeriesKey, data []stockval.Candle)
}

type memoryCandleCache struct {
	series *skipmap.StringMap[[]stockval.Candle]
}

func NewMemoryCandleCache() CandleCache {
	return &memoryCandleCache{
		series: skipmap.NewString[[]stockval.Candle](),
	}
}

func (c *memoryCandleCache) Load(key stockapi.SeriesKey) ([]stockval.Candle, bool) {
	data, ok := c.series.Load(key.String())
	if !ok {
		return nil, false
	}
	return slices.Clone(data), true
}

func (c *memoryCandleCache) Store(key stockapi.SeriesKey, data []stockval.Candle) {
	if len(data) == 0 {
		c.series.Delete(key.String())
		return
	}
	c.series.Store(key.String(), slices.Clone(data))
}
