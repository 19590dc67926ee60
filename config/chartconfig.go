// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"candlechart/candles"
	"candlechart/stockval"

	"github.com/samber/lo"
)

const defaultRefreshSeconds = 20

type ChartConfig struct {
	Symbol    string `validate:"required"`
	Timeframe candles.Timeframe
	Watchlist []string `yaml:",omitempty" validate:"dive,required"`
	// Zero disables periodic refresh.
	RefreshSeconds int  `validate:"gte=0,lte=86400"`
	LogScale       bool `yaml:",omitempty"`
}

func NewChartConfig() ChartConfig {
	return ChartConfig{
		Symbol:         "BTC/USDT",
		Timeframe:      candles.OneDay,
		Watchlist:      []string{"BTC/USDT", "ETH/USDT", "SPX"},
		RefreshSeconds: defaultRefreshSeconds,
	}
}

func (c *ChartConfig) sanitize() {
	c.Symbol = stockval.NormalizeSymbol(c.Symbol)
	if len(c.Symbol) == 0 {
		c.Symbol = NewChartConfig().Symbol
	}
	if !c.Timeframe.IsValid() {
		c.Timeframe = candles.OneDay
	}
	watchlist := lo.Map(c.Watchlist, func(s string, _ int) string {
		return stockval.NormalizeSymbol(s)
	})
	c.Watchlist = lo.Uniq(lo.Compact(watchlist))
	if c.RefreshSeconds < 0 {
		c.RefreshSeconds = 0
	}
}
