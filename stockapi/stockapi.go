// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockapi

import (
	"candlechart/candles"
	"candlechart/config"
	"candlechart/stockval"
	"context"
	"errors"
)

// ErrNoData is returned if the data source has no candles for a series.
var ErrNoData = errors.New("no data")

// A series is identified by its symbol and timeframe.
type SeriesKey struct {
	Symbol    string
	Timeframe candles.Timeframe
}

type CandlesRequest struct {
	// Sequence number, responses carry the number of their request.
	Seq uint64
	SeriesKey
	// Maximum number of candles, zero means the server default.
	Limit int
}

type QueryCandlesResponse struct {
	Seq uint64
	SeriesKey
	Error error
	Data  []stockval.Candle
}

type CandleRequester interface {
	ReadConfig(c config.Config) error
	// QueryCandles answers requests until the request channel is closed, then closes response.
	QueryCandles(ctx context.Context, request <-chan CandlesRequest, response chan<- QueryCandlesResponse)
	// Number of requests which can be sent right now without being throttled.
	RemainingApiLimit() int
}

func (k SeriesKey) String() string {
	return k.Symbol + "@" + k.Timeframe.String()
}
