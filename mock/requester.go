// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"candlechart/config"
	"candlechart/stockapi"
	"candlechart/stockval"
	"context"
	"math"
	"slices"
	"sync"
)

// TestRequester answers candle requests with canned data.
// Series without data result in stockapi.ErrNoData, unless an error is set.
type TestRequester struct {
	mutex    sync.Mutex
	data     map[stockapi.SeriesKey][]stockval.Candle
	errors   map[stockapi.SeriesKey]error
	requests []stockapi.CandlesRequest
	// If set, each request waits until a value is received.
	Gate chan struct{}
	// Reported by RemainingApiLimit.
	ApiLimit int
}

func NewTestRequester() *TestRequester {
	return &TestRequester{
		data:     make(map[stockapi.SeriesKey][]stockval.Candle),
		errors:   make(map[stockapi.SeriesKey]error),
		ApiLimit: math.MaxInt,
	}
}

func (r *TestRequester) SetData(key stockapi.SeriesKey, data []stockval.Candle) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.data[key] = data
	delete(r.errors, key)
}

func (r *TestRequester) SetError(key stockapi.SeriesKey, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.errors[key] = err
}

func (r *TestRequester) Requests() []stockapi.CandlesRequest {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return slices.Clone(r.requests)
}

func (r *TestRequester) ReadConfig(c config.Config) error {
	return nil
}

func (r *TestRequester) RemainingApiLimit() int {
	return r.ApiLimit
}

func (r *TestRequester) QueryCandles(ctx context.Context, request <-chan stockapi.CandlesRequest, response chan<- stockapi.QueryCandlesResponse) {
	defer close(response)

	for req := range request {
		if r.Gate != nil {
			select {
			case <-r.Gate:
			case <-ctx.Done():
			}
		}
		response <- r.answer(req)
	}
}

func (r *TestRequester) answer(req stockapi.CandlesRequest) stockapi.QueryCandlesResponse {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.requests = append(r.requests, req)
	resp := stockapi.QueryCandlesResponse{Seq: req.Seq, SeriesKey: req.SeriesKey}
	if err, ok := r.errors[req.SeriesKey]; ok {
		resp.Error = err
	} else if data, ok := r.data[req.SeriesKey]; ok {
		resp.Data = slices.Clone(data)
	} else {
		resp.Error = stockapi.ErrNoData
	}
	return resp
}
