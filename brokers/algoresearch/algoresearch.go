// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package algoresearch

import (
	"candlechart/config"
	"candlechart/stockapi"
	"candlechart/stockval"
	"candlechart/webclient"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Prices are unmarshalled into decimal.Big and converted once the payload is validated.
type candleEntry struct {
	Time  *int64       `json:"time" validate:"required"`
	Open  *decimal.Big `json:"open" validate:"required"`
	High  *decimal.Big `json:"high" validate:"required"`
	Low   *decimal.Big `json:"low" validate:"required"`
	Close *decimal.Big `json:"close" validate:"required"`
}

type dataResponse struct {
	Ticker    string        `json:"ticker"`
	Timeframe string        `json:"timeframe"`
	Count     int           `json:"count"`
	Data      []candleEntry `json:"data" validate:"required,dive"`
}

type algoResearchRequester struct {
	rateLimiter *webclient.RateLimiter
	apiClient   *http.Client
	retryPolicy webclient.RetryPolicy
	validate    *validator.Validate
	config      config.DataSourceConfig
}

func NewRequester() stockapi.CandleRequester {
	return &algoResearchRequester{
		rateLimiter: webclient.NewRateLimiter(),
		apiClient:   &http.Client{},
		retryPolicy: webclient.NewRetryPolicy(0),
		validate:    validator.New(),
	}
}

func (rq *algoResearchRequester) ReadConfig(c config.Config) error {
	appConfig, err := c.Copy(false)
	if err != nil {
		return err
	}
	rq.config = appConfig.DataSource
	rq.apiClient.Timeout = time.Second * time.Duration(rq.config.DataTimeoutSeconds)
	rq.rateLimiter = webclient.NewManualRateLimiter(time.Second, uint32(rq.config.RateLimitPerSecond))
	rq.retryPolicy = webclient.NewRetryPolicy(rq.config.MaxRetries)
	return nil
}

func (rq *algoResearchRequester) RemainingApiLimit() int {
	return rq.rateLimiter.Remaining()
}

func (rq *algoResearchRequester) QueryCandles(ctx context.Context, request <-chan stockapi.CandlesRequest, response chan<- stockapi.QueryCandlesResponse) {
	defer close(response)

	for req := range request {
		resp := rq.querySeriesCandles(ctx, req)
		if resp.Error != nil && !errors.Is(resp.Error, stockapi.ErrNoData) {
			log.Warn().Err(resp.Error).Stringer("series", req.SeriesKey).Msg("candle query failed")
		}
		response <- resp
	}
	log.Debug().Msg("algoresearch QueryCandles terminating")
}

func (rq *algoResearchRequester) querySeriesCandles(ctx context.Context, req stockapi.CandlesRequest) stockapi.QueryCandlesResponse {
	resp := stockapi.QueryCandlesResponse{Seq: req.Seq, SeriesKey: req.SeriesKey}
	query := make(url.Values)
	query.Add("ticker", req.Symbol)
	query.Add("timeframe", req.Timeframe.String())
	if req.Limit > 0 {
		query.Add("limit", strconv.Itoa(req.Limit))
	}

	var payload dataResponse
	resp.Error = rq.retryPolicy.Run(ctx, func() (bool, error) {
		payload = dataResponse{}
		return rq.fetch(ctx, query, &payload)
	})
	if resp.Error != nil {
		return resp
	}
	if err := rq.validate.Struct(&payload); err != nil {
		resp.Error = fmt.Errorf("invalid candle payload: %w", err)
		return resp
	}
	if len(payload.Data) == 0 {
		resp.Error = stockapi.ErrNoData
		return resp
	}
	resp.Data = lo.Map(payload.Data, func(e candleEntry, _ int) stockval.Candle {
		return mapCandle(e)
	})
	log.Debug().Stringer("series", req.SeriesKey).Int("count", len(resp.Data)).Msg("candles received")
	return resp
}

// fetch runs a single query and reports whether a failure may be retried.
func (rq *algoResearchRequester) fetch(ctx context.Context, query url.Values, payload *dataResponse) (bool, error) {
	resp, err := rq.runRequest(ctx, "/data", query)
	if err != nil {
		// Transport errors are retried, unless the caller gave up.
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	err = webclient.ParseJsonResponse(resp, payload)
	var statusErr *webclient.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return false, stockapi.ErrNoData
		}
		return statusErr.IsServerError(), err
	}
	return false, err
}

func (rq *algoResearchRequester) runRequest(ctx context.Context, cmd string, query url.Values) (*http.Response, error) {
	retry := true
	var resp *http.Response
	for retry {
		err := rq.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rq.config.DataUrl+cmd, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = query.Encode()
		req.Header.Set("Accept", "application/json")

		resp, err = rq.apiClient.Do(req)
		if err != nil {
			return nil, err
		}
		retry, err = rq.rateLimiter.HandleResponse(ctx, resp)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		if retry {
			resp.Body.Close()
		}
	}
	return resp, nil
}

func mapCandle(e candleEntry) stockval.Candle {
	c := stockval.Candle{Time: *e.Time}
	c.Open, _ = e.Open.Float64()
	c.High, _ = e.High.Float64()
	c.Low, _ = e.Low.Float64()
	c.Close, _ = e.Close.Float64()
	return c
}
