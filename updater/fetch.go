// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package updater

import (
	"candlechart/stockapi"
	"candlechart/stockval"
	"context"
)

// FetchCandles queries a single series and waits for the result.
func FetchCandles(ctx context.Context, requester stockapi.CandleRequester, key stockapi.SeriesKey) ([]stockval.Candle, error) {
	requestChan := make(chan stockapi.CandlesRequest, 1)
	responseChan := make(chan stockapi.QueryCandlesResponse, 1)
	go requester.QueryCandles(ctx, requestChan, responseChan)
	requestChan <- stockapi.CandlesRequest{Seq: 1, SeriesKey: key}
	close(requestChan)

	resp, ok := <-responseChan
	if !ok {
		return nil, ctx.Err()
	}
	// Wait for the requester to terminate.
	for range responseChan {
	}
	return resp.Data, resp.Error
}
