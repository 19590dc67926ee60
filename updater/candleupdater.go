// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package updater

import (
	"candlechart/cache"
	"candlechart/stockapi"
	"candlechart/stockplot"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const channelBufferSize = 128

// CandleUpdater fetches candles in the background and hands them to the UI goroutine.
// Every request gets a new sequence number, responses to older requests are dropped.
type CandleUpdater struct {
	requester  stockapi.CandleRequester
	cache      cache.CandleCache
	invalidate func()
	cron       *cron.Cron
	// mutex protects current and the request channel, which are also used by the cron job.
	mutex        sync.Mutex
	current      stockapi.SeriesKey
	refreshing   bool
	closed       bool
	seq          atomic.Uint64
	requestChan  chan stockapi.CandlesRequest
	responseChan chan stockapi.QueryCandlesResponse
	resultChan   chan stockapi.QueryCandlesResponse
	terminate    chan struct{}
	terminateWg  sync.WaitGroup
}

// NewCandleUpdater creates an updater. invalidate is called whenever new results are
// available and needs to be safe to call from any goroutine.
func NewCandleUpdater(requester stockapi.CandleRequester, c cache.CandleCache, invalidate func()) *CandleUpdater {
	return &CandleUpdater{
		requester:    requester,
		cache:        c,
		invalidate:   invalidate,
		requestChan:  make(chan stockapi.CandlesRequest, channelBufferSize),
		responseChan: make(chan stockapi.QueryCandlesResponse, channelBufferSize),
		resultChan:   make(chan stockapi.QueryCandlesResponse, channelBufferSize),
		terminate:    make(chan struct{}),
	}
}

// Start runs the requester and, if refreshSeconds is positive, a periodic refresh.
func (u *CandleUpdater) Start(ctx context.Context, refreshSeconds int) error {
	if refreshSeconds > 0 {
		u.cron = cron.New()
		_, err := u.cron.AddFunc(fmt.Sprintf("@every %ds", refreshSeconds), func() {
			log.Debug().Msg("periodic candle refresh")
			u.Refresh()
		})
		if err != nil {
			return fmt.Errorf("register refresh job: %w", err)
		}
	}
	go u.requester.QueryCandles(ctx, u.requestChan, u.responseChan)
	u.terminateWg.Add(1)
	go u.handleResponses()
	if u.cron != nil {
		u.cron.Start()
	}
	return nil
}

func (u *CandleUpdater) handleResponses() {
	defer u.terminateWg.Done()
	for resp := range u.responseChan {
		if resp.Error == nil {
			u.cache.Store(resp.SeriesKey, resp.Data)
		} else if errors.Is(resp.Error, stockapi.ErrNoData) {
			u.cache.Store(resp.SeriesKey, nil)
		}
		select {
		case u.resultChan <- resp:
			u.invalidate()
		case <-u.terminate:
			// Nobody drains results anymore, keep reading until the requester is done.
		}
	}
	log.Debug().Msg("terminating candle response handler")
}

// Request fetches the given series. Results of all earlier requests become stale.
func (u *CandleUpdater) Request(key stockapi.SeriesKey) uint64 {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	u.current = key
	u.refreshing = false
	return u.sendLocked()
}

// Refresh fetches the most recently requested series again.
func (u *CandleUpdater) Refresh() uint64 {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	if len(u.current.Symbol) == 0 {
		return u.seq.Load()
	}
	if !u.closed {
		u.refreshing = true
	}
	return u.sendLocked()
}

func (u *CandleUpdater) sendLocked() uint64 {
	if u.closed {
		return u.seq.Load()
	}
	seq := u.seq.Add(1)
	log.Debug().Stringer("series", u.current).Uint64("seq", seq).Msg("requesting candles")
	u.requestChan <- stockapi.CandlesRequest{Seq: seq, SeriesKey: u.current}
	return seq
}

// Current returns the most recently requested series.
func (u *CandleUpdater) Current() stockapi.SeriesKey {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.current
}

// SwitchSeries shows cached candles of the series right away and requests fresh ones.
// Call from the UI goroutine.
func (u *CandleUpdater) SwitchSeries(v *stockplot.Viewport, key stockapi.SeriesKey) {
	v.SetSeries(key.Symbol, key.Timeframe)
	cached, ok := u.cache.Load(key)
	if ok {
		v.LoadCandles(cached)
	} else {
		v.LoadCandles(nil)
	}
	v.SetStatus(stockplot.LoadingState(fmt.Sprintf("Loading %s...", key.Symbol)))
	u.Request(key)
}

// Drain applies all pending results to the viewport. Call from the UI goroutine.
// Returns true if the viewport has changed.
func (u *CandleUpdater) Drain(v *stockplot.Viewport) bool {
	changed := false
	for {
		select {
		case resp := <-u.resultChan:
			if u.apply(v, resp) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (u *CandleUpdater) latest() (uint64, bool) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.seq.Load(), u.refreshing
}

func (u *CandleUpdater) apply(v *stockplot.Viewport, resp stockapi.QueryCandlesResponse) bool {
	seq, refreshing := u.latest()
	if resp.Seq != seq {
		log.Debug().Stringer("series", resp.SeriesKey).Uint64("seq", resp.Seq).Msg("dropping stale candles")
		return false
	}
	switch {
	case resp.Error == nil && refreshing && v.Symbol() == resp.Symbol && v.Timeframe() == resp.Timeframe:
		// Same series, the horizontal position is kept.
		v.UpdateCandles(resp.Data)
	case resp.Error == nil:
		v.LoadCandles(resp.Data)
	case errors.Is(resp.Error, stockapi.ErrNoData):
		v.LoadCandles(nil)
	default:
		v.SetStatus(stockplot.ErrorState("Connection Error: " + resp.Error.Error()))
	}
	return true
}

// Shutdown stops the periodic refresh and waits until the requester has terminated.
func (u *CandleUpdater) Shutdown() {
	if u.cron != nil {
		<-u.cron.Stop().Done()
	}
	u.mutex.Lock()
	if u.closed {
		u.mutex.Unlock()
		return
	}
	u.closed = true
	close(u.requestChan)
	u.mutex.Unlock()
	close(u.terminate)
	u.terminateWg.Wait()
}
