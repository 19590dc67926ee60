// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"bytes"
	"candlechart/config"
	"candlechart/stockval"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SyncBuffer is a bytes.Buffer which may be written from several goroutines.
type SyncBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}

// CaptureLog redirects the global logger for the duration of the test.
func CaptureLog(t *testing.T) *SyncBuffer {
	buf := &SyncBuffer{}
	logger := log.Logger
	log.Logger = zerolog.New(buf)
	t.Cleanup(func() { log.Logger = logger })
	return buf
}

// NewDataSourceConfig returns a test configuration which uses the given data url without retry delays.
func NewDataSourceConfig(dataUrl string, maxRetries int) config.Config {
	c := NewTestConfig()
	appConfig, _ := c.Lock()
	appConfig.DataSource.DataUrl = dataUrl
	appConfig.DataSource.MaxRetries = maxRetries
	_ = c.Unlock(appConfig, true)
	return c
}

// NewCandles returns n valid daily candles starting at startTime.
func NewCandles(startTime int64, n int) []stockval.Candle {
	data := make([]stockval.Candle, n)
	for i := range data {
		base := 100 + float64(i%10)
		data[i] = stockval.Candle{
			Time:  startTime + int64(i)*86400,
			Open:  base,
			High:  base + 2,
			Low:   base - 2,
			Close: base + 1,
		}
	}
	return data
}
