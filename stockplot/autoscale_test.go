// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/stockval"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newWaveCandles(n int) []stockval.Candle {
	data := make([]stockval.Candle, n)
	for i := range data {
		base := 100 + 30*math.Sin(float64(i)/7)
		data[i] = stockval.Candle{
			Time:  testStartTime + int64(i)*86400,
			Open:  base,
			High:  base + 2 + float64(i%5),
			Low:   base - 1 - float64(i%3),
			Close: base + 1,
		}
	}
	return data
}

func TestAutoScaleEmpty(t *testing.T) {
	minPrice, maxPrice := AutoScale(nil, 0, -1)
	assert.Equal(t, defaultPriceMin, minPrice)
	assert.Equal(t, defaultPriceMax, maxPrice)

	minPrice, maxPrice = AutoScale(newWaveCandles(3), 2, 1)
	assert.Equal(t, defaultPriceMin, minPrice)
	assert.Equal(t, defaultPriceMax, maxPrice)
}

func TestAutoScaleDegenerateRange(t *testing.T) {
	data := []stockval.Candle{{Time: testStartTime, Open: 5, High: 5, Low: 5, Close: 5}}
	minPrice, maxPrice := AutoScale(data, 0, 0)
	assert.InDelta(t, 4.95, minPrice, 1e-9)
	assert.InDelta(t, 5.05, maxPrice, 1e-9)
}

func TestAutoScaleContainsVisibleCandles(t *testing.T) {
	data := newWaveCandles(200)
	for _, r := range [][2]int{{0, 199}, {10, 40}, {150, 150}, {-5, 500}} {
		minPrice, maxPrice := AutoScale(data, r[0], r[1])
		for i := max(r[0], 0); i <= min(r[1], len(data)-1); i++ {
			assert.GreaterOrEqual(t, data[i].Low, minPrice)
			assert.LessOrEqual(t, data[i].High, maxPrice)
		}
	}
}

func TestAutoScaleOnlyUsesSlice(t *testing.T) {
	data := []stockval.Candle{
		{Time: testStartTime, Open: 100, High: 200, Low: 50, Close: 150},
		{Time: testStartTime + 86400, Open: 10, High: 12, Low: 9, Close: 11},
	}
	minPrice, maxPrice := AutoScale(data, 1, 1)
	assert.InDelta(t, 8.85, minPrice, 1e-9)
	assert.InDelta(t, 12.15, maxPrice, 1e-9)
}

func TestVisibleRange(t *testing.T) {
	first, last := visibleRange(3, 10, -50, 500)
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, last)

	first, last = visibleRange(100, 10, 550, 500)
	assert.Equal(t, 55, first)
	assert.Equal(t, 99, last)

	first, last = visibleRange(100, 10, 5, 100)
	assert.Equal(t, 0, first)
	assert.Equal(t, 11, last)

	// Scrolled beyond the data.
	first, last = visibleRange(10, 10, 2000, 500)
	assert.Greater(t, first, last)
}
