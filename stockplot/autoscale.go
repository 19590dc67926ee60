// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/stockval"
	"math"
)

const (
	autoScalePadding     = 0.05
	defaultPriceMin      = 0.0
	defaultPriceMax      = 100.0
	degeneratePriceRange = 1.0
)

// AutoScale returns the padded price bounds of the candles in [first, last].
// Only this slice is considered, so panning and zooming change the vertical scale.
func AutoScale(data []stockval.Candle, first, last int) (minPrice, maxPrice float64) {
	first = max(first, 0)
	last = min(last, len(data)-1)
	if first > last {
		return defaultPriceMin, defaultPriceMax
	}
	minPrice, maxPrice = math.Inf(1), math.Inf(-1)
	for _, c := range data[first : last+1] {
		minPrice = math.Min(minPrice, c.Low)
		maxPrice = math.Max(maxPrice, c.High)
	}
	priceRange := maxPrice - minPrice
	if priceRange <= 0 {
		priceRange = degeneratePriceRange
	}
	padding := priceRange * autoScalePadding
	return minPrice - padding, maxPrice + padding
}

// Index range of candles which are at least partially inside the chart width.
// The result is clamped to the data and may be empty (first > last).
func visibleRange(numCandles int, pixelsPerCandle, pixelOffset, chartWidth float64) (first, last int) {
	first = int(math.Floor(pixelOffset / pixelsPerCandle))
	last = int(math.Ceil((pixelOffset + chartWidth) / pixelsPerCandle))
	return max(first, 0), min(last, numCandles-1)
}
