// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
)

// Smallest price used with a logarithmic scale.
const logScaleEpsilon = 0.0001

// Projection between data space (candle index, price) and pixels of the chart area.
// Prices are mapped in "scale space", which is either the price itself or its log10.
type projection struct {
	height          float64
	logScale        bool
	minPrice        float64
	maxPrice        float64
	minScale        float64
	maxScale        float64
	pixelsPerCandle float64
	pixelOffset     float64
}

// sanitizeBounds floors the lower bound on log scale and replaces a collapsed range
// by a nominal range of 1, which is one decade on log scale.
func sanitizeBounds(minPrice, maxPrice float64, logScale bool) (float64, float64) {
	if logScale && !(minPrice > 0) {
		minPrice = logScaleEpsilon
	}
	if !(maxPrice > minPrice) {
		if logScale {
			maxPrice = minPrice * 10
		} else {
			maxPrice = minPrice + 1
		}
	}
	return minPrice, maxPrice
}

func newProjection(minPrice, maxPrice, height float64, logScale bool, pixelsPerCandle, pixelOffset float64) projection {
	minPrice, maxPrice = sanitizeBounds(minPrice, maxPrice, logScale)
	p := projection{
		height:          height,
		logScale:        logScale,
		minPrice:        minPrice,
		maxPrice:        maxPrice,
		pixelsPerCandle: pixelsPerCandle,
		pixelOffset:     pixelOffset,
	}
	p.minScale = p.toScale(minPrice)
	p.maxScale = p.toScale(maxPrice)
	return p
}

func (p projection) toScale(price float64) float64 {
	if p.logScale {
		return math.Log10(math.Max(price, logScaleEpsilon))
	}
	return price
}

func (p projection) fromScale(v float64) float64 {
	if p.logScale {
		return math.Pow(10, v)
	}
	return v
}

// Pixels per scale unit.
func (p projection) priceScaleY() float64 {
	return p.height / (p.maxScale - p.minScale)
}

func (p projection) getYpos(price float64) float64 {
	return p.height - (p.toScale(price)-p.minScale)*p.priceScaleY()
}

func (p projection) getPrice(y float64) float64 {
	return p.fromScale(p.minScale + (p.height-y)/p.priceScaleY())
}

// Center of candle i.
func (p projection) getXpos(i int) float64 {
	return float64(i)*p.pixelsPerCandle - p.pixelOffset + p.pixelsPerCandle/2
}

func (p projection) getIndex(x float64) int {
	return int(math.Floor((x + p.pixelOffset) / p.pixelsPerCandle))
}

// getCandleIndex returns the candle at x, if there is one.
func (p projection) getCandleIndex(x float64, numCandles int) (int, bool) {
	i := p.getIndex(x)
	return i, i >= 0 && i < numCandles
}

func (p projection) getClampedIndex(x float64, numCandles int) int {
	return max(0, min(p.getIndex(x), numCandles-1))
}
