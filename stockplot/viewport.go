// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/candles"
	"candlechart/stockval"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	minLinearPriceRange = 0.000001
	minLogPriceRange    = 0.0001
)

// Viewport holds the candles and everything which determines how they are shown.
// It is not thread safe, all calls need to be done from the UI goroutine.
type Viewport struct {
	candles         []stockval.Candle
	status          DisplayState
	symbol          string
	timeframe       candles.Timeframe
	location        *time.Location
	pixelsPerCandle float64
	pixelOffset     float64
	autoScale       bool
	logScale        bool
	manualMinPrice  float64
	manualMaxPrice  float64
	width           float64
	height          float64
	// Scrolling to the end needs the widget size, which may not be known yet.
	scrollToEndPending bool
}

// Frame contains the values derived for a single render pass.
type Frame struct {
	dims            dimensions
	proj            projection
	First           int
	Last            int
	MinPriceVisible float64
	MaxPriceVisible float64
	PriceScaleY     float64
}

func NewViewport() *Viewport {
	return &Viewport{
		status:          EmptyState(""),
		timeframe:       candles.OneDay,
		location:        time.Local,
		pixelsPerCandle: DefaultPixelsPerCandle,
		autoScale:       true,
		manualMinPrice:  defaultPriceMin,
		manualMaxPrice:  defaultPriceMax,
	}
}

// LoadCandles replaces all candles. Empty or invalid data is not an error for the caller,
// it results in a status message instead of a chart.
func (v *Viewport) LoadCandles(data []stockval.Candle) {
	if len(data) == 0 {
		v.candles = nil
		v.status = EmptyState("")
		return
	}
	if err := stockval.ValidateCandles(data); err != nil {
		log.Warn().Err(err).Str("symbol", v.symbol).Msg("rejecting candle data")
		v.candles = nil
		v.status = ErrorState(fmt.Sprintf("Invalid data: %v", err))
		return
	}
	v.candles = slices.Clone(data)
	v.status = ReadyState()
	v.ScrollToEnd()
}

// ScrollToEnd shows the most recent candles with a trailing margin.
// If all candles fit, a small negative offset is used instead.
func (v *Viewport) ScrollToEnd() {
	chartWidth := v.width - RightMargin
	if chartWidth <= 0 {
		v.scrollToEndPending = true
		return
	}
	v.scrollToEndPending = false
	v.pixelOffset = v.endOffset(chartWidth)
}

func (v *Viewport) endOffset(chartWidth float64) float64 {
	totalWidth := float64(len(v.candles)) * v.pixelsPerCandle
	if totalWidth > chartWidth {
		return totalWidth - chartWidth + trailingCandles*v.pixelsPerCandle
	}
	return sparseDataOffset
}

// IsAtEnd reports whether the most recent candles are shown the way ScrollToEnd shows them.
func (v *Viewport) IsAtEnd() bool {
	chartWidth := v.width - RightMargin
	if v.scrollToEndPending || chartWidth <= 0 || len(v.candles) == 0 {
		return true
	}
	return math.Abs(v.pixelOffset-v.endOffset(chartWidth)) < 0.5
}

// UpdateCandles replaces the candles of the current series with newer data.
// The horizontal position is kept, unless the view was showing the end of the data.
func (v *Viewport) UpdateCandles(data []stockval.Candle) {
	if len(v.candles) == 0 || v.IsAtEnd() {
		v.LoadCandles(data)
		return
	}
	offset := v.pixelOffset
	v.LoadCandles(data)
	if v.status.Kind == DisplayReady {
		v.pixelOffset = offset
	}
}

// SetStatus shows a loading or error message. Existing candles are kept.
func (v *Viewport) SetStatus(s DisplayState) {
	if s.Kind == DisplayReady && len(v.candles) == 0 {
		s = EmptyState("")
	}
	v.status = s
}

// ClearStatus removes a loading or error message.
func (v *Viewport) ClearStatus() {
	if len(v.candles) > 0 {
		v.status = ReadyState()
	} else {
		v.status = EmptyState("")
	}
}

func (v *Viewport) SetAutoScale(auto bool) {
	v.autoScale = auto
}

func (v *Viewport) SetLogScale(logScale bool) {
	v.logScale = logScale
}

func (v *Viewport) SetManualBounds(minPrice, maxPrice float64) {
	v.autoScale = false
	v.manualMinPrice, v.manualMaxPrice = minPrice, maxPrice
}

// SetSeries sets what is displayed in the legend and how dates are formatted.
func (v *Viewport) SetSeries(symbol string, timeframe candles.Timeframe) {
	v.symbol = symbol
	v.timeframe = timeframe
}

func (v *Viewport) SetLocation(loc *time.Location) {
	v.location = loc
}

func (v *Viewport) Resize(width, height float64) {
	v.width, v.height = width, height
	if v.scrollToEndPending {
		v.ScrollToEnd()
	}
}

func (v *Viewport) Candles() []stockval.Candle { return v.candles }
func (v *Viewport) Status() DisplayState { return v.status }
func (v *Viewport) Symbol() string { return v.symbol }
func (v *Viewport) Timeframe() candles.Timeframe { return v.timeframe }
func (v *Viewport) PixelsPerCandle() float64 { return v.pixelsPerCandle }
func (v *Viewport) PixelOffset() float64 { return v.pixelOffset }
func (v *Viewport) IsAutoScale() bool { return v.autoScale }
func (v *Viewport) IsLogScale() bool { return v.logScale }
func (v *Viewport) Size() (width, height float64) { return v.width, v.height }
func (v *Viewport) ManualBounds() (float64, float64) { return v.manualMinPrice, v.manualMaxPrice }

// Frame derives the visible range and price bounds for the next render pass.
// On auto scale, the computed bounds are stored as manual bounds, so that switching
// to manual scale continues from what was last shown.
func (v *Viewport) Frame() Frame {
	f := Frame{dims: newDimensions(v.width, v.height), First: 0, Last: -1}
	if len(v.candles) == 0 || f.dims.isEmpty() {
		return f
	}
	f.First, f.Last = visibleRange(len(v.candles), v.pixelsPerCandle, v.pixelOffset, f.dims.chartWidth)
	if f.First > f.Last {
		return f
	}
	if v.autoScale {
		v.manualMinPrice, v.manualMaxPrice = AutoScale(v.candles, f.First, f.Last)
	}
	f.proj = newProjection(v.manualMinPrice, v.manualMaxPrice, f.dims.chartHeight, v.logScale, v.pixelsPerCandle, v.pixelOffset)
	f.MinPriceVisible, f.MaxPriceVisible = f.proj.minPrice, f.proj.maxPrice
	f.PriceScaleY = f.proj.priceScaleY()
	return f
}

// IsEmpty is true if nothing besides background and status is rendered.
func (f Frame) IsEmpty() bool {
	return f.First > f.Last
}

// PriceAt converts a y position of the chart area to a price.
func (f Frame) PriceAt(y float64) float64 {
	return f.proj.getPrice(y)
}

// YposAt converts a price to a y position of the chart area.
func (f Frame) YposAt(price float64) float64 {
	return f.proj.getYpos(price)
}

func (f Frame) XposAt(index int) float64 {
	return f.proj.getXpos(index)
}

func (f Frame) IndexAt(x float64) int {
	return f.proj.getIndex(x)
}

// Horizontal zoom keeping the data position below x at x.
func (v *Viewport) zoomAt(factor float64, x float64) bool {
	oldPixelsPerCandle := v.pixelsPerCandle
	newPixelsPerCandle := stockval.Clamp(oldPixelsPerCandle*factor, MinPixelsPerCandle, MaxPixelsPerCandle)
	if newPixelsPerCandle == oldPixelsPerCandle {
		return false
	}
	anchor := (v.pixelOffset + x) / oldPixelsPerCandle
	v.pixelsPerCandle = newPixelsPerCandle
	v.pixelOffset = anchor*newPixelsPerCandle - x
	return true
}

func (v *Viewport) pan(dx float64) {
	v.pixelOffset -= dx
}

// Shift both price bounds by dy pixels of a chart with the given height.
func (v *Viewport) shiftPrice(dy float64, chartHeight float64) {
	if chartHeight <= 0 {
		return
	}
	v.autoScale = false
	minPrice, maxPrice := sanitizeBounds(v.manualMinPrice, v.manualMaxPrice, v.logScale)
	if v.logScale {
		minScale, maxScale := math.Log10(minPrice), math.Log10(maxPrice)
		delta := dy * (maxScale - minScale) / chartHeight
		v.manualMinPrice = math.Pow(10, minScale-delta)
		v.manualMaxPrice = math.Pow(10, maxScale-delta)
	} else {
		delta := dy * (maxPrice - minPrice) / chartHeight
		v.manualMinPrice = minPrice - delta
		v.manualMaxPrice = maxPrice - delta
	}
}

// Multiply the price range by factor around its center.
func (v *Viewport) scalePrice(factor float64) {
	v.autoScale = false
	minPrice, maxPrice := sanitizeBounds(v.manualMinPrice, v.manualMaxPrice, v.logScale)
	if v.logScale {
		minScale, maxScale := math.Log10(minPrice), math.Log10(maxPrice)
		center := (minScale + maxScale) / 2
		halfRange := math.Max((maxScale-minScale)*factor, minLogPriceRange) / 2
		v.manualMinPrice = math.Pow(10, center-halfRange)
		v.manualMaxPrice = math.Pow(10, center+halfRange)
	} else {
		center := (minPrice + maxPrice) / 2
		halfRange := math.Max((maxPrice-minPrice)*factor, minLinearPriceRange) / 2
		v.manualMinPrice = center - halfRange
		v.manualMaxPrice = center + halfRange
	}
}
