// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

const (
	RightMargin  = 60.0
	BottomMargin = 25.0

	MinPixelsPerCandle     = 1.0
	MaxPixelsPerCandle     = 100.0
	DefaultPixelsPerCandle = 10.0
)

const (
	defaultCandleMultiplier = 0.8
	trailingCandles         = 5
	sparseDataOffset        = -50.0

	toggleSize        = 20.0
	autoToggleOffsetX = 50.0
	logToggleOffsetX  = 25.0
	toggleOffsetY     = BottomMargin + 25.0

	axesTextMarginX  = 5.0
	axesTextOffsetY  = 4.0
	priceLabelHeight = 20.0
	dateLabelWidth   = 80.0
	dateTextOffsetY  = 15.0

	legendPosX         = 10.0
	legendPosY         = 20.0
	legendLineHeight   = 20.0
	legendColumnWidth  = 80.0
	legendValueOffset  = 35.0
	legendChangeOffset = 320.0
)

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Geometry derived from the current widget size.
// It is recalculated for every frame and every input event, never stored.
type dimensions struct {
	width       float64
	height      float64
	chartWidth  float64
	chartHeight float64
	autoToggle  Rect
	logToggle   Rect
}

func newDimensions(width, height float64) dimensions {
	return dimensions{
		width:       width,
		height:      height,
		chartWidth:  width - RightMargin,
		chartHeight: height - BottomMargin,
		autoToggle:  Rect{X: width - autoToggleOffsetX, Y: height - toggleOffsetY, W: toggleSize, H: toggleSize},
		logToggle:   Rect{X: width - logToggleOffsetX, Y: height - toggleOffsetY, W: toggleSize, H: toggleSize},
	}
}

func (d dimensions) isEmpty() bool {
	return d.chartWidth <= 0 || d.chartHeight <= 0
}

func (d dimensions) inPlotArea(p Point) bool {
	return p.X >= 0 && p.X <= d.chartWidth && p.Y >= 0 && p.Y <= d.chartHeight
}

func (d dimensions) area(p Point) EventArea {
	switch {
	case d.autoToggle.Contains(p):
		return EventAreaAutoToggle
	case d.logToggle.Contains(p):
		return EventAreaLogToggle
	case p.X > d.chartWidth:
		return EventAreaYaxis
	case p.Y > d.chartHeight:
		return EventAreaXaxis
	default:
		return EventAreaPlot
	}
}

func getCandleBodyWidth(pixelsPerCandle float64) float64 {
	return pixelsPerCandle * defaultCandleMultiplier
}
